// Package analyses stores the outputs of AI career features.
package analyses

import (
	"encoding/json"
	"time"
)

// Analysis types.
const (
	TypeInterviewQuestions = "interview_questions"
	TypeCoverLetter        = "cover_letter"
	TypeMarketTrends       = "market_trends"
	TypeSkillGap           = "skill_gap_analysis"
	TypeCareerRoadmap      = "career_roadmap"
	TypeChat               = "ai_chat"
	TypeRecommendations    = "career_recommendations"
	TypeResumeAnalysis     = "resume_analysis"
)

// Analysis is one stored AI feature result.
type Analysis struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Type      string          `json:"type"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output"`
	Feature   string          `json:"feature"`
	CreatedAt time.Time       `json:"createdAt"`
}
