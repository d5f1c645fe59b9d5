// Package careerai implements the AI career features built on top of a
// parsed resume: interview questions, cover letters, market trends,
// skill-gap analysis, learning roadmaps and the career chat.
package careerai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"careergenie-backend/internal/analyses"
	"careergenie-backend/internal/llm"
	"careergenie-backend/internal/resume"
	"careergenie-backend/internal/resumes"
	"careergenie-backend/internal/shared/telemetry"
)

// Call profile names.
const (
	ProfileInterview    = "interview"
	ProfileCoverLetter  = "cover_letter"
	ProfileMarketTrends = "market_trends"
	ProfileRecommend    = "recommendations"
	ProfileAnalyze      = "resume_analysis"
	ProfileProbe        = "probe"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoResume     = errors.New("no resume found")
	// ErrGeneration wraps provider failures and unusable replies.
	ErrGeneration = errors.New("ai generation failed")
)

// ResumeSource returns the newest parsed resume for a user.
type ResumeSource interface {
	LatestParsed(ctx context.Context, userID string) (resume.Structured, error)
}

// Service runs AI features and records their results.
type Service struct {
	Gen      llm.Generator
	Options  func(profile string) llm.GenerateOptions
	Analyses analyses.Repo
	Resumes  ResumeSource
	Now      func() time.Time
}

type InterviewRequest struct {
	JobTitle   string   `json:"jobTitle" binding:"required"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
}

type InterviewQuestion struct {
	Category     string   `json:"category"`
	Question     string   `json:"question"`
	Difficulty   string   `json:"difficulty"`
	KeyPoints    []string `json:"keyPoints"`
	SampleAnswer string   `json:"sampleAnswer"`
}

type InterviewResult struct {
	Questions   []InterviewQuestion `json:"questions"`
	JobTitle    string              `json:"jobTitle"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

type CoverLetterRequest struct {
	ResumeData     json.RawMessage `json:"resumeData"`
	JobDescription string          `json:"jobDescription"`
	CompanyName    string          `json:"companyName"`
	JobTitle       string          `json:"jobTitle"`
}

type CoverLetterResult struct {
	CoverLetter string    `json:"coverLetter"`
	JobTitle    string    `json:"jobTitle"`
	CompanyName string    `json:"companyName"`
	GeneratedAt time.Time `json:"generatedAt"`
	WordCount   int       `json:"wordCount"`
}

type MarketTrendsResult struct {
	Field           string          `json:"field"`
	Trends          json.RawMessage `json:"trends"`
	Recommendations json.RawMessage `json:"recommendations"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

type SkillGapResult struct {
	ID            string    `json:"id"`
	TargetRole    string    `json:"targetRole"`
	SkillGaps     SkillGaps `json:"skillGaps"`
	CurrentSkills []string  `json:"currentSkills"`
	AnalyzedAt    time.Time `json:"analyzedAt"`
}

// InterviewQuestions asks the provider for role-specific questions.
func (s *Service) InterviewQuestions(ctx context.Context, userID string, req InterviewRequest) (InterviewResult, error) {
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	if req.JobTitle == "" {
		return InterviewResult{}, fmt.Errorf("%w: job title is required", ErrInvalidInput)
	}

	opts := s.options(ProfileInterview)
	opts.JSON = true
	raw, err := s.generate(ctx, interviewPrompt(req.JobTitle, req.Experience, req.Skills), opts)
	if err != nil {
		return InterviewResult{}, err
	}

	var doc struct {
		Questions []InterviewQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(llm.StripFences(raw)), &doc); err != nil {
		return InterviewResult{}, fmt.Errorf("%w: decode questions: %v", ErrGeneration, err)
	}
	if doc.Questions == nil {
		doc.Questions = []InterviewQuestion{}
	}

	s.store(ctx, userID, analyses.TypeInterviewQuestions, req, doc)
	return InterviewResult{Questions: doc.Questions, JobTitle: req.JobTitle, GeneratedAt: s.now()}, nil
}

// CoverLetter drafts a plain-text cover letter.
func (s *Service) CoverLetter(ctx context.Context, userID string, req CoverLetterRequest) (CoverLetterResult, error) {
	if isEmptyJSON(req.ResumeData) || strings.TrimSpace(req.JobDescription) == "" {
		return CoverLetterResult{}, fmt.Errorf("%w: resume data and job description are required", ErrInvalidInput)
	}

	letter, err := s.generate(ctx, coverLetterPrompt(string(req.ResumeData), req.JobDescription, req.CompanyName, req.JobTitle), s.options(ProfileCoverLetter))
	if err != nil {
		return CoverLetterResult{}, err
	}
	letter = strings.TrimSpace(letter)

	s.store(ctx, userID, analyses.TypeCoverLetter, req, map[string]string{"coverLetter": letter})
	return CoverLetterResult{
		CoverLetter: letter,
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		GeneratedAt: s.now(),
		WordCount:   len(strings.Fields(letter)),
	}, nil
}

// MarketTrends summarizes the job market for a field.
func (s *Service) MarketTrends(ctx context.Context, userID, field string) (MarketTrendsResult, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return MarketTrendsResult{}, fmt.Errorf("%w: field is required", ErrInvalidInput)
	}

	opts := s.options(ProfileMarketTrends)
	opts.JSON = true
	raw, err := s.generate(ctx, marketTrendsPrompt(field), opts)
	if err != nil {
		return MarketTrendsResult{}, err
	}

	var doc struct {
		Trends          json.RawMessage `json:"trends"`
		Recommendations json.RawMessage `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(llm.StripFences(raw)), &doc); err != nil {
		return MarketTrendsResult{}, fmt.Errorf("%w: decode trends: %v", ErrGeneration, err)
	}
	if isEmptyJSON(doc.Trends) {
		doc.Trends = json.RawMessage(`{}`)
	}
	if isEmptyJSON(doc.Recommendations) {
		doc.Recommendations = json.RawMessage(`[]`)
	}

	s.store(ctx, userID, analyses.TypeMarketTrends, map[string]string{"field": field}, doc)
	return MarketTrendsResult{
		Field:           field,
		Trends:          doc.Trends,
		Recommendations: doc.Recommendations,
		GeneratedAt:     s.now(),
	}, nil
}

// SkillGaps compares the user's latest resume against a target role.
func (s *Service) SkillGaps(ctx context.Context, userID, targetRole string) (SkillGapResult, error) {
	targetRole = strings.TrimSpace(targetRole)
	if len(targetRole) < 2 || len(targetRole) > 100 {
		return SkillGapResult{}, fmt.Errorf("%w: target role must be 2-100 characters", ErrInvalidInput)
	}

	parsed, err := s.Resumes.LatestParsed(ctx, userID)
	if errors.Is(err, resumes.ErrNotFound) {
		return SkillGapResult{}, ErrNoResume
	}
	if err != nil {
		return SkillGapResult{}, err
	}

	current := parsed.Skills.AllSkills()
	if current == nil {
		current = []string{}
	}
	result := SkillGapResult{
		ID:            uuid.NewString(),
		TargetRole:    targetRole,
		SkillGaps:     AnalyzeSkillGaps(parsed.Skills, targetRole),
		CurrentSkills: current,
		AnalyzedAt:    s.now(),
	}
	s.store(ctx, userID, analyses.TypeSkillGap, map[string]string{"targetRole": targetRole}, result)
	return result, nil
}

type RoadmapRequest struct {
	TargetRole string `json:"targetRole" binding:"required,min=2,max=100"`
	Timeframe  int    `json:"timeframe" binding:"omitempty,min=3,max=60"`
}

type RoadmapResult struct {
	ID          string    `json:"id"`
	TargetRole  string    `json:"targetRole"`
	Timeframe   string    `json:"timeframe"`
	Roadmap     Roadmap   `json:"roadmap"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Roadmap plans a learning path from the user's latest resume. A zero
// timeframe means twelve months.
func (s *Service) Roadmap(ctx context.Context, userID string, req RoadmapRequest) (RoadmapResult, error) {
	role := strings.TrimSpace(req.TargetRole)
	if len(role) < 2 || len(role) > 100 {
		return RoadmapResult{}, fmt.Errorf("%w: target role must be 2-100 characters", ErrInvalidInput)
	}
	months := req.Timeframe
	if months == 0 {
		months = DefaultTimeframeMonths
	}
	if months < MinTimeframeMonths || months > MaxTimeframeMonths {
		return RoadmapResult{}, fmt.Errorf("%w: timeframe must be between 3 and 60 months", ErrInvalidInput)
	}

	parsed, err := s.Resumes.LatestParsed(ctx, userID)
	if errors.Is(err, resumes.ErrNotFound) {
		return RoadmapResult{}, ErrNoResume
	}
	if err != nil {
		return RoadmapResult{}, err
	}

	rm := BuildRoadmap(parsed, role, months)
	result := RoadmapResult{
		ID:          uuid.NewString(),
		TargetRole:  role,
		Timeframe:   rm.Timeframe,
		Roadmap:     rm,
		GeneratedAt: s.now(),
	}
	s.store(ctx, userID, analyses.TypeCareerRoadmap, RoadmapRequest{TargetRole: role, Timeframe: months}, result)
	return result, nil
}

type ChatResult struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat answers a career question, personalized from the latest resume when
// there is one. A resume lookup failure only drops the personalization.
func (s *Service) Chat(ctx context.Context, userID, message string) (ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" || len(message) > MaxChatMessageLen {
		return ChatResult{}, fmt.Errorf("%w: message must be 1-1000 characters", ErrInvalidInput)
	}

	var latest *resume.Structured
	if s.Resumes != nil {
		parsed, err := s.Resumes.LatestParsed(ctx, userID)
		switch {
		case err == nil:
			latest = &parsed
		case !errors.Is(err, resumes.ErrNotFound):
			telemetry.Warn("chat.context_failed", map[string]any{"error": err})
		}
	}

	result := ChatResult{Response: ChatReply(message, latest), Timestamp: s.now()}
	s.store(ctx, userID, analyses.TypeChat, map[string]string{"message": message}, result)
	return result, nil
}

type RecommendationsRequest struct {
	ResumeData  json.RawMessage `json:"resumeData"`
	Preferences map[string]any  `json:"preferences"`
}

type RecommendationsResult struct {
	Recommendations json.RawMessage `json:"recommendations"`
	Analysis        json.RawMessage `json:"analysis"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// Recommendations suggests career moves for the submitted resume data.
func (s *Service) Recommendations(ctx context.Context, userID string, req RecommendationsRequest) (RecommendationsResult, error) {
	if isEmptyJSON(req.ResumeData) {
		return RecommendationsResult{}, fmt.Errorf("%w: resume data is required", ErrInvalidInput)
	}
	prefs, err := json.Marshal(req.Preferences)
	if err != nil || req.Preferences == nil {
		prefs = []byte(`{}`)
	}

	opts := s.options(ProfileRecommend)
	opts.JSON = true
	raw, err := s.generate(ctx, recommendationsPrompt(string(req.ResumeData), string(prefs)), opts)
	if err != nil {
		return RecommendationsResult{}, err
	}

	var doc struct {
		Recommendations json.RawMessage `json:"recommendations"`
		OverallAnalysis json.RawMessage `json:"overallAnalysis"`
	}
	if err := json.Unmarshal([]byte(llm.StripFences(raw)), &doc); err != nil {
		return RecommendationsResult{}, fmt.Errorf("%w: decode recommendations: %v", ErrGeneration, err)
	}
	if isEmptyJSON(doc.Recommendations) {
		doc.Recommendations = json.RawMessage(`[]`)
	}
	if isEmptyJSON(doc.OverallAnalysis) {
		doc.OverallAnalysis = json.RawMessage(`{}`)
	}

	s.store(ctx, userID, analyses.TypeRecommendations, req, doc)
	return RecommendationsResult{
		Recommendations: doc.Recommendations,
		Analysis:        doc.OverallAnalysis,
		GeneratedAt:     s.now(),
	}, nil
}

// MaxAnalyzeTextLen bounds the resume text sent for analysis.
const MaxAnalyzeTextLen = 50000

type ResumeAnalysisResult struct {
	Analysis    json.RawMessage `json:"analysis"`
	GeneratedAt time.Time       `json:"generatedAt"`
	TextLength  int             `json:"textLength"`
}

// AnalyzeResume critiques raw resume text.
func (s *Service) AnalyzeResume(ctx context.Context, userID, text string) (ResumeAnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return ResumeAnalysisResult{}, fmt.Errorf("%w: resume text is required", ErrInvalidInput)
	}
	if len(text) > MaxAnalyzeTextLen {
		return ResumeAnalysisResult{}, fmt.Errorf("%w: resume text is too long", ErrInvalidInput)
	}

	opts := s.options(ProfileAnalyze)
	opts.JSON = true
	raw, err := s.generate(ctx, resumeAnalysisPrompt(text), opts)
	if err != nil {
		return ResumeAnalysisResult{}, err
	}
	analysis := json.RawMessage(llm.StripFences(raw))
	if !json.Valid(analysis) {
		return ResumeAnalysisResult{}, fmt.Errorf("%w: analysis is not JSON", ErrGeneration)
	}

	s.store(ctx, userID, analyses.TypeResumeAnalysis, map[string]int{"textLength": len(text)}, analysis)
	return ResumeAnalysisResult{Analysis: analysis, GeneratedAt: s.now(), TextLength: len(text)}, nil
}

// Probe sends a minimal request and reports round-trip latency.
func (s *Service) Probe(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	_, err := s.generate(ctx, probePrompt, s.options(ProfileProbe))
	return time.Since(start), err
}

func (s *Service) generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	if s.Gen == nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, llm.ErrDisabled)
	}
	out, err := s.Gen.Generate(ctx, prompt, opts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrGeneration)
	}
	return out, nil
}

// store records the analysis. Failures are logged and never fail the request.
func (s *Service) store(ctx context.Context, userID, kind string, input, output any) {
	if s.Analyses == nil {
		return
	}
	in, err := json.Marshal(input)
	if err != nil {
		in = []byte(`{}`)
	}
	out, err := json.Marshal(output)
	if err != nil {
		out = []byte(`{}`)
	}
	a := analyses.Analysis{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Input:     in,
		Output:    out,
		Feature:   kind,
		CreatedAt: s.now(),
	}
	if err := s.Analyses.Create(ctx, a); err != nil {
		telemetry.Warn("analysis.store_failed", map[string]any{
			"type":  kind,
			"error": err,
		})
	}
}

func (s *Service) options(profile string) llm.GenerateOptions {
	if s.Options != nil {
		return s.Options(profile)
	}
	return llm.GenerateOptions{Temperature: 0.3, MaxOutputTokens: 1024}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null" || trimmed == `""` || trimmed == "{}"
}
