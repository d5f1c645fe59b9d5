package careerai

import (
	"strings"

	"careergenie-backend/internal/resume"
)

const MaxChatMessageLen = 1000

type chatRoute struct {
	keywords []string
	reply    string
}

// routes are tried in order and the first keyword hit wins.
var chatRoutes = []chatRoute{
	{
		keywords: []string{"skills", "skill", "learn"},
		reply:    "Based on current industry trends, I recommend focusing on in-demand skills like cloud computing, data analysis, and AI/ML. What specific area interests you most?",
	},
	{
		keywords: []string{"career", "job", "role"},
		reply:    "Career growth depends on continuous learning and networking. Consider exploring roles that align with your strengths and market demand. Would you like me to analyze potential career paths for you?",
	},
	{
		keywords: []string{"resume", "cv"},
		reply:    "A strong resume should highlight your achievements with quantifiable results, relevant skills, and clear career progression. Would you like me to help you optimize your resume?",
	},
	{
		keywords: []string{"interview", "prepare"},
		reply:    "Interview preparation involves researching the company, practicing common questions, and preparing specific examples that demonstrate your skills. Focus on the STAR method for behavioral questions.",
	},
	{
		keywords: []string{"salary", "compensation"},
		reply:    "Salary negotiations should be based on market research, your experience level, and the value you bring. Research industry standards and be prepared to justify your expectations.",
	},
	{
		keywords: []string{"networking", "connections"},
		reply:    "Professional networking is crucial for career growth. Engage on LinkedIn, attend industry events, and maintain relationships with colleagues and mentors.",
	},
}

const defaultChatReply = "I'm here to help with your career development! You can ask me about skills, career paths, resume optimization, interview preparation, or any other career-related questions."

// ChatReply answers message from the keyword table. A non-nil parsed resume
// adds a note about the first two technical skills and the newest role.
func ChatReply(message string, parsed *resume.Structured) string {
	reply := defaultChatReply
	lower := strings.ToLower(message)
routes:
	for _, r := range chatRoutes {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				reply = r.reply
				break routes
			}
		}
	}
	if parsed == nil {
		return reply
	}

	if tech := parsed.Skills.Technical; len(tech) > 0 {
		reply += " Given your background in " + strings.Join(tech[:min(2, len(tech))], " and ") + ", I can provide more targeted advice."
	}
	if len(parsed.Experience) > 0 && parsed.Experience[0].Title != "" {
		reply += " With your experience as a " + parsed.Experience[0].Title + ", you have a solid foundation to build upon."
	}
	return reply
}
