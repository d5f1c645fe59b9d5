package careerai

import (
	"net/url"
	"sort"
	"strings"

	"careergenie-backend/internal/resume"
)

type roleRequirements struct {
	Required  []string
	Preferred []string
}

var roles = map[string]roleRequirements{
	"Software Developer": {
		Required:  []string{"programming", "debugging", "version control", "testing"},
		Preferred: []string{"agile", "ci/cd", "cloud platforms", "database design"},
	},
	"Data Scientist": {
		Required:  []string{"python", "statistics", "machine learning", "sql"},
		Preferred: []string{"deep learning", "big data", "data visualization", "cloud platforms"},
	},
	"Product Manager": {
		Required:  []string{"strategic thinking", "user research", "data analysis", "communication"},
		Preferred: []string{"agile", "design thinking", "market research", "roadmap planning"},
	},
}

var priorities = map[string]map[string]int{
	"Software Developer": {
		"programming":     10,
		"debugging":       9,
		"version control": 9,
		"testing":         8,
		"agile":           7,
		"ci/cd":           6,
	},
	"Data Scientist": {
		"python":             10,
		"statistics":         10,
		"machine learning":   9,
		"sql":                9,
		"data visualization": 8,
	},
}

const defaultPriority = 5

var resources = map[string][]Resource{
	"programming": {
		{Name: "freeCodeCamp", Type: "course", URL: "https://freecodecamp.org"},
		{Name: "Codecademy", Type: "platform", URL: "https://codecademy.com"},
	},
	"python": {
		{Name: "Python.org Tutorial", Type: "documentation", URL: "https://docs.python.org/3/tutorial/"},
		{Name: "Automate the Boring Stuff", Type: "book", URL: "https://automatetheboringstuff.com"},
	},
	"machine learning": {
		{Name: "Coursera ML Course", Type: "course", URL: "https://coursera.org/learn/machine-learning"},
		{Name: "Kaggle Learn", Type: "platform", URL: "https://kaggle.com/learn"},
	},
}

// learning time estimates in weeks
var learningWeeks = map[string]int{
	"programming":        12,
	"python":             8,
	"javascript":         8,
	"machine learning":   16,
	"data visualization": 6,
	"sql":                4,
	"git":                2,
	"agile":              4,
}

const defaultLearningWeeks = 8

type Resource struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Recommendation struct {
	Skill          string     `json:"skill"`
	Priority       int        `json:"priority"`
	Resources      []Resource `json:"resources"`
	EstimatedWeeks int        `json:"estimatedTime"`
}

// SkillGaps compares a resume's skills with a role's requirements.
type SkillGaps struct {
	Missing         []string         `json:"missing"`
	Weak            []string         `json:"weak"`
	Strong          []string         `json:"strong"`
	Recommendations []Recommendation `json:"recommendations"`
}

// KnownRole reports whether the role has a requirement table.
func KnownRole(role string) bool {
	_, ok := roles[role]
	return ok
}

// AnalyzeSkillGaps finds required skills the candidate lacks. A skill matches
// when either name contains the other, case-insensitively. Unknown roles
// produce empty lists.
func AnalyzeSkillGaps(skills resume.Skills, role string) SkillGaps {
	gaps := SkillGaps{
		Missing:         []string{},
		Weak:            []string{},
		Strong:          []string{},
		Recommendations: []Recommendation{},
	}
	have := skills.AllSkills()
	for _, req := range roles[role].Required {
		if hasSkill(have, req) {
			gaps.Strong = append(gaps.Strong, req)
			continue
		}
		gaps.Missing = append(gaps.Missing, req)
	}

	for _, skill := range gaps.Missing {
		gaps.Recommendations = append(gaps.Recommendations, Recommendation{
			Skill:          skill,
			Priority:       skillPriority(skill, role),
			Resources:      learningResources(skill),
			EstimatedWeeks: learningTime(skill),
		})
	}
	sort.SliceStable(gaps.Recommendations, func(i, j int) bool {
		return gaps.Recommendations[i].Priority > gaps.Recommendations[j].Priority
	})
	return gaps
}

func hasSkill(have []string, target string) bool {
	target = strings.ToLower(target)
	for _, s := range have {
		s = strings.ToLower(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, target) || strings.Contains(target, s) {
			return true
		}
	}
	return false
}

func skillPriority(skill, role string) int {
	if p, ok := priorities[role][skill]; ok {
		return p
	}
	return defaultPriority
}

func learningResources(skill string) []Resource {
	if r, ok := resources[skill]; ok {
		return append([]Resource(nil), r...)
	}
	q := url.QueryEscape(skill)
	return []Resource{
		{Name: "Google Search", Type: "search", URL: "https://google.com/search?q=" + q + "+tutorial"},
		{Name: "YouTube", Type: "video", URL: "https://youtube.com/search?q=" + q + "+course"},
	}
}

func learningTime(skill string) int {
	if w, ok := learningWeeks[skill]; ok {
		return w
	}
	return defaultLearningWeeks
}
