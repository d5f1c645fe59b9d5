// Package resume holds the structured resume record shared by the
// extraction pipeline, storage, and HTTP layers.
package resume

import "time"

// Method records which extraction path produced a record.
type Method string

const (
	MethodLLM      Method = "llm-enhanced"
	MethodFallback Method = "basic-fallback"
)

const (
	ConfidenceLLM      = 0.9
	ConfidenceFallback = 0.7
)

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

type Experience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	GPA         string `json:"gpa"`
	Details     string `json:"details"`
}

type Skills struct {
	Technical  []string `json:"technical"`
	Soft       []string `json:"soft"`
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Tools      []string `json:"tools"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Structured is the extraction result for one resume.
type Structured struct {
	PersonalInfo     PersonalInfo `json:"personalInfo"`
	Summary          string       `json:"summary"`
	Experience       []Experience `json:"experience"`
	Education        []Education  `json:"education"`
	Skills           Skills       `json:"skills"`
	Achievements     []string     `json:"achievements"`
	Certifications   []string     `json:"certifications"`
	Projects         []Project    `json:"projects"`
	RawText          string       `json:"rawText"`
	ProcessingMethod Method       `json:"processingMethod"`
	Confidence       float64      `json:"confidence"`
	ParsedAt         time.Time    `json:"parsedAt"`
}

// StampLLM records that the LLM path produced the record.
func (s *Structured) StampLLM() {
	s.ProcessingMethod = MethodLLM
	s.Confidence = ConfidenceLLM
}

// StampFallback records that the heuristic path produced the record.
func (s *Structured) StampFallback() {
	s.ProcessingMethod = MethodFallback
	s.Confidence = ConfidenceFallback
}

// Normalize replaces nil slices with empty ones so JSON never carries null lists.
func (s *Structured) Normalize() {
	s.Experience = orEmpty(s.Experience)
	for i := range s.Experience {
		s.Experience[i].Responsibilities = orEmpty(s.Experience[i].Responsibilities)
	}
	s.Education = orEmpty(s.Education)
	s.Skills.Technical = orEmpty(s.Skills.Technical)
	s.Skills.Soft = orEmpty(s.Skills.Soft)
	s.Skills.Languages = orEmpty(s.Skills.Languages)
	s.Skills.Frameworks = orEmpty(s.Skills.Frameworks)
	s.Skills.Tools = orEmpty(s.Skills.Tools)
	s.Achievements = orEmpty(s.Achievements)
	s.Certifications = orEmpty(s.Certifications)
	s.Projects = orEmpty(s.Projects)
	for i := range s.Projects {
		s.Projects[i].Technologies = orEmpty(s.Projects[i].Technologies)
	}
}

// AllSkills flattens every skill list, keeping first occurrence order.
func (s Skills) AllSkills() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range [][]string{s.Technical, s.Languages, s.Frameworks, s.Tools, s.Soft} {
		for _, skill := range list {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
