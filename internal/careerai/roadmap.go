package careerai

import (
	"fmt"
	"strings"

	"careergenie-backend/internal/resume"
)

const (
	DefaultTimeframeMonths = 12
	MinTimeframeMonths     = 3
	MaxTimeframeMonths     = 60

	foundationPriority = 8
	phaseSkillLimit    = 3
)

// title and description keywords that count an experience toward a role
var roleKeywords = map[string][]string{
	"Software Developer": {"developer", "programmer", "software", "engineer"},
	"Data Scientist":     {"data", "analyst", "scientist", "research"},
	"Product Manager":    {"product", "manager", "strategy", "planning"},
}

var portfolioResources = []Resource{
	{Name: "GitHub", Type: "platform", URL: "https://github.com"},
	{Name: "Portfolio Projects", Type: "practice", URL: "#"},
}

type Phase struct {
	Name           string     `json:"name"`
	Months         int        `json:"months"`
	Duration       string     `json:"duration"`
	Skills         []string   `json:"skills"`
	Goals          []string   `json:"goals"`
	EstimatedHours int        `json:"estimatedHours"`
	Resources      []Resource `json:"resources"`
}

type Milestone struct {
	Month       int    `json:"month"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Roadmap is a phased learning plan toward a role.
type Roadmap struct {
	TargetRole          string      `json:"targetRole"`
	CurrentLevel        string      `json:"currentLevel"`
	TargetLevel         string      `json:"targetLevel"`
	Timeframe           string      `json:"timeframe"`
	Phases              []Phase     `json:"phases"`
	Milestones          []Milestone `json:"milestones"`
	TotalEstimatedHours int         `json:"totalEstimatedHours"`
}

// BuildRoadmap plans the skills a resume lacks for role over months.
// Missing required skills come first in priority order, then missing
// preferred ones. Up to three leading skills of priority 8 or more form
// the foundation phase, the next three the development phase and the rest
// the mastery phase.
func BuildRoadmap(parsed resume.Structured, role string, months int) Roadmap {
	rm := Roadmap{
		TargetRole:   role,
		CurrentLevel: AssessLevel(parsed.Experience, role),
		TargetLevel:  "Entry Level",
		Timeframe:    fmt.Sprintf("%d months", months),
		Phases:       []Phase{},
		Milestones:   []Milestone{},
	}

	gaps := AnalyzeSkillGaps(parsed.Skills, role)
	queue := make([]string, 0, len(gaps.Recommendations))
	for _, r := range gaps.Recommendations {
		queue = append(queue, r.Skill)
	}
	have := parsed.Skills.AllSkills()
	for _, pref := range roles[role].Preferred {
		if !hasSkill(have, pref) {
			queue = append(queue, pref)
		}
	}

	perPhase := max(2, months/3)

	var foundation []string
	for len(foundation) < phaseSkillLimit && len(queue) > 0 && skillPriority(queue[0], role) >= foundationPriority {
		foundation = append(foundation, queue[0])
		queue = queue[1:]
	}
	if len(foundation) > 0 {
		rm.Phases = append(rm.Phases, newPhase("Foundation Phase", perPhase, foundation, 40, "Master %s fundamentals"))
	}

	n := min(phaseSkillLimit, len(queue))
	if n > 0 {
		rm.Phases = append(rm.Phases, newPhase("Development Phase", perPhase, queue[:n], 50, "Develop proficiency in %s"))
		queue = queue[n:]
	}

	if len(queue) > 0 {
		rest := max(1, months-len(rm.Phases)*perPhase)
		p := newPhase("Mastery Phase", rest, queue, 60, "Advanced %s skills")
		p.Goals = append([]string{"Build portfolio projects", "Gain practical experience"}, p.Goals...)
		p.EstimatedHours += 100
		p.Resources = append([]Resource(nil), portfolioResources...)
		rm.Phases = append(rm.Phases, p)
	}

	rm.Milestones = milestones(rm.Phases)
	for _, p := range rm.Phases {
		rm.TotalEstimatedHours += p.EstimatedHours
	}
	return rm
}

func newPhase(name string, months int, skills []string, hoursPerSkill int, goal string) Phase {
	p := Phase{
		Name:           name,
		Months:         months,
		Duration:       fmt.Sprintf("%d months", months),
		Skills:         append([]string(nil), skills...),
		Goals:          make([]string, 0, len(skills)),
		EstimatedHours: len(skills) * hoursPerSkill,
		Resources:      make([]Resource, 0, len(skills)),
	}
	for _, s := range skills {
		p.Goals = append(p.Goals, fmt.Sprintf(goal, s))
		p.Resources = append(p.Resources, learningResources(s)[0])
	}
	return p
}

// milestones puts a checkpoint halfway through each phase and a completion
// mark at its end.
func milestones(phases []Phase) []Milestone {
	out := make([]Milestone, 0, 2*len(phases))
	month := 0
	for _, p := range phases {
		month += p.Months / 2
		out = append(out, Milestone{
			Month:       month,
			Title:       p.Name + " Checkpoint",
			Description: "Complete " + strings.Join(p.Skills[:min(2, len(p.Skills))], " and ") + " learning",
			Type:        "learning",
		})
		month += (p.Months + 1) / 2
		out = append(out, Milestone{
			Month:       month,
			Title:       p.Name + " Complete",
			Description: "Ready for next phase - all " + strings.ToLower(p.Name) + " skills acquired",
			Type:        "completion",
		})
	}
	return out
}

// AssessLevel grades a candidate by how many experiences match the role's
// keywords. Roles without keywords always assess as Entry Level.
func AssessLevel(experience []resume.Experience, role string) string {
	relevant := 0
	for _, e := range experience {
		if relevantExperience(e, role) {
			relevant++
		}
	}
	switch {
	case relevant == 0:
		return "Entry Level"
	case relevant < 3:
		return "Junior"
	case relevant < 7:
		return "Mid-level"
	default:
		return "Senior"
	}
}

func relevantExperience(e resume.Experience, role string) bool {
	title := strings.ToLower(e.Title)
	desc := strings.ToLower(e.Description)
	for _, k := range roleKeywords[role] {
		if strings.Contains(title, k) || strings.Contains(desc, k) {
			return true
		}
	}
	return false
}
