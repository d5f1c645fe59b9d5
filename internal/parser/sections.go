// Package parser is the heuristic resume extractor used when the LLM path
// is disabled or fails. Nothing in it returns an error.
package parser

import (
	"regexp"
	"strings"
)

// Section names a resume segment.
type Section string

const (
	SectionHeader         Section = "header"
	SectionSummary        Section = "summary"
	SectionObjective      Section = "objective"
	SectionExperience     Section = "experience"
	SectionWork           Section = "work"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionAchievements   Section = "achievements"
	SectionCertifications Section = "certifications"
)

// maxHeaderLen bounds how long a line may be and still count as a heading.
const maxHeaderLen = 50

type headerPattern struct {
	section Section
	re      *regexp.Regexp
}

// Tested in order; the first match wins.
var headerPatterns = []headerPattern{
	{SectionSummary, regexp.MustCompile(`(?i)(summary|profile|about|overview)`)},
	{SectionObjective, regexp.MustCompile(`(?i)(objective|goal)`)},
	{SectionExperience, regexp.MustCompile(`(?i)(experience|work|employment|career)`)},
	{SectionWork, regexp.MustCompile(`(?i)(work experience|professional experience|employment history)`)},
	{SectionEducation, regexp.MustCompile(`(?i)(education|academic|qualification)`)},
	{SectionSkills, regexp.MustCompile(`(?i)(skills|technical|competencies|expertise)`)},
	{SectionAchievements, regexp.MustCompile(`(?i)(achievements|accomplishments|awards)`)},
	{SectionCertifications, regexp.MustCompile(`(?i)(certifications|certificates|licenses)`)},
}

// Sections holds the trimmed lines of every section seen, in input order,
// plus the positions of the heading lines that opened or reopened each one.
type Sections struct {
	lines    map[Section][]string
	headings map[Section]map[int]bool
}

// Lines returns a section's lines, headings included.
func (s Sections) Lines(name Section) []string {
	return s.lines[name]
}

// Text joins a section's lines, headings included.
func (s Sections) Text(name Section) string {
	return strings.Join(s.lines[name], "\n")
}

// Body joins a section's lines without any heading that opened it. A
// recurring section drops each of its headings.
func (s Sections) Body(name Section) string {
	heads := s.headings[name]
	body := make([]string, 0, len(s.lines[name]))
	for i, line := range s.lines[name] {
		if heads[i] {
			continue
		}
		body = append(body, line)
	}
	return strings.Join(body, "\n")
}

// Has reports whether the section was seen.
func (s Sections) Has(name Section) bool {
	_, ok := s.lines[name]
	return ok
}

// LineCount is the total number of lines across all sections.
func (s Sections) LineCount() int {
	n := 0
	for _, lines := range s.lines {
		n += len(lines)
	}
	return n
}

// SplitSections assigns every line of text to a section in one pass.
// A section that recurs keeps accumulating into the same buffer. A heading
// for the section already in progress is ordinary content.
func SplitSections(text string) Sections {
	out := Sections{
		lines:    make(map[Section][]string),
		headings: make(map[Section]map[int]bool),
	}
	current := SectionHeader
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if next, ok := matchHeader(line); ok && next != current {
			current = next
			if out.headings[current] == nil {
				out.headings[current] = make(map[int]bool)
			}
			out.headings[current][len(out.lines[current])] = true
		}
		out.lines[current] = append(out.lines[current], line)
	}
	return out
}

func matchHeader(line string) (Section, bool) {
	if len(line) >= maxHeaderLen {
		return "", false
	}
	for _, p := range headerPatterns {
		if p.re.MatchString(line) {
			return p.section, true
		}
	}
	return "", false
}
