package parser

import (
	"regexp"
	"strings"
	"unicode"

	"careergenie-backend/internal/resume"
)

var (
	degreeRe = regexp.MustCompile(`^(.+?)(?:\s+from\s+|\s+at\s+|\s*\|\s*|\s*,\s*)(.+?)(?:\s*\|\s*(.+))?$`)
	gpaRe    = regexp.MustCompile(`(?i)gpa[:\s]*(\d+\.?\d*)`)
	yearRe   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// ExtractEducation reads one entry per block; a block starts at each line
// beginning with an upper-case letter, except GPA lines which continue the
// current entry.
func ExtractEducation(text string) []resume.Education {
	var out []resume.Education
	isStart := func(line string) bool {
		return startsUpper(line) && !gpaRe.MatchString(line)
	}
	for _, block := range splitBlocks(text, isStart) {
		if len(strings.TrimSpace(block)) < 5 {
			continue
		}
		lines := nonEmptyLines(block)
		if len(lines) == 0 {
			continue
		}
		edu := resume.Education{}
		if m := degreeRe.FindStringSubmatch(lines[0]); m != nil {
			edu.Degree = strings.TrimSpace(m[1])
			edu.Institution = strings.TrimSpace(m[2])
			edu.Year = strings.TrimSpace(m[3])
		} else {
			edu.Degree = lines[0]
		}
		if m := gpaRe.FindStringSubmatch(block); m != nil {
			edu.GPA = m[1]
		}
		if edu.Year == "" {
			edu.Year = yearRe.FindString(block)
		}
		if len(lines) > 1 {
			edu.Details = strings.Join(lines[1:], " ")
		}
		out = append(out, edu)
	}
	return out
}

func startsUpper(line string) bool {
	for _, r := range line {
		return unicode.IsUpper(r)
	}
	return false
}
