package parser

import (
	"regexp"
	"strings"

	"careergenie-backend/internal/resume"
)

var (
	entryStartRe   = regexp.MustCompile(`^[A-Z][^,]*(?:,|\s+\|)`)
	titleCompanyRe = regexp.MustCompile(`^(.+?)(?:\s+at\s+|\s*@\s*|\s*\|\s*|\s*,\s*)(.+?)(?:\s*\|\s*(.+))?$`)
	dateTokenRe    = regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|\d{4}|\d{1,2}/\d{1,2}/\d{2,4})`)
	bulletRe       = regexp.MustCompile(`^(?:[•\-*]|\d+\.)\s*`)
)

// ExtractExperience splits an experience section into entries. Entries
// with neither a title nor a company are dropped.
func ExtractExperience(text string) []resume.Experience {
	var out []resume.Experience
	for _, block := range splitBlocks(text, entryStartRe.MatchString) {
		if len(strings.TrimSpace(block)) < 10 {
			continue
		}
		lines := nonEmptyLines(block)
		if len(lines) < 2 {
			continue
		}
		if exp, ok := parseExperienceBlock(lines); ok {
			out = append(out, exp)
		}
	}
	return out
}

func parseExperienceBlock(lines []string) (resume.Experience, bool) {
	exp := resume.Experience{Responsibilities: []string{}}
	first := lines[0]
	m := titleCompanyRe.FindStringSubmatch(first)
	if m != nil {
		exp.Title = strings.TrimSpace(m[1])
		exp.Company = strings.TrimSpace(m[2])
		exp.Duration = strings.TrimSpace(m[3])
	} else {
		exp.Title = first
	}

	durationLine := -1
	if exp.Duration == "" {
		for i := 1; i < len(lines); i++ {
			if dateTokenRe.MatchString(lines[i]) {
				exp.Duration = lines[i]
				durationLine = i
				break
			}
		}
	}

	var desc []string
	for i, line := range lines {
		if i == 0 && m != nil {
			continue
		}
		if isBullet(line) {
			exp.Responsibilities = append(exp.Responsibilities, strings.TrimSpace(bulletRe.ReplaceAllString(line, "")))
			continue
		}
		if i == durationLine {
			continue
		}
		desc = append(desc, line)
	}
	exp.Description = strings.TrimSpace(strings.Join(desc, " "))

	return exp, exp.Title != "" || exp.Company != ""
}

func isBullet(line string) bool {
	return bulletRe.MatchString(line)
}

// splitBlocks starts a new block at every line (after the first) for which
// isStart returns true.
func splitBlocks(text string, isStart func(string) bool) []string {
	var (
		blocks  []string
		current []string
	)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 && isStart(line) {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func nonEmptyLines(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
