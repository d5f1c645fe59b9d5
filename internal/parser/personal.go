package parser

import (
	"regexp"
	"strings"

	"careergenie-backend/internal/resume"
)

var (
	emailRe      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe      = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	phoneLikeRe  = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRe   = regexp.MustCompile(`(?i)linkedin\.com/in/\S+`)
	githubRe     = regexp.MustCompile(`(?i)github\.com/\S+`)
	summaryTagRe = regexp.MustCompile(`(?i)summary|profile|about|overview`)
)

// ExtractPersonalInfo reads contact details from the header section.
func ExtractPersonalInfo(header string) resume.PersonalInfo {
	var info resume.PersonalInfo
	info.Email = emailRe.FindString(header)
	info.Phone = phoneRe.FindString(header)
	info.LinkedIn = linkedinRe.FindString(header)
	info.GitHub = githubRe.FindString(header)

	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "@") {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "linkedin") || strings.Contains(lower, "github") {
			continue
		}
		if phoneLikeRe.MatchString(line) {
			continue
		}
		info.Name = line
		break
	}
	return info
}

// ExtractSummary drops the first heading keyword and trims the rest.
func ExtractSummary(text string) string {
	loc := summaryTagRe.FindStringIndex(text)
	if loc != nil {
		text = text[:loc[0]] + text[loc[1]:]
	}
	return strings.TrimSpace(text)
}
