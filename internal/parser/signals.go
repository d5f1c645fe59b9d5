package parser

import (
	"regexp"
	"strings"
)

var achievementVerbs = []string{
	"achieved", "increased", "decreased", "improved", "reduced", "saved",
	"generated", "led", "managed", "created", "developed", "implemented",
	"award", "recognition", "certified", "published",
}

var quantityRe = regexp.MustCompile(`(?i)\d+%|\$\d+|\d+,\d+|\d+\s*(?:million|thousand|k|m)\b`)

var certificationKeywords = []string{
	"certified", "certification", "certificate", "license", "credential",
	"aws", "microsoft", "google", "cisco", "oracle", "salesforce",
	"pmp", "scrum master", "agile", "itil", "cissp", "ceh", "comptia",
}

// ExtractAchievements keeps lines with an achievement verb and a quantity.
func ExtractAchievements(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if containsAny(lower, achievementVerbs) && quantityRe.MatchString(line) {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}

// ExtractCertifications keeps lines mentioning a certification keyword.
func ExtractCertifications(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if containsAny(strings.ToLower(line), certificationKeywords) {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
