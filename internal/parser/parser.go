package parser

import "careergenie-backend/internal/resume"

// Parse runs every heuristic extractor over text. It never fails; missing
// sections yield empty fields.
func Parse(text string) resume.Structured {
	sections := SplitSections(text)

	experience := sections.Body(SectionExperience)
	if !sections.Has(SectionExperience) {
		experience = sections.Body(SectionWork)
	}
	summary := sections.Text(SectionSummary)
	if !sections.Has(SectionSummary) {
		summary = sections.Text(SectionObjective)
	}
	skills := text
	if sections.Has(SectionSkills) {
		skills = sections.Text(SectionSkills)
	}

	out := resume.Structured{
		PersonalInfo:   ExtractPersonalInfo(sections.Text(SectionHeader)),
		Summary:        ExtractSummary(summary),
		Experience:     ExtractExperience(experience),
		Education:      ExtractEducation(sections.Body(SectionEducation)),
		Skills:         ExtractSkills(skills),
		Achievements:   ExtractAchievements(text),
		Certifications: ExtractCertifications(text),
		RawText:        text,
	}
	out.Normalize()
	return out
}
