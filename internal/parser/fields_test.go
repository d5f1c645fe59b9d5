package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractExperienceInlineDuration(t *testing.T) {
	text := "Software Engineer at Acme Corp | Jan 2020 - Present\n" +
		"Built internal tools for the platform team\n" +
		"- Designed REST APIs\n" +
		"• Cut latency by 40%\n" +
		"1. Mentored two interns"

	got := ExtractExperience(text)
	require.Len(t, got, 1)
	assert.Equal(t, "Software Engineer", got[0].Title)
	assert.Equal(t, "Acme Corp", got[0].Company)
	assert.Equal(t, "Jan 2020 - Present", got[0].Duration)
	assert.Equal(t, []string{"Designed REST APIs", "Cut latency by 40%", "Mentored two interns"}, got[0].Responsibilities)
	assert.Equal(t, "Built internal tools for the platform team", got[0].Description)
}

// The description excludes bullet lines and the line the duration came from.
// The original heuristic mixed these conditions; this pins the intended rule.
func TestExtractExperienceDescriptionExcludesDurationAndBullets(t *testing.T) {
	text := "Data Analyst, Globex\n" +
		"March 2018 - Dec 2019\n" +
		"Analyzed sales data\n" +
		"- Built dashboards"

	got := ExtractExperience(text)
	require.Len(t, got, 1)
	assert.Equal(t, "Data Analyst", got[0].Title)
	assert.Equal(t, "Globex", got[0].Company)
	assert.Equal(t, "March 2018 - Dec 2019", got[0].Duration)
	assert.Equal(t, "Analyzed sales data", got[0].Description)
	assert.Equal(t, []string{"Built dashboards"}, got[0].Responsibilities)
}

func TestExtractExperienceMultipleEntries(t *testing.T) {
	text := "Backend Engineer, Initech | 2019 - 2021\n" +
		"- Shipped billing service\n" +
		"Frontend Developer, Hooli | 2017 - 2019\n" +
		"- Built design system"

	got := ExtractExperience(text)
	require.Len(t, got, 2)
	assert.Equal(t, "Initech", got[0].Company)
	assert.Equal(t, "2019 - 2021", got[0].Duration)
	assert.Equal(t, "Frontend Developer", got[1].Title)
	assert.Equal(t, "Hooli", got[1].Company)
	assert.Equal(t, []string{"Built design system"}, got[1].Responsibilities)
}

func TestExtractExperienceSkipsTinyBlocks(t *testing.T) {
	assert.Empty(t, ExtractExperience("Intern"))
	assert.Empty(t, ExtractExperience("Just one line of text here"))
}

func TestExtractExperienceUnmatchedTitleKeepsFirstLine(t *testing.T) {
	got := ExtractExperience("Freelancer\nVarious client projects")
	require.Len(t, got, 1)
	assert.Equal(t, "Freelancer", got[0].Title)
	assert.Empty(t, got[0].Company)
	assert.Equal(t, "Freelancer Various client projects", got[0].Description)
}

func TestExtractEducation(t *testing.T) {
	text := "B.S. Computer Science from State University | 2016\n" +
		"GPA: 3.8\n" +
		"Master of Science, Tech Institute\n" +
		"graduated 2019, thesis on compilers"

	got := ExtractEducation(text)
	require.Len(t, got, 2)
	assert.Equal(t, "B.S. Computer Science", got[0].Degree)
	assert.Equal(t, "State University", got[0].Institution)
	assert.Equal(t, "2016", got[0].Year)
	assert.Equal(t, "3.8", got[0].GPA)

	assert.Equal(t, "Master of Science", got[1].Degree)
	assert.Equal(t, "Tech Institute", got[1].Institution)
	assert.Equal(t, "2019", got[1].Year)
	assert.Equal(t, "graduated 2019, thesis on compilers", got[1].Details)
}

func TestExtractSkillsCaseInsensitive(t *testing.T) {
	got := ExtractSkills("JAVASCRIPT and Spring Boot")
	assert.Contains(t, got.Technical, "javascript")
	assert.Contains(t, got.Technical, "spring boot")
	assert.Contains(t, got.Languages, "javascript")
	assert.Contains(t, got.Frameworks, "spring boot")
}

func TestExtractSkillsOrderAndDedup(t *testing.T) {
	got := ExtractSkills("sql python")
	// python is listed before sql in the catalog, and appears in two categories.
	assert.Equal(t, []string{"python", "sql"}, got.Technical)
	assert.Empty(t, got.Soft)
}

func TestExtractAchievements(t *testing.T) {
	text := "Increased revenue by 25%\nLed a team of 5\nManaged $200 budget\nWrote docs 100%"
	assert.Equal(t, []string{"Increased revenue by 25%", "Managed $200 budget"}, ExtractAchievements(text))
}

func TestExtractCertifications(t *testing.T) {
	got := ExtractCertifications("AWS Certified Solutions Architect\nPlayed piano")
	assert.Equal(t, []string{"AWS Certified Solutions Architect"}, got)
}
