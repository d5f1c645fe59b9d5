package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResume = `Jane Smith
jane@example.com
SUMMARY
Backend engineer focused on reliability.
EXPERIENCE
Senior Engineer at Acme | 2020 - Present
Owned the ingestion platform
- Reduced costs by 30%
EDUCATION
B.S. Computer Science from State University | 2016
SKILLS
Go, Python, Docker, Kubernetes, leadership
CERTIFICATIONS
AWS Certified Developer`

func TestParseContactAndSkillsScenario(t *testing.T) {
	got := Parse("John Doe\njohn@x.com\nSKILLS\nPython, SQL")

	assert.Equal(t, "John Doe", got.PersonalInfo.Name)
	assert.Equal(t, "john@x.com", got.PersonalInfo.Email)
	assert.Contains(t, got.Skills.Technical, "python")
	assert.Contains(t, got.Skills.Technical, "sql")
}

func TestParseFullResume(t *testing.T) {
	got := Parse(fullResume)

	assert.Equal(t, "Jane Smith", got.PersonalInfo.Name)
	assert.Equal(t, "Backend engineer focused on reliability.", got.Summary)

	require.Len(t, got.Experience, 1)
	assert.Equal(t, "Senior Engineer", got.Experience[0].Title)
	assert.Equal(t, "Acme", got.Experience[0].Company)
	assert.Equal(t, "2020 - Present", got.Experience[0].Duration)
	assert.Equal(t, []string{"Reduced costs by 30%"}, got.Experience[0].Responsibilities)
	assert.Equal(t, "Owned the ingestion platform", got.Experience[0].Description)

	require.Len(t, got.Education, 1)
	assert.Equal(t, "B.S. Computer Science", got.Education[0].Degree)
	assert.Equal(t, "State University", got.Education[0].Institution)
	assert.Equal(t, "2016", got.Education[0].Year)

	assert.Contains(t, got.Skills.Technical, "docker")
	assert.Contains(t, got.Skills.Languages, "go")
	assert.Contains(t, got.Skills.Soft, "leadership")
	assert.Contains(t, got.Skills.Tools, "kubernetes")
	assert.Contains(t, got.Certifications, "AWS Certified Developer")
	assert.Equal(t, []string{"- Reduced costs by 30%"}, got.Achievements)
	assert.Equal(t, fullResume, got.RawText)
}

func TestParseEmptyText(t *testing.T) {
	got := Parse("")

	assert.Empty(t, got.PersonalInfo.Name)
	assert.NotNil(t, got.Experience)
	assert.NotNil(t, got.Skills.Technical)
	assert.Empty(t, got.Experience)
	assert.Empty(t, got.Education)
}

func TestParseSummaryFallsBackToObjective(t *testing.T) {
	got := Parse("Jane\nOBJECTIVE\nSeeking a backend role")
	assert.Contains(t, got.Summary, "Seeking a backend role")
}

func TestSplitSectionsIsDeterministic(t *testing.T) {
	assert.Equal(t, SplitSections(fullResume), SplitSections(fullResume))
}

func TestSplitSectionsConservesLines(t *testing.T) {
	inputs := []string{
		fullResume,
		"",
		"SKILLS\nGo\nEDUCATION\nBSc\nSKILLS\nRust",
		"a\n\n\nb",
	}
	for _, in := range inputs {
		got := SplitSections(in)
		assert.Equal(t, len(strings.Split(in, "\n")), got.LineCount(), "input %q", in)
	}
}

func TestSplitSectionsRecurringSectionAppends(t *testing.T) {
	got := SplitSections("SKILLS\nGo\nEDUCATION\nBSc\nSKILLS\nRust")
	assert.Equal(t, []string{"SKILLS", "Go", "SKILLS", "Rust"}, got.Lines(SectionSkills))
	assert.Equal(t, []string{"EDUCATION", "BSc"}, got.Lines(SectionEducation))
	assert.False(t, got.Has(SectionHeader))
	assert.Equal(t, "Go\nRust", got.Body(SectionSkills), "every reopening heading is dropped from the body")
}

func TestParseRecurringExperienceHeading(t *testing.T) {
	got := Parse("Jane\nEXPERIENCE\nSoftware Engineer at Acme, 2019-2021\n- Built APIs\nEDUCATION\nBSc Computer Science\nEXPERIENCE\nData Analyst at Initech, 2017-2019\n- Wrote reports")
	require.Len(t, got.Experience, 2)
	for _, e := range got.Experience {
		assert.NotEqual(t, "EXPERIENCE", e.Title)
		assert.NotContains(t, e.Description, "EXPERIENCE")
	}
	require.Len(t, got.Education, 1)
}

func TestSplitSectionsHeadingRules(t *testing.T) {
	long := "I have deep experience running production systems at scale"
	got := SplitSections("Jane\n" + long)
	assert.Equal(t, []string{"Jane", long}, got.Lines(SectionHeader), "long lines never switch sections")

	got = SplitSections("EXPERIENCE\nWork history")
	assert.Equal(t, []string{"EXPERIENCE", "Work history"}, got.Lines(SectionExperience), "same-section heading stays put")

	got = SplitSections("Jane\nProfessional Experience")
	assert.True(t, got.Has(SectionExperience), "experience pattern is tested before work")
	assert.Equal(t, "", got.Body(SectionExperience))
}

func TestExtractPersonalInfo(t *testing.T) {
	header := "Jane Smith\njane.smith@example.com | (555) 123-4567\nlinkedin.com/in/janesmith\ngithub.com/jsmith"
	got := ExtractPersonalInfo(header)

	assert.Equal(t, "Jane Smith", got.Name)
	assert.Equal(t, "jane.smith@example.com", got.Email)
	assert.Equal(t, "(555) 123-4567", got.Phone)
	assert.Equal(t, "linkedin.com/in/janesmith", got.LinkedIn)
	assert.Equal(t, "github.com/jsmith", got.GitHub)
}

func TestExtractPersonalInfoSkipsContactLines(t *testing.T) {
	got := ExtractPersonalInfo("john@x.com\n555-123-4567\nLinkedIn.com/in/jd\nJohn Doe")
	assert.Equal(t, "John Doe", got.Name)
}

func TestExtractSummary(t *testing.T) {
	assert.Equal(t, "Backend engineer with 8 years", ExtractSummary("SUMMARY\nBackend engineer with 8 years"))
}
