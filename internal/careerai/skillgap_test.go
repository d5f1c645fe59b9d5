package careerai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careergenie-backend/internal/resume"
)

func TestAnalyzeSkillGapsDataScientist(t *testing.T) {
	gaps := AnalyzeSkillGaps(resume.Skills{Technical: []string{"Python", "excel"}}, "Data Scientist")

	assert.Equal(t, []string{"python"}, gaps.Strong)
	assert.Equal(t, []string{"statistics", "machine learning", "sql"}, gaps.Missing)
	assert.Empty(t, gaps.Weak)

	// statistics 10, machine learning 9, sql 9; stable sort keeps table order for ties
	var order []string
	for _, r := range gaps.Recommendations {
		order = append(order, r.Skill)
	}
	assert.Equal(t, []string{"statistics", "machine learning", "sql"}, order)
	assert.Equal(t, 16, gaps.Recommendations[1].EstimatedWeeks)
	assert.Equal(t, "Kaggle Learn", gaps.Recommendations[1].Resources[1].Name)
}

func TestAnalyzeSkillGapsDefaults(t *testing.T) {
	gaps := AnalyzeSkillGaps(resume.Skills{}, "Product Manager")

	assert.Len(t, gaps.Missing, 4)
	for _, r := range gaps.Recommendations {
		assert.Equal(t, defaultPriority, r.Priority)
	}
	rec := gaps.Recommendations[0]
	assert.Equal(t, defaultLearningWeeks, rec.EstimatedWeeks)
	assert.Equal(t, "https://google.com/search?q=strategic+thinking+tutorial", rec.Resources[0].URL)
}

func TestAnalyzeSkillGapsUnknownRole(t *testing.T) {
	gaps := AnalyzeSkillGaps(resume.Skills{Technical: []string{"go"}}, "Astronaut")

	assert.False(t, KnownRole("Astronaut"))
	assert.NotNil(t, gaps.Missing)
	assert.Empty(t, gaps.Missing)
	assert.Empty(t, gaps.Recommendations)
}
