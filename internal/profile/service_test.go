package profile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResumes struct {
	list []ResumeSummary
	err  error
}

func (s stubResumes) ListResumes(context.Context, string) ([]ResumeSummary, error) {
	return s.list, s.err
}

func newTestService(resumes ResumeLister) (*Service, *MemoryStore) {
	store := NewMemoryStore()
	n := 0
	svc := &Service{
		Store:   store,
		Resumes: resumes,
		Now:     func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
	return svc, store
}

func TestGetIncludesResumes(t *testing.T) {
	svc, store := newTestService(stubResumes{list: []ResumeSummary{{ID: "r1", FileName: "cv.pdf"}}})
	require.NoError(t, store.InsertSkill(context.Background(), SkillRow{ID: "s1", UserID: "u1", Name: "go", Category: "language"}))

	view, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, view.Skills, 1)
	require.Len(t, view.Resumes, 1)
	assert.Equal(t, "cv.pdf", view.Resumes[0].FileName)
	assert.NotNil(t, view.Education)
}

func TestGetFailsWhenResumeListFails(t *testing.T) {
	svc, _ := newTestService(stubResumes{err: errors.New("db down")})

	_, err := svc.Get(context.Background(), "u1")
	assert.Error(t, err)
}

func TestGetWithoutResumesIsEmptyList(t *testing.T) {
	svc, _ := newTestService(nil)

	view, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []ResumeSummary{}, view.Resumes)
}

func TestUpdateCreatesAndEdits(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()
	require.NoError(t, store.InsertEducation(ctx, EducationRow{ID: "d1", UserID: "u1", ResumeID: "r1", Degree: "BSc"}))

	res, err := svc.Update(ctx, "u1", Patch{
		Education:  []EducationRow{{ID: "d1", Degree: "BSc Computer Science", Institution: "State University"}},
		Experience: []ExperienceRow{{Title: "Engineer", Company: "Acme"}},
		Skills:     []SkillRow{{Name: "  Kubernetes "}},
	})
	require.NoError(t, err)
	assert.Equal(t, PatchResult{Created: 2, Updated: 1}, res)

	p, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, p.Education, 1)
	assert.Equal(t, "BSc Computer Science", p.Education[0].Degree)
	assert.Equal(t, "r1", p.Education[0].ResumeID, "edits keep the source resume")
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "id-1", p.Experience[0].ID)
	assert.Equal(t, []string{}, p.Experience[0].Responsibilities)
	require.Len(t, p.Skills, 1)
	assert.Equal(t, "kubernetes", p.Skills[0].Name)
	assert.Equal(t, "technical", p.Skills[0].Category)
	assert.Equal(t, "u1", p.Skills[0].UserID)
}

func TestUpdateForeignRowChangesNothing(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()
	require.NoError(t, store.InsertSkill(ctx, SkillRow{ID: "s1", UserID: "u2", Name: "go"}))

	_, err := svc.Update(ctx, "u1", Patch{
		Skills: []SkillRow{{Name: "rust"}, {ID: "s1", Name: "stolen"}},
	})
	require.ErrorIs(t, err, ErrNotFound)

	mine, _ := store.Load(ctx, "u1")
	assert.Empty(t, mine.Skills, "the new row is not written when an edit fails")
	theirs, _ := store.Load(ctx, "u2")
	assert.Equal(t, "go", theirs.Skills[0].Name)
}

func TestUpdateEmptyPatch(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Update(context.Background(), "u1", Patch{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
