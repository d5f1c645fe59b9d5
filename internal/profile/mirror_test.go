package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careergenie-backend/internal/resume"
)

type flakySkillStore struct {
	*MemoryStore
}

func (f flakySkillStore) InsertSkill(ctx context.Context, row SkillRow) error {
	if row.Name == "sql" {
		return errors.New("constraint violation")
	}
	return f.MemoryStore.InsertSkill(ctx, row)
}

func sample() resume.Structured {
	return resume.Structured{
		Experience: []resume.Experience{{Title: "Engineer", Company: "Acme", Responsibilities: []string{"Built things"}}},
		Education:  []resume.Education{{Degree: "BSc", Institution: "State University", Year: "2019"}},
		Skills:     resume.Skills{Technical: []string{"python", "sql"}, Soft: []string{"communication"}},
	}
}

func TestMirrorWritesAllRows(t *testing.T) {
	store := NewMemoryStore()
	m := NewMirror(store)
	m.Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	out := m.Mirror(context.Background(), "u1", "r1", sample())
	assert.Equal(t, Outcome{Attempted: 5, Written: 5}, out)
	assert.True(t, out.OK())

	p, err := store.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, p.Education, 1)
	require.Len(t, p.Experience, 1)
	require.Len(t, p.Skills, 3)
	assert.Equal(t, "r1", p.Skills[0].ResumeID)
	assert.Equal(t, "soft", p.Skills[2].Category)
}

func TestMirrorCollectsRowFailures(t *testing.T) {
	m := NewMirror(flakySkillStore{NewMemoryStore()})

	out := m.Mirror(context.Background(), "u1", "r1", sample())
	assert.Equal(t, 5, out.Attempted)
	assert.Equal(t, 4, out.Written)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Errs, 1)
	assert.Contains(t, out.Errs[0].Error(), "skill")
	assert.False(t, out.OK())
}

func TestMirrorNilIsNoop(t *testing.T) {
	var m *Mirror
	assert.Equal(t, Outcome{}, m.Mirror(context.Background(), "u1", "r1", sample()))
}

func TestLoadEmptyProfile(t *testing.T) {
	p, err := NewMemoryStore().Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, p.Education)
	assert.NotNil(t, p.Skills)
}
