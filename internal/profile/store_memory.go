package profile

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	mu      sync.RWMutex
	profile map[string]*Profile
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profile: make(map[string]*Profile)}
}

func (s *MemoryStore) get(userID string) *Profile {
	p, ok := s.profile[userID]
	if !ok {
		p = &Profile{}
		s.profile[userID] = p
	}
	return p
}

func (s *MemoryStore) InsertEducation(ctx context.Context, row EducationRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.get(row.UserID)
	p.Education = append(p.Education, row)
	return nil
}

func (s *MemoryStore) InsertExperience(ctx context.Context, row ExperienceRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.get(row.UserID)
	p.Experience = append(p.Experience, row)
	return nil
}

func (s *MemoryStore) InsertSkill(ctx context.Context, row SkillRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.get(row.UserID)
	p.Skills = append(p.Skills, row)
	return nil
}

// Apply checks every edit before writing anything.
func (s *MemoryStore) Apply(ctx context.Context, userID string, ch Changes) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.get(userID)

	eduIdx := make(map[string]int, len(p.Education))
	for i, r := range p.Education {
		eduIdx[r.ID] = i
	}
	expIdx := make(map[string]int, len(p.Experience))
	for i, r := range p.Experience {
		expIdx[r.ID] = i
	}
	skillIdx := make(map[string]int, len(p.Skills))
	for i, r := range p.Skills {
		skillIdx[r.ID] = i
	}
	for _, r := range ch.EditEducation {
		if _, ok := eduIdx[r.ID]; !ok {
			return ErrNotFound
		}
	}
	for _, r := range ch.EditExperience {
		if _, ok := expIdx[r.ID]; !ok {
			return ErrNotFound
		}
	}
	for _, r := range ch.EditSkills {
		if _, ok := skillIdx[r.ID]; !ok {
			return ErrNotFound
		}
	}

	for _, r := range ch.EditEducation {
		cur := &p.Education[eduIdx[r.ID]]
		cur.Degree, cur.Institution, cur.Year, cur.GPA, cur.Details = r.Degree, r.Institution, r.Year, r.GPA, r.Details
	}
	for _, r := range ch.EditExperience {
		cur := &p.Experience[expIdx[r.ID]]
		cur.Title, cur.Company, cur.Duration, cur.Description = r.Title, r.Company, r.Duration, r.Description
		cur.Responsibilities = r.Responsibilities
	}
	for _, r := range ch.EditSkills {
		cur := &p.Skills[skillIdx[r.ID]]
		cur.Name, cur.Category = r.Name, r.Category
	}
	p.Education = append(p.Education, ch.NewEducation...)
	p.Experience = append(p.Experience, ch.NewExperience...)
	p.Skills = append(p.Skills, ch.NewSkills...)
	return nil
}

// Load returns copies of the user's rows.
func (s *MemoryStore) Load(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Profile{
		Education:  []EducationRow{},
		Experience: []ExperienceRow{},
		Skills:     []SkillRow{},
	}
	if p, ok := s.profile[userID]; ok {
		out.Education = append(out.Education, p.Education...)
		out.Experience = append(out.Experience, p.Experience...)
		out.Skills = append(out.Skills, p.Skills...)
	}
	return out, nil
}
