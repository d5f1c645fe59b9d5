package profile

import "context"

// Store persists profile rows.
type Store interface {
	InsertEducation(ctx context.Context, row EducationRow) error
	InsertExperience(ctx context.Context, row ExperienceRow) error
	InsertSkill(ctx context.Context, row SkillRow) error
	// Apply writes every change or none. An edit that matches no row owned
	// by userID fails with ErrNotFound.
	Apply(ctx context.Context, userID string, ch Changes) error
	Load(ctx context.Context, userID string) (Profile, error)
}
