package resumes

import "context"

const (
	DefaultListLimit = 10
	MaxListLimit     = 50
)

// ResumesRepo defines persistence operations for resumes.
type ResumesRepo interface {
	Create(ctx context.Context, r Resume) error
	// GetByID returns the record regardless of owner; callers enforce ownership.
	GetByID(ctx context.Context, id string) (Resume, error)
	LatestByUser(ctx context.Context, userID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Resume, error)
	Delete(ctx context.Context, id string) error
}

// ClampLimit applies the list default and ceiling.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
