package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"careergenie-backend/internal/extract"
	"careergenie-backend/internal/profile"
	"careergenie-backend/internal/resume"
	"careergenie-backend/internal/shared/storage/object"
	"careergenie-backend/internal/shared/telemetry"
)

// Extractor turns an uploaded file into a structured record.
type Extractor interface {
	Run(ctx context.Context, data []byte, fileName string) (resume.Structured, error)
}

// Mirrorer copies a parsed record into profile rows.
type Mirrorer interface {
	Mirror(ctx context.Context, userID, resumeID string, data resume.Structured) profile.Outcome
}

// Service contains business logic for resumes.
type Service struct {
	Extractor Extractor
	Store     object.ObjectStore
	Repo      ResumesRepo
	Profile   Mirrorer
	Now       func() time.Time
	NewID     func() string
}

// ParseResult is a stored resume plus the profile mirror outcome.
type ParseResult struct {
	Resume      Resume
	ProfileSync profile.Outcome
}

// Parse extracts, stores the blob, records the resume and mirrors the profile.
// Extraction errors are returned unchanged and nothing is persisted.
func (s *Service) Parse(ctx context.Context, userID, fileName string, data []byte) (ParseResult, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(fileName) == "" {
		return ParseResult{}, ErrInvalidInput
	}
	parsed, err := s.Extractor.Run(ctx, data, fileName)
	if err != nil {
		return ParseResult{}, err
	}

	res := Resume{
		ID:               s.newID(),
		UserID:           userID,
		FileName:         fileName,
		ContentType:      extract.ContentType(fileName),
		FileSize:         int64(len(data)),
		ParsedData:       parsed,
		ProcessingMethod: parsed.ProcessingMethod,
		Confidence:       parsed.Confidence,
		Status:           StatusProcessed,
		UploadedAt:       s.now(),
	}

	key, err := object.ResumeKey(userID, res.ID, fileName)
	if err != nil {
		return ParseResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.Store.Put(ctx, key, res.ContentType, bytes.NewReader(data)); err != nil {
		return ParseResult{}, &PersistenceError{Op: "store blob", Err: err}
	}
	res.StorageKey = key

	if err := s.Repo.Create(ctx, res); err != nil {
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			telemetry.Warn("resume.blob_cleanup_failed", map[string]any{
				"resume_id": res.ID,
				"error":     delErr,
			})
		}
		return ParseResult{}, &PersistenceError{Op: "create record", Err: err}
	}

	out := ParseResult{Resume: res}
	if s.Profile != nil {
		out.ProfileSync = s.Profile.Mirror(ctx, userID, res.ID, parsed)
	}

	telemetry.Info("resume.parsed", map[string]any{
		"resume_id":         res.ID,
		"processing_method": string(res.ProcessingMethod),
		"file_size":         res.FileSize,
		"profile_written":   out.ProfileSync.Written,
		"profile_failed":    out.ProfileSync.Failed,
	})
	return out, nil
}

// Upload stores the file without parsing it.
func (s *Service) Upload(ctx context.Context, userID, fileName string, data []byte) (Upload, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(fileName) == "" || len(data) == 0 {
		return Upload{}, ErrInvalidInput
	}
	up := Upload{FileID: s.newID(), FileName: fileName, UploadedAt: s.now()}
	key, err := object.ResumeKey(userID, up.FileID, fileName)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.Store.Put(ctx, key, extract.ContentType(fileName), bytes.NewReader(data)); err != nil {
		return Upload{}, &PersistenceError{Op: "store blob", Err: err}
	}
	up.StorageKey = key
	return up, nil
}

// Latest returns the newest resume for a user.
func (s *Service) Latest(ctx context.Context, userID string) (Resume, error) {
	if userID == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.LatestByUser(ctx, userID)
}

// List returns up to limit resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Resume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, ClampLimit(limit))
}

// Get returns a resume owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	res, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if res.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return res, nil
}

// Delete removes the record and its blob. Blob failures are logged only.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	res, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if res.StorageKey != "" {
		if err := s.Store.Delete(ctx, res.StorageKey); err != nil && !errors.Is(err, object.ErrNotFound) {
			telemetry.Warn("resume.blob_delete_failed", map[string]any{
				"resume_id": id,
				"error":     err,
			})
		}
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// LatestParsed returns the structured data of the user's newest resume.
func (s *Service) LatestParsed(ctx context.Context, userID string) (resume.Structured, error) {
	res, err := s.Latest(ctx, userID)
	if err != nil {
		return resume.Structured{}, err
	}
	return res.ParsedData, nil
}

// ListResumes summarizes the user's newest resumes for the profile view.
func (s *Service) ListResumes(ctx context.Context, userID string) ([]profile.ResumeSummary, error) {
	list, err := s.List(ctx, userID, MaxListLimit)
	if err != nil {
		return nil, err
	}
	out := make([]profile.ResumeSummary, 0, len(list))
	for _, r := range list {
		out = append(out, profile.ResumeSummary{
			ID:               r.ID,
			FileName:         r.FileName,
			ProcessingMethod: string(r.ProcessingMethod),
			UploadedAt:       r.UploadedAt,
		})
	}
	return out, nil
}
