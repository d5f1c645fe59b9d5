package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"careergenie-backend/internal/shared/util"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore saves, reads and deletes blobs by key.
type ObjectStore interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

// ResumeKey builds resumes/{hashed user}/{resume id}/{file name}.
func ResumeKey(userID, resumeID, fileName string) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	if userID == "" || resumeID == "" {
		return "", errors.New("user and resume id are required")
	}
	return path.Join("resumes", util.HashUserKey(userID), resumeID, name), nil
}
