package resumes

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("resume not found")
	ErrForbidden    = errors.New("resume belongs to another user")
	ErrInvalidInput = errors.New("invalid input")
	ErrPersistence  = errors.New("resume persistence failed")
)

// PersistenceError wraps a storage failure that happened after extraction.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist resume: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
