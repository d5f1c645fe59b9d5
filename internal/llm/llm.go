// Package llm wraps generative model providers behind a small interface and
// turns model replies into structured resumes.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Generator sends one prompt to a model and returns its text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerateOptions bounds a single call.
type GenerateOptions struct {
	Temperature     float32
	MaxOutputTokens int32
	// JSON asks the provider for an application/json reply.
	JSON bool
}

var (
	// ErrDisabled is returned when no provider is configured.
	ErrDisabled = errors.New("llm provider disabled")
	// ErrExtraction marks any failed LLM resume extraction.
	ErrExtraction = errors.New("llm extraction failed")
)

// ExtractionError carries the step that failed and its cause.
type ExtractionError struct {
	Op  string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("llm extraction %s: %v", e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// Disabled is the Generator used when LLM_PROVIDER=none.
type Disabled struct{}

func (Disabled) Generate(context.Context, string, GenerateOptions) (string, error) {
	return "", ErrDisabled
}
