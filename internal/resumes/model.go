package resumes

import (
	"time"

	"careergenie-backend/internal/profile"
	"careergenie-backend/internal/resume"
)

const (
	StatusProcessed = "processed"
)

// Resume is one stored upload and its extraction result.
type Resume struct {
	ID               string
	UserID           string
	FileName         string
	StorageKey       string
	ContentType      string
	FileSize         int64
	ParsedData       resume.Structured
	ProcessingMethod resume.Method
	Confidence       float64
	Status           string
	UploadedAt       time.Time
}

// Metadata is the client-facing summary of how a resume was processed.
type Metadata struct {
	FileSize         int64            `json:"fileSize"`
	ContentType      string           `json:"contentType"`
	ProcessingMethod resume.Method    `json:"processingMethod"`
	Confidence       float64          `json:"confidence"`
	ProfileSync      *profile.Outcome `json:"profileSync,omitempty"`
}

// Meta builds the metadata view of r.
func (r Resume) Meta() Metadata {
	return Metadata{
		FileSize:         r.FileSize,
		ContentType:      r.ContentType,
		ProcessingMethod: r.ProcessingMethod,
		Confidence:       r.Confidence,
	}
}

// Upload is a blob stored without parsing.
type Upload struct {
	FileID     string
	FileName   string
	StorageKey string
	UploadedAt time.Time
}
