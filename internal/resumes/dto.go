package resumes

import (
	"time"

	"careergenie-backend/internal/resume"
)

type resumeResponse struct {
	ID         string             `json:"id"`
	FileName   string             `json:"fileName"`
	ParsedData *resume.Structured `json:"parsedData,omitempty"`
	Metadata   Metadata           `json:"metadata"`
	UploadedAt string             `json:"uploadedAt"`
	Status     string             `json:"status,omitempty"`
}

type uploadResponse struct {
	FileID     string `json:"fileId"`
	FileName   string `json:"fileName"`
	UploadedAt string `json:"uploadedAt"`
}

type listResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []resumeResponse `json:"data"`
	Count   int              `json:"count"`
}

// toResponse renders a stored resume. Status is only part of the read views.
func toResponse(r Resume, withParsed, withStatus bool) resumeResponse {
	out := resumeResponse{
		ID:         r.ID,
		FileName:   r.FileName,
		Metadata:   r.Meta(),
		UploadedAt: r.UploadedAt.UTC().Format(time.RFC3339),
	}
	if withStatus {
		out.Status = r.Status
	}
	if withParsed {
		parsed := r.ParsedData
		parsed.Normalize()
		out.ParsedData = &parsed
	}
	return out
}

// toParseResponse is the POST /resume/parse body: parsed data plus the
// profile sync outcome, no status.
func toParseResponse(res ParseResult) resumeResponse {
	out := toResponse(res.Resume, true, false)
	sync := res.ProfileSync
	out.Metadata.ProfileSync = &sync
	return out
}
