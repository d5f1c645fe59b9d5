package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"careergenie-backend/internal/resume"
	"careergenie-backend/internal/shared/telemetry"
)

// Extractor turns resume text into a structured record.
type Extractor interface {
	ExtractResume(ctx context.Context, text string) (resume.Structured, error)
}

// ResumeExtractor asks a Generator for the extraction JSON and decodes it.
type ResumeExtractor struct {
	Gen  Generator
	Opts GenerateOptions
}

// DefaultExtractOptions favors deterministic output.
var DefaultExtractOptions = GenerateOptions{Temperature: 0.3, MaxOutputTokens: 2048, JSON: true}

func NewResumeExtractor(gen Generator, opts GenerateOptions) *ResumeExtractor {
	if opts.MaxOutputTokens <= 0 {
		opts = DefaultExtractOptions
	}
	opts.JSON = true
	return &ResumeExtractor{Gen: gen, Opts: opts}
}

// ExtractResume returns an *ExtractionError for every failure.
func (e *ResumeExtractor) ExtractResume(ctx context.Context, text string) (resume.Structured, error) {
	if e == nil || e.Gen == nil {
		return resume.Structured{}, &ExtractionError{Op: "generate", Err: ErrDisabled}
	}
	raw, err := e.Gen.Generate(ctx, BuildResumePrompt(text), e.Opts)
	if err != nil {
		return resume.Structured{}, &ExtractionError{Op: "generate", Err: err}
	}
	out, err := DecodeExtraction(raw)
	if err != nil {
		telemetry.Warn("llm.extract.invalid", map[string]any{"err": err, "reply_len": len(raw)})
		return resume.Structured{}, &ExtractionError{Op: "decode", Err: err}
	}
	return out, nil
}

type extractionDoc struct {
	PersonalInfo   resume.PersonalInfo `json:"personalInfo"`
	Summary        string              `json:"summary"`
	Skills         resume.Skills       `json:"skills"`
	Experience     []resume.Experience `json:"experience"`
	Education      []educationDoc      `json:"education"`
	Certifications []string            `json:"certifications"`
	Achievements   []string            `json:"achievements"`
	Projects       []resume.Project    `json:"projects"`
}

type educationDoc struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution"`
	Year        flexString `json:"year"`
	GPA         flexString `json:"gpa"`
	Details     string     `json:"details"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// DecodeExtraction strictly parses and validates a model reply.
func DecodeExtraction(raw string) (resume.Structured, error) {
	doc := StripFences(raw)
	if doc == "" {
		return resume.Structured{}, errors.New("empty reply")
	}
	if !json.Valid([]byte(doc)) {
		return resume.Structured{}, fmt.Errorf("invalid JSON: %.80q", doc)
	}
	if err := validateExtraction(doc); err != nil {
		return resume.Structured{}, err
	}

	var parsed extractionDoc
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return resume.Structured{}, fmt.Errorf("decode: %w", err)
	}

	out := resume.Structured{
		PersonalInfo:   parsed.PersonalInfo,
		Summary:        parsed.Summary,
		Skills:         parsed.Skills,
		Experience:     parsed.Experience,
		Certifications: parsed.Certifications,
		Achievements:   parsed.Achievements,
		Projects:       parsed.Projects,
	}
	for _, e := range parsed.Education {
		out.Education = append(out.Education, resume.Education{
			Degree:      e.Degree,
			Institution: e.Institution,
			Year:        string(e.Year),
			GPA:         string(e.GPA),
			Details:     e.Details,
		})
	}
	return out, nil
}
