// Package extraction runs decode, LLM extraction and the heuristic fallback
// for one uploaded resume.
package extraction

import (
	"context"
	"strings"
	"time"

	"careergenie-backend/internal/extract"
	"careergenie-backend/internal/llm"
	"careergenie-backend/internal/parser"
	"careergenie-backend/internal/resume"
	"careergenie-backend/internal/shared/metrics"
	"careergenie-backend/internal/shared/telemetry"
)

// Policy decides what happens when the LLM path fails.
type Policy struct {
	UseLLM bool
	// Strict turns an LLM failure into a request failure instead of a fallback.
	Strict bool
}

// Pipeline has no side effects beyond logging and metrics.
type Pipeline struct {
	LLM    llm.Extractor
	Policy Policy
	Now    func() time.Time
}

// Run decodes data and extracts a structured resume. Decode failures are
// always returned; LLM failures are returned only under a strict policy.
// Text that decodes to whitespace yields an empty basic-fallback record.
func (p *Pipeline) Run(ctx context.Context, data []byte, fileName string) (resume.Structured, error) {
	text, err := extract.Text(ctx, data, fileName)
	if err != nil {
		metrics.IncExtraction("decode_error")
		return resume.Structured{}, err
	}
	out, err := p.extract(ctx, text)
	if err != nil {
		return resume.Structured{}, err
	}
	out.RawText = text
	out.ParsedAt = p.now().UTC()
	out.Normalize()
	return out, nil
}

func (p *Pipeline) extract(ctx context.Context, text string) (resume.Structured, error) {
	// Blank documents go straight to the heuristics, which return empty fields.
	if p.Policy.UseLLM && p.LLM != nil && strings.TrimSpace(text) != "" {
		start := p.now()
		out, err := p.LLM.ExtractResume(ctx, text)
		metrics.ObserveLLM(p.now().Sub(start))
		if err == nil {
			metrics.IncExtraction(string(resume.MethodLLM))
			out.StampLLM()
			return out, nil
		}
		if p.Policy.Strict {
			metrics.IncExtraction("llm_error")
			telemetry.Error("extraction.llm_failed", map[string]any{"err": err, "strict": true})
			return resume.Structured{}, err
		}
		telemetry.Warn("extraction.fallback", map[string]any{"err": err})
	}

	out := parser.Parse(text)
	out.StampFallback()
	metrics.IncExtraction(string(resume.MethodFallback))
	return out, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
