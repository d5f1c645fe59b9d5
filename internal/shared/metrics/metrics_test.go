package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestRenderIncludesOutcomes(t *testing.T) {
	before := ExtractionCount("basic-fallback")
	IncExtraction("basic-fallback")
	if got := ExtractionCount("basic-fallback"); got != before+1 {
		t.Fatalf("expected %d, got %d", before+1, got)
	}

	out := Render()
	if !strings.Contains(out, `resume_extractions_total{outcome="basic-fallback"}`) {
		t.Fatalf("missing outcome line:\n%s", out)
	}
}

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.counts[0] != 1 || snap.counts[1] != 1 || snap.count != 3 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	ObserveLLM(20 * time.Millisecond)
	if !strings.Contains(Render(), "llm_extraction_duration_ms_count") {
		t.Fatalf("missing histogram")
	}
}
