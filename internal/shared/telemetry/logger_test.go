package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func TestInfoWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "test", false)
	defer SetOutput(os.Stdout, "careergenie-api", false)

	Info("resume.parsed", map[string]any{"method": "basic-fallback", "err": errors.New("boom")})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid json line: %v (%s)", err, buf.String())
	}
	if line["message"] != "resume.parsed" || line["level"] != "info" {
		t.Fatalf("unexpected line: %v", line)
	}
	if line["method"] != "basic-fallback" || line["err"] != "boom" {
		t.Fatalf("fields not written: %v", line)
	}
	if line["service"] != "test" {
		t.Fatalf("missing service: %v", line)
	}
}
