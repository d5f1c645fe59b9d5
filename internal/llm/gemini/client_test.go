package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	"careergenie-backend/internal/llm"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	config *genai.GenerateContentConfig
	model  string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func TestGeneratePassesOptions(t *testing.T) {
	fake := &fakeModels{resp: textResponse(" OK ")}
	c := &Client{models: fake, model: "gemini-1.5-flash"}

	got, err := c.Generate(context.Background(), "Return the word OK", llm.GenerateOptions{Temperature: 0, MaxOutputTokens: 5, JSON: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "OK" {
		t.Fatalf("unexpected text %q", got)
	}
	if fake.model != "gemini-1.5-flash" || fake.config.MaxOutputTokens != 5 || fake.config.ResponseMIMEType != "application/json" {
		t.Fatalf("unexpected call: model=%s config=%+v", fake.model, fake.config)
	}
}

func TestGenerateErrors(t *testing.T) {
	blocked := textResponse("x")
	blocked.Candidates[0].FinishReason = genai.FinishReasonSafety

	cases := map[string]*fakeModels{
		"provider error": {err: errors.New("quota")},
		"no candidates":  {resp: &genai.GenerateContentResponse{}},
		"blocked":        {resp: blocked},
		"empty":          {resp: textResponse("")},
	}
	for name, fake := range cases {
		c := &Client{models: fake, model: "m"}
		if _, err := c.Generate(context.Background(), "p", llm.GenerateOptions{}); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(context.Background(), Options{Model: "m"}); err == nil {
		t.Fatalf("expected error without key or project")
	}
	if _, err := NewClient(context.Background(), Options{APIKey: "k"}); err == nil {
		t.Fatalf("expected error without model")
	}
}
