// Package gemini implements llm.Generator with the Google Gen AI SDK.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"careergenie-backend/internal/llm"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps genai's Models service.
type Client struct {
	models contentGenerator
	model  string
}

// Options selects the Gemini API (APIKey) or Vertex AI (Project) backend.
type Options struct {
	APIKey   string
	Project  string
	Location string
	Model    string
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for gemini")
	}
	cfg := &genai.ClientConfig{}
	switch {
	case opts.APIKey != "":
		cfg.APIKey = opts.APIKey
		cfg.Backend = genai.BackendGeminiAPI
	case opts.Project != "":
		cfg.Project = opts.Project
		cfg.Location = opts.Location
		cfg.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("gemini needs an API key or project")
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{models: client.Models, model: opts.Model}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}
	if opts.JSON {
		config.ResponseMIMEType = "application/json"
	}
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini response missing candidates")
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("gemini response blocked by safety filters")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	return text, nil
}

var _ llm.Generator = (*Client)(nil)
