// Package vertex calls Gemini models through the Vertex AI REST API.
package vertex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"careergenie-backend/internal/llm"
	"careergenie-backend/internal/shared/telemetry"
)

// TokenProvider supplies the bearer credential for each call.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// Options configures a Client.
type Options struct {
	Project  string
	Region   string
	Model    string
	Timeout  time.Duration
	Tokens   TokenProvider
	Endpoint string
}

// Client implements llm.Generator against :generateContent.
type Client struct {
	url        string
	model      string
	tokens     TokenProvider
	httpClient *http.Client
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for vertex")
	}
	if opts.Tokens == nil {
		return nil, fmt.Errorf("vertex token provider is required")
	}
	url := opts.Endpoint
	if url == "" {
		if strings.TrimSpace(opts.Project) == "" {
			return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for vertex")
		}
		region := opts.Region
		if region == "" {
			region = "us-central1"
		}
		url = fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
			region, opts.Project, region, opts.Model)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		url:        url,
		model:      opts.Model,
		tokens:     opts.Tokens,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int32   `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (c *Client) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	reqBody := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxOutputTokens,
		},
	}
	if opts.JSON {
		reqBody.GenerationConfig.ResponseMIMEType = "application/json"
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("vertex request timeout: %w", err)
		}
		return "", fmt.Errorf("vertex request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("vertex read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			if inv, ok := c.tokens.(interface{ Invalidate() }); ok {
				inv.Invalidate()
			}
		}
		return "", fmt.Errorf("vertex status %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("vertex response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("vertex error: %s (%s)", parsed.Error.Message, parsed.Error.Status)
	}
	if parsed.PromptFeedback != nil && parsed.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("vertex prompt blocked: %s", parsed.PromptFeedback.BlockReason)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("vertex response missing candidates")
	}
	cand := parsed.Candidates[0]
	if cand.FinishReason == "SAFETY" {
		return "", fmt.Errorf("vertex response blocked by safety filters")
	}
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("vertex response empty content")
	}

	fields := map[string]any{
		"model":       c.model,
		"duration_ms": time.Since(start).Milliseconds(),
		"finish":      cand.FinishReason,
	}
	if u := parsed.UsageMetadata; u != nil {
		fields["prompt_tokens"] = u.PromptTokenCount
		fields["completion_tokens"] = u.CandidatesTokenCount
		fields["total_tokens"] = u.TotalTokenCount
	}
	telemetry.Info("llm.response", fields)
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ llm.Generator = (*Client)(nil)
