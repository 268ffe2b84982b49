package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// GenerationErrorCause identifies why a text-generation call failed. Every
// cause maps to the same fallback path in the generator; the distinction
// exists for logging and tests.
type GenerationErrorCause string

const (
	GenerationTimeout   GenerationErrorCause = "timeout"
	GenerationNetwork   GenerationErrorCause = "network"
	GenerationBadStatus GenerationErrorCause = "bad_status"
	GenerationMalformed GenerationErrorCause = "malformed_response"
)

// GenerationError wraps a failed call to the text-generation service.
type GenerationError struct {
	Cause GenerationErrorCause
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("text generation failed (%s): %v", e.Cause, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// OllamaOptions configures the text-generation client.
type OllamaOptions struct {
	URL         string
	Model       string
	Timeout     time.Duration
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// OllamaClient calls a local Ollama /api/generate endpoint. The service is
// treated as untrusted and unreliable; callers must route every returned
// error through the fallback path.
type OllamaClient struct {
	options    OllamaOptions
	httpClient *http.Client
}

func NewOllamaClient(options OllamaOptions) *OllamaClient {
	if options.Timeout <= 0 {
		options.Timeout = 30 * time.Second
	}
	return &OllamaClient{
		options:    options,
		httpClient: &http.Client{Timeout: options.Timeout},
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate submits prompt to the generation service and returns the raw
// generated text. All failures come back as *GenerationError.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(ollamaRequest{
		Model:  c.options.Model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: c.options.Temperature,
			TopP:        c.options.TopP,
			MaxTokens:   c.options.MaxTokens,
		},
	})
	if err != nil {
		return "", &GenerationError{Cause: GenerationMalformed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.options.URL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", &GenerationError{Cause: GenerationNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Cause: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &GenerationError{
			Cause: GenerationBadStatus,
			Err:   fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var decoded ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &GenerationError{Cause: GenerationMalformed, Err: err}
	}
	return decoded.Response, nil
}

func classifyTransportError(err error) GenerationErrorCause {
	if errors.Is(err, context.DeadlineExceeded) {
		return GenerationTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return GenerationTimeout
	}
	return GenerationNetwork
}
