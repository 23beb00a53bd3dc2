// Package completion talks to the snapllm inference server. The arena core
// treats it as an external collaborator: one generate call per model per
// round, no retries, an error marks the result as failed.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Client is the interface to the completion service.
type Client interface {
	// Generate produces a completion for one model. It must honor ctx
	// cancellation; the caller measures wall-clock latency around the call.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// ListModels returns the model ids available on the server.
	ListModels(ctx context.Context) ([]string, error)
}

// GenerateRequest carries one prompt to one model.
type GenerateRequest struct {
	ModelID string
	Prompt  string
	// Options holds free-form generation tuning (max_tokens, temperature,
	// top_p) as loaded from config.
	Options map[string]any
}

// GenerateResponse is the server's answer for one model.
type GenerateResponse struct {
	Text            string  `json:"text"`
	LatencyMs       int64   `json:"latency_ms"`
	TokensPerSecond float64 `json:"tokens_per_second"`
	TotalTokens     int     `json:"total_tokens"`
}

// GenerateOptions is the typed shape of GenerateRequest.Options.
type GenerateOptions struct {
	MaxTokens   int     `mapstructure:"max_tokens" json:"max_tokens,omitempty"`
	Temperature float64 `mapstructure:"temperature" json:"temperature,omitempty"`
	TopP        float64 `mapstructure:"top_p" json:"top_p,omitempty"`
}

// DecodeOptions converts a free-form options map into typed options,
// rejecting unknown keys so config typos fail loudly.
func DecodeOptions(raw map[string]any) (*GenerateOptions, error) {
	var opts GenerateOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid generation options: %w", err)
	}
	return &opts, nil
}

// HTTPClient is the production Client backed by a snapllm server.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient creates a client for the server at baseURL. timeout bounds
// each individual generate call.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// Generate calls POST /api/v1/generate with a non-streaming request.
func (c *HTTPClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	opts, err := DecodeOptions(req.Options)
	if err != nil {
		return nil, err
	}

	body := struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
		Stream bool   `json:"stream"`
		*GenerateOptions
	}{
		Model:           req.ModelID,
		Prompt:          req.Prompt,
		GenerateOptions: opts,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generate failed for %s: %s: %s",
			req.ModelID, resp.Status, readErrorMessage(resp.Body))
	}

	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding generate response: %w", err)
	}
	return &out, nil
}

// ListModels calls GET /api/v1/models/scan.
func (c *HTTPClient) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/models/scan", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing models: %s", resp.Status)
	}

	var payload struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding models response: %w", err)
	}

	names := make([]string, 0, len(payload.Models))
	for _, m := range payload.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// readErrorMessage pulls a human-readable message out of an error body,
// falling back to the raw body.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "(no body)"
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return string(data)
}
