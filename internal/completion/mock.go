package completion

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ScriptedResponse is one canned answer for the ScriptedClient.
type ScriptedResponse struct {
	Text            string
	TokensPerSecond float64
	TotalTokens     int
	// Delay is how long the call blocks before returning, simulating
	// generation time. Cancellation is honored during the delay.
	Delay time.Duration
	// Err, when non-empty, makes the call fail with this message.
	Err string
}

// ScriptedClient is a Client that returns pre-scripted responses per model.
// Used in tests and for offline demos.
type ScriptedClient struct {
	mu        sync.Mutex
	responses map[string]ScriptedResponse
	models    []string
	calls     []string
}

// NewScriptedClient creates a client with no scripted responses; calls for
// unscripted models fail.
func NewScriptedClient() *ScriptedClient {
	return &ScriptedClient{responses: map[string]ScriptedResponse{}}
}

// Script sets the canned response for a model.
func (c *ScriptedClient) Script(modelID string, resp ScriptedResponse) *ScriptedClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[modelID] = resp
	c.models = append(c.models, modelID)
	return c
}

// Calls returns the model ids passed to Generate, in call order.
func (c *ScriptedClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *ScriptedClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	c.mu.Lock()
	c.calls = append(c.calls, req.ModelID)
	resp, ok := c.responses[req.ModelID]
	c.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no scripted response for model %q", req.ModelID)
	}

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if resp.Err != "" {
		return nil, fmt.Errorf("%s", resp.Err)
	}

	return &GenerateResponse{
		Text:            resp.Text,
		TokensPerSecond: resp.TokensPerSecond,
		TotalTokens:     resp.TotalTokens,
	}, nil
}

func (c *ScriptedClient) ListModels(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.models...), nil
}
