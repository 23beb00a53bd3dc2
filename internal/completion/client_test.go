package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"text":              "Paris.",
			"latency_ms":        412,
			"tokens_per_second": 38.2,
			"total_tokens":      12,
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	resp, err := c.Generate(context.Background(), &GenerateRequest{
		ModelID: "llama3",
		Prompt:  "capital of france?",
		Options: map[string]any{"max_tokens": 64, "temperature": 0.2},
	})
	require.NoError(t, err)

	assert.Equal(t, "Paris.", resp.Text)
	assert.Equal(t, int64(412), resp.LatencyMs)
	assert.InDelta(t, 38.2, resp.TokensPerSecond, 0.0001)
	assert.Equal(t, 12, resp.TotalTokens)

	assert.Equal(t, "llama3", gotBody["model"])
	assert.Equal(t, "capital of france?", gotBody["prompt"])
	assert.Equal(t, false, gotBody["stream"])
	assert.EqualValues(t, 64, gotBody["max_tokens"])
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model not loaded"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	_, err := c.Generate(context.Background(), &GenerateRequest{ModelID: "ghost", Prompt: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestGenerateRejectsUnknownOptions(t *testing.T) {
	c := NewHTTPClient("http://unused", time.Second)
	_, err := c.Generate(context.Background(), &GenerateRequest{
		ModelID: "llama3",
		Prompt:  "hi",
		Options: map[string]any{"max_tokenz": 10},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid generation options")
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/models/scan", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "llama3", "size": 4_200_000_000},
				{"name": "mistral"},
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	names, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3", "mistral"}, names)
}

func TestGenerateHonorsContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	_, err := c.Generate(ctx, &GenerateRequest{ModelID: "llama3", Prompt: "hi"})
	require.Error(t, err)
}

func TestDecodeOptions(t *testing.T) {
	opts, err := DecodeOptions(map[string]any{
		"max_tokens":  128,
		"temperature": 0.7,
		"top_p":       0.9,
	})
	require.NoError(t, err)
	assert.Equal(t, 128, opts.MaxTokens)
	assert.InDelta(t, 0.7, opts.Temperature, 0.0001)
	assert.InDelta(t, 0.9, opts.TopP, 0.0001)

	opts, err = DecodeOptions(nil)
	require.NoError(t, err)
	assert.Zero(t, opts.MaxTokens)
}

func TestScriptedClient(t *testing.T) {
	c := NewScriptedClient().
		Script("a", ScriptedResponse{Text: "answer a", TokensPerSecond: 10}).
		Script("b", ScriptedResponse{Err: "boom"})

	resp, err := c.Generate(context.Background(), &GenerateRequest{ModelID: "a"})
	require.NoError(t, err)
	assert.Equal(t, "answer a", resp.Text)

	_, err = c.Generate(context.Background(), &GenerateRequest{ModelID: "b"})
	require.EqualError(t, err, "boom")

	_, err = c.Generate(context.Background(), &GenerateRequest{ModelID: "c"})
	require.Error(t, err)

	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, models)
	assert.Equal(t, []string{"a", "b", "c"}, c.Calls())
}
