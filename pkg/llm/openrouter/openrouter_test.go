package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-insights-be/pkg/llm"
)

func TestChatSendsOpenAIDialect(t *testing.T) {
	var got chatCompletionRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"model": got.Model,
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "analysis text"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "sk-test", "anthropic/claude-3.5-sonnet")
	out, err := p.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hello"}},
		llm.WithTemperature(0.3), llm.WithMaxTokens(1024))

	require.NoError(t, err)
	assert.Equal(t, "analysis text", out)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "anthropic/claude-3.5-sonnet", got.Model)
	assert.Equal(t, 1024, got.MaxTokens)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestChatModelOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "openai/gpt-4-turbo", req.Model)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "ok"}}},
		})
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "sk-test", "anthropic/claude-3.5-sonnet")
	_, err := p.Generate(context.Background(), "hi", llm.WithModel("openai/gpt-4-turbo"))
	require.NoError(t, err)
}

func TestChatSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited", "code": 429},
		})
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "sk-test", "m")
	_, err := p.Generate(context.Background(), "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestChatRejectsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "sk-test", "m")
	_, err := p.Generate(context.Background(), "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
