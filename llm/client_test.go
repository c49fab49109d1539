package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm"
	_ "github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm/providers"
)

// chatCompletion wraps text in the OpenAI-compatible response envelope.
func chatCompletion(text string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": text}},
		},
	}
}

func newOpenRouterClient(t *testing.T, handler http.HandlerFunc) *llm.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return llm.NewClient(map[string]llm.Endpoint{
		"openrouter": {URL: srv.URL, APIKey: "test-key"},
	})
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	client := newOpenRouterClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(chatCompletion(`{"answer": 42}`))
	})

	text, err := client.Complete(context.Background(), llm.Request{
		Provider: "openrouter",
		Model:    "google/gemini-2.0-flash-001",
		System:   "You are ArguMate.",
		Prompt:   "Analyze this FIR.",
		WantJSON: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"answer": 42}`, text)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "google/gemini-2.0-flash-001", gotBody["model"])
	rf, ok := gotBody["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", rf["type"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first, _ := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
}

func TestCompleteEmptyPromptIsConfigurationError(t *testing.T) {
	client := llm.NewClient(map[string]llm.Endpoint{})

	_, err := client.Complete(context.Background(), llm.Request{Provider: "openrouter"})
	require.Error(t, err)
	assert.True(t, llm.IsConfiguration(err))
}

func TestCompleteUnknownProviderIsConfigurationError(t *testing.T) {
	client := llm.NewClient(map[string]llm.Endpoint{})

	_, err := client.Complete(context.Background(), llm.Request{
		Provider: "anthropic",
		Prompt:   "hello",
	})
	require.Error(t, err)
	assert.True(t, llm.IsConfiguration(err))
}

func TestCompleteMissingAPIKeyFailsBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	client := llm.NewClient(map[string]llm.Endpoint{
		"openrouter": {URL: srv.URL},
	})

	_, err := client.Complete(context.Background(), llm.Request{
		Provider: "openrouter",
		Prompt:   "hello",
	})
	require.Error(t, err)
	assert.True(t, llm.IsConfiguration(err))
	assert.False(t, called, "no network call without a credential")
}

func TestCompleteUpstreamErrorIsTransportError(t *testing.T) {
	client := newOpenRouterClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})

	_, err := client.Complete(context.Background(), llm.Request{
		Provider: "openrouter",
		Prompt:   "hello",
	})
	require.Error(t, err)
	assert.True(t, llm.IsTransport(err))

	var te *llm.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusServiceUnavailable, te.Status)
}

func TestCompleteConnectionRefusedIsTransportError(t *testing.T) {
	client := llm.NewClient(map[string]llm.Endpoint{
		"openrouter": {URL: "http://127.0.0.1:1", APIKey: "k"},
	})

	_, err := client.Complete(context.Background(), llm.Request{
		Provider: "openrouter",
		Prompt:   "hello",
	})
	require.Error(t, err)
	assert.True(t, llm.IsTransport(err))

	var te *llm.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.Status)
}

func TestCompleteNoChoicesIsEmptyResponse(t *testing.T) {
	client := newOpenRouterClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := client.Complete(context.Background(), llm.Request{
		Provider: "openrouter",
		Prompt:   "hello",
	})
	require.Error(t, err)
	assert.True(t, llm.IsEmptyResponse(err))
}

func TestCompleteGeminiDialect(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": `{"overall_`}, {"text": `score": 7}`},
				}}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	client := llm.NewClient(map[string]llm.Endpoint{
		"gemini": {URL: srv.URL, APIKey: "gem-key"},
	})

	text, err := client.Complete(context.Background(), llm.Request{
		Provider: "gemini",
		Model:    "gemini-1.5-flash-latest",
		Prompt:   "Validate this draft.",
		WantJSON: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"overall_score": 7}`, text, "candidate parts are joined")

	assert.Equal(t, "/models/gemini-1.5-flash-latest:generateContent", gotPath)
	assert.Equal(t, "gem-key", gotKey)

	gc, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", gc["responseMimeType"])
}

func TestProviderRegistryListsBothDialects(t *testing.T) {
	names := llm.ListProviders()
	assert.Contains(t, names, "openrouter")
	assert.Contains(t, names, "gemini")
	assert.Nil(t, llm.GetProvider("no-such-provider"))
}
