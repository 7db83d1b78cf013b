package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emailtriage/internal/llm"
	"emailtriage/pkg/circuitbreaker"
)

func TestChatReturnsAssistantContent(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"category\":\"Produtivo\"}"}}]}`))
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient("sk-test", srv.URL, time.Second)

	content, err := client.Chat(context.Background(), llm.Request{
		Model:       "gpt-4o-mini",
		Messages:    []llm.Message{{Role: "user", Content: "classifique"}},
		Temperature: 0.1,
		MaxTokens:   400,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"category":"Produtivo"}`, content)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.EqualValues(t, 400, gotBody["max_tokens"])
}

func TestChatErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: 500, body: `{}`},
		{name: "rate limit", status: 429, body: `{"error":{"message":"rate limited"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := llm.NewOpenAIClient("sk-test", srv.URL, time.Second)
			_, err := client.Chat(context.Background(), llm.Request{Model: "m"})
			assert.Error(t, err)
		})
	}
}

func TestChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient("sk-test", srv.URL, time.Second)
	_, err := client.Chat(context.Background(), llm.Request{Model: "m"})
	assert.Error(t, err)
}

func TestChatBreakerOpensAfterRepeatedFailures(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient("sk-test", srv.URL, time.Second)

	failures := circuitbreaker.DefaultConfig().FailureThreshold
	for i := 0; i < failures; i++ {
		_, err := client.Chat(context.Background(), llm.Request{Model: "m"})
		assert.Error(t, err)
	}
	assert.Equal(t, failures, hits)

	// breaker open: fails fast without reaching the server
	_, err := client.Chat(context.Background(), llm.Request{Model: "m"})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitBreakerOpen)
	assert.Equal(t, failures, hits)
}
