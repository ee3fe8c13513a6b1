package openaiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	gptclient "techscreen-backend/lib/gpt/client"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) gptclient.Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)
	return client
}

func TestGenerate(t *testing.T) {
	t.Run(`completion with usage`, func(t *testing.T) {
		var got struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/chat/completions", r.URL.Path)
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":      "chatcmpl-test",
				"object":  "chat.completion",
				"created": 1234567890,
				"model":   "gpt-4o-mini",
				"choices": []map[string]any{
					{
						"index": 0,
						"message": map[string]any{
							"role":    "assistant",
							"content": "Enhanced description",
						},
						"finish_reason": "stop",
					},
				},
				"usage": map[string]any{
					"prompt_tokens":     40,
					"completion_tokens": 25,
					"total_tokens":      65,
				},
			})
		})

		result, err := client.Generate(context.Background(), gptclient.Request{
			System:    "sys",
			User:      "usr",
			MaxTokens: 100,
		})
		require.NoError(t, err)
		require.Equal(t, "Enhanced description", result.Text)
		require.Equal(t, 65, result.Usage.TotalTokens)
		require.Equal(t, "stop", result.StopReason)
		require.Equal(t, "gpt-4o-mini", got.Model)
		require.Len(t, got.Messages, 2)
		require.Equal(t, "system", got.Messages[0].Role)
		require.Equal(t, "usr", got.Messages[1].Content)
	})

	t.Run(`rate limit`, func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "slow down", "type": "rate_limit"},
			})
		})
		_, err := client.Generate(context.Background(), gptclient.Request{User: "x"})
		var rateLimit *gptclient.ErrRateLimit
		require.True(t, errors.As(err, &rateLimit), "got %T", err)
	})

	t.Run(`unauthorized is fatal`, func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "bad key", "type": "invalid_request_error"},
			})
		})
		_, err := client.Generate(context.Background(), gptclient.Request{User: "x"})
		var providerErr *gptclient.ErrProvider
		require.True(t, errors.As(err, &providerErr), "got %T", err)
		require.False(t, providerErr.Retryable)
	})

	t.Run(`empty choices`, func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":      "chatcmpl-test",
				"object":  "chat.completion",
				"model":   "gpt-4o-mini",
				"choices": []map[string]any{},
			})
		})
		_, err := client.Generate(context.Background(), gptclient.Request{User: "x"})
		var providerErr *gptclient.ErrProvider
		require.True(t, errors.As(err, &providerErr))
		require.True(t, providerErr.Retryable)
	})
}
