package geminiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
	gptclient "techscreen-backend/lib/gpt/client"
)

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]any{{"text": "generated"}},
					},
					"finishReason": "STOP",
				},
			},
			"usageMetadata": map[string]any{
				"promptTokenCount":     11,
				"candidatesTokenCount": 7,
				"totalTokenCount":      18,
			},
		})
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	require.Equal(t, DefaultModel, client.ModelID())

	result, err := client.Generate(context.Background(), gptclient.Request{System: "sys", User: "usr", MaxTokens: 50})
	require.NoError(t, err)
	require.Equal(t, "generated", result.Text)
	require.Equal(t, 18, result.Usage.TotalTokens)
	require.Equal(t, "STOP", result.StopReason)
}

func TestMapError(t *testing.T) {
	ctx := context.Background()

	t.Run(`rate limit`, func(t *testing.T) {
		err := mapError(ctx, genai.APIError{Code: http.StatusTooManyRequests, Message: "quota"})
		var rateLimit *gptclient.ErrRateLimit
		require.True(t, errors.As(err, &rateLimit))
	})
	t.Run(`server error is retryable`, func(t *testing.T) {
		err := mapError(ctx, genai.APIError{Code: http.StatusServiceUnavailable})
		var providerErr *gptclient.ErrProvider
		require.True(t, errors.As(err, &providerErr))
		require.True(t, providerErr.Retryable)
	})
	t.Run(`client error is fatal`, func(t *testing.T) {
		err := mapError(ctx, genai.APIError{Code: http.StatusForbidden})
		var providerErr *gptclient.ErrProvider
		require.True(t, errors.As(err, &providerErr))
		require.False(t, providerErr.Retryable)
	})
	t.Run(`transport error`, func(t *testing.T) {
		err := mapError(ctx, errors.New("connection reset"))
		var connErr *gptclient.ErrConnection
		require.True(t, errors.As(err, &connErr))
	})
	t.Run(`canceled context`, func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.ErrorIs(t, mapError(cctx, errors.New("whatever")), context.Canceled)
	})
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	require.Error(t, err)
}
