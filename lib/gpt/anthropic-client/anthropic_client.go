package anthropicclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
	gptclient "techscreen-backend/lib/gpt/client"
)

const (
	DefaultModel     = "claude-opus-4-1"
	DefaultMaxTokens = 4000
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string

	// MaxTokens is sent when a request leaves it at zero; the Messages API requires it.
	MaxTokens int
}

type impl struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewClient builds a Messages API backend. SDK level retries are disabled,
// gptclient.WithRetry owns the retry policy.
func NewClient(cfg Config) (gptclient.Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	client := anthropic.NewClient(opts...)
	return &impl{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (i impl) ModelID() string {
	return i.model
}

func (i impl) Generate(ctx context.Context, req gptclient.Request) (*gptclient.Result, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = i.maxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(i.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
		Temperature: anthropic.Float(req.Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := i.client.Messages.New(ctx, params)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return &gptclient.Result{
		Text:       text.String(),
		Usage:      gptclient.NewUsage(int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)),
		Model:      string(msg.Model),
		StopReason: string(msg.StopReason),
	}, nil
}

func mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return &gptclient.ErrRateLimit{Err: err}
		}
		return gptclient.NewProviderError(apiErr.StatusCode, err)
	}
	return &gptclient.ErrConnection{Err: err}
}
