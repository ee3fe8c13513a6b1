package openaiclient

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	gptclient "techscreen-backend/lib/gpt/client"
)

const DefaultModel = openai.GPT4o

type Config struct {
	APIKey string
	Model  string
	// BaseURL points the client at any OpenAI compatible API.
	BaseURL string
}

type impl struct {
	client *openai.Client
	model  string
}

func NewClient(cfg Config) (gptclient.Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &impl{
		client: openai.NewClientWithConfig(conf),
		model:  model,
	}, nil
}

func (i impl) ModelID() string {
	return i.model
}

func (i impl) Generate(ctx context.Context, req gptclient.Request) (*gptclient.Result, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := i.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               i.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	})
	if err != nil {
		return nil, mapError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return nil, gptclient.NewProviderError(http.StatusBadGateway, errors.New("no choices in completion response"))
	}
	return &gptclient.Result{
		Text: resp.Choices[0].Message.Content,
		Usage: gptclient.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: string(resp.Choices[0].FinishReason),
	}, nil
}

func mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return &gptclient.ErrRateLimit{Err: err}
		}
		return gptclient.NewProviderError(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return &gptclient.ErrRateLimit{Err: err}
		}
		return gptclient.NewProviderError(reqErr.HTTPStatusCode, err)
	}
	return &gptclient.ErrConnection{Err: err}
}
