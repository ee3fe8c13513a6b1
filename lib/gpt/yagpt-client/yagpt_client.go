package yagptclient

import (
	"context"

	"github.com/pkg/errors"
	yandexgptclient "github.com/sheeiavellie/go-yandexgpt"
	gptclient "techscreen-backend/lib/gpt/client"
)

type Config struct {
	IAMToken  string
	CatalogID string
}

type impl struct {
	client    *yandexgptclient.YandexGPTClient
	catalogID string
}

func NewClient(cfg Config) (gptclient.Provider, error) {
	if cfg.IAMToken == "" || cfg.CatalogID == "" {
		return nil, errors.New("yandexgpt IAM token and catalog id are required")
	}
	return &impl{
		client:    yandexgptclient.NewYandexGPTClientWithIAMToken(cfg.IAMToken),
		catalogID: cfg.CatalogID,
	}, nil
}

func (i impl) ModelID() string {
	return yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModelLite)
}

// Generate sends the instruction pair to YandexGPT. The client library
// does not expose HTTP status codes, so every failure counts as a connection failure.
func (i impl) Generate(ctx context.Context, req gptclient.Request) (*gptclient.Result, error) {
	request := yandexgptclient.YandexGPTRequest{
		ModelURI: i.ModelID(),
		CompletionOptions: yandexgptclient.YandexGPTCompletionOptions{
			Stream:      false,
			Temperature: float32(req.Temperature),
			MaxTokens:   req.MaxTokens,
		},
		Messages: []yandexgptclient.YandexGPTMessage{
			{
				Role: yandexgptclient.YandexGPTMessageRoleSystem,
				Text: req.System,
			},
			{
				Role: yandexgptclient.YandexGPTMessageRoleUser,
				Text: req.User,
			},
		},
	}

	response, err := i.client.CreateRequest(ctx, request)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &gptclient.ErrConnection{Err: errors.Wrap(err, "yandexgpt request failed")}
	}
	if len(response.Result.Alternatives) == 0 {
		return nil, gptclient.NewProviderError(0, errors.New("yandexgpt returned no alternatives"))
	}
	return &gptclient.Result{
		Text:  response.Result.Alternatives[0].Message.Text,
		Model: i.ModelID(),
	}, nil
}
