package initializers

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"techscreen-backend/config"
	anthropicclient "techscreen-backend/lib/gpt/anthropic-client"
	gptclient "techscreen-backend/lib/gpt/client"
	geminiclient "techscreen-backend/lib/gpt/gemini-client"
	openaiclient "techscreen-backend/lib/gpt/openai-client"
	yagptclient "techscreen-backend/lib/gpt/yagpt-client"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderYandexGPT = "yandexgpt"
	ProviderMock      = "mock"
)

func newBackend(ctx context.Context, conf *config.Configuration) (gptclient.Provider, error) {
	llm := conf.LLM
	switch llm.Provider {
	case ProviderAnthropic, "":
		return anthropicclient.NewClient(anthropicclient.Config{
			APIKey:    llm.Anthropic.APIKey,
			Model:     llm.Anthropic.Model,
			BaseURL:   llm.Anthropic.BaseURL,
			MaxTokens: llm.MaxTokens,
		})
	case ProviderOpenAI:
		return openaiclient.NewClient(openaiclient.Config{
			APIKey:  llm.OpenAI.APIKey,
			Model:   llm.OpenAI.Model,
			BaseURL: llm.OpenAI.BaseURL,
		})
	case ProviderGemini:
		return geminiclient.NewClient(ctx, geminiclient.Config{
			APIKey: llm.Gemini.APIKey,
			Model:  llm.Gemini.Model,
		})
	case ProviderYandexGPT:
		return yagptclient.NewClient(yagptclient.Config{
			IAMToken:  llm.YandexGPT.IAMToken,
			CatalogID: llm.YandexGPT.CatalogID,
		})
	case ProviderMock:
		return gptclient.NewMockProvider(), nil
	}
	return nil, errors.Errorf("unsupported LLM provider %q", llm.Provider)
}

// InitGptProvider builds the configured backend wrapped in the retry policy.
func InitGptProvider(ctx context.Context, conf *config.Configuration) (gptclient.Provider, error) {
	backend, err := newBackend(ctx, conf)
	if err != nil {
		return nil, errors.Wrapf(err, "init %s provider", conf.LLM.Provider)
	}
	log.
		WithField("provider", conf.LLM.Provider).
		WithField("model", backend.ModelID()).
		Info("LLM provider initialized")
	return gptclient.WithRetry(backend, gptclient.RetryConfig{
		MaxAttempts: conf.LLM.MaxAttempts,
		BaseDelay:   time.Duration(conf.LLM.RetryDelaySec) * time.Second,
	}), nil
}
