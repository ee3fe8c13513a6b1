package geminiclient

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/genai"
	gptclient "techscreen-backend/lib/gpt/client"
)

const DefaultModel = "gemini-2.0-flash"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type impl struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, cfg Config) (gptclient.Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &impl{
		client: client,
		model:  model,
	}, nil
}

func (i impl) ModelID() string {
	return i.model
}

func (i impl) Generate(ctx context.Context, req gptclient.Request) (*gptclient.Result, error) {
	temperature := float32(req.Temperature)
	conf := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
		Temperature:     &temperature,
	}
	if req.System != "" {
		conf.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: req.User}}},
	}

	resp, err := i.client.Models.GenerateContent(ctx, i.model, contents, conf)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	result := &gptclient.Result{
		Text:  resp.Text(),
		Model: i.model,
	}
	if len(resp.Candidates) > 0 {
		result.StopReason = string(resp.Candidates[0].FinishReason)
	}
	if resp.UsageMetadata != nil {
		result.Usage = gptclient.Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return result, nil
}

func mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classify(apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return classify(apiErrPtr.Code, err)
	}
	return &gptclient.ErrConnection{Err: err}
}

func classify(code int, err error) error {
	if code == http.StatusTooManyRequests {
		return &gptclient.ErrRateLimit{Err: err}
	}
	return gptclient.NewProviderError(code, err)
}
