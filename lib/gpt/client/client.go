package gptclient

import "context"

// Provider sends one system/user instruction pair to a text-generation model.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Result, error)
	ModelID() string
}

type Request struct {
	System string
	User   string
	// MaxTokens of zero means the backend default.
	MaxTokens   int
	Temperature float64
}

type Result struct {
	Text       string
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func NewUsage(input, output int) Usage {
	return Usage{
		InputTokens:  input,
		OutputTokens: output,
		TotalTokens:  input + output,
	}
}
