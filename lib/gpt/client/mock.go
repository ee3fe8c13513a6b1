package gptclient

import (
	"context"
	"sync"
)

const MockModelID = "mock"

// MockResponse is a canned reply for MockProvider. Err takes precedence over Text.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider replays canned responses in FIFO order and records every request.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.responses) == 0 {
		return nil, &ErrConnection{Err: errNoMockResponses}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Result{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      MockModelID,
		StopReason: "end_turn",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return MockModelID
}

func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
