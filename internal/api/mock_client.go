package api

import (
	"context"
	"sync"

	"github.com/diogo/bharatgpt/internal/models"
)

// MockClient is a ClientInterface for shell and controller tests
type MockClient struct {
	// Response is returned by Complete when Func is nil
	Response string
	// Err is returned instead of Response when set
	Err error
	// Func, when set, computes the result from the prompt
	Func func(ctx context.Context, prompt string) (string, error)
	// Gate, when set, blocks each call until a value is received or ctx ends
	Gate  chan struct{}
	Model models.Model

	mu      sync.Mutex
	calls   int
	prompts []string
	started chan struct{}
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

// NewMockClient returns a mock that always answers response
func NewMockClient(response string) *MockClient {
	return &MockClient{Response: response, Model: models.DefaultModel}
}

// Started returns a channel that receives once per call, before Gate is
// awaited. It must be requested before the call is made.
func (m *MockClient) Started() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started == nil {
		m.started = make(chan struct{}, 16)
	}
	return m.started
}

// Complete records the prompt and returns the configured result
func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	started := m.started
	m.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}

	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.Func != nil {
		return m.Func(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Generate wraps Complete in a ModelOutput
func (m *MockClient) Generate(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	text, err := m.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &models.ModelOutput{
		Candidates: []models.Candidate{{Text: text, FinishReason: "STOP"}},
	}, nil
}

// GetModel returns the configured model
func (m *MockClient) GetModel() models.Model {
	if m.Model.Name == "" {
		return models.DefaultModel
	}
	return m.Model
}

// Calls returns how many times Complete was invoked
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the most recent prompt, or ""
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
