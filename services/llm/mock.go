package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a configurable test double for the Client interface.
//
// Description:
//
//	Returns queued canned responses in order, or delegates to a
//	response function when one is set. Records every prompt it
//	receives so tests can assert on call order and content.
//
// Thread Safety: safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	responses    []string
	responseFunc func(ctx context.Context, prompt string) (string, error)
	err          error

	prompts []string
	calls   int
}

// NewMockClient creates a mock that returns the given responses in order.
// Once the queue is exhausted, further calls return an error unless a
// response function or forced error is configured.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{responses: responses}
}

// WithError forces every Generate call to return err.
func (m *MockClient) WithError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithResponseFunc routes every Generate call through fn.
func (m *MockClient) WithResponseFunc(fn func(ctx context.Context, prompt string) (string, error)) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseFunc = fn
	return m
}

// Generate implements the Client interface.
func (m *MockClient) Generate(ctx context.Context, prompt string,
	params GenerationParams) (string, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.prompts = append(m.prompts, prompt)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	if m.responseFunc != nil {
		return m.responseFunc(ctx, prompt)
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("mock client: no responses queued (call %d)", m.calls)
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

// CallCount returns how many times Generate was invoked.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the most recent prompt, or "" if none.
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Prompts returns a copy of every recorded prompt.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Reset clears recorded calls and any queued responses.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
	m.calls = 0
	m.responses = nil
	m.err = nil
	m.responseFunc = nil
}
