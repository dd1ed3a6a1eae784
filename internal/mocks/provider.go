package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/blogsmith-api/internal/generation"
)

// ProviderReply is one scripted provider answer.
type ProviderReply struct {
	Text string
	Err  error
}

// MockProvider implements generation.Provider with scripted replies.
// Replies are consumed in order; once exhausted the last one repeats.
type MockProvider struct {
	// ProviderName is returned by Name; defaults to "mock".
	ProviderName string

	// CompleteFn allows test cases to replace the scripted behavior
	CompleteFn func(ctx context.Context, req generation.Request) (string, error)

	Replies []ProviderReply

	mu       sync.Mutex
	requests []generation.Request
}

// NewMockProvider creates a MockProvider that answers with texts in order.
func NewMockProvider(texts ...string) *MockProvider {
	replies := make([]ProviderReply, 0, len(texts))
	for _, text := range texts {
		replies = append(replies, ProviderReply{Text: text})
	}
	return &MockProvider{Replies: replies}
}

// NewMockProviderWithError creates a MockProvider that always fails with err.
func NewMockProviderWithError(err error) *MockProvider {
	return &MockProvider{Replies: []ProviderReply{{Err: err}}}
}

// Name implements generation.Provider
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Complete implements generation.Provider
func (m *MockProvider) Complete(ctx context.Context, req generation.Request) (string, error) {
	m.mu.Lock()
	call := len(m.requests)
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}
	if len(m.Replies) == 0 {
		return "", nil
	}
	if call >= len(m.Replies) {
		call = len(m.Replies) - 1
	}
	reply := m.Replies[call]
	return reply.Text, reply.Err
}

// Calls returns how many times Complete was called.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every request received.
func (m *MockProvider) Requests() []generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]generation.Request, len(m.requests))
	copy(out, m.requests)
	return out
}
