package mocks

import (
	"context"
	"sync"
)

// MockClassifier implements moderation.Classifier for testing
type MockClassifier struct {
	Flagged bool
	Err     error

	mu     sync.Mutex
	inputs []string
}

// Name implements moderation.Classifier
func (m *MockClassifier) Name() string { return "mock" }

// Classify implements moderation.Classifier
func (m *MockClassifier) Classify(_ context.Context, text string) (bool, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, text)
	m.mu.Unlock()

	if m.Err != nil {
		return false, m.Err
	}
	return m.Flagged, nil
}

// Inputs returns every text passed to Classify.
func (m *MockClassifier) Inputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.inputs))
	copy(out, m.inputs)
	return out
}
