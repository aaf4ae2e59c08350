package service

import (
	"context"
	"sync"
)

// MockGenerator is a scripted Generator for tests: responses are played
// back in order, and every call is recorded.
type MockGenerator struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     [][]Message
}

func (m *MockGenerator) Generate(_ context.Context, messages []Message, _ GenerationOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, messages)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	resp := m.Responses[0]
	if len(m.Responses) > 1 {
		m.Responses = m.Responses[1:]
	}
	return resp, nil
}

func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
