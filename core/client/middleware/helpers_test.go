package middleware

import (
	"context"
	"sync"

	"github.com/leofalp/lpp/core/client"
)

// ========== Mock helpers ==========

// parseSequence is a client.ParseFunc with a scripted sequence of outcomes.
// Each call pops the next element; past the end it succeeds.
type parseSequence struct {
	mu        sync.Mutex
	responses []*client.Response
	errors    []error
	callCount int
}

func (m *parseSequence) next(_ context.Context, _ client.ParseRequest) (*client.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	index := m.callCount
	m.callCount++

	if index < len(m.errors) && m.errors[index] != nil {
		return nil, m.errors[index]
	}

	if index < len(m.responses) && m.responses[index] != nil {
		return m.responses[index], nil
	}

	return &client.Response{Evaluated: "ok"}, nil
}

func (m *parseSequence) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
