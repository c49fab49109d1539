// Package testutil provides test doubles for the llm package.
package testutil

import (
	"context"
	"sync"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm"
)

// MockCompleter is a thread-safe fake completion client. It returns
// configured completions in sequence and records every request so tests can
// assert on prompts and invocation counts.
//
// Usage:
//
//	mock := &testutil.MockCompleter{
//	    Completions: []string{`{"predicted_outcome":"Conviction"}`},
//	}
//
//	mock := &testutil.MockCompleter{Err: errors.New("connection refused")}
type MockCompleter struct {
	mu       sync.Mutex
	requests []llm.Request
	index    int

	// Completions are returned in sequence; the last one repeats.
	Completions []string

	// Err, when set, is returned instead of any completion.
	Err error
}

// Complete implements the task.Completer interface.
func (m *MockCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.Err != nil {
		return "", m.Err
	}

	if len(m.Completions) == 0 {
		return "", &llm.EmptyResponseError{}
	}

	i := m.index
	if i >= len(m.Completions) {
		i = len(m.Completions) - 1
	}
	m.index++
	return m.Completions[i], nil
}

// Calls returns how many times Complete was invoked.
func (m *MockCompleter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every captured request.
func (m *MockCompleter) Requests() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]llm.Request, len(m.requests))
	copy(out, m.requests)
	return out
}
