package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/LumaLabs/lexipage"
)

// MockSource is a mock example source for testing. It is safe for
// concurrent use, since the resolver may fan out lookups.
type MockSource struct {
	Entries map[string]Entry // Canned entries by normalized phrase
	Fail    map[string]error // Phrases that should fail, with their error

	mu        sync.Mutex
	callCount int
	calls     []string
}

// NewMockSource creates a new mock source with a default entry.
func NewMockSource() *MockSource {
	return &MockSource{
		Entries: map[string]Entry{
			"cat": {
				Definition: "A small domesticated carnivorous mammal.",
				Examples: []string{
					"The cat sat on the mat.",
					"Our cat chased a moth around the kitchen.",
					"She adopted a cat from the shelter.",
				},
			},
		},
		Fail: make(map[string]error),
	}
}

// Examples returns canned entries, or a generated placeholder for unknown
// phrases.
func (m *MockSource) Examples(ctx context.Context, phrase string) (Entry, error) {
	key := lexipage.NormalizeKey(phrase)

	m.mu.Lock()
	m.callCount++
	m.calls = append(m.calls, key)
	m.mu.Unlock()

	if err, ok := m.Fail[key]; ok {
		return Entry{}, err
	}
	if entry, ok := m.Entries[key]; ok {
		return entry, nil
	}

	return Entry{
		Definition: fmt.Sprintf("Placeholder definition of %q.", key),
		Examples: []string{
			fmt.Sprintf("First sentence using %q.", key),
			fmt.Sprintf("Second sentence using %q.", key),
		},
	}, nil
}

// CallCount returns the number of times Examples was called.
func (m *MockSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Calls returns the normalized phrases Examples was called with, in order.
func (m *MockSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Reset resets the call bookkeeping.
func (m *MockSource) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.calls = nil
}

// Verify MockSource implements ExampleSource
var _ ExampleSource = (*MockSource)(nil)
