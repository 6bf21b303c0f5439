package gloss

import (
	"context"
	"strings"
)

// MockGlosser is a mock gloss backend for testing.
type MockGlosser struct {
	Glosses     map[string]string // Map of source text to gloss
	CallCount   int               // Number of times Gloss was called
	LastRequest *GlossRequest     // Last request received
}

// NewMockGlosser creates a new mock glosser with default glosses.
func NewMockGlosser() *MockGlosser {
	return &MockGlosser{
		Glosses: map[string]string{
			"I am going home":     "HOME I GO",
			"What is your name?":  "YOU NAME WHAT [q]",
			"Hello, how are you?": "HELLO HOW-YOU [q]",
		},
	}
}

// Gloss returns mock glosses.
func (m *MockGlosser) Gloss(ctx context.Context, req GlossRequest) ([]string, error) {
	m.CallCount++
	m.LastRequest = &req

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if gloss, ok := m.Glosses[text]; ok {
			results[i] = gloss
		} else {
			// Uppercase the text for unknown inputs
			results[i] = strings.ToUpper(text)
		}
	}

	return results, nil
}

// Reset resets the call count and last request.
func (m *MockGlosser) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockGlosser implements Glosser
var _ Glosser = (*MockGlosser)(nil)
