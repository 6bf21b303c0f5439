// Package gloss converts spoken-language text into sign-language gloss
// notation using an LLM.
//
// Gloss notation is the written transcription signers use (e.g. English
// "I am going home" → ASL gloss "HOME I GO"). It is a lightweight preview
// of how content will be signed, useful before rendering full videos.
package gloss

import (
	"context"
	"fmt"
)

// Glosser is the interface for gloss translation backends.
type Glosser interface {
	Gloss(ctx context.Context, req GlossRequest) ([]string, error)
}

// GlossRequest contains the parameters for a gloss translation request.
type GlossRequest struct {
	Texts        []string // Texts to convert, glossed in order
	SignLanguage string   // Target sign language code (e.g., "ase")
	Context      string   // Optional domain context for disambiguation
}

// ProviderError indicates a gloss backend failure.
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gloss provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("gloss provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates the backend returned a different number of
// glosses than texts requested.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("gloss count mismatch: expected %d, got %d", e.Expected, e.Got)
}
