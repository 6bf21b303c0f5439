package gosign

import (
	"context"
	"time"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes a function with exponential backoff retry.
// Only failures IsRetryable accepts are retried.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		// Check context before each attempt
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxRetries {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// RetryingClient wraps a Translator with exponential backoff retry.
// The core Client never retries on its own; wrap it in a RetryingClient
// to retry rate limits, server errors and transport failures.
type RetryingClient struct {
	client Translator
	config RetryConfig
}

// NewRetryingClient creates a new Translator with retry logic.
func NewRetryingClient(client Translator, cfg RetryConfig) *RetryingClient {
	return &RetryingClient{
		client: client,
		config: cfg,
	}
}

// TextToSign implements Translator with retry logic.
func (r *RetryingClient) TextToSign(ctx context.Context, req TextToSignRequest) (*TextToSignResult, error) {
	return WithRetry(ctx, r.config, func() (*TextToSignResult, error) {
		return r.client.TextToSign(ctx, req)
	})
}

// SignToText implements Translator with retry logic.
func (r *RetryingClient) SignToText(ctx context.Context, req SignToTextRequest) (*SignToTextResult, error) {
	return WithRetry(ctx, r.config, func() (*SignToTextResult, error) {
		return r.client.SignToText(ctx, req)
	})
}

// Verify RetryingClient implements Translator
var _ Translator = (*RetryingClient)(nil)
