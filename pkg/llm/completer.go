package llm

import (
	"context"
	"errors"
)

// ErrUpstream is returned when the completion provider fails, times out, or
// returns an unusable response. Callers are expected to surface a generic
// message rather than the provider error text.
var ErrUpstream = errors.New("completion provider unavailable")

// CompletionRequest is a provider-agnostic chat completion request.
type CompletionRequest struct {
	// Model name; empty means the client's configured default.
	Model string

	// Messages in conversation order, system prompt first.
	Messages []Message

	// Generation parameters. Zero values mean provider defaults.
	MaxTokens   int
	Temperature float64
}

// Completer sends one completion request and returns the response text
// verbatim. Implementations must not retry.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Close() error
}
