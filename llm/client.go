package llm

import (
	"context"
	"errors"
)

// Sentinel errors classifying completion-service failures.
// The orchestrator retries both exactly once before reporting a generation
// failure; any other error is terminal immediately.
var (
	// ErrModelUnavailable indicates the completion service could not be
	// reached or refused the connection.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrModelTimeout indicates a completion attempt exceeded its timeout.
	ErrModelTimeout = errors.New("model timeout")
)

// Client is the boundary to an external language-model completion service.
// Implementations must classify connectivity failures as ErrModelUnavailable
// and deadline expirations as ErrModelTimeout (wrapped, checkable with
// errors.Is) so callers can apply retry policy.
type Client interface {
	// Complete issues a single completion request and returns the raw
	// model response. The context carries cancellation; abandoning the
	// context must abort the in-flight request.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// IsRetryable reports whether an error from Complete is transient and worth
// a single retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrModelUnavailable) || errors.Is(err, ErrModelTimeout)
}
