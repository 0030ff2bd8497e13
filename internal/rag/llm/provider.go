package llm

import (
	"context"
	"errors"
)

// ErrPromptTooLarge is returned when the provider rejects a prompt for
// exceeding its input window. Callers may shrink the prompt and retry once.
var ErrPromptTooLarge = errors.New("prompt exceeds model input limit")

// Provider generates an answer from a fully assembled prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
