package ports

import "context"

// TextGenerator is the model gateway: one prompt in, generated text out.
// Implementations own transport concerns such as timeouts; callers make a
// single attempt per request and never retry.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
