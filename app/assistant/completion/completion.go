// Package completion adapts generative text models to a single prompt-in,
// text-out capability.
package completion

import (
	"context"
	"errors"
)

var ErrEmptyCompletion = errors.New("empty completion")

// Generator produces a text completion for a prompt. A nil Generator means no
// model is configured.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
