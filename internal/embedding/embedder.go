// Package embedding provides text embedding via the OpenAI API.
package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable indicates that no embedding capability is configured.
// Callers are expected to degrade (keyword matching, placeholder vectors)
// rather than propagate it.
var ErrUnavailable = errors.New("embedding provider not configured")

// Embedder produces a fixed-dimension vector embedding for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimensions() int
}
