// Package vector provides the remote vector index adapter.
package vector

import (
	"context"
	"errors"

	"github.com/Jitenthink/mediphant-devtest/internal/models"
)

// ErrUnavailable indicates that the remote vector index is not configured.
var ErrUnavailable = errors.New("vector index not configured")

// Metadata is the chunk metadata stored alongside each vector.
type Metadata struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	FullText string `json:"full_text"`
}

// Vector is a single upsert record: chunk ID, embedding values, and metadata.
type Vector struct {
	ID       string    `json:"id"`
	Values   []float64 `json:"values"`
	Metadata Metadata  `json:"metadata"`
}

// Index stores chunk vectors remotely and answers nearest-neighbor queries.
// Upsert replaces the vector and metadata for an existing ID. Query returns
// up to k matches by the index's own metric; any network, auth, or
// configuration failure must surface as an error, never as a silently empty
// result, so callers can distinguish "unreachable" from "no relevant content".
type Index interface {
	Upsert(ctx context.Context, vectors []Vector) error
	Query(ctx context.Context, values []float64, k int) ([]models.Match, error)
}
