// Package models defines core data structures for chunks, matches, and API responses.
package models

// Chunk is a titled, embeddable unit of corpus text. The ID is assigned in
// emission order during chunking ("chunk-0", "chunk-1", ...). FullText is the
// exact string that gets embedded: Title + "\n" + Text.
type Chunk struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	FullText  string    `json:"full_text"`
	Embedding []float64 `json:"embedding,omitempty"`
}
