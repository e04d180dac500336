package models

// Match is a scored retrieval result. Score semantics depend on the source:
// cosine similarity for vector search, rescaled token overlap ([0.5, 0.9])
// for keyword search. Result sets handed to callers are always sorted
// descending by Score, ties broken by corpus order.
type Match struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Title string  `json:"title,omitempty"`
}

// FAQResponse is the response for an FAQ query.
type FAQResponse struct {
	Answer  string  `json:"answer"`
	Matches []Match `json:"matches"`
}
