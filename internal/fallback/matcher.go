package fallback

import (
	"context"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/embedding"
	"github.com/Jitenthink/mediphant-devtest/internal/models"
)

// DefaultTopK is the number of matches returned when the caller does not ask
// for a specific k.
const DefaultTopK = 3

// minKeywordTokenLen: keyword tokens this short or shorter carry no signal
// and are discarded before scoring.
const minKeywordTokenLen = 2

// Matcher searches the snapshot store in-process. With an embedder it ranks
// by cosine similarity; when embedding is unavailable or fails it degrades to
// keyword overlap scoring. It never returns an error: a missing store or an
// unmatchable query yields an empty result.
type Matcher struct {
	store    *Store
	embedder embedding.Embedder
	logger   *zap.Logger
}

// NewMatcher creates a matcher over store. embedder may be nil, in which case
// only keyword mode is used.
func NewMatcher(store *Store, embedder embedding.Embedder, logger *zap.Logger) *Matcher {
	return &Matcher{store: store, embedder: embedder, logger: logger}
}

// Search returns up to k matches for query, sorted descending by score with
// ties broken by corpus order.
func (m *Matcher) Search(ctx context.Context, query string, k int) []models.Match {
	if k <= 0 {
		k = DefaultTopK
	}
	chunks := m.store.Chunks()
	if len(chunks) == 0 {
		return nil
	}
	if m.embedder != nil {
		queryVec, err := m.embedder.Embed(ctx, query)
		if err == nil {
			return vectorSearch(queryVec, chunks, k)
		}
		m.logger.Warn("query embedding failed, using keyword matching", zap.Error(err))
	}
	return keywordSearch(query, chunks, k)
}

// vectorSearch ranks chunks by cosine similarity to queryVec. Chunks with a
// missing or mismatched embedding are treated as non-matchable.
func vectorSearch(queryVec []float64, chunks []models.Chunk, k int) []models.Match {
	type scored struct {
		chunk models.Chunk
		score float64
	}
	scores := make([]scored, 0, len(chunks))
	for _, ch := range chunks {
		if len(ch.Embedding) != len(queryVec) {
			continue
		}
		scores = append(scores, scored{chunk: ch, score: CosineSimilarity(queryVec, ch.Embedding)})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if k > len(scores) {
		k = len(scores)
	}
	matches := make([]models.Match, 0, k)
	for _, s := range scores[:k] {
		matches = append(matches, models.Match{
			Text:  s.chunk.Text,
			Score: s.score,
			Title: s.chunk.Title,
		})
	}
	return matches
}

// keywordSearch scores chunks by the fraction of distinct query tokens that
// appear as substrings of the chunk text. Surviving scores are rescaled to
// max(0.5, raw*0.9): a kept match always shows at least 0.5 confidence, and
// the 0.9 cap marks the score as heuristic rather than semantic.
func keywordSearch(query string, chunks []models.Chunk, k int) []models.Match {
	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil
	}
	type scored struct {
		chunk models.Chunk
		raw   float64
	}
	var scores []scored
	for _, ch := range chunks {
		text := strings.ToLower(ch.FullText + " " + ch.Title)
		matching := 0
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				matching++
			}
		}
		if matching == 0 {
			continue
		}
		scores = append(scores, scored{chunk: ch, raw: float64(matching) / float64(len(tokens))})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].raw > scores[j].raw })
	if k > len(scores) {
		k = len(scores)
	}
	matches := make([]models.Match, 0, k)
	for _, s := range scores[:k] {
		matches = append(matches, models.Match{
			Text:  s.chunk.Text,
			Score: math.Max(0.5, s.raw*0.9),
			Title: s.chunk.Title,
		})
	}
	return matches
}

// queryTokens lower-cases the query, splits on whitespace, discards tokens of
// length <= 2, and deduplicates.
func queryTokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= minKeywordTokenLen {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|), or 0 when either vector has
// zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
