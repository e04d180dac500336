// Package retrieval orchestrates remote vector search with local fallback.
package retrieval

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/embedding"
	"github.com/Jitenthink/mediphant-devtest/internal/fallback"
	"github.com/Jitenthink/mediphant-devtest/internal/models"
	"github.com/Jitenthink/mediphant-devtest/internal/vector"
)

// Retriever answers queries by trying the remote vector index first and
// delegating to the local matcher on any failure. The two sources are never
// mixed within one response, so score scales stay comparable per response.
type Retriever struct {
	remote   vector.Index
	embedder embedding.Embedder
	local    *fallback.Matcher
	timeout  time.Duration
	logger   *zap.Logger
}

// NewRetriever creates a retriever. remote and embedder may be nil; the
// retriever then always serves from the local matcher. timeout bounds each
// remote attempt (embedding plus index query).
func NewRetriever(remote vector.Index, embedder embedding.Embedder, local *fallback.Matcher, timeout time.Duration, logger *zap.Logger) *Retriever {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Retriever{
		remote:   remote,
		embedder: embedder,
		local:    local,
		timeout:  timeout,
		logger:   logger,
	}
}

// Retrieve returns up to k ranked matches for query. It never returns an
// error: every failure path degrades to the local matcher, and an empty
// result means no information is available.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) []models.Match {
	if k <= 0 {
		k = fallback.DefaultTopK
	}
	matches, err := r.tryRemote(ctx, query, k)
	if err != nil {
		r.logger.Warn("remote search failed, using local fallback", zap.Error(err))
		return r.local.Search(ctx, query, k)
	}
	return matches
}

// tryRemote embeds the query and searches the remote index. No retries: the
// single attempt either succeeds or hands control to the fallback path.
func (r *Retriever) tryRemote(ctx context.Context, query string, k int) ([]models.Match, error) {
	if r.remote == nil {
		return nil, vector.ErrUnavailable
	}
	if r.embedder == nil {
		return nil, embedding.ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	matches, err := r.remote.Query(ctx, queryVec, k)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}
