// Package indexer provides the offline corpus indexing pipeline: chunk,
// embed, upsert to the remote index, and write the local fallback snapshot.
package indexer

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/corpus"
	"github.com/Jitenthink/mediphant-devtest/internal/embedding"
	"github.com/Jitenthink/mediphant-devtest/internal/fallback"
	"github.com/Jitenthink/mediphant-devtest/internal/models"
	"github.com/Jitenthink/mediphant-devtest/internal/vector"
)

const defaultDimensions = 1536

// Indexer rebuilds the remote index and the local fallback snapshot from a
// corpus document.
type Indexer struct {
	embedder     embedding.Embedder
	remote       vector.Index
	snapshotPath string
	workers      int
	logger       *zap.Logger
}

// NewIndexer creates an indexer. embedder and remote may be nil: without an
// embedder every chunk gets a placeholder vector, and without a remote index
// only the snapshot is written.
func NewIndexer(embedder embedding.Embedder, remote vector.Index, snapshotPath string, workers int, logger *zap.Logger) *Indexer {
	if workers <= 0 {
		workers = 4
	}
	return &Indexer{
		embedder:     embedder,
		remote:       remote,
		snapshotPath: snapshotPath,
		workers:      workers,
		logger:       logger,
	}
}

// Run chunks the corpus at corpusPath, embeds every chunk, upserts the batch
// to the remote index, and atomically replaces the fallback snapshot. A chunk
// whose embedding fails is kept with a random placeholder vector so the
// snapshot retains full corpus coverage; a remote upsert failure is logged
// and does not fail the run, since the snapshot alone keeps queries working.
func (i *Indexer) Run(ctx context.Context, corpusPath string) error {
	runID := uuid.New().String()
	logger := i.logger.With(zap.String("run_id", runID))

	text, err := corpus.Load(corpusPath)
	if err != nil {
		return err
	}
	chunks := corpus.Split(text)
	logger.Info("corpus chunked", zap.String("path", corpusPath), zap.Int("chunks", len(chunks)))

	i.embedChunks(ctx, chunks, logger)

	if i.remote != nil {
		vectors := make([]vector.Vector, len(chunks))
		for n, ch := range chunks {
			vectors[n] = vector.Vector{
				ID:     ch.ID,
				Values: ch.Embedding,
				Metadata: vector.Metadata{
					Title:    ch.Title,
					Text:     ch.Text,
					FullText: ch.FullText,
				},
			}
		}
		if err := i.remote.Upsert(ctx, vectors); err != nil {
			logger.Warn("remote upsert failed, snapshot will serve queries", zap.Error(err))
		} else {
			logger.Info("vectors upserted to remote index", zap.Int("count", len(vectors)))
		}
	}

	if err := fallback.WriteSnapshot(i.snapshotPath, chunks); err != nil {
		return fmt.Errorf("write fallback snapshot: %w", err)
	}
	logger.Info("fallback snapshot written", zap.String("path", i.snapshotPath), zap.Int("chunks", len(chunks)))
	return nil
}

// embedChunks fills in chunk embeddings with a bounded worker pool. Each
// chunk's embedding is independent, so completion order does not matter.
func (i *Indexer) embedChunks(ctx context.Context, chunks []models.Chunk, logger *zap.Logger) {
	dims := defaultDimensions
	if i.embedder != nil {
		dims = i.embedder.Dimensions()
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < i.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				chunks[n].Embedding = i.embedOne(ctx, chunks[n], dims, logger)
			}
		}()
	}
	for n := range chunks {
		jobs <- n
	}
	close(jobs)
	wg.Wait()
}

func (i *Indexer) embedOne(ctx context.Context, chunk models.Chunk, dims int, logger *zap.Logger) []float64 {
	if i.embedder != nil {
		emb, err := i.embedder.Embed(ctx, chunk.FullText)
		if err == nil {
			return emb
		}
		logger.Warn("chunk embedding failed, using placeholder vector",
			zap.String("chunk_id", chunk.ID), zap.String("title", chunk.Title), zap.Error(err))
	}
	return placeholderVector(dims)
}

// placeholderVector is a random, clearly non-semantic vector used when a
// chunk cannot be embedded. It keeps that chunk in the snapshot at the cost
// of retrieval quality for it.
func placeholderVector(dims int) []float64 {
	vec := make([]float64, dims)
	for i := range vec {
		vec[i] = rand.Float64() - 0.5
	}
	return vec
}
