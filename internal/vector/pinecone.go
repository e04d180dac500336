package vector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/models"
)

const defaultTimeout = 10 * time.Second

// PineconeIndex talks to a Pinecone index over its data-plane REST API.
type PineconeIndex struct {
	client *resty.Client
	logger *zap.Logger
}

// NewPineconeIndex creates a client for the index at host. Returns
// ErrUnavailable when the API key or host is missing.
func NewPineconeIndex(apiKey, host string, timeout time.Duration, logger *zap.Logger) (*PineconeIndex, error) {
	if apiKey == "" || host == "" {
		return nil, ErrUnavailable
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetBaseURL(host).
		SetTimeout(timeout).
		SetHeader("Api-Key", apiKey).
		SetHeader("Content-Type", "application/json")
	return &PineconeIndex{client: client, logger: logger}, nil
}

type upsertRequest struct {
	Vectors []Vector `json:"vectors"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

// Upsert writes vectors with their metadata, replacing any existing records
// with the same IDs.
func (p *PineconeIndex) Upsert(ctx context.Context, vectors []Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	var out upsertResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(upsertRequest{Vectors: vectors}).
		SetResult(&out).
		Post("/vectors/upsert")
	if err != nil {
		return fmt.Errorf("pinecone upsert: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("pinecone upsert: %s: %s", resp.Status(), resp.String())
	}
	p.logger.Debug("vectors upserted", zap.Int("count", out.UpsertedCount))
	return nil
}

type queryRequest struct {
	Vector          []float64 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string   `json:"id"`
		Score    float64  `json:"score"`
		Metadata Metadata `json:"metadata"`
	} `json:"matches"`
}

// Query returns up to k nearest neighbors with their stored metadata.
func (p *PineconeIndex) Query(ctx context.Context, values []float64, k int) ([]models.Match, error) {
	var out queryResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(queryRequest{Vector: values, TopK: k, IncludeMetadata: true}).
		SetResult(&out).
		Post("/query")
	if err != nil {
		return nil, fmt.Errorf("pinecone query: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("pinecone query: %s: %s", resp.Status(), resp.String())
	}
	matches := make([]models.Match, 0, len(out.Matches))
	for _, m := range out.Matches {
		matches = append(matches, models.Match{
			Text:  m.Metadata.Text,
			Score: m.Score,
			Title: m.Metadata.Title,
		})
	}
	return matches, nil
}
