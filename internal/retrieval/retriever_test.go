package retrieval

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/fallback"
	"github.com/Jitenthink/mediphant-devtest/internal/models"
	"github.com/Jitenthink/mediphant-devtest/internal/vector"
)

type stubEmbedder struct {
	vec []float64
	err error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return s.vec, s.err
}

func (s *stubEmbedder) Dimensions() int { return len(s.vec) }

type stubIndex struct {
	matches []models.Match
	err     error
	queries int
}

func (s *stubIndex) Upsert(ctx context.Context, vectors []vector.Vector) error { return nil }

func (s *stubIndex) Query(ctx context.Context, values []float64, k int) ([]models.Match, error) {
	s.queries++
	return s.matches, s.err
}

func localMatcher(t *testing.T) *fallback.Matcher {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snap.json")
	chunks := []models.Chunk{
		{ID: "chunk-0", Title: "Adherence", Text: "Take pills daily.", FullText: "Adherence\nTake pills daily."},
		{ID: "chunk-1", Title: "Risk", Text: "Watch interactions.", FullText: "Risk\nWatch interactions."},
	}
	if err := fallback.WriteSnapshot(path, chunks); err != nil {
		t.Fatal(err)
	}
	store := fallback.NewStore(path, zap.NewNop())
	store.Reload()
	return fallback.NewMatcher(store, nil, zap.NewNop())
}

func TestRetrieve_RemoteSuccess(t *testing.T) {
	remote := &stubIndex{matches: []models.Match{
		{Text: "low", Score: 0.2, Title: "B"},
		{Text: "high", Score: 0.8, Title: "A"},
	}}
	r := NewRetriever(remote, &stubEmbedder{vec: []float64{1, 0}}, localMatcher(t), time.Second, zap.NewNop())
	matches := r.Retrieve(context.Background(), "pills", 3)
	if remote.queries != 1 {
		t.Errorf("remote should be queried once, got %d", remote.queries)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Title != "A" || matches[1].Title != "B" {
		t.Errorf("results not ranked descending: %v", matches)
	}
}

func TestRetrieve_RemoteErrorFallsBack(t *testing.T) {
	remote := &stubIndex{err: errors.New("connection refused")}
	local := localMatcher(t)
	r := NewRetriever(remote, &stubEmbedder{vec: []float64{1, 0}}, local, time.Second, zap.NewNop())

	got := r.Retrieve(context.Background(), "pills", 3)
	want := local.Search(context.Background(), "pills", 3)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback output mismatch:\ngot  %v\nwant %v", got, want)
	}
	if len(got) == 0 {
		t.Error("fallback should find the pills chunk, not return empty")
	}
}

func TestRetrieve_EmbedErrorFallsBack(t *testing.T) {
	remote := &stubIndex{matches: []models.Match{{Text: "never returned", Score: 1}}}
	r := NewRetriever(remote, &stubEmbedder{err: errors.New("401")}, localMatcher(t), time.Second, zap.NewNop())
	matches := r.Retrieve(context.Background(), "pills", 3)
	if remote.queries != 0 {
		t.Error("remote must not be queried when the query embedding fails")
	}
	if len(matches) != 1 || matches[0].Title != "Adherence" {
		t.Errorf("expected local keyword match, got %v", matches)
	}
}

func TestRetrieve_NoRemoteConfigured(t *testing.T) {
	r := NewRetriever(nil, nil, localMatcher(t), time.Second, zap.NewNop())
	matches := r.Retrieve(context.Background(), "pills", 3)
	if len(matches) != 1 {
		t.Fatalf("expected 1 local match, got %d", len(matches))
	}
}

func TestRetrieve_TruncatesToK(t *testing.T) {
	remote := &stubIndex{matches: []models.Match{
		{Text: "a", Score: 0.9}, {Text: "b", Score: 0.8}, {Text: "c", Score: 0.7},
	}}
	r := NewRetriever(remote, &stubEmbedder{vec: []float64{1}}, localMatcher(t), time.Second, zap.NewNop())
	if matches := r.Retrieve(context.Background(), "q", 2); len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matches))
	}
}

func TestRetrieve_EmptyRemoteResultIsNotFailure(t *testing.T) {
	// An empty remote result means "no relevant content", not an outage;
	// the local matcher must not be consulted.
	remote := &stubIndex{matches: nil}
	r := NewRetriever(remote, &stubEmbedder{vec: []float64{1}}, localMatcher(t), time.Second, zap.NewNop())
	if matches := r.Retrieve(context.Background(), "pills", 3); len(matches) != 0 {
		t.Errorf("expected empty result, got %v", matches)
	}
}
