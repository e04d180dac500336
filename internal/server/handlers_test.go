package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/config"
	"github.com/Jitenthink/mediphant-devtest/internal/fallback"
	"github.com/Jitenthink/mediphant-devtest/internal/models"
)

type stubRetriever struct {
	matches  []models.Match
	gotQuery string
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, k int) []models.Match {
	s.gotQuery = query
	return s.matches
}

type stubComposer struct {
	answer string
}

func (s *stubComposer) Compose(ctx context.Context, query string, matches []models.Match) string {
	return s.answer
}

func newTestServer(t *testing.T, retriever Retriever, composer Composer) *Server {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	store := fallback.NewStore(filepath.Join(t.TempDir(), "snap.json"), zap.NewNop())
	store.Reload()
	return NewServer(retriever, composer, store, cfg, zap.NewNop())
}

func TestHandleFAQ_MissingQuery(t *testing.T) {
	srv := newTestServer(t, &stubRetriever{}, &stubComposer{})
	for _, target := range []string{"/api/v1/faq", "/api/v1/faq?q=", "/api/v1/faq?q=%20%20"} {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		srv.handleFAQ(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", target, w.Code)
		}
	}
}

func TestHandleFAQ_RoundsScores(t *testing.T) {
	retriever := &stubRetriever{matches: []models.Match{
		{Text: "Take pills daily.", Score: 0.87654, Title: "Adherence"},
	}}
	srv := newTestServer(t, retriever, &stubComposer{answer: "Once daily."})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/faq?q=how+often+pills", nil)
	w := httptest.NewRecorder()
	srv.handleFAQ(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var resp models.FAQResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Answer != "Once daily." {
		t.Errorf("answer: got %q", resp.Answer)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].Score != 0.88 {
		t.Errorf("score not rounded to two decimals: %+v", resp.Matches)
	}
	if retriever.gotQuery != "how often pills" {
		t.Errorf("query: got %q", retriever.gotQuery)
	}
}

func TestHandleFAQ_EmptyMatches(t *testing.T) {
	srv := newTestServer(t, &stubRetriever{}, &stubComposer{answer: "Please consult a professional."})
	r := httptest.NewRequest(http.MethodGet, "/api/v1/faq?q=obscure", nil)
	w := httptest.NewRecorder()
	srv.handleFAQ(w, r)
	var resp models.FAQResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Matches == nil {
		t.Error("matches should encode as an empty array, not null")
	}
	if resp.Answer == "" {
		t.Error("empty matches must still produce an answer")
	}
}

func TestHandleInteractions(t *testing.T) {
	srv := newTestServer(t, &stubRetriever{}, &stubComposer{})

	t.Run("known pair", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"medA": "warfarin", "medB": "ibuprofen"})
		r := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", bytes.NewReader(body))
		w := httptest.NewRecorder()
		srv.handleInteractions(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d", w.Code)
		}
		var result models.InteractionResult
		if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
			t.Fatal(err)
		}
		if !result.IsPotentiallyRisky {
			t.Errorf("warfarin+ibuprofen should be risky: %+v", result)
		}
	})

	t.Run("missing field", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"medA": "warfarin"})
		r := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", bytes.NewReader(body))
		w := httptest.NewRecorder()
		srv.handleInteractions(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("got %d, want 400", w.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		srv.handleInteractions(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("got %d, want 400", w.Code)
		}
	})
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &stubRetriever{}, &stubComposer{})
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer(t, &stubRetriever{}, &stubComposer{})
	r := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	srv.handleStatus(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if _, ok := out["fallback_chunks"]; !ok {
		t.Error("status should report fallback chunk count")
	}
}
