package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/interactions"
	"github.com/Jitenthink/mediphant-devtest/internal/models"
	"github.com/Jitenthink/mediphant-devtest/pkg/utils"
)

func (s *Server) handleFAQ(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.respondError(w, http.StatusBadRequest, `query parameter "q" is required`)
		return
	}
	s.logger.Debug("faq request", zap.String("query", query))

	matches := s.retriever.Retrieve(r.Context(), query, s.config.Retrieval.TopK)
	answer := s.composer.Compose(r.Context(), query, matches)
	s.logger.Debug("faq answered",
		zap.Int("matches", len(matches)),
		zap.String("answer", utils.Truncate(answer, 120)),
	)

	response := models.FAQResponse{
		Answer:  answer,
		Matches: make([]models.Match, 0, len(matches)),
	}
	for _, m := range matches {
		response.Matches = append(response.Matches, models.Match{
			Text:  m.Text,
			Score: utils.Round2(m.Score),
			Title: m.Title,
		})
	}
	s.respondJSON(w, http.StatusOK, response)
}

type interactionRequest struct {
	MedA string `json:"medA"`
	MedB string `json:"medB"`
}

func (s *Server) handleInteractions(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.MedA = strings.TrimSpace(req.MedA)
	req.MedB = strings.TrimSpace(req.MedB)
	if req.MedA == "" || req.MedB == "" {
		s.respondError(w, http.StatusBadRequest, "medA and medB are required")
		return
	}
	s.respondJSON(w, http.StatusOK, interactions.Check(req.MedA, req.MedB))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"fallback_chunks": s.store.Len(),
		"snapshot_path":   s.store.Path(),
		"retrieval_top_k": s.config.Retrieval.TopK,
		"embedding_model": s.config.OpenAI.EmbeddingModel,
		"chat_model":      s.config.OpenAI.ChatModel,
		"corpus_path":     s.config.Corpus.Path,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
