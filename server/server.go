// Package server exposes the agent over HTTP as an alternative to the REPL.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yehia67/onchain-agent-template/agent"
	"github.com/yehia67/onchain-agent-template/store"
)

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serializes requests onto the single agent conversation.
type Server struct {
	mu             sync.Mutex
	agent          *agent.Agent
	saver          store.Saver
	conversationID string
}

func New(a *agent.Agent, saver store.Saver) *Server {
	return &Server{
		agent:          a,
		saver:          saver,
		conversationID: uuid.New().String(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/chat", s.handleChat)
	return r
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is empty"})
		return
	}

	// One conversation, processed sequentially.
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saver.Save(r.Context(), "user", message); err != nil {
		slog.Warn("failed to persist user message", "error", err)
	}

	reply, err := s.agent.Chat(r.Context(), message)
	if err != nil {
		slog.Error("chat turn failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	if err := s.saver.Save(r.Context(), "assistant", reply); err != nil {
		slog.Warn("failed to persist assistant message", "error", err)
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		ConversationID: s.conversationID,
		Reply:          reply,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}
