package triage

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sanad-ai/triage-backend/pkg/logging"
)

// maxMessageLength bounds inbound text at the transport boundary.
const maxMessageLength = 4000

// Handler wires HTTP requests to the triage service.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a triage handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Message handles POST /conversations/message.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode message request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	if len(req.Text) > maxMessageLength {
		http.Error(w, "text exceeds maximum length", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ProcessMessage(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}
		// The caller gets a supportive fallback, never an opaque error.
		h.logger.Error("failed to process message", "session_id", req.SessionID, "error", err)
		h.writeJSON(w, http.StatusOK, MessageResponse{
			ResponseText: supportiveFallbackResponse,
			Action:       ActionContinueChat,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// History handles GET /conversations/{sessionID}/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	n := MaxTurnsPerSession
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}

	turns, err := h.service.RecentTurns(r.Context(), sessionID, n)
	if err != nil {
		h.logger.Error("failed to load history", "session_id", sessionID, "error", err)
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	if turns == nil {
		turns = []Turn{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"turns": turns})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
