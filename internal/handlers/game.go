package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/m-goikhman/chicago-formula-web/internal/middleware"
	"github.com/m-goikhman/chicago-formula-web/internal/session"
	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
)

// GameResponse is the envelope for all game endpoints: an ordered list of
// display messages.
type GameResponse struct {
	Messages        []chat.Message `json:"messages"`
	ParticipantCode string         `json:"participant_code,omitempty"`
	Error           string         `json:"error,omitempty"`
}

// ActionRequest is the body of a game action (button click).
type ActionRequest struct {
	Action string `json:"action"`
}

// GameHandler serves the start, action and message endpoints.
type GameHandler struct {
	manager *session.Manager
	logger  *slog.Logger
}

// NewGameHandler creates a game handler over the session manager.
func NewGameHandler(manager *session.Manager, logger *slog.Logger) *GameHandler {
	return &GameHandler{manager: manager, logger: logger}
}

// Start handles POST /api/game/start.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	code, ok := middleware.ParticipantCode(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, GameResponse{Error: "Not authenticated"}, h.logger)
		return
	}

	h.logger.Info("Starting game", "participant", code)
	messages := h.manager.StartGame(r.Context(), code)
	writeJSON(w, http.StatusOK, GameResponse{Messages: messages, ParticipantCode: code}, h.logger)
}

// Action handles POST /api/game/action.
func (h *GameHandler) Action(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	code, ok := middleware.ParticipantCode(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, GameResponse{Error: "Not authenticated"}, h.logger)
		return
	}

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, GameResponse{Error: "Method not allowed. Only POST is supported."}, h.logger)
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action == "" {
		writeJSON(w, http.StatusBadRequest, GameResponse{Error: "Invalid request body. Expected JSON with 'action' field."}, h.logger)
		return
	}

	h.logger.Info("Game action", "participant", code, "action", req.Action)
	messages := h.manager.HandleAction(r.Context(), code, req.Action)
	writeJSON(w, http.StatusOK, GameResponse{Messages: messages}, h.logger)
}

// Message handles POST /api/game/message.
func (h *GameHandler) Message(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	code, ok := middleware.ParticipantCode(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, GameResponse{Error: "Not authenticated"}, h.logger)
		return
	}

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, GameResponse{Error: "Method not allowed. Only POST is supported."}, h.logger)
		return
	}

	var req chat.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, GameResponse{Error: "Invalid request body. Expected JSON with 'text' field."}, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, GameResponse{Error: "Message cannot be empty."}, h.logger)
		return
	}

	h.logger.Info("Player message", "participant", code)
	messages := h.manager.HandleMessage(r.Context(), code, req.Text)
	writeJSON(w, http.StatusOK, GameResponse{Messages: messages}, h.logger)
}
