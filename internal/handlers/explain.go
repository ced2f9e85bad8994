package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/m-goikhman/chicago-formula-web/internal/middleware"
	"github.com/m-goikhman/chicago-formula-web/internal/session"
	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
)

// ExplainRequest selects one of the explain actions: "init" (spot difficult
// words), "word" (explain one word), or "all" (explain the whole text).
type ExplainRequest struct {
	Action       string `json:"action"`
	Word         string `json:"word,omitempty"`
	OriginalText string `json:"original_text,omitempty"`
}

// ExplainResponse is the envelope for explain results.
type ExplainResponse struct {
	Message      string         `json:"message,omitempty"`
	Words        []string       `json:"words,omitempty"`
	OriginalText string         `json:"original_text,omitempty"`
	Messages     []chat.Message `json:"messages,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// ExplainHandler serves the language-tutoring explain endpoint.
type ExplainHandler struct {
	explainer *session.Explainer
	logger    *slog.Logger
}

// NewExplainHandler creates an explain handler.
func NewExplainHandler(explainer *session.Explainer, logger *slog.Logger) *ExplainHandler {
	return &ExplainHandler{explainer: explainer, logger: logger}
}

func (h *ExplainHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	code, ok := middleware.ParticipantCode(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ExplainResponse{Error: "Not authenticated"}, h.logger)
		return
	}

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ExplainResponse{Error: "Method not allowed. Only POST is supported."}, h.logger)
		return
	}

	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ExplainResponse{Error: "Invalid request body"}, h.logger)
		return
	}

	h.logger.Info("Explain action", "participant", code, "action", req.Action)

	switch req.Action {
	case "init":
		if req.OriginalText == "" {
			writeJSON(w, http.StatusBadRequest, ExplainResponse{Error: "No text provided"}, h.logger)
			return
		}
		words := h.explainer.SpotWords(r.Context(), req.OriginalText)
		writeJSON(w, http.StatusOK, ExplainResponse{
			Message:      "init_response",
			Words:        words,
			OriginalText: req.OriginalText,
		}, h.logger)

	case "word":
		if req.Word == "" {
			writeJSON(w, http.StatusBadRequest, ExplainResponse{Error: "No word provided"}, h.logger)
			return
		}
		messages, err := h.explainer.ExplainWord(r.Context(), code, req.Word, req.OriginalText)
		if err != nil {
			h.logger.Error("Word explanation failed", "participant", code, "error", err)
			writeJSON(w, http.StatusInternalServerError, ExplainResponse{Error: "Failed to generate explanation. Please try again."}, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, ExplainResponse{Messages: messages}, h.logger)

	case "all":
		if req.OriginalText == "" {
			writeJSON(w, http.StatusBadRequest, ExplainResponse{Error: "No text provided"}, h.logger)
			return
		}
		messages, err := h.explainer.ExplainAll(r.Context(), code, req.OriginalText)
		if err != nil {
			h.logger.Error("Text explanation failed", "participant", code, "error", err)
			writeJSON(w, http.StatusInternalServerError, ExplainResponse{Error: "Failed to generate explanation. Please try again."}, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, ExplainResponse{Messages: messages}, h.logger)

	default:
		writeJSON(w, http.StatusBadRequest, ExplainResponse{Error: "Unknown action"}, h.logger)
	}
}
