package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/m-goikhman/chicago-formula-web/internal/auth"
)

// LoginRequest is the body of a login attempt.
type LoginRequest struct {
	ParticipantCode string `json:"participant_code"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token           string `json:"token,omitempty"`
	ParticipantCode string `json:"participant_code,omitempty"`
	Error           string `json:"error,omitempty"`
}

// LoginHandler authenticates participant codes.
type LoginHandler struct {
	auth   *auth.Service
	logger *slog.Logger
}

// NewLoginHandler creates a login handler.
func NewLoginHandler(authService *auth.Service, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{auth: authService, logger: logger}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, LoginResponse{Error: "Method not allowed. Only POST is supported."}, h.logger)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid login request body", "error", err)
		writeJSON(w, http.StatusBadRequest, LoginResponse{Error: "Invalid request body. Expected JSON with 'participant_code' field."}, h.logger)
		return
	}

	h.logger.Info("Login attempt", "participant", req.ParticipantCode)

	token, code, err := h.auth.Login(req.ParticipantCode)
	if err != nil {
		h.logger.Warn("Invalid participant code attempted", "participant", req.ParticipantCode)
		writeJSON(w, http.StatusUnauthorized, LoginResponse{Error: "Invalid participant code"}, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ParticipantCode: code}, h.logger)
}

// writeJSON encodes a response body, logging encode failures.
func writeJSON(w http.ResponseWriter, status int, body interface{}, logger *slog.Logger) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Error encoding response", "error", err)
	}
}
