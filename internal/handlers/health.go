package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-goikhman/chicago-formula-web/internal/services"
)

// HealthResponse reports service health.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// HealthHandler checks storage and dialogue backend connectivity.
type HealthHandler struct {
	storage services.Storage
	llm     services.LLMService
	logger  *slog.Logger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(storage services.Storage, llm services.LLMService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{storage: storage, llm: llm, logger: logger}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Services: map[string]string{}}

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Error("Storage health check failed", "error", err)
		resp.Status = "degraded"
		resp.Services["storage"] = "unavailable"
	} else {
		resp.Services["storage"] = "ok"
	}

	// The LLM check is informational only; the game degrades to
	// placeholders without it.
	if err := h.llm.Ping(ctx); err != nil {
		h.logger.Warn("LLM health check failed", "error", err)
		resp.Services["llm"] = "unavailable"
	} else {
		resp.Services["llm"] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp, h.logger)
}
