package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_AllServicesUp(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewHealthHandler(env.storage, env.llm, env.logger())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Services["storage"])
	assert.Equal(t, "ok", resp.Services["llm"])
}

func TestHealthHandler_StorageDown(t *testing.T) {
	env := newHandlerEnv(t)
	env.storage.SetPingError(errors.New("redis unreachable"))
	h := NewHealthHandler(env.storage, env.llm, env.logger())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unavailable", resp.Services["storage"])
}

// A dialogue backend outage does not degrade overall health: the game
// renders placeholders without it.
func TestHealthHandler_LLMDownIsInformational(t *testing.T) {
	env := newHandlerEnv(t)
	env.llm.PingFunc = func(ctx context.Context) error { return errors.New("groq unreachable") }
	h := NewHealthHandler(env.storage, env.llm, env.logger())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "unavailable", resp.Services["llm"])
}
