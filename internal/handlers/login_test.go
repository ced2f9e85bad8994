package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-goikhman/chicago-formula-web/internal/auth"
)

func TestLoginHandler(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewLoginHandler(env.auth, env.logger())

	t.Run("valid code", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"participant_code": "ab1234"}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "AB1234", resp.ParticipantCode)
		require.NotEmpty(t, resp.Token)

		code, err := env.auth.Validate(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "AB1234", code)
	})

	t.Run("invalid code", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"participant_code": "nope"}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid participant code", resp.Error)
		assert.Empty(t, resp.Token)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("not json"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestLoginHandler_TestCodes(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewLoginHandler(auth.NewService("test-secret", 0), env.logger())

	for _, code := range []string{"TEST", "DEMO"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"participant_code": "`+code+`"}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "code %s", code)
	}
}
