package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
)

func TestExplainHandler_Init(t *testing.T) {
	env := newHandlerEnv(t)
	env.llm.SetChatResponse(`["ledger", "alibi"]`)
	handler := env.authed(NewExplainHandler(env.explainer, env.logger()))

	w := env.do(handler, http.MethodPost, "/api/game/explain", `{"action": "init", "original_text": "Check the ledger for his alibi."}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExplainResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "init_response", resp.Message)
	assert.Equal(t, []string{"ledger", "alibi"}, resp.Words)
	assert.Equal(t, "Check the ledger for his alibi.", resp.OriginalText)
}

func TestExplainHandler_Word(t *testing.T) {
	env := newHandlerEnv(t)
	env.llm.SetChatResponse(`{"definition": "a book of accounts", "examples": ["She kept the ledger."]}`)
	handler := env.authed(NewExplainHandler(env.explainer, env.logger()))

	w := env.do(handler, http.MethodPost, "/api/game/explain", `{"action": "word", "word": "ledger", "original_text": "The last entry in the ledger."}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExplainResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, chat.TypeCharacter, resp.Messages[0].Type)
	assert.Equal(t, "tutor", resp.Messages[0].Character)
	assert.Contains(t, resp.Messages[0].Content, "*ledger:* a book of accounts")
	assert.False(t, resp.Messages[0].ShowExplain)
}

func TestExplainHandler_All(t *testing.T) {
	env := newHandlerEnv(t)
	env.llm.SetChatResponse(`{"definition": "The sentence means the professor hid his work."}`)
	handler := env.authed(NewExplainHandler(env.explainer, env.logger()))

	w := env.do(handler, http.MethodPost, "/api/game/explain", `{"action": "all", "original_text": "He kept it close to the vest."}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExplainResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	assert.Contains(t, resp.Messages[0].Content, "*Explanation:*")
}

func TestExplainHandler_Validation(t *testing.T) {
	env := newHandlerEnv(t)
	handler := env.authed(NewExplainHandler(env.explainer, env.logger()))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"init without text", `{"action": "init"}`, http.StatusBadRequest},
		{"word without word", `{"action": "word", "original_text": "x"}`, http.StatusBadRequest},
		{"all without text", `{"action": "all"}`, http.StatusBadRequest},
		{"unknown action", `{"action": "dance"}`, http.StatusBadRequest},
		{"malformed body", `{`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(handler, http.MethodPost, "/api/game/explain", tc.body)
			assert.Equal(t, tc.code, w.Code)
		})
	}

	w := env.do(handler, http.MethodGet, "/api/game/explain", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestExplainHandler_BackendFailure(t *testing.T) {
	env := newHandlerEnv(t)
	env.llm.SetChatResponse("no json in sight")
	handler := env.authed(NewExplainHandler(env.explainer, env.logger()))

	w := env.do(handler, http.MethodPost, "/api/game/explain", `{"action": "word", "word": "ledger", "original_text": "x"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ExplainResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}
