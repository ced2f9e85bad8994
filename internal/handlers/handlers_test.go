package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m-goikhman/chicago-formula-web/internal/auth"
	"github.com/m-goikhman/chicago-formula-web/internal/dialogue"
	"github.com/m-goikhman/chicago-formula-web/internal/director"
	"github.com/m-goikhman/chicago-formula-web/internal/middleware"
	"github.com/m-goikhman/chicago-formula-web/internal/progress"
	"github.com/m-goikhman/chicago-formula-web/internal/services"
	"github.com/m-goikhman/chicago-formula-web/internal/session"
	"github.com/m-goikhman/chicago-formula-web/internal/tutor"
	"github.com/m-goikhman/chicago-formula-web/pkg/character"
	"github.com/m-goikhman/chicago-formula-web/pkg/prompts"
)

const testParticipant = "AB1234"

// handlerEnv wires the full handler stack over mocks, with a real auth
// service so requests go through the auth middleware like in production.
type handlerEnv struct {
	llm     *services.MockLLM
	storage *services.MockStorage
	content *services.MockContentStore
	auth    *auth.Service
	token   string

	manager   *session.Manager
	explainer *session.Explainer
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := character.Default()

	content := services.NewMockContentStore(map[string]string{
		"prompts/prompt_director.md":          "You are the director.",
		"prompts/prompt_tutor.md":             "You are the tutor.",
		"prompts/prompt_lexicographer.md":     "You are the lexicographer.",
		"prompts/prompt_narrator.md":          "You are the narrator.",
		"prompts/language_learning/b1.md":     "Use B1 English.",
		"game_texts/onboarding_1_welcome.txt": "Welcome to the case.",
	})

	llm := services.NewMockLLM()
	storage := services.NewMockStorage()
	progressStore := progress.NewMockStore()

	assembler := prompts.NewAssembler(content, registry, logger)
	d := director.New(llm, assembler, director.NewStrictMatcher(registry), registry, logger)
	dialogueClient := dialogue.NewClient(llm, 0, logger)
	manager := session.NewManager(storage, dialogueClient, assembler, d, content, registry, progressStore, nil, nil, logger)
	explainer := session.NewExplainer(tutor.New(llm, assembler, logger), manager)

	authService := auth.NewService("test-secret", 0)
	token, _, err := authService.Login(testParticipant)
	require.NoError(t, err)

	return &handlerEnv{
		llm:       llm,
		storage:   storage,
		content:   content,
		auth:      authService,
		token:     token,
		manager:   manager,
		explainer: explainer,
	}
}

func (e *handlerEnv) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authed wraps a handler in the auth middleware.
func (e *handlerEnv) authed(h http.Handler) http.Handler {
	return middleware.Auth(h, e.auth, e.logger())
}

// do issues a request with the participant's bearer token.
func (e *handlerEnv) do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
