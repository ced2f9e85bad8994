package dialogue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-goikhman/chicago-formula-web/internal/services"
	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Generate(t *testing.T) {
	llm := services.NewMockLLM()
	llm.SetChatResponse("  I was at the bar all night.  \n")
	c := NewClient(llm, 0, testLogger())

	reply, err := c.Generate(context.Background(), "You are Ronnie.", "Answer the detective.", "ronnie")
	require.NoError(t, err)
	assert.Equal(t, "I was at the bar all night.", reply)

	calls := llm.GetChatCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "You are Ronnie."},
		{Role: chat.ChatRoleUser, Content: "Answer the detective."},
	}, calls[0])
}

func TestClient_Generate_BackendError(t *testing.T) {
	llm := services.NewMockLLM()
	llm.SetChatError(errors.New("connection refused"))
	c := NewClient(llm, 0, testLogger())

	_, err := c.Generate(context.Background(), "sys", "trigger", "tim")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tim")
}

func TestClient_Generate_EmptyReply(t *testing.T) {
	llm := services.NewMockLLM()
	llm.SetChatResponse("   ")
	c := NewClient(llm, 0, testLogger())

	reply, err := c.Generate(context.Background(), "sys", "trigger", "tim")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestClient_Generate_Timeout(t *testing.T) {
	llm := services.NewMockLLM()
	llm.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	c := NewClient(llm, 10*time.Millisecond, testLogger())

	_, err := c.Generate(context.Background(), "sys", "trigger", "fiona")
	assert.Error(t, err)
}
