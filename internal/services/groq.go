package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
)

const (
	// DefaultGroqBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

	DefaultGroqTemperature = 0.7
	DefaultGroqMaxTokens   = 1024
)

// GroqService implements LLMService against Groq's OpenAI-compatible
// chat completion API.
type GroqService struct {
	client    *openai.Client
	modelName string
	logger    *slog.Logger
}

var _ LLMService = (*GroqService)(nil)

// NewGroqService creates a Groq-backed LLM service. baseURL may be empty
// to use the default endpoint.
func NewGroqService(apiKey, baseURL, modelName string, logger *slog.Logger) *GroqService {
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &GroqService{
		client:    openai.NewClientWithConfig(cfg),
		modelName: modelName,
		logger:    logger,
	}
}

func (g *GroqService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.modelName,
		Temperature: DefaultGroqTemperature,
		MaxTokens:   DefaultGroqMaxTokens,
		Messages:    toOpenAIMessages(messages),
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("groq chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("groq returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	g.logger.Debug("Groq chat completion",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return &chat.ChatResponse{Message: content}, nil
}

// Ping issues a minimal completion to verify connectivity and credentials.
func (g *GroqService) Ping(ctx context.Context) error {
	req := openai.ChatCompletionRequest{
		Model:     g.modelName,
		MaxTokens: 1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "ping"},
		},
	}
	if _, err := g.client.CreateChatCompletion(ctx, req); err != nil {
		return fmt.Errorf("groq ping failed: %w", err)
	}
	return nil
}

func toOpenAIMessages(messages []chat.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return out
}
