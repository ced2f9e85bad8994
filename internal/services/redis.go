package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m-goikhman/chicago-formula-web/pkg/state"
)

const (
	gameStateKeyPrefix = "gamestate:"
	chatLogKeyPrefix   = "chatlog:"
)

// RedisStorage implements the Storage interface using Redis for gamestate
// and chat history logs.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance from a redis URL
// (redis://host:port).
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("redis not available after %d attempts", maxRetries)
}

// SaveGameState persists a participant's full gamestate. Sessions are
// retained indefinitely; restart-after-completion deletes them explicitly.
func (r *RedisStorage) SaveGameState(ctx context.Context, participantCode string, gs *state.GameState) error {
	gs.UpdatedAt = time.Now()

	data, err := json.Marshal(gs)
	if err != nil {
		r.logger.Error("Failed to marshal gamestate", "participant", participantCode, "error", err)
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	key := gameStateKeyPrefix + participantCode
	if err := r.client.Set(ctx, key, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save gamestate", "participant", participantCode, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}

	r.logger.Debug("Gamestate saved", "participant", participantCode)
	return nil
}

func (r *RedisStorage) LoadGameState(ctx context.Context, participantCode string) (*state.GameState, error) {
	key := gameStateKeyPrefix + participantCode
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal([]byte(data), &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}
	return &gs, nil
}

func (r *RedisStorage) DeleteGameState(ctx context.Context, participantCode string) error {
	key := gameStateKeyPrefix + participantCode
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	r.logger.Debug("Gamestate deleted", "participant", participantCode)
	return nil
}

// AppendChatLog fetches the existing log, appends one timestamped line and
// writes the whole log back.
func (r *RedisStorage) AppendChatLog(ctx context.Context, participantCode, role, content string) error {
	key := chatLogKeyPrefix + participantCode

	existing, err := r.client.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read chat log: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05 MST")
	entry := fmt.Sprintf("[%s] (%s): %s\n", timestamp, role, content)

	if err := r.client.Set(ctx, key, existing+entry, 0).Err(); err != nil {
		return fmt.Errorf("failed to append chat log: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadChatLog(ctx context.Context, participantCode string) (string, error) {
	key := chatLogKeyPrefix + participantCode
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to load chat log: %w", err)
	}
	return data, nil
}

// GetClient exposes the underlying client for components that share the
// connection (progress store, message cache).
func (r *RedisStorage) GetClient() *redis.Client {
	return r.client
}
