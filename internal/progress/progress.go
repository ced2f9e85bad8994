// Package progress persists per-participant language-learning progress:
// words looked up and writing feedback from the tutor.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "progress:"

// Entry is one learning event: what the participant asked or wrote, and
// what the tutor answered.
type Entry struct {
	Query     string    `json:"query"`
	Feedback  string    `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}

// Record is a participant's accumulated learning progress.
type Record struct {
	WordsLearned    []Entry `json:"words_learned"`
	WritingFeedback []Entry `json:"writing_feedback"`
}

// IsEmpty reports whether the record has no progress yet.
func (r *Record) IsEmpty() bool {
	return len(r.WordsLearned) == 0 && len(r.WritingFeedback) == 0
}

// Store defines progress persistence operations.
type Store interface {
	AddWordLearned(ctx context.Context, participantCode, word, definition string) error
	AddWritingFeedback(ctx context.Context, participantCode, text, feedback string) error
	Get(ctx context.Context, participantCode string) (*Record, error)
	Clear(ctx context.Context, participantCode string) error
}

// RedisStore implements Store on Redis.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps an existing Redis client as a progress store.
func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func (s *RedisStore) AddWordLearned(ctx context.Context, participantCode, word, definition string) error {
	return s.append(ctx, participantCode, func(r *Record) {
		r.WordsLearned = append(r.WordsLearned, Entry{Query: word, Feedback: definition, Timestamp: time.Now()})
	})
}

func (s *RedisStore) AddWritingFeedback(ctx context.Context, participantCode, text, feedback string) error {
	return s.append(ctx, participantCode, func(r *Record) {
		r.WritingFeedback = append(r.WritingFeedback, Entry{Query: text, Feedback: feedback, Timestamp: time.Now()})
	})
}

func (s *RedisStore) Get(ctx context.Context, participantCode string) (*Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+participantCode).Result()
	if err != nil {
		if err == redis.Nil {
			return &Record{}, nil
		}
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	var record Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	return &record, nil
}

func (s *RedisStore) Clear(ctx context.Context, participantCode string) error {
	if err := s.client.Del(ctx, keyPrefix+participantCode).Err(); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}

func (s *RedisStore) append(ctx context.Context, participantCode string, mutate func(*Record)) error {
	record, err := s.Get(ctx, participantCode)
	if err != nil {
		return err
	}
	mutate(record)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+participantCode, string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
