package progress

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record, err := store.Get(ctx, "AB1234")
	require.NoError(t, err)
	assert.True(t, record.IsEmpty())

	require.NoError(t, store.AddWordLearned(ctx, "AB1234", "ledger", "a book of accounts"))
	require.NoError(t, store.AddWordLearned(ctx, "AB1234", "alibi", "an excuse"))
	require.NoError(t, store.AddWritingFeedback(ctx, "AB1234", "Who done it?", "Who did it?"))

	record, err = store.Get(ctx, "AB1234")
	require.NoError(t, err)
	require.Len(t, record.WordsLearned, 2)
	assert.Equal(t, "ledger", record.WordsLearned[0].Query)
	assert.Equal(t, "a book of accounts", record.WordsLearned[0].Feedback)
	assert.False(t, record.WordsLearned[0].Timestamp.IsZero())
	require.Len(t, record.WritingFeedback, 1)
	assert.Equal(t, "Who done it?", record.WritingFeedback[0].Query)
}

func TestRedisStore_ParticipantsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddWordLearned(ctx, "AB1234", "ledger", "a book"))

	other, err := store.Get(ctx, "CD5678")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestRedisStore_Clear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddWordLearned(ctx, "AB1234", "ledger", "a book"))
	require.NoError(t, store.Clear(ctx, "AB1234"))

	record, err := store.Get(ctx, "AB1234")
	require.NoError(t, err)
	assert.True(t, record.IsEmpty())

	// Clearing an absent record is not an error.
	require.NoError(t, store.Clear(ctx, "AB1234"))
}
