package library

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/huntgen/dialect"
)

// setupTestStore creates a miniredis instance and returns a connected store.
func setupTestStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func sampleQuery(name string) *SavedQuery {
	return &SavedQuery{
		Name:        name,
		Description: "failed login attempts",
		Dialect:     dialect.SPL,
		QueryText:   "index=security EventCode=4625 | stats count by user",
		Explanation: "Counts failed logins per user.",
		SyntaxScore: 100,
		Tags:        []string{"authentication"},
	}
}

func TestNewRedisStore(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := NewRedisStore(RedisOptions{
			URL: fmt.Sprintf("redis://%s", mr.Addr()),
		})
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisStore(RedisOptions{URL: "not-a-url"})
		require.Error(t, err)
	})
}

func TestStoreSaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	q := sampleQuery("failed-logins")
	require.NoError(t, store.Save(ctx, q))
	assert.NotEmpty(t, q.ID)
	assert.False(t, q.CreatedAt.IsZero())

	got, err := store.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Name, got.Name)
	assert.Equal(t, q.QueryText, got.QueryText)
	assert.Equal(t, dialect.SPL, got.Dialect)
	assert.Equal(t, []string{"authentication"}, got.Tags)
}

func TestStoreSaveValidation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query *SavedQuery
	}{
		{"missing name", &SavedQuery{Dialect: dialect.SPL, QueryText: "index=x"}},
		{"missing query text", &SavedQuery{Name: "x", Dialect: dialect.SPL}},
		{"invalid dialect", &SavedQuery{Name: "x", Dialect: "sql", QueryText: "select 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, store.Save(ctx, tt.query))
		})
	}
}

func TestStoreGetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Fixed clock so ordering is under test control.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first := sampleQuery("first")
	second := sampleQuery("second")
	third := sampleQuery("third")
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))
	require.NoError(t, store.Save(ctx, third))

	queries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, queries, 3)
	assert.Equal(t, "third", queries[0].Name)
	assert.Equal(t, "second", queries[1].Name)
	assert.Equal(t, "first", queries[2].Name)
}

func TestStoreListByTag(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	tagged := sampleQuery("tagged")
	tagged.Tags = []string{"powershell", "execution"}
	other := sampleQuery("other")
	other.Tags = []string{"authentication"}

	require.NoError(t, store.Save(ctx, tagged))
	require.NoError(t, store.Save(ctx, other))

	queries, err := store.ListByTag(ctx, "powershell")
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "tagged", queries[0].Name)

	empty, err := store.ListByTag(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStoreDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	q := sampleQuery("doomed")
	require.NoError(t, store.Save(ctx, q))

	require.NoError(t, store.Delete(ctx, q.ID))

	_, err := store.Get(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	queries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, queries)

	byTag, err := store.ListByTag(ctx, "authentication")
	require.NoError(t, err)
	assert.Empty(t, byTag)

	assert.ErrorIs(t, store.Delete(ctx, q.ID), ErrNotFound)
}
