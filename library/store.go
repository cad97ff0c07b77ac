// Package library persists generated hunting queries to a Redis-backed
// store so analysts can reuse and tag them across sessions.
package library

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no saved query exists for the given ID.
var ErrNotFound = errors.New("saved query not found")

// Store defines the interface for the hunt query library.
type Store interface {
	// Save persists a query, assigning an ID and timestamp when absent.
	Save(ctx context.Context, q *SavedQuery) error

	// Get returns the saved query with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*SavedQuery, error)

	// List returns all saved queries ordered by creation time, newest first.
	List(ctx context.Context) ([]*SavedQuery, error)

	// ListByTag returns saved queries carrying the tag, newest first.
	ListByTag(ctx context.Context, tag string) ([]*SavedQuery, error)

	// Delete removes a saved query. Deleting a missing ID returns
	// ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close closes the underlying connection.
	Close() error
}

// RedisOptions configures the Redis connection backing the store.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

const (
	queryKeyPrefix = "huntgen:query:"
	allQueriesKey  = "huntgen:queries"
	tagKeyPrefix   = "huntgen:tag:"
)

// RedisStore implements Store using go-redis/v9.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed store and verifies connectivity.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, now: time.Now}, nil
}

// Save persists a query as a JSON value, indexes it in a sorted set by
// creation time, and adds it to each of its tag sets.
func (s *RedisStore) Save(ctx context.Context, q *SavedQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	q.prepare(s.now())

	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal saved query: %w", err)
	}

	if err := s.client.Set(ctx, queryKeyPrefix+q.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store query %s: %w", q.ID, err)
	}

	score := float64(q.CreatedAt.UnixNano())
	if err := s.client.ZAdd(ctx, allQueriesKey, redis.Z{Score: score, Member: q.ID}).Err(); err != nil {
		return fmt.Errorf("failed to index query %s: %w", q.ID, err)
	}

	for _, tag := range q.Tags {
		if err := s.client.SAdd(ctx, tagKeyPrefix+tag, q.ID).Err(); err != nil {
			return fmt.Errorf("failed to tag query %s with %s: %w", q.ID, tag, err)
		}
	}

	return nil
}

// Get returns the saved query with the given ID.
func (s *RedisStore) Get(ctx context.Context, id string) (*SavedQuery, error) {
	data, err := s.client.Get(ctx, queryKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get query %s: %w", id, err)
	}

	var q SavedQuery
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal query %s: %w", id, err)
	}

	return &q, nil
}

// List returns all saved queries, newest first.
func (s *RedisStore) List(ctx context.Context) ([]*SavedQuery, error) {
	ids, err := s.client.ZRevRange(ctx, allQueriesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	return s.fetch(ctx, ids)
}

// ListByTag returns saved queries carrying the tag, newest first.
func (s *RedisStore) ListByTag(ctx context.Context, tag string) ([]*SavedQuery, error) {
	ids, err := s.client.SMembers(ctx, tagKeyPrefix+tag).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list queries for tag %s: %w", tag, err)
	}

	queries, err := s.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.Slice(queries, func(i, j int) bool {
		return queries[i].CreatedAt.After(queries[j].CreatedAt)
	})
	return queries, nil
}

// fetch loads queries by ID, skipping entries that have been deleted out
// from under their index.
func (s *RedisStore) fetch(ctx context.Context, ids []string) ([]*SavedQuery, error) {
	queries := make([]*SavedQuery, 0, len(ids))
	for _, id := range ids {
		q, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// Delete removes a saved query along with its index and tag entries.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	q, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, queryKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete query %s: %w", id, err)
	}
	if err := s.client.ZRem(ctx, allQueriesKey, id).Err(); err != nil {
		return fmt.Errorf("failed to unindex query %s: %w", id, err)
	}
	for _, tag := range q.Tags {
		if err := s.client.SRem(ctx, tagKeyPrefix+tag, id).Err(); err != nil {
			return fmt.Errorf("failed to untag query %s: %w", id, err)
		}
	}

	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
