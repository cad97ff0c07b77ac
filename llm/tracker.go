package llm

import "sync"

// TokenTracker tracks token usage across labeled buckets. The generation
// pipeline buckets usage by dialect so operators can see which query language
// consumes the most model capacity.
type TokenTracker interface {
	// Add records token usage for a specific bucket.
	Add(bucket string, usage TokenUsage)

	// Total returns the aggregate token usage across all buckets.
	Total() TokenUsage

	// ByBucket returns the token usage for a specific bucket.
	ByBucket(bucket string) TokenUsage

	// Reset clears all tracked token usage.
	Reset()

	// Buckets returns a list of all tracked bucket names.
	Buckets() []string
}

// DefaultTokenTracker is a thread-safe implementation of TokenTracker.
type DefaultTokenTracker struct {
	mu      sync.RWMutex
	buckets map[string]TokenUsage
	total   TokenUsage
}

// NewTokenTracker creates a new DefaultTokenTracker.
func NewTokenTracker() *DefaultTokenTracker {
	return &DefaultTokenTracker{
		buckets: make(map[string]TokenUsage),
	}
}

// Add records token usage for a specific bucket.
func (t *DefaultTokenTracker) Add(bucket string, usage TokenUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.buckets[bucket]
	t.buckets[bucket] = current.Add(usage)
	t.total = t.total.Add(usage)
}

// Total returns the aggregate token usage across all buckets.
func (t *DefaultTokenTracker) Total() TokenUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// ByBucket returns the token usage for a specific bucket.
// Returns an empty TokenUsage if the bucket has not been used.
func (t *DefaultTokenTracker) ByBucket(bucket string) TokenUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.buckets[bucket]
}

// Reset clears all tracked token usage.
func (t *DefaultTokenTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buckets = make(map[string]TokenUsage)
	t.total = TokenUsage{}
}

// Buckets returns a list of all tracked bucket names.
func (t *DefaultTokenTracker) Buckets() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	buckets := make([]string, 0, len(t.buckets))
	for b := range t.buckets {
		buckets = append(buckets, b)
	}
	return buckets
}
