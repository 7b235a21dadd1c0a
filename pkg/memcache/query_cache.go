// pkg/mem/query_cache.go
package mem

import (
	"context"
	"strings"
	"sync"
)

// QueryCache memoizes lookups by normalized query string. A cache is meant to
// live for one pipeline call; it is never shared between requests.
type QueryCache[V any] struct {
	mu   sync.RWMutex
	data map[string]V
}

func NewQueryCache[V any]() *QueryCache[V] {
	return &QueryCache[V]{
		data: make(map[string]V),
	}
}

// NormalizeKey lower-cases and trims a query.
func NormalizeKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func (s *QueryCache[V]) Peek(query string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[NormalizeKey(query)]
	return v, ok
}

func (s *QueryCache[V]) Set(query string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[NormalizeKey(query)] = value
}

// GetOrLoad returns the cached value for query or stores whatever load returns.
// A load error is not cached.
func (s *QueryCache[V]) GetOrLoad(ctx context.Context, query string, load func(ctx context.Context, query string) (V, error)) (V, error) {
	if v, ok := s.Peek(query); ok {
		return v, nil
	}
	v, err := load(ctx, query)
	if err != nil {
		return v, err
	}
	s.Set(query, v)
	return v, nil
}

func (s *QueryCache[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
