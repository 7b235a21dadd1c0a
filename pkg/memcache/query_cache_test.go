package mem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCache_GetOrLoad(t *testing.T) {
	cache := NewQueryCache[[]string]()
	calls := 0
	load := func(_ context.Context, q string) ([]string, error) {
		calls++
		return []string{q}, nil
	}

	first, err := cache.GetOrLoad(context.Background(), "  Linen Shirt Jaipur ", load)
	require.NoError(t, err)
	second, err := cache.GetOrLoad(context.Background(), "linen shirt jaipur", load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestQueryCache_ErrorsAreNotCached(t *testing.T) {
	cache := NewQueryCache[int]()
	boom := errors.New("quota")
	_, err := cache.GetOrLoad(context.Background(), "q", func(context.Context, string) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok := cache.Peek("q")
	assert.False(t, ok)
}
