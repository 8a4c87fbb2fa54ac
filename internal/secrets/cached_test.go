package secrets_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomefonts/foundry/internal/secrets"
	"github.com/awesomefonts/foundry/internal/serviceerr"
)

type countingProvider struct {
	next  secrets.Provider
	calls int
}

func (c *countingProvider) Get(ctx context.Context, name string, version int) (string, error) {
	c.calls++
	return c.next.Get(ctx, name, version)
}

func TestStatic(t *testing.T) {
	provider := secrets.NewStatic(map[string]string{
		"SESSION_COOKIE_KEY": "super-secret",
	})

	value, err := provider.Get(t.Context(), "SESSION_COOKIE_KEY", 1)
	require.NoError(t, err)
	assert.Equal(t, "super-secret", value)

	_, err = provider.Get(t.Context(), "MISSING", 1)
	assert.True(t, errors.Is(err, serviceerr.ErrNotFound))

	_, err = provider.Get(t.Context(), "SESSION_COOKIE_KEY", 2)
	assert.True(t, errors.Is(err, serviceerr.ErrNotFound))
}

func TestCached(t *testing.T) {
	counting := &countingProvider{
		next: secrets.NewStatic(map[string]string{"KEY": "value"}),
	}
	provider := secrets.NewCached(counting, time.Minute)

	for range 3 {
		value, err := provider.Get(t.Context(), "KEY", 1)
		require.NoError(t, err)
		assert.Equal(t, "value", value)
	}

	assert.Equal(t, 1, counting.calls)

	// misses are not cached
	_, err := provider.Get(t.Context(), "MISSING", 1)
	assert.Error(t, err)
	_, err = provider.Get(t.Context(), "MISSING", 1)
	assert.Error(t, err)
	assert.Equal(t, 3, counting.calls)
}
