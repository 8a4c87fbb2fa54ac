package secrets

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached decorates a Provider with a TTL cache so that every page render
// does not round-trip to the secret backend.
type Cached struct {
	next  Provider
	cache *gocache.Cache
}

func NewCached(next Provider, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cached) Get(ctx context.Context, name string, version int) (string, error) {
	key := fmt.Sprintf("%s/%d", name, version)
	if value, ok := c.cache.Get(key); ok {
		//nolint:forcetypeassert
		return value.(string), nil
	}

	value, err := c.next.Get(ctx, name, version)
	if err != nil {
		return "", err
	}

	c.cache.Set(key, value, gocache.DefaultExpiration)

	return value, nil
}
