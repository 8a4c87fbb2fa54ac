// Package catalog holds the font families the foundry sells.
package catalog

import "context"

type Family struct {
	ID         string
	Name       string
	Designer   string
	PriceCents int64
}

type Store interface {
	List(ctx context.Context) ([]Family, error)
	Get(ctx context.Context, familyID string) (Family, error)
}
