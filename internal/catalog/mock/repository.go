package catalogmock

import (
	"context"

	"github.com/awesomefonts/foundry/internal/catalog"
	"github.com/awesomefonts/foundry/internal/serviceerr"
)

type Repository struct {
	families []catalog.Family
	listErr  error
}

var _ = catalog.Store(&Repository{})

func NewInMemRepository(families ...catalog.Family) *Repository {
	return &Repository{families: families}
}

func WithListError(err error) *Repository {
	return &Repository{listErr: err}
}

func (r *Repository) List(_ context.Context) ([]catalog.Family, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.families, nil
}

func (r *Repository) Get(_ context.Context, familyID string) (catalog.Family, error) {
	for _, f := range r.families {
		if f.ID == familyID {
			return f, nil
		}
	}
	return catalog.Family{}, serviceerr.ErrNotFound
}
