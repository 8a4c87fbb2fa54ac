// Package sessionvalkey stores sessions in ValKey. ValKey reads always
// reflect the most recent committed write, which gives session resolution the
// strong consistency it requires.
package sessionvalkey

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/awesomefonts/foundry/internal/session"
)

const objectTypeSession = "session"

type Repository struct {
	store *store
}

func NewRepository(valkeyClient valkey.Client, prefix string) *Repository {
	return &Repository{
		store: newStore(valkeyClient, prefix),
	}
}

func (r *Repository) Load(ctx context.Context, sessionID string) (*session.Session, error) {
	var s session.Session
	if err := r.store.Get(ctx, objectTypeSession, sessionID, &s); err != nil {
		return nil, fmt.Errorf("getting session from store: %w", err)
	}

	return &s, nil
}

func (r *Repository) Save(ctx context.Context, s *session.Session) error {
	if err := r.store.Set(ctx, objectTypeSession, s.ID, s); err != nil {
		return fmt.Errorf("setting session into storage: %w", err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	if err := r.store.Destroy(ctx, objectTypeSession, sessionID); err != nil {
		return fmt.Errorf("deleting session from store: %w", err)
	}

	return nil
}
