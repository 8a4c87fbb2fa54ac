package sessionmock

import (
	"context"
	"encoding/json"

	"github.com/awesomefonts/foundry/internal/serviceerr"
	"github.com/awesomefonts/foundry/internal/session"
)

type RepositoryOption func(*Repository)

// Repository is an in-memory session.Store for tests. Sessions are stored as
// JSON copies so that mutations after Save do not leak into the store, the
// same way a real backend behaves.
type Repository struct {
	sessions map[string][]byte

	loadErr, saveErr, deleteErr error
}

func WithSession(s *session.Session) RepositoryOption {
	return func(r *Repository) {
		bytes, _ := json.Marshal(s)
		r.sessions[s.ID] = bytes
	}
}

func WithLoadError(err error) RepositoryOption {
	return func(r *Repository) { r.loadErr = err }
}

func WithSaveError(err error) RepositoryOption {
	return func(r *Repository) { r.saveErr = err }
}

func WithDeleteError(err error) RepositoryOption {
	return func(r *Repository) { r.deleteErr = err }
}

var _ = session.Store(&Repository{})

func NewInMemRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{
		sessions: make(map[string][]byte),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) Load(_ context.Context, sessionID string) (*session.Session, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	bytes, ok := r.sessions[sessionID]
	if !ok {
		return nil, serviceerr.ErrNotFound
	}
	var s session.Session
	if err := json.Unmarshal(bytes, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Save(_ context.Context, s *session.Session) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	bytes, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.sessions[s.ID] = bytes
	return nil
}

func (r *Repository) Delete(_ context.Context, sessionID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.sessions[sessionID]; !ok {
		return serviceerr.ErrNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

// Len reports how many sessions are stored.
func (r *Repository) Len() int {
	return len(r.sessions)
}

// IDs lists the stored session IDs.
func (r *Repository) IDs() []string {
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Get returns the stored session or nil; it lets tests inspect persisted
// state without going through Load's error options.
func (r *Repository) Get(sessionID string) *session.Session {
	bytes, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	var s session.Session
	if err := json.Unmarshal(bytes, &s); err != nil {
		return nil
	}
	return &s
}
