package usermock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/awesomefonts/foundry/internal/serviceerr"
	"github.com/awesomefonts/foundry/internal/user"
)

type RepositoryOption func(*Repository)

// Repository is an in-memory user.Store for tests.
type Repository struct {
	users map[string][]byte

	loadErr, getOrCreateErr, saveErr error
}

func WithUser(u *user.User) RepositoryOption {
	return func(r *Repository) {
		bytes, _ := json.Marshal(u)
		r.users[u.ID] = bytes
	}
}

func WithLoadError(err error) RepositoryOption {
	return func(r *Repository) { r.loadErr = err }
}

func WithGetOrCreateError(err error) RepositoryOption {
	return func(r *Repository) { r.getOrCreateErr = err }
}

func WithSaveError(err error) RepositoryOption {
	return func(r *Repository) { r.saveErr = err }
}

var _ = user.Store(&Repository{})

func NewInMemRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{
		users: make(map[string][]byte),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) Load(_ context.Context, userID string) (*user.User, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.decode(userID)
}

func (r *Repository) GetOrCreate(_ context.Context, userID string) (*user.User, error) {
	if r.getOrCreateErr != nil {
		return nil, r.getOrCreateErr
	}
	if _, ok := r.users[userID]; !ok {
		u := &user.User{ID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		bytes, _ := json.Marshal(u)
		r.users[userID] = bytes
	}
	return r.decode(userID)
}

func (r *Repository) Save(_ context.Context, u *user.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	bytes, err := json.Marshal(u)
	if err != nil {
		return err
	}
	r.users[u.ID] = bytes
	return nil
}

// Get returns the stored user or nil; it lets tests inspect persisted state
// without going through Load's error options.
func (r *Repository) Get(userID string) *user.User {
	u, err := r.decode(userID)
	if err != nil {
		return nil
	}
	return u
}

func (r *Repository) decode(userID string) (*user.User, error) {
	bytes, ok := r.users[userID]
	if !ok {
		return nil, serviceerr.ErrNotFound
	}
	var u user.User
	if err := json.Unmarshal(bytes, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
