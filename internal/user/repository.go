package user

import "context"

// Store persists user records. GetOrCreate is idempotent: the first call for
// a given provider user id inserts the record, every later call returns it.
type Store interface {
	Load(ctx context.Context, userID string) (*User, error)
	GetOrCreate(ctx context.Context, userID string) (*User, error)
	Save(ctx context.Context, user *User) error
}
