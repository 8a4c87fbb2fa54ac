package session

import "context"

// Store persists sessions. Load must be strongly consistent: auth state
// correctness depends on reading the most recent committed write.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
}
