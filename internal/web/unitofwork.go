package web

import (
	"context"
	"errors"
	"fmt"
)

type pendingWrite struct {
	key       string
	save      func(ctx context.Context) error
	afterSave func()
}

// UnitOfWork buffers entity writes during a request and flushes them once,
// after the handler body has run. Enqueueing the same key twice keeps a
// single write, so a request that both rotates the nonce and binds a user
// persists one combined session state.
type UnitOfWork struct {
	order  []string
	writes map[string]pendingWrite
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		writes: make(map[string]pendingWrite),
	}
}

// Enqueue registers a write under a stable key. afterSave may be nil.
func (u *UnitOfWork) Enqueue(key string, save func(ctx context.Context) error, afterSave func()) {
	if _, ok := u.writes[key]; !ok {
		u.order = append(u.order, key)
	}
	u.writes[key] = pendingWrite{key: key, save: save, afterSave: afterSave}
}

// Remove drops a pending write, e.g. for a session record that has just been
// deleted by logout.
func (u *UnitOfWork) Remove(key string) {
	if _, ok := u.writes[key]; !ok {
		return
	}
	delete(u.writes, key)
	for i, k := range u.order {
		if k == key {
			u.order = append(u.order[:i], u.order[i+1:]...)
			break
		}
	}
}

func (u *UnitOfWork) Len() int {
	return len(u.writes)
}

// Flush persists every pending write, runs the post-write hooks of the
// writes that succeeded, and clears the queue. An empty queue is a no-op.
func (u *UnitOfWork) Flush(ctx context.Context) error {
	if len(u.writes) == 0 {
		return nil
	}

	var errs []error
	var flushed []pendingWrite
	for _, key := range u.order {
		write := u.writes[key]
		if err := write.save(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flushing %s: %w", key, err))
			continue
		}
		flushed = append(flushed, write)
	}

	for _, write := range flushed {
		if write.afterSave != nil {
			write.afterSave()
		}
	}

	u.order = nil
	u.writes = make(map[string]pendingWrite)

	return errors.Join(errs...)
}

func sessionWriteKey(sessionID string) string {
	return "session/" + sessionID
}

func userWriteKey(userID string) string {
	return "user/" + userID
}
