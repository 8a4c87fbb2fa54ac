package web

import (
	"context"
	"errors"

	"github.com/awesomefonts/foundry/internal/hypertext"
	"github.com/awesomefonts/foundry/internal/session"
	"github.com/awesomefonts/foundry/internal/user"
)

// Using an unexported type prevents key collisions from other packages.
type stateKey string

const requestStateKey stateKey = "request-state"

// State is the request-scoped bag threaded through the lifecycle and the
// page handlers: exactly one session, the bound user (nil while anonymous),
// markup emitted by the lifecycle itself, and the pending writes.
type State struct {
	Session *session.Session
	User    *user.User

	// HTML collects markup the lifecycle emits ahead of the page body,
	// such as the history-rewrite script after a completed sign-in. It is
	// prepended to the handler's output during finalization.
	HTML *hypertext.Builder

	Writes *UnitOfWork

	InstanceVersion string
}

func ContextWithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, requestStateKey, st)
}

// StateFromContext retrieves the request state set by the lifecycle
// middleware.
func StateFromContext(ctx context.Context) (*State, error) {
	st, ok := ctx.Value(requestStateKey).(*State)
	if !ok {
		return nil, errors.New("request state not found in context")
	}
	return st, nil
}
