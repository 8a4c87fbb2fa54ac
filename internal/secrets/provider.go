// Package secrets abstracts access to named secrets such as signing keys and
// the Type.World client credentials.
package secrets

import "context"

// Provider fetches a named secret version. Implementations must return
// serviceerr.ErrNotFound when the secret or version does not exist.
type Provider interface {
	Get(ctx context.Context, name string, version int) (string, error)
}
