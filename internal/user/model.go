package user

import (
	"time"

	"github.com/awesomefonts/foundry/internal/typeworld"
)

// User is the cached copy of a Type.World identity, keyed by the provider's
// user id. A user record is never deleted; logging out only unbinds the
// session.
type User struct {
	ID string `json:"id"`

	// Token is the cached provider access token. Empty means the user is
	// not authenticated with the provider.
	Token string `json:"token"`

	Profile typeworld.Profile `json:"profile"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Authenticated() bool {
	return u != nil && u.Token != ""
}

// ClearToken invalidates the cached provider token.
func (u *User) ClearToken() {
	u.Token = ""
}
