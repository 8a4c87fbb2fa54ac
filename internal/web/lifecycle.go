// Package web implements the per-request lifecycle of the storefront: session
// resolution, the sign-in callback handshake, token liveness, page shell
// wrapping, and the deferred write flush.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"

	slogctx "github.com/veqryn/slog-context"

	"github.com/awesomefonts/foundry/internal/config"
	"github.com/awesomefonts/foundry/internal/hypertext"
	"github.com/awesomefonts/foundry/internal/nonce"
	"github.com/awesomefonts/foundry/internal/serviceerr"
	"github.com/awesomefonts/foundry/internal/session"
	"github.com/awesomefonts/foundry/internal/typeworld"
	"github.com/awesomefonts/foundry/internal/user"
	"github.com/awesomefonts/foundry/pkg/fingerprint"
)

// IdentityProvider is the part of the Type.World client the lifecycle needs.
type IdentityProvider interface {
	ClientID(ctx context.Context) (string, error)
	ExchangeCode(ctx context.Context, code string) (string, error)
	UserData(ctx context.Context, accessToken string) (typeworld.Profile, error)
}

// Lifecycle runs before and after every page handler. The step order is
// fixed: session resolution, nonce management, callback completion or
// rebinding, token liveness, handler, finalization.
type Lifecycle struct {
	sessions session.Store
	users    user.Store
	provider IdentityProvider
	nonces   nonce.Source

	codec          *securecookie.SecureCookie
	cookieTemplate config.CookieTemplate

	shell           *hypertext.Shell
	instanceVersion string
}

func NewLifecycle(
	sessions session.Store,
	users user.Store,
	provider IdentityProvider,
	cookieKey []byte,
	cookieTemplate config.CookieTemplate,
	shell *hypertext.Shell,
	instanceVersion string,
) (*Lifecycle, error) {
	if len(cookieKey) < 32 {
		return nil, errors.New("cookie signing key must be at least 32 bytes")
	}

	return &Lifecycle{
		sessions:        sessions,
		users:           users,
		provider:        provider,
		codec:           securecookie.New(cookieKey, nil),
		cookieTemplate:  cookieTemplate,
		shell:           shell,
		instanceVersion: instanceVersion,
	}, nil
}

// Middleware wires the lifecycle around a page handler.
func (l *Lifecycle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		st := &State{
			HTML:            &hypertext.Builder{},
			Writes:          NewUnitOfWork(),
			InstanceVersion: l.instanceVersion,
		}

		sess, err := l.resolveSession(ctx, w, r)
		if err != nil {
			slogctx.Error(ctx, "Failed to resolve a session", "error", err)
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		st.Session = sess

		l.ensureLoginCode(st)

		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")
		switch {
		case code != "" && state != "" && state == st.Session.LoginCode():
			l.completeCallback(ctx, st, code)
		case code != "" || state != "":
			// Forged or replayed callback; ignore the parameters and
			// render anonymously.
			fp, _ := fingerprint.FromHTTPRequest(r)
			slogctx.Info(ctx, "Ignoring callback with mismatched state",
				"session_id", st.Session.ID, "fingerprint", fp)
			l.rebindUser(ctx, st)
		default:
			l.rebindUser(ctx, st)
		}

		l.checkTokenLiveness(ctx, st)

		rec := newResponseRecorder()
		next.ServeHTTP(rec, r.WithContext(ContextWithState(ctx, st)))

		l.finalize(ctx, st, w, r, rec)
	})
}

// resolveSession implements session resolution: reload the session referenced
// by the signed cookie, or create and persist a fresh one. A lookup miss is
// treated like a missing cookie.
func (l *Lifecycle) resolveSession(ctx context.Context, w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if cookie, err := r.Cookie(l.cookieTemplate.Name); err == nil && cookie.Value != "" {
		var sessionID string
		if err := l.codec.Decode(l.cookieTemplate.Name, cookie.Value, &sessionID); err != nil {
			slogctx.Info(ctx, "Ignoring a malformed session cookie", "error", err)
		} else {
			sess, err := l.sessions.Load(ctx, sessionID)
			if err == nil {
				return sess, nil
			}
			if !errors.Is(err, serviceerr.ErrNotFound) {
				return nil, fmt.Errorf("loading session: %w", err)
			}
			slogctx.Info(ctx, "Session reference no longer resolves; creating a fresh session", "session_id", sessionID)
		}
	}

	sess := session.New(l.nonces.SessionID())
	if err := l.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("persisting new session: %w", err)
	}

	encoded, err := l.codec.Encode(l.cookieTemplate.Name, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("encoding session cookie: %w", err)
	}
	http.SetCookie(w, l.cookieTemplate.ToCookie(encoded))

	return sess, nil
}

// ensureLoginCode guarantees every session carries a current, unguessable
// login code before any page renders.
func (l *Lifecycle) ensureLoginCode(st *State) {
	if st.Session.LoginCode() != "" {
		return
	}

	st.Session.SetLoginCode(l.nonces.LoginCode())
	l.enqueueSessionSave(st)
}

// completeCallback walks the sign-in handshake: exchange the one-time code
// for a token, redeem the token for the account data, bind the user. Every
// failure exits silently; the visitor stays anonymous and keeps their session.
func (l *Lifecycle) completeCallback(ctx context.Context, st *State, code string) {
	token, err := l.provider.ExchangeCode(ctx, code)
	if err != nil {
		slogctx.Info(ctx, "Sign-in aborted: code exchange failed", "error", err)
		return
	}

	profile, err := l.provider.UserData(ctx, token)
	if err != nil {
		slogctx.Info(ctx, "Sign-in aborted: user data fetch failed", "error", err)
		return
	}

	u, err := l.users.GetOrCreate(ctx, profile.UserID)
	if err != nil {
		slogctx.Error(ctx, "Sign-in aborted: creating user record failed", "error", err)
		return
	}

	u.Token = token
	u.Profile = profile
	l.enqueueUserSave(st, u)

	st.Session.SetUserID(u.ID)
	l.enqueueSessionSave(st)
	st.User = u

	// Strip the one-time code and state from the visible URL so the
	// callback cannot be bookmarked or resubmitted.
	st.HTML.Script("window.history.pushState('', '', window.location.href.split('?')[0]);")

	slogctx.Info(ctx, "Completed sign-in", "user_id", u.ID)
}

// rebindUser restores the authenticated identity from the session binding
// when no callback is in progress.
func (l *Lifecycle) rebindUser(ctx context.Context, st *State) {
	userID := st.Session.UserID()
	if userID == "" {
		return
	}

	u, err := l.users.GetOrCreate(ctx, userID)
	if err != nil {
		slogctx.Error(ctx, "Failed to load the bound user", "user_id", userID, "error", err)
		return
	}

	st.User = u
}

// checkTokenLiveness revalidates the bound user's cached token against the
// provider once per request. Tokens can be revoked out-of-band; a failure
// deauthenticates without surfacing an error page.
func (l *Lifecycle) checkTokenLiveness(ctx context.Context, st *State) {
	if st.User == nil {
		return
	}

	var err error
	if !st.User.Authenticated() {
		err = serviceerr.ErrProviderRefused
	} else {
		_, err = l.provider.UserData(ctx, st.User.Token)
	}

	if err == nil {
		return
	}

	slogctx.Info(ctx, "Cached token no longer validates; dropping authentication",
		"user_id", st.User.ID, "error", err)

	if st.User.Authenticated() {
		st.User.ClearToken()
		l.enqueueUserSave(st, st.User)
	}

	st.Session.ClearUserID()
	st.Session.SetLoginCode(l.nonces.LoginCode())
	l.enqueueSessionSave(st)

	st.User = nil
}

// finalize wraps HTML bodies in the page shell and flushes the pending
// writes. It always runs, including on handler error paths.
func (l *Lifecycle) finalize(ctx context.Context, st *State, w http.ResponseWriter, r *http.Request, rec *responseRecorder) {
	contentType := rec.Header().Get("Content-Type")
	isHTML := contentType == "" || strings.Contains(contentType, "text/html")

	out := rec.body.String()
	if isHTML {
		out = st.HTML.String() + out
		if r.URL.Query().Get("inline") != "true" && !strings.Contains(out, "</body>") {
			out = l.shell.Wrap(l.pageData(ctx, st), out)
		}
	}

	if err := st.Writes.Flush(ctx); err != nil {
		slogctx.Error(ctx, "Failed to flush pending writes", "error", err)
	}

	for key, values := range rec.Header() {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	if isHTML && contentType == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(rec.status)
	if _, err := w.Write([]byte(out)); err != nil {
		slogctx.Error(ctx, "Failed to write the response", "error", err)
	}
}

// Logout deletes the session record outright, discards its pending writes,
// and expires the client cookie. The next request starts from scratch.
func (l *Lifecycle) Logout(ctx context.Context, st *State, w http.ResponseWriter) {
	if st.Session != nil {
		if err := l.sessions.Delete(ctx, st.Session.ID); err != nil {
			slogctx.Error(ctx, "Failed to delete the session", "session_id", st.Session.ID, "error", err)
		}
		st.Writes.Remove(sessionWriteKey(st.Session.ID))
	}

	st.Session = nil
	st.User = nil

	expired := l.cookieTemplate.ToCookie("")
	expired.MaxAge = -1
	http.SetCookie(w, expired)
}

func (l *Lifecycle) enqueueSessionSave(st *State) {
	sess := st.Session
	st.Writes.Enqueue(sessionWriteKey(sess.ID), func(ctx context.Context) error {
		return l.sessions.Save(ctx, sess)
	}, nil)
}

func (l *Lifecycle) enqueueUserSave(st *State, u *user.User) {
	st.Writes.Enqueue(userWriteKey(u.ID), func(ctx context.Context) error {
		return l.users.Save(ctx, u)
	}, nil)
}

func (l *Lifecycle) pageData(ctx context.Context, st *State) hypertext.PageData {
	data := hypertext.PageData{
		InstanceVersion: st.InstanceVersion,
	}

	if st.Session != nil {
		data.LoginCode = st.Session.LoginCode()
		data.CartCount = len(st.Session.Cart())
	}

	if st.User != nil {
		data.UserEmail = st.User.Profile.Account.Email
		data.UserName = st.User.Profile.Account.Name
		return data
	}

	clientID, err := l.provider.ClientID(ctx)
	if err != nil {
		slogctx.Error(ctx, "Failed to load the sign-in client id", "error", err)
		return data
	}
	data.SignInClientID = clientID

	return data
}
