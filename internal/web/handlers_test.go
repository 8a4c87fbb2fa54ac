package web_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomefonts/foundry/internal/catalog"
	catalogmock "github.com/awesomefonts/foundry/internal/catalog/mock"
	"github.com/awesomefonts/foundry/internal/config"
	"github.com/awesomefonts/foundry/internal/hypertext"
	"github.com/awesomefonts/foundry/internal/session"
	sessionmock "github.com/awesomefonts/foundry/internal/session/mock"
	"github.com/awesomefonts/foundry/internal/typeworld"
	usermock "github.com/awesomefonts/foundry/internal/user/mock"
	"github.com/awesomefonts/foundry/internal/web"
)

type storefront struct {
	sessions *sessionmock.Repository
	users    *usermock.Repository
	provider *fakeProvider
	router   http.Handler
}

func newStorefront(t *testing.T, provider *fakeProvider) *storefront {
	t.Helper()

	sessions := sessionmock.NewInMemRepository()
	users := usermock.NewInMemRepository()

	shell := hypertext.NewShell("https://type.world/signin", "account")
	lifecycle, err := web.NewLifecycle(
		sessions, users, provider,
		[]byte(testCookieKey),
		config.CookieTemplate{Name: "awesomefonts", Path: "/"},
		shell,
		"test-version",
	)
	require.NoError(t, err)

	families := catalogmock.NewInMemRepository(
		catalog.Family{ID: "grandiose", Name: "Grandiose", Designer: "Jane Doe", PriceCents: 4900},
		catalog.Family{ID: "humble-sans", Name: "Humble Sans", Designer: "John Doe", PriceCents: 2500},
	)

	handlers := web.NewHandlers(lifecycle, families)

	return &storefront{
		sessions: sessions,
		users:    users,
		provider: provider,
		router:   web.NewRouter(handlers, lifecycle, ""),
	}
}

func (s *storefront) do(t *testing.T, method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	return w
}

func TestIndexAnonymous(t *testing.T) {
	s := newStorefront(t, &fakeProvider{clientID: "client-id"})

	w := s.do(t, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to Awesome Fonts")
	assert.NotContains(t, w.Body.String(), "Hello ")
}

func TestIndexSignedIn(t *testing.T) {
	provider := &fakeProvider{
		clientID:      "client-id",
		exchangeToken: "tok",
		profiles:      map[string]typeworld.Profile{"tok": testProfile()},
	}
	s := newStorefront(t, provider)

	first := s.do(t, http.MethodGet, "/")
	cookie := sessionCookie(t, first)
	loginCode := storedSession(t, s.sessions).LoginCode()

	w := s.do(t, http.MethodGet, "/?code=one-time&state="+url.QueryEscape(loginCode), cookie)
	assert.Contains(t, w.Body.String(), "Hello John Doe")
}

func TestFontsPageListsCatalog(t *testing.T) {
	s := newStorefront(t, &fakeProvider{clientID: "client-id"})

	w := s.do(t, http.MethodGet, "/fonts")
	body := w.Body.String()
	assert.Contains(t, body, "Grandiose")
	assert.Contains(t, body, "Humble Sans")
	assert.Contains(t, body, "$49.00")
}

func TestCartAddAndIndicator(t *testing.T) {
	s := newStorefront(t, &fakeProvider{clientID: "client-id"})

	first := s.do(t, http.MethodGet, "/")
	cookie := sessionCookie(t, first)

	w := s.do(t, http.MethodPost, "/cart/add?family=grandiose", cookie)
	assert.Contains(t, w.Body.String(), "location.reload();")

	// adding twice keeps one item
	s.do(t, http.MethodPost, "/cart/add?family=grandiose", cookie)

	page := s.do(t, http.MethodGet, "/cart", cookie)
	body := page.Body.String()
	assert.Contains(t, body, "Grandiose")
	assert.Contains(t, body, `<span class="cartindicator">1</span>`)
}

func TestCartAddUnknownFamily(t *testing.T) {
	s := newStorefront(t, &fakeProvider{clientID: "client-id"})

	first := s.do(t, http.MethodGet, "/")
	cookie := sessionCookie(t, first)

	w := s.do(t, http.MethodPost, "/cart/add?family=nope", cookie)
	assert.Contains(t, w.Body.String(), "warning('Unknown font family');")

	page := s.do(t, http.MethodGet, "/cart", cookie)
	assert.Contains(t, page.Body.String(), "Your cart is empty.")
}

func TestAccountPage(t *testing.T) {
	s := newStorefront(t, &fakeProvider{clientID: "client-id"})

	w := s.do(t, http.MethodGet, "/account")
	assert.Contains(t, w.Body.String(), "Please sign in")
}

func TestLogoutDeletesSession(t *testing.T) {
	provider := &fakeProvider{
		clientID:      "client-id",
		exchangeToken: "tok",
		profiles:      map[string]typeworld.Profile{"tok": testProfile()},
	}
	s := newStorefront(t, provider)

	first := s.do(t, http.MethodGet, "/")
	cookie := sessionCookie(t, first)
	loginCode := storedSession(t, s.sessions).LoginCode()

	s.do(t, http.MethodGet, "/?code=one-time&state="+url.QueryEscape(loginCode), cookie)
	require.Equal(t, 1, s.sessions.Len())

	w := s.do(t, http.MethodPost, "/logout", cookie)
	assert.Contains(t, w.Body.String(), "location.reload();")
	assert.Zero(t, s.sessions.Len(), "the session record is deleted, not just cleared")

	var expired bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "awesomefonts" && c.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired, "the client-side session reference is cleared")

	// the old reference now behaves like no cookie at all
	again := s.do(t, http.MethodGet, "/", cookie)
	assert.NotNil(t, sessionCookie(t, again))
	assert.Equal(t, 1, s.sessions.Len())
	assert.Contains(t, again.Body.String(), "Welcome to Awesome Fonts")
	assert.NotContains(t, again.Body.String(), "Hello John Doe")
}

// storedSession returns the single session in the mock store.
func storedSession(t *testing.T, sessions *sessionmock.Repository) *session.Session {
	t.Helper()

	ids := sessions.IDs()
	require.Len(t, ids, 1)
	s := sessions.Get(ids[0])
	require.NotNil(t, s)
	return s
}
