package typeworld_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomefonts/foundry/internal/config"
	"github.com/awesomefonts/foundry/internal/secrets"
	"github.com/awesomefonts/foundry/internal/serviceerr"
	"github.com/awesomefonts/foundry/internal/typeworld"
)

func testSecrets() secrets.Provider {
	return secrets.NewStatic(map[string]string{
		"TYPEWORLD_SIGNIN_CLIENTID":     "client-id",
		"TYPEWORLD_SIGNIN_CLIENTSECRET": "client-secret",
	})
}

func newClient(t *testing.T, tokenHandler, userDataHandler http.HandlerFunc) *typeworld.Client {
	t.Helper()

	mux := http.NewServeMux()
	if tokenHandler != nil {
		mux.HandleFunc("/api/getToken/", tokenHandler)
	}
	if userDataHandler != nil {
		mux.HandleFunc("/api/getUserData/", userDataHandler)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.SignIn{
		TokenURL:         srv.URL + "/api/getToken/",
		UserDataURL:      srv.URL + "/api/getUserData/",
		RedirectURI:      "http://0.0.0.0:8080",
		ClientIDName:     "TYPEWORLD_SIGNIN_CLIENTID",
		ClientSecretName: "TYPEWORLD_SIGNIN_CLIENTSECRET",
		RequestTimeout:   5 * time.Second,
	}

	return typeworld.NewClient(cfg, testSecrets(), nil)
}

func TestExchangeCode(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantToken string
		errAssert assert.ErrorAssertionFunc
	}{
		{
			name: "Success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
				assert.Equal(t, "one-time-code", r.PostForm.Get("code"))
				assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
				assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
				assert.Equal(t, "http://0.0.0.0:8080", r.PostForm.Get("redirect_uri"))

				_ = json.NewEncoder(w).Encode(map[string]string{
					"status":       "success",
					"access_token": "the-access-token",
				})
			},
			wantToken: "the-access-token",
			errAssert: assert.NoError,
		},
		{
			name: "Provider refuses",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "fail"})
			},
			errAssert: func(t assert.TestingT, err error, _ ...any) bool {
				return assert.True(t, errors.Is(err, serviceerr.ErrProviderRefused))
			},
		},
		{
			name: "HTTP error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			errAssert: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, tt.handler, nil)

			token, err := client.ExchangeCode(t.Context(), "one-time-code")
			if !tt.errAssert(t, err) || err != nil {
				return
			}

			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestUserData(t *testing.T) {
	client := newClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer the-access-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"user_id": "user-1234",
				"account": map[string]string{
					"name":  "John Doe",
					"email": "johndoe@gmail.com",
				},
			},
		})
	})

	profile, err := client.UserData(t.Context(), "the-access-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1234", profile.UserID)
	assert.Equal(t, "John Doe", profile.Account.Name)
	assert.Equal(t, "johndoe@gmail.com", profile.Account.Email)
	assert.NotEmpty(t, profile.Raw)
}

func TestUserDataRevokedToken(t *testing.T) {
	client := newClient(t, nil, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "fail"})
	})

	_, err := client.UserData(t.Context(), "revoked")
	assert.True(t, errors.Is(err, serviceerr.ErrProviderRefused))
}
