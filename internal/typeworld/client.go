// Package typeworld implements the client side of the Type.World sign-in
// service: exchanging an authorization code for an access token and redeeming
// that token for the user's account data.
package typeworld

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/awesomefonts/foundry/internal/config"
	"github.com/awesomefonts/foundry/internal/secrets"
	"github.com/awesomefonts/foundry/internal/serviceerr"
)

const statusSuccess = "success"

type Client struct {
	tokenURL     string
	userDataURL  string
	redirectURI  string
	clientIDName string
	secretName   string

	secrets    secrets.Provider
	httpClient *http.Client
}

// Profile is the account payload returned by the provider's user-data
// endpoint.
type Profile struct {
	UserID  string  `json:"user_id"`
	Account Account `json:"account"`

	// Raw preserves the full payload for rendering.
	Raw json.RawMessage `json:"-"`
}

type Account struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Status      string `json:"status"`
	AccessToken string `json:"access_token"`
}

type userDataResponse struct {
	Status string  `json:"status"`
	Data   Profile `json:"data"`
}

func NewClient(cfg *config.SignIn, secretProvider secrets.Provider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &Client{
		tokenURL:     cfg.TokenURL,
		userDataURL:  cfg.UserDataURL,
		redirectURI:  cfg.RedirectURI,
		clientIDName: cfg.ClientIDName,
		secretName:   cfg.ClientSecretName,
		secrets:      secretProvider,
		httpClient:   httpClient,
	}
}

// ClientID returns the public sign-in client id, needed by the page shell to
// build the sign-in link.
func (c *Client) ClientID(ctx context.Context) (string, error) {
	return c.secrets.Get(ctx, c.clientIDName, 1)
}

// ExchangeCode redeems a one-time authorization code for an access token.
// A provider response with status "fail" yields serviceerr.ErrProviderRefused.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	clientID, err := c.secrets.Get(ctx, c.clientIDName, 1)
	if err != nil {
		return "", fmt.Errorf("loading client id: %w", err)
	}

	clientSecret, err := c.secrets.Get(ctx, c.secretName, 1)
	if err != nil {
		return "", fmt.Errorf("loading client secret: %w", err)
	}

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", c.redirectURI)
	data.Set("client_id", clientID)
	data.Set("client_secret", clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed with status: %d", resp.StatusCode)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if tokens.Status != statusSuccess {
		return "", serviceerr.ErrProviderRefused
	}

	return tokens.AccessToken, nil
}

// UserData fetches the account data behind an access token. It doubles as
// the token liveness check: a "fail" status means the token has been revoked
// or expired out-of-band.
func (c *Client) UserData(ctx context.Context, accessToken string) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.userDataURL, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("user data request failed with status: %d", resp.StatusCode)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Profile{}, fmt.Errorf("decoding response: %w", err)
	}

	var userData userDataResponse
	if err := json.Unmarshal(body, &userData); err != nil {
		return Profile{}, fmt.Errorf("decoding user data: %w", err)
	}

	if userData.Status != statusSuccess {
		return Profile{}, serviceerr.ErrProviderRefused
	}

	profile := userData.Data
	profile.Raw = body

	return profile, nil
}
