// Package config defines the necessary types to configure the application.
// An example config file config.yaml is provided in the repository.
package config

import (
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
)

type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash" yaml:",inline"`

	HTTP HTTPServer `yaml:"http"`

	Database   Database   `yaml:"database"`
	ValKey     ValKey     `yaml:"valkey"`
	Secrets    Secrets    `yaml:"secrets"`
	SignIn     SignIn     `yaml:"signIn"`
	Storefront Storefront `yaml:"storefront"`
	Migrate    Migrate    `yaml:"migrate"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"5s"`
}

type Database struct {
	Name     string              `yaml:"name"`
	Port     string              `yaml:"port"`
	Host     commoncfg.SourceRef `yaml:"host"`
	User     commoncfg.SourceRef `yaml:"user"`
	Password commoncfg.SourceRef `yaml:"password"`
}

type ValKey struct {
	Host     commoncfg.SourceRef `yaml:"host"`
	User     commoncfg.SourceRef `yaml:"user"`
	Password commoncfg.SourceRef `yaml:"password"`
	Prefix   string              `yaml:"prefix" default:"foundry"`
}

// Secrets selects the secret backend. The gcp backend talks to Google Cloud
// Secret Manager; the static backend serves values straight from this config
// and is meant for local development and tests.
type Secrets struct {
	Backend         string            `yaml:"backend" default:"static"`
	ProjectID       string            `yaml:"projectID"`
	CredentialsFile string            `yaml:"credentialsFile"`
	CacheTTL        time.Duration     `yaml:"cacheTTL" default:"5m"`
	Static          map[string]string `yaml:"static"`
}

// SignIn configures the Type.World sign-in integration. The client id and
// client secret are not stored in the config file; they are fetched from the
// secret backend under the given names.
type SignIn struct {
	SignInURL        string        `yaml:"signInURL" default:"https://type.world/signin"`
	TokenURL         string        `yaml:"tokenURL" default:"https://type.world/signin/api/getToken/"`
	UserDataURL      string        `yaml:"userDataURL" default:"https://type.world/signin/api/getUserData/"`
	RedirectURI      string        `yaml:"redirectURI" default:"http://0.0.0.0:8080"`
	Scope            string        `yaml:"scope" default:"account"`
	ClientIDName     string        `yaml:"clientIDName" default:"TYPEWORLD_SIGNIN_CLIENTID"`
	ClientSecretName string        `yaml:"clientSecretName" default:"TYPEWORLD_SIGNIN_CLIENTSECRET"`
	RequestTimeout   time.Duration `yaml:"requestTimeout" default:"10s"`
}

type Storefront struct {
	SessionCookie CookieTemplate `yaml:"sessionCookie"`

	// CookieKeyName is the secret holding the HMAC key that signs the
	// session reference cookie.
	CookieKeyName string `yaml:"cookieKeyName" default:"SESSION_COOKIE_KEY"`

	// InstanceVersion is appended to static asset URLs for cache busting.
	// When empty, the process start time is used.
	InstanceVersion string `yaml:"instanceVersion"`

	StaticDir string `yaml:"staticDir" default:"./static"`
}

type Migrate struct {
	Source string `yaml:"source" default:"file://./sql"`
}
