package business

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/valkey-io/valkey-go"

	catalogsql "github.com/awesomefonts/foundry/internal/catalog/sql"
	sessionvalkey "github.com/awesomefonts/foundry/internal/session/valkey"
	usersql "github.com/awesomefonts/foundry/internal/user/sql"

	"github.com/awesomefonts/foundry/internal/business/server"
	"github.com/awesomefonts/foundry/internal/config"
	"github.com/awesomefonts/foundry/internal/hypertext"
	"github.com/awesomefonts/foundry/internal/secrets"
	"github.com/awesomefonts/foundry/internal/typeworld"
	"github.com/awesomefonts/foundry/internal/web"
)

// Main assembles the storefront and serves it until the context is cancelled.
func Main(ctx context.Context, cfg *config.Config) error {
	handler, closeFn, err := initStorefront(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialising the storefront: %w", err)
	}

	defer closeFn()

	return server.StartHTTPServer(ctx, cfg, handler)
}

func initStorefront(ctx context.Context, cfg *config.Config) (_ http.Handler, closeFn func(), _ error) {
	connStr, err := config.MakeConnStr(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("making dsn from config: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing pgxpool config: %w", err)
	}

	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialising pgxpool connection: %w", err)
	}

	valkeyClient, err := newValkeyClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	secretProvider, err := newSecretProvider(ctx, cfg)
	if err != nil {
		valkeyClient.Close()
		return nil, nil, err
	}

	cookieKey, err := secretProvider.Get(ctx, cfg.Storefront.CookieKeyName, 1)
	if err != nil {
		valkeyClient.Close()
		return nil, nil, fmt.Errorf("loading cookie signing key %q: %w", cfg.Storefront.CookieKeyName, err)
	}

	signIn := typeworld.NewClient(&cfg.SignIn, secretProvider, nil)

	instanceVersion := cfg.Storefront.InstanceVersion
	if instanceVersion == "" {
		instanceVersion = strconv.FormatInt(time.Now().Unix(), 10)
	}

	shell := hypertext.NewShell(cfg.SignIn.SignInURL, cfg.SignIn.Scope)

	lifecycle, err := web.NewLifecycle(
		sessionvalkey.NewRepository(valkeyClient, cfg.ValKey.Prefix),
		usersql.NewRepository(db),
		signIn,
		[]byte(cookieKey),
		cfg.Storefront.SessionCookie,
		shell,
		instanceVersion,
	)
	if err != nil {
		valkeyClient.Close()
		return nil, nil, fmt.Errorf("creating the page lifecycle: %w", err)
	}

	handlers := web.NewHandlers(lifecycle, catalogsql.NewRepository(db))

	return web.NewRouter(handlers, lifecycle, cfg.Storefront.StaticDir), valkeyClient.Close, nil
}

func newValkeyClient(cfg *config.Config) (valkey.Client, error) {
	valkeyHost, err := commoncfg.LoadValueFromSourceRef(cfg.ValKey.Host)
	if err != nil {
		return nil, fmt.Errorf("loading valkey host: %w", err)
	}

	valkeyUsername, err := commoncfg.LoadValueFromSourceRef(cfg.ValKey.User)
	if err != nil {
		return nil, fmt.Errorf("loading valkey username: %w", err)
	}

	valkeyPassword, err := commoncfg.LoadValueFromSourceRef(cfg.ValKey.Password)
	if err != nil {
		return nil, fmt.Errorf("loading valkey password: %w", err)
	}

	valkeyClient, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{string(valkeyHost)},
		Username:    string(valkeyUsername),
		Password:    string(valkeyPassword),
	})
	if err != nil {
		return nil, fmt.Errorf("creating a new valkey client: %w", err)
	}

	return valkeyClient, nil
}

func newSecretProvider(ctx context.Context, cfg *config.Config) (secrets.Provider, error) {
	var (
		provider secrets.Provider
		err      error
	)

	switch cfg.Secrets.Backend {
	case "gcp":
		provider, err = secrets.NewGCP(ctx, cfg.Secrets.ProjectID, cfg.Secrets.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("creating GCP secret provider: %w", err)
		}
	case "static":
		provider = secrets.NewStatic(cfg.Secrets.Static)
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", cfg.Secrets.Backend)
	}

	return secrets.NewCached(provider, cfg.Secrets.CacheTTL), nil
}
