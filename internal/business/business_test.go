package business

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomefonts/foundry/internal/config"
)

func TestNewSecretProvider_Static(t *testing.T) {
	cfg := &config.Config{
		Secrets: config.Secrets{
			Backend:  "static",
			CacheTTL: time.Minute,
			Static: map[string]string{
				"SESSION_COOKIE_KEY": "0123456789abcdef0123456789abcdef",
			},
		},
	}

	provider, err := newSecretProvider(context.Background(), cfg)
	require.NoError(t, err)

	got, err := provider.Get(context.Background(), "SESSION_COOKIE_KEY", 1)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", got)
}

func TestNewSecretProvider_UnknownBackend(t *testing.T) {
	cfg := &config.Config{
		Secrets: config.Secrets{
			Backend: "vault",
		},
	}

	_, err := newSecretProvider(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown secrets backend")
}
