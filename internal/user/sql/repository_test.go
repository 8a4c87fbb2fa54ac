package usersql_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomefonts/foundry/internal/dbtest/postgrestest"
	"github.com/awesomefonts/foundry/internal/serviceerr"
	"github.com/awesomefonts/foundry/internal/typeworld"
	usersql "github.com/awesomefonts/foundry/internal/user/sql"
)

func startPostgres(t *testing.T) *usersql.Repository {
	t.Helper()

	if os.Getenv("FOUNDRY_INTEGRATION") == "" {
		t.Skip("set FOUNDRY_INTEGRATION to run container-backed tests")
	}

	pool, _, terminate := postgrestest.Start(context.Background())
	t.Cleanup(func() {
		pool.Close()
		terminate(context.Background())
	})

	return usersql.NewRepository(pool)
}

func TestGetOrCreate(t *testing.T) {
	repo := startPostgres(t)
	ctx := context.Background()

	created, err := repo.GetOrCreate(ctx, "user-one")
	require.NoError(t, err)
	assert.Equal(t, "user-one", created.ID)
	assert.Empty(t, created.Token)
	assert.False(t, created.Authenticated())

	// A second call must return the existing row, not a fresh one.
	again, err := repo.GetOrCreate(ctx, "user-one")
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, again.CreatedAt)
}

func TestSaveAndLoad(t *testing.T) {
	repo := startPostgres(t)
	ctx := context.Background()

	u, err := repo.GetOrCreate(ctx, "user-two")
	require.NoError(t, err)

	u.Token = "access-token"
	u.Profile = typeworld.Profile{
		UserID: "user-two",
		Account: typeworld.Account{
			Name:  "Jan Gerner",
			Email: "jan@example.com",
		},
	}
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.Load(ctx, "user-two")
	require.NoError(t, err)
	assert.Equal(t, "access-token", got.Token)
	assert.True(t, got.Authenticated())
	assert.Equal(t, "jan@example.com", got.Profile.Account.Email)
}

func TestSaveClearedToken(t *testing.T) {
	repo := startPostgres(t)
	ctx := context.Background()

	u, err := repo.GetOrCreate(ctx, "user-three")
	require.NoError(t, err)

	u.Token = "access-token"
	require.NoError(t, repo.Save(ctx, u))

	u.ClearToken()
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.Load(ctx, "user-three")
	require.NoError(t, err)
	assert.Empty(t, got.Token)
	assert.False(t, got.Authenticated())
}

func TestLoadMissing(t *testing.T) {
	repo := startPostgres(t)

	_, err := repo.Load(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, serviceerr.ErrNotFound)
}
