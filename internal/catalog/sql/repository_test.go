package catalogsql_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogsql "github.com/awesomefonts/foundry/internal/catalog/sql"
	"github.com/awesomefonts/foundry/internal/dbtest/postgrestest"
	"github.com/awesomefonts/foundry/internal/serviceerr"
)

func startPostgres(t *testing.T) *catalogsql.Repository {
	t.Helper()

	if os.Getenv("FOUNDRY_INTEGRATION") == "" {
		t.Skip("set FOUNDRY_INTEGRATION to run container-backed tests")
	}

	pool, _, terminate := postgrestest.Start(context.Background())
	t.Cleanup(func() {
		pool.Close()
		terminate(context.Background())
	})

	return catalogsql.NewRepository(pool)
}

func TestListSeededCatalog(t *testing.T) {
	repo := startPostgres(t)

	families, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, families, 3)

	// Ordered by name.
	assert.Equal(t, "Grandiose", families[0].Name)
	assert.Equal(t, "Humble Sans", families[1].Name)
	assert.Equal(t, "Typography Pro", families[2].Name)
}

func TestGet(t *testing.T) {
	repo := startPostgres(t)

	f, err := repo.Get(context.Background(), "grandiose")
	require.NoError(t, err)
	assert.Equal(t, "Grandiose", f.Name)
	assert.Equal(t, "Jan Gerner", f.Designer)
	assert.EqualValues(t, 4900, f.PriceCents)
}

func TestGetMissing(t *testing.T) {
	repo := startPostgres(t)

	_, err := repo.Get(context.Background(), "no-such-family")
	assert.ErrorIs(t, err, serviceerr.ErrNotFound)
}
