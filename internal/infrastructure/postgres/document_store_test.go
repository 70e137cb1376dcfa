package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costbook-api/internal/domain/repository"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Costbook-api/pkg/config"
)

// Requiere una base real: COSTBOOK_TEST_DATABASE_URL=postgres://...
func TestDocumentStore_Integracion(t *testing.T) {
	dsn := os.Getenv("COSTBOOK_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("COSTBOOK_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, pool))

	s := postgres.NewDocumentStore(pool, 2)
	defer s.Close()
	require.NoError(t, s.Discard(ctx, repository.CollectionCategories))

	raw, err := s.Load(ctx, repository.CollectionCategories)
	require.NoError(t, err)
	assert.Nil(t, raw)

	for _, doc := range []string{`["a"]`, `["a","b"]`, `["食材"]`} {
		require.NoError(t, s.Save(ctx, repository.CollectionCategories, []byte(doc)))
	}
	raw, err = s.Load(ctx, repository.CollectionCategories)
	require.NoError(t, err)
	assert.JSONEq(t, `["食材"]`, string(raw))

	var revisions int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM document_history WHERE collection = $1`, string(repository.CollectionCategories),
	).Scan(&revisions))
	assert.Equal(t, 2, revisions)

	ledger := `[{"type":"income","amount":1000},{"type":"expense","amount":400.25}]`
	require.NoError(t, s.Save(ctx, repository.CollectionLedger, []byte(ledger)))
	history, err := s.Revisions(ctx, repository.CollectionLedger, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.True(t, history[0].Total.Valid)
	assert.True(t, history[0].Total.Decimal.Equal(decimal.RequireFromString("599.75")))
	assert.Positive(t, history[0].Size)

	cats, err := s.Revisions(ctx, repository.CollectionCategories, 0)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.False(t, cats[0].Total.Valid)
}

func TestSnapshotTotal(t *testing.T) {
	dec := decimal.RequireFromString

	got := postgres.SnapshotTotal(repository.CollectionLedger,
		[]byte(`[{"type":"income","amount":1000},{"type":"expense","amount":400}]`))
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(dec("600")))

	got = postgres.SnapshotTotal(repository.CollectionRecipes,
		[]byte(`{"Bread":{"total_cost":137.5},"Plain":{"total_cost":50}}`))
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(dec("187.5")))

	assert.False(t, postgres.SnapshotTotal(repository.CollectionMaterials, []byte(`{"Flour":0.5}`)).Valid)
	assert.False(t, postgres.SnapshotTotal(repository.CollectionLedger, []byte(`{roto`)).Valid)
}
