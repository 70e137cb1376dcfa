package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costbook-api/internal/domain/repository"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/jsonfile"
)

func TestStore_GuardarCargarDescartar(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := jsonfile.New(dir)
	require.NoError(t, err)

	raw, err := s.Load(ctx, repository.CollectionMaterials)
	require.NoError(t, err)
	assert.Nil(t, raw)

	require.NoError(t, s.Save(ctx, repository.CollectionMaterials, []byte(`{"麵粉": 0.05}`)))
	raw, err = s.Load(ctx, repository.CollectionMaterials)
	require.NoError(t, err)
	assert.Equal(t, `{"麵粉": 0.05}`, string(raw))

	_, err = os.Stat(filepath.Join(dir, "saved_materials.json"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")

	require.NoError(t, s.Discard(ctx, repository.CollectionMaterials))
	require.NoError(t, s.Discard(ctx, repository.CollectionMaterials))
	raw, err = s.Load(ctx, repository.CollectionMaterials)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestStore_NombresOriginales(t *testing.T) {
	s, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)
	for c, name := range map[repository.Collection]string{
		repository.CollectionRecipes: "saved_recipes.json",
		repository.CollectionLedger:  "accounting_records.json",
	} {
		p, err := s.Path(c)
		require.NoError(t, err)
		assert.Equal(t, name, filepath.Base(p))
	}
	_, err = s.Path("otra")
	assert.Error(t, err)
}

func TestStore_SobrescribeCompleto(t *testing.T) {
	ctx := context.Background()
	s, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, repository.CollectionLedger, []byte(`[1,2,3,4,5,6]`)))
	require.NoError(t, s.Save(ctx, repository.CollectionLedger, []byte(`[]`)))
	raw, err := s.Load(ctx, repository.CollectionLedger)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
}
