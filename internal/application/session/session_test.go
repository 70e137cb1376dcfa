package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
	"github.com/jhoicas/Costbook-api/internal/testutil"
)

type fakeMetrics struct {
	mu       sync.Mutex
	commands map[string]int
	failures int
}

func (f *fakeMetrics) ObserveCommand(cmd string, _ error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commands == nil {
		f.commands = map[string]int{}
	}
	f.commands[cmd]++
}

func (f *fakeMetrics) ObservePersistenceFailure(string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures++
}

func open(t *testing.T, store *testutil.MemStore, opts ...session.Option) *session.Session {
	t.Helper()
	seq := 0
	opts = append(opts, session.WithBookOptions(
		costbook.WithClock(func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }),
		costbook.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	))
	s, err := session.Open(context.Background(), store, testutil.Logger(), opts...)
	require.NoError(t, err)
	return s
}

func addFlour(b *costbook.Book) error {
	p, err := entity.NewUnitPrice(decimal.RequireFromString("0.5"))
	if err != nil {
		return err
	}
	_, err = b.AddMaterial("Flour", p)
	return err
}

func TestOpen_AlmacenVacio(t *testing.T) {
	s := open(t, testutil.NewMemStore())
	assert.Empty(t, s.Warnings())
	assert.Equal(t, entity.DefaultCategories, s.Snapshot().Categories)
}

func TestOpen_ColeccionCorruptaSeDescarta(t *testing.T) {
	store := testutil.NewMemStore()
	store.Put(repository.CollectionMaterials, `{"Flour": 0.5}`)
	store.Put(repository.CollectionRecipes, `{not json`)
	store.LoadErr[repository.CollectionLedger] = errors.New("disco dañado")

	s := open(t, store)
	warnings := s.Warnings()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "recipes")
	assert.Contains(t, warnings[1], "ledger")
	assert.ElementsMatch(t, []repository.Collection{repository.CollectionRecipes, repository.CollectionLedger}, store.Discarded)

	snap := s.Snapshot()
	assert.Contains(t, snap.Materials, "Flour")
	assert.Empty(t, snap.Recipes)
	assert.Empty(t, snap.Records)
}

func TestOpen_MovimientoInvalidoNoDescartaElLibro(t *testing.T) {
	store := testutil.NewMemStore()
	store.Put(repository.CollectionLedger, `[
		{"id":"a","date":"2024-01-10","type":"income","category":"其他","description":"ok","amount":100},
		{"id":"b","date":"2024-01-11","type":"expense","category":"其他","description":"cero","amount":0}
	]`)

	s := open(t, store)
	require.Len(t, s.Snapshot().Records, 1)
	assert.Empty(t, store.Discarded)
	require.Len(t, s.Warnings(), 1)
	assert.Contains(t, s.Warnings()[0], "movimiento 1 omitido")
	assert.Zero(t, store.Saves)
}

func TestOpen_NombresAntiguosSeNormalizan(t *testing.T) {
	store := testutil.NewMemStore()
	store.Put(repository.CollectionMaterials, `{"Flour ": 0.5}`)
	store.Put(repository.CollectionRecipes, `{"Bread": {"materials": {"Flour ": {"weight": 200, "price": 0.5}}, "created_at": "2024-01-01T10:00:00"}}`)
	s := open(t, store)

	_, err := s.Mutate(context.Background(), "delete_material", func(b *costbook.Book) error {
		_, err := b.DeleteMaterial("Flour ")
		return err
	}, repository.CollectionMaterials, repository.CollectionRecipes)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Empty(t, snap.Materials)
	assert.Empty(t, snap.Recipes)
}

func TestOpen_AsignaIdsYGuarda(t *testing.T) {
	store := testutil.NewMemStore()
	store.Put(repository.CollectionLedger, `[{"datetime":"2023-12-24T15:30:00","type":"收入","category":"其他","description":"蛋糕","amount":500,"created_at":"2023-12-24T15:31:00"}]`)

	s := open(t, store)
	snap := s.Snapshot()
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "id-1", snap.Records[0].ID)
	assert.Contains(t, string(store.Get(repository.CollectionLedger)), `"id": "id-1"`)
	assert.Contains(t, string(store.Get(repository.CollectionLedger)), `"type": "income"`)
}

func TestMutate_EscribeSoloColeccionesSucias(t *testing.T) {
	store := testutil.NewMemStore()
	m := &fakeMetrics{}
	s := open(t, store, session.WithMetrics(m))

	warnings, err := s.Mutate(context.Background(), "add_material", addFlour, repository.CollectionMaterials, repository.CollectionMaterialOrder)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, store.Saves)
	assert.JSONEq(t, `{"Flour": 0.5}`, string(store.Get(repository.CollectionMaterials)))
	assert.JSONEq(t, `["Flour"]`, string(store.Get(repository.CollectionMaterialOrder)))
	assert.Nil(t, store.Get(repository.CollectionRecipes))
	assert.Equal(t, 1, m.commands["add_material"])
}

func TestMutate_ErrorNoEscribe(t *testing.T) {
	store := testutil.NewMemStore()
	s := open(t, store)
	_, err := s.Mutate(context.Background(), "add_material", addFlour, repository.CollectionMaterials)
	require.NoError(t, err)
	saves := store.Saves

	_, err = s.Mutate(context.Background(), "add_material", addFlour, repository.CollectionMaterials)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, saves, store.Saves)
}

func TestMutate_FalloDeEscrituraConservaMemoria(t *testing.T) {
	store := testutil.NewMemStore()
	m := &fakeMetrics{}
	s := open(t, store, session.WithMetrics(m))
	store.SaveErr = errors.New("disco lleno")

	warnings, err := s.Mutate(context.Background(), "add_material", addFlour, repository.CollectionMaterials)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "disco lleno")
	assert.Equal(t, 1, m.failures)

	s.Read(func(b *costbook.Book) {
		_, ok := b.Material("Flour")
		assert.True(t, ok)
	})
}

func TestPendingYResync_TrasFalloDeEscritura(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore()
	s := open(t, store)

	pending, err := s.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	store.SaveErr = errors.New("disco lleno")
	warnings, err := s.Mutate(ctx, "add_material", addFlour, repository.CollectionMaterials, repository.CollectionMaterialOrder)
	require.NoError(t, err)
	require.Len(t, warnings, 2)

	pending, err = s.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []repository.Collection{repository.CollectionMaterials, repository.CollectionMaterialOrder}, pending)

	written, warnings, err := s.Resync(ctx)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Len(t, warnings, 2)

	store.SaveErr = nil
	written, warnings, err = s.Resync(ctx)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []repository.Collection{repository.CollectionMaterials, repository.CollectionMaterialOrder}, written)
	assert.JSONEq(t, `{"Flour": 0.5}`, string(store.Get(repository.CollectionMaterials)))

	pending, err = s.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPending_ComparaPorValor(t *testing.T) {
	store := testutil.NewMemStore()
	store.Put(repository.CollectionMaterials, `{"Flour":0.5}`)
	store.Put(repository.CollectionMaterialOrder, `[ "Flour" ]`)
	s := open(t, store)

	pending, err := s.Pending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPending_ErrorDeLectura(t *testing.T) {
	store := testutil.NewMemStore()
	s := open(t, store)
	store.LoadErr[repository.CollectionRecipes] = errors.New("sin conexión")

	_, err := s.Pending(context.Background())
	assert.Error(t, err)
}

func TestReplace_PersisteTodo(t *testing.T) {
	store := testutil.NewMemStore()
	s := open(t, store)
	warnings := s.Replace(context.Background(), costbook.Data{
		Materials: map[string]decimal.Decimal{"Sugar": decimal.RequireFromString("0.3")},
	})
	assert.Empty(t, warnings)
	for _, c := range repository.AllCollections {
		assert.NotNil(t, store.Get(c), c)
	}

	reopened := open(t, store)
	assert.Equal(t, s.Snapshot(), reopened.Snapshot())
}

func TestMutate_Concurrente(t *testing.T) {
	store := testutil.NewMemStore()
	s := open(t, store)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Mutate(context.Background(), "add_category", func(b *costbook.Book) error {
				return b.AddCategory(fmt.Sprintf("cat-%d", i))
			}, repository.CollectionCategories)
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Snapshot().Categories, len(entity.DefaultCategories)+20)
}
