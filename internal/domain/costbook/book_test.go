package costbook_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
)

// ── Helpers ──

var t0 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newBook() *costbook.Book {
	clock := t0
	seq := 0
	return costbook.New(
		costbook.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		costbook.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("rec-%d", seq)
		}),
	)
}

func price(t *testing.T, s string) entity.UnitPrice {
	t.Helper()
	p, err := entity.NewUnitPrice(dec(s))
	require.NoError(t, err)
	return p
}

func amount(t *testing.T, s string) entity.Amount {
	t.Helper()
	a, err := entity.NewAmount(dec(s))
	require.NoError(t, err)
	return a
}

func line(t *testing.T, w, p string, y string) entity.RecipeLine {
	t.Helper()
	wt, err := entity.NewWeight(dec(w))
	require.NoError(t, err)
	var yr *entity.YieldRate
	if y != "" {
		v, err := entity.NewYieldRate(dec(y))
		require.NoError(t, err)
		yr = &v
	}
	return costing.BuildLine(wt, dec(p), yr)
}

// bakery libro con Flour/Sugar y la receta "Bread" (137.5) y "Plain" (solo Flour).
func bakery(t *testing.T) *costbook.Book {
	t.Helper()
	b := newBook()
	_, err := b.AddMaterial("Flour", price(t, "0.5"))
	require.NoError(t, err)
	_, err = b.AddMaterial("Sugar", price(t, "0.3"))
	require.NoError(t, err)

	_, _, err = b.SaveRecipe("Bread", map[string]entity.RecipeLine{
		"Flour": line(t, "200", "0.5", ""),
		"Sugar": line(t, "100", "0.3", "0.8"),
	})
	require.NoError(t, err)
	_, _, err = b.SaveRecipe("Plain", map[string]entity.RecipeLine{
		"Flour": line(t, "100", "0.5", ""),
	})
	require.NoError(t, err)
	return b
}

// ── Materiales ──

func TestAddMaterial_NombreVacioNoCambiaNada(t *testing.T) {
	b := bakery(t)
	before := b.Data()

	_, err := b.AddMaterial("   ", price(t, "1"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, before, b.Data())
}

func TestAddMaterial_PrecioCeroRechazado(t *testing.T) {
	b := newBook()
	_, err := b.AddMaterial("Butter", entity.UnitPrice{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, b.ListMaterials())
}

func TestAddMaterial_Duplicado(t *testing.T) {
	b := bakery(t)
	_, err := b.AddMaterial(" Flour ", price(t, "9"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	m, _ := b.Material("Flour")
	assert.True(t, m.UnitPrice.Equal(dec("0.5")))
}

func TestListMaterials_OrdenPersonalizado(t *testing.T) {
	b := bakery(t)
	_, err := b.AddMaterial("Butter", price(t, "1.2"))
	require.NoError(t, err)

	names := func() []string {
		var out []string
		for _, m := range b.ListMaterials() {
			out = append(out, m.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Flour", "Sugar", "Butter"}, names())

	b.ReorderMaterials([]string{"Butter", "Ghost", "Flour"})
	assert.Equal(t, []string{"Butter", "Flour", "Sugar"}, names())
}

func TestListMaterials_ConciliaOrdenCargado(t *testing.T) {
	b := costbook.FromData(costbook.Data{
		Materials:     map[string]decimal.Decimal{"c": dec("1"), "a": dec("1"), "b": dec("1")},
		MaterialOrder: []string{"b", "zzz", "b"},
	})
	var got []string
	for _, m := range b.ListMaterials() {
		got = append(got, m.Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestRenameMaterial_ConservaTotales(t *testing.T) {
	b := bakery(t)
	affected, err := b.RenameMaterial("Flour", "Bread flour")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bread", "Plain"}, affected)

	r, ok := b.Recipe("Bread")
	require.True(t, ok)
	assert.Contains(t, r.Lines, "Bread flour")
	assert.NotContains(t, r.Lines, "Flour")
	assert.True(t, r.TotalCost.Equal(dec("137.5")))
	assert.True(t, r.Lines["Bread flour"].Cost.Equal(dec("100")))
	assert.NotNil(t, r.UpdatedAt)

	assert.Equal(t, "Bread flour", b.ListMaterials()[0].Name)
}

func TestRenameMaterial_Duplicado(t *testing.T) {
	b := bakery(t)
	_, err := b.RenameMaterial("Flour", "Sugar")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = b.RenameMaterial("Flour", "Flour")
	assert.NoError(t, err)

	_, err = b.RenameMaterial("Nope", "X")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRenameMaterial_LineaHuerfanaEnReceta(t *testing.T) {
	b := costbook.FromData(costbook.Data{
		Materials: map[string]decimal.Decimal{"Flour": dec("0.5")},
		Recipes: map[string]*entity.Recipe{
			"Bread": {
				Name: "Bread",
				Lines: map[string]entity.RecipeLine{
					"Flour":  line(t, "200", "0.5", ""),
					"Butter": line(t, "50", "2", ""),
				},
				TotalCost: dec("200"),
				CreatedAt: t0,
			},
		},
	})
	before := b.Data()

	_, err := b.RenameMaterial("Flour", "Butter")
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, before, b.Data())

	r, ok := b.Recipe("Bread")
	require.True(t, ok)
	assert.Len(t, r.Lines, 2)
	assert.True(t, r.TotalCost.Equal(costing.RecipeTotal(r.Lines)))
}

func TestUpdateMaterialPrice_Cascada(t *testing.T) {
	b := bakery(t)
	affected, err := b.UpdateMaterialPrice("Flour", price(t, "1"), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bread", "Plain"}, affected)

	r, _ := b.Recipe("Bread")
	assert.True(t, r.Lines["Flour"].UnitPrice.Equal(dec("1")))
	assert.True(t, r.Lines["Flour"].Cost.Equal(dec("200")))
	assert.True(t, r.TotalCost.Equal(dec("237.5")))
}

func TestUpdateMaterialPrice_SinCascada(t *testing.T) {
	b := bakery(t)
	affected, err := b.UpdateMaterialPrice("Flour", price(t, "1"), false)
	require.NoError(t, err)
	assert.Empty(t, affected)

	r, _ := b.Recipe("Bread")
	assert.True(t, r.TotalCost.Equal(dec("137.5")))
	m, _ := b.Material("Flour")
	assert.True(t, m.UnitPrice.Equal(dec("1")))
}

func TestDeleteMaterial_Cascada(t *testing.T) {
	b := bakery(t)
	removed, err := b.DeleteMaterial("Flour")
	require.NoError(t, err)
	// "Plain" solo tenía Flour: se elimina completa.
	assert.Equal(t, []string{"Plain"}, removed)

	_, ok := b.Recipe("Plain")
	assert.False(t, ok)

	r, ok := b.Recipe("Bread")
	require.True(t, ok)
	assert.NotContains(t, r.Lines, "Flour")
	assert.True(t, r.TotalCost.Equal(dec("37.5")))
	for _, rec := range b.ListRecipes() {
		assert.NotContains(t, rec.Lines, "Flour")
	}
}

func TestDeleteMaterials_TodoONada(t *testing.T) {
	b := bakery(t)
	before := b.Data()
	_, err := b.DeleteMaterials([]string{"Flour", "Ghost"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, b.Data())
}

func TestClearMaterials_BorraRecetas(t *testing.T) {
	b := bakery(t)
	removed := b.ClearMaterials()
	assert.ElementsMatch(t, []string{"Bread", "Plain"}, removed)
	assert.Empty(t, b.ListMaterials())
	assert.Empty(t, b.ListRecipes())
}

// ── Recetas ──

func TestSaveRecipe_Sobrescribe(t *testing.T) {
	b := bakery(t)
	first, _ := b.Recipe("Plain")

	r, overwritten, err := b.SaveRecipe("Plain", map[string]entity.RecipeLine{"Flour": line(t, "300", "0.5", "")})
	require.NoError(t, err)
	assert.True(t, overwritten)
	assert.Equal(t, first.CreatedAt, r.CreatedAt)
	require.NotNil(t, r.UpdatedAt)
	assert.True(t, r.TotalCost.Equal(dec("150")))
}

func TestSaveRecipe_SinPesoPositivo(t *testing.T) {
	b := bakery(t)
	_, _, err := b.SaveRecipe("Empty", map[string]entity.RecipeLine{"Flour": line(t, "0", "0.5", "")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = b.SaveRecipe("", map[string]entity.RecipeLine{"Flour": line(t, "1", "0.5", "")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveRecipe_RecalculaDerivados(t *testing.T) {
	b := newBook()
	bogus := entity.RecipeLine{Weight: dec("10"), UnitPrice: dec("2"), Cost: dec("999")}
	r, _, err := b.SaveRecipe("X", map[string]entity.RecipeLine{"m": bogus})
	require.NoError(t, err)
	assert.True(t, r.Lines["m"].Cost.Equal(dec("20")))
	assert.True(t, r.TotalCost.Equal(dec("20")))
}

func TestRenameRecipe_ActualizaLibro(t *testing.T) {
	b := bakery(t)
	_, err := b.AppendRecord(costbook.RecordDraft{
		Date: t0, Type: entity.RecordIncome, Description: "venta", Amount: amount(t, "500"),
		Products: []string{"Bread", "Plain"},
	})
	require.NoError(t, err)

	n, err := b.RenameRecipe("Bread", "Sourdough")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Sourdough", "Plain"}, b.Records()[0].Products)

	_, err = b.RenameRecipe("Sourdough", "Plain")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = b.RenameRecipe("Bread", "X")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadIntoCalculator_EsCopia(t *testing.T) {
	b := bakery(t)
	p, err := b.LoadIntoCalculator("Bread")
	require.NoError(t, err)
	assert.Equal(t, []string{"Flour", "Sugar"}, p.Materials)
	assert.True(t, p.Weights["Sugar"].Equal(dec("100")))
	assert.True(t, p.YieldRates["Sugar"].Equal(dec("0.8")))
	assert.NotContains(t, p.YieldRates, "Flour")

	require.NoError(t, b.DeleteRecipe("Bread"))
	assert.True(t, p.Weights["Flour"].Equal(dec("200")))

	_, err = b.LoadIntoCalculator("Bread")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRefreshRecipePrices(t *testing.T) {
	b := bakery(t)
	_, err := b.UpdateMaterialPrice("Sugar", price(t, "0.4"), false)
	require.NoError(t, err)

	r, err := b.RefreshRecipePrices("Bread")
	require.NoError(t, err)
	assert.True(t, r.TotalCost.Equal(dec("150")))
}

// ── Libro ──

func TestAppendRecord_Validaciones(t *testing.T) {
	b := newBook()
	_, err := b.AppendRecord(costbook.RecordDraft{Type: entity.RecordIncome, Amount: amount(t, "1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = b.AppendRecord(costbook.RecordDraft{Type: entity.RecordIncome, Description: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = b.AppendRecord(costbook.RecordDraft{Type: "gift", Description: "x", Amount: amount(t, "1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, b.Records())
}

func TestAppendRecord_DefaultsYCategoriaNueva(t *testing.T) {
	b := newBook()
	r, err := b.AppendRecord(costbook.RecordDraft{
		Date: time.Date(2024, 2, 10, 18, 45, 0, 0, time.UTC), Type: entity.RecordExpense,
		Description: "harina", Amount: amount(t, "400"),
	})
	require.NoError(t, err)
	assert.Equal(t, "rec-1", r.ID)
	assert.Equal(t, entity.CategoryOther, r.Category)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), r.Date)
	assert.False(t, r.CreatedAt.IsZero())

	_, err = b.AppendRecord(costbook.RecordDraft{
		Type: entity.RecordExpense, Category: "租金", Description: "local", Amount: amount(t, "10"),
	})
	require.NoError(t, err)
	assert.Contains(t, b.Categories(), "租金")
}

func TestEditRecord_PatchYValidacion(t *testing.T) {
	b := newBook()
	r, err := b.AppendRecord(costbook.RecordDraft{Type: entity.RecordIncome, Description: "venta", Amount: amount(t, "10")})
	require.NoError(t, err)

	empty := ""
	_, err = b.EditRecord(r.ID, costbook.RecordPatch{Description: &empty})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	got, _ := b.Record(r.ID)
	assert.Equal(t, "venta", got.Description)

	buyer := "Ana"
	newAmount := amount(t, "25")
	edited, err := b.EditRecord(r.ID, costbook.RecordPatch{Buyer: &buyer, Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, "Ana", edited.Buyer)
	assert.True(t, edited.Amount.Equal(dec("25")))
	assert.Equal(t, r.CreatedAt, edited.CreatedAt)

	_, err = b.EditRecord("nope", costbook.RecordPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAndClearRecords(t *testing.T) {
	b := newBook()
	for i := 0; i < 3; i++ {
		_, err := b.AppendRecord(costbook.RecordDraft{Type: entity.RecordIncome, Description: "x", Amount: amount(t, "1")})
		require.NoError(t, err)
	}
	require.NoError(t, b.DeleteRecord("rec-2"))
	assert.ErrorIs(t, b.DeleteRecord("rec-2"), domain.ErrNotFound)
	assert.Len(t, b.Records(), 2)
	assert.Equal(t, 2, b.ClearRecords())
	assert.Empty(t, b.Records())
}

// ── Categorías ──

func TestCategories(t *testing.T) {
	b := newBook()
	assert.Equal(t, entity.DefaultCategories, b.Categories())

	require.NoError(t, b.AddCategory("租金"))
	assert.ErrorIs(t, b.AddCategory("租金"), domain.ErrDuplicate)
	assert.ErrorIs(t, b.AddCategory(" "), domain.ErrInvalidInput)

	require.NoError(t, b.DeleteCategory("運輸"))
	assert.NotContains(t, b.Categories(), "運輸")
	assert.ErrorIs(t, b.DeleteCategory("運輸"), domain.ErrNotFound)
}

func TestData_CopiaProfunda(t *testing.T) {
	b := bakery(t)
	d := b.Data()
	d.Recipes["Bread"].Lines["Flour"] = entity.RecipeLine{}
	d.Materials["Flour"] = dec("99")

	r, _ := b.Recipe("Bread")
	assert.True(t, r.Lines["Flour"].Cost.Equal(dec("100")))
	m, _ := b.Material("Flour")
	assert.True(t, m.UnitPrice.Equal(dec("0.5")))

	restored := costbook.FromData(b.Data())
	assert.Equal(t, b.Data(), restored.Data())
}
