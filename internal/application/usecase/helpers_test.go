package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/report"
	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/application/usecase"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/Costbook-api/internal/testutil"
)

type fakePDF struct {
	sheet report.RecipeSheet
	rep   report.LedgerReport
}

func (f *fakePDF) RecipeCostSheetPDF(_ context.Context, s report.RecipeSheet) ([]byte, error) {
	f.sheet = s
	return []byte("%PDF-recipe"), nil
}

func (f *fakePDF) LedgerReportPDF(_ context.Context, r report.LedgerReport) ([]byte, error) {
	f.rep = r
	return []byte("%PDF-ledger"), nil
}

type fixture struct {
	store      *testutil.MemStore
	s          *session.Session
	pdf        *fakePDF
	materials  *usecase.MaterialUseCase
	calculator *usecase.CalculatorUseCase
	recipes    *usecase.RecipeUseCase
	ledger     *usecase.LedgerUseCase
	categories *usecase.CategoryUseCase
	backup     *usecase.BackupUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return openFixture(t, testutil.NewMemStore())
}

func openFixture(t *testing.T, store *testutil.MemStore) *fixture {
	t.Helper()
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seq := 0
	s, err := session.Open(context.Background(), store, testutil.Logger(), session.WithBookOptions(
		costbook.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		costbook.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("rec-%d", seq)
		}),
	))
	require.NoError(t, err)

	money := costing.NewFormatter("USD")
	pdf := &fakePDF{}
	sheets := xlsx.New()
	return &fixture{
		store:      store,
		s:          s,
		pdf:        pdf,
		materials:  usecase.NewMaterialUseCase(s, money, sheets),
		calculator: usecase.NewCalculatorUseCase(s, money),
		recipes:    usecase.NewRecipeUseCase(s, money, pdf),
		ledger:     usecase.NewLedgerUseCase(s, money, sheets, pdf),
		categories: usecase.NewCategoryUseCase(s),
		backup:     usecase.NewBackupUseCase(s),
	}
}

// bakery Flour 0.5, Sugar 0.3 y la receta Bread (200 g harina, 100 g azúcar al 80%) = 137.5.
func (f *fixture) bakery(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.materials.Create(ctx, dto.CreateMaterialRequest{Name: "Flour", UnitPrice: dto.Q("0.5")})
	require.NoError(t, err)
	_, err = f.materials.Create(ctx, dto.CreateMaterialRequest{Name: "Sugar", UnitPrice: dto.Q("0.3")})
	require.NoError(t, err)
	y := dto.Q("0.8")
	_, err = f.calculator.Save(ctx, dto.SaveRecipeRequest{Name: "Bread", Lines: []dto.CalculatorLine{
		{Material: "Flour", Weight: dto.Q("200")},
		{Material: "Sugar", Weight: dto.Q("100"), YieldRate: &y},
	}})
	require.NoError(t, err)
}
