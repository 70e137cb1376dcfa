package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costbook-api/internal/application/report"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/ledger"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/pdf"
)

func TestRecipeCostSheetPDF(t *testing.T) {
	y := decimal.RequireFromString("0.8")
	lines := map[string]entity.RecipeLine{
		"Flour": costing.Recompute(entity.RecipeLine{Weight: decimal.NewFromInt(200), UnitPrice: decimal.RequireFromString("0.5")}),
		"Sugar": costing.Recompute(entity.RecipeLine{Weight: decimal.NewFromInt(100), UnitPrice: decimal.RequireFromString("0.3"), YieldRate: &y}),
	}
	g := pdf.NewMarotoPDFGenerator("")
	out, err := g.RecipeCostSheetPDF(context.Background(), report.RecipeSheet{
		Recipe:      &entity.Recipe{Name: "Bread", Lines: lines, TotalCost: costing.RecipeTotal(lines), CreatedAt: time.Now()},
		Currency:    costing.NewFormatter("USD"),
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRecipeCostSheetPDF_SinReceta(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator("").RecipeCostSheetPDF(context.Background(), report.RecipeSheet{})
	assert.Error(t, err)
}

func TestLedgerReportPDF(t *testing.T) {
	records := []*entity.LedgerRecord{
		{Date: time.Now(), Type: entity.RecordIncome, Category: "Sales", Description: "Cake", Amount: decimal.NewFromInt(1000), Buyer: "Ana"},
		{Date: time.Now(), Type: entity.RecordExpense, Category: "Food", Description: "Flour", Amount: decimal.NewFromInt(400)},
	}
	out, err := pdf.NewMarotoPDFGenerator("").LedgerReportPDF(context.Background(), report.LedgerReport{
		Records:     records,
		Summary:     ledger.Summarize(records),
		ByCategory:  ledger.GroupByCategory(records),
		Currency:    costing.NewFormatter("USD"),
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestLedgerReportPDF_FuenteInexistente(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator("/no/existe.ttf").LedgerReportPDF(context.Background(), report.LedgerReport{})
	assert.Error(t, err)
}
