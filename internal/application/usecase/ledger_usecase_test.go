package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/domain"
)

func seedLedger(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	for _, in := range []dto.CreateRecordRequest{
		{Date: "2024-01-10", Type: "income", Category: "銷售", Description: "門市銷售", Amount: dto.Q("1000"), Buyer: "Ana"},
		{Date: "2024-02-05", Type: "支出", Category: "食材", Description: "麵粉", Amount: dto.Q("400"), Location: "市場", Buyer: "Bo"},
	} {
		_, err := f.ledger.Create(ctx, in)
		require.NoError(t, err)
	}
}

func TestLedgerSummary_Neto(t *testing.T) {
	f := newFixture(t)
	seedLedger(t, f)
	s, err := f.ledger.Summary(dto.LedgerQuery{})
	require.NoError(t, err)
	assert.True(t, s.Net.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 2, s.Count)
}

func TestLedgerSummary_Vacio(t *testing.T) {
	f := newFixture(t)
	s, err := f.ledger.Summary(dto.LedgerQuery{})
	require.NoError(t, err)
	assert.True(t, s.Net.IsZero())
}

func TestLedgerList_RecientesPrimeroYFiltros(t *testing.T) {
	f := newFixture(t)
	seedLedger(t, f)

	all, err := f.ledger.List(dto.LedgerQuery{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "2024-02-05", all.Items[0].Date)
	assert.Equal(t, "expense", all.Items[0].Type)

	jan, err := f.ledger.List(dto.LedgerQuery{From: "2024-01-01", To: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, jan.Items, 1)
	assert.True(t, jan.Summary.Net.Equal(decimal.NewFromInt(1000)))

	_, err = f.ledger.List(dto.LedgerQuery{Type: "gift"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.List(dto.LedgerQuery{From: "2024-02-01", To: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedgerCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ledger.Create(ctx, dto.CreateRecordRequest{Type: "income", Description: "x", Amount: dto.Q("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.Create(ctx, dto.CreateRecordRequest{Type: "otro", Description: "x", Amount: dto.Q("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.Create(ctx, dto.CreateRecordRequest{Type: "income", Description: "x", Amount: dto.Q("1"), Date: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedgerCreate_CategoriaNuevaSeAgrega(t *testing.T) {
	f := newFixture(t)
	seedLedger(t, f)
	assert.Contains(t, f.categories.List().Items, "銷售")
}

func TestLedgerCreate_SinCategoria(t *testing.T) {
	f := newFixture(t)
	out, err := f.ledger.Create(context.Background(), dto.CreateRecordRequest{Type: "expense", Description: "x", Amount: dto.Q("5")})
	require.NoError(t, err)
	assert.Equal(t, "其他", out.Record.Category)
	assert.Equal(t, []string{}, out.Record.Products)
}

func TestLedgerUpdateDeleteClear(t *testing.T) {
	f := newFixture(t)
	seedLedger(t, f)
	ctx := context.Background()
	amount := dto.Q("500")

	out, err := f.ledger.Update(ctx, "rec-2", dto.UpdateRecordRequest{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, out.Record.Amount.Equal(decimal.NewFromInt(500)))

	_, err = f.ledger.Update(ctx, "nope", dto.UpdateRecordRequest{Amount: &amount})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.Delete(ctx, "rec-1")
	require.NoError(t, err)
	_, err = f.ledger.Delete(ctx, "rec-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cleared, err := f.ledger.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared.Deleted)
}

func TestLedgerAgrupaciones(t *testing.T) {
	f := newFixture(t)
	seedLedger(t, f)

	cats, err := f.ledger.ByCategory(dto.LedgerQuery{})
	require.NoError(t, err)
	require.Len(t, cats, 2)

	buyers, err := f.ledger.ByBuyer(dto.LedgerQuery{})
	require.NoError(t, err)
	require.Len(t, buyers, 1)
	assert.Equal(t, "Bo", buyers[0].Buyer)
	assert.True(t, buyers[0].Total.Equal(decimal.NewFromInt(400)))

	sellers, err := f.ledger.ByBuyer(dto.LedgerQuery{Type: "income"})
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, "Ana", sellers[0].Buyer)

	months, err := f.ledger.ByMonth(dto.LedgerQuery{})
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2024-01", months[0].Month)
}

func TestLedgerSuggestCategory(t *testing.T) {
	f := newFixture(t)
	seedLedger(t, f)
	s, err := f.ledger.SuggestCategory("麵粉 25kg")
	require.NoError(t, err)
	assert.Equal(t, "食材", s.Category)

	_, err = f.ledger.SuggestCategory(" ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedgerReportPDF(t *testing.T) {
	f := newFixture(t)
	seedLedger(t, f)
	_, name, err := f.ledger.ReportPDF(context.Background(), dto.LedgerQuery{From: "2024-01-01"})
	require.NoError(t, err)
	assert.Contains(t, name, ".pdf")
	assert.Equal(t, "desde 2024-01-01", f.pdf.rep.Period)
	assert.Len(t, f.pdf.rep.Records, 2)
	assert.True(t, f.pdf.rep.Summary.Net.Equal(decimal.NewFromInt(600)))
}

func TestLedgerExportXLSX(t *testing.T) {
	f := newFixture(t)
	seedLedger(t, f)
	out, _, err := f.ledger.ExportXLSX(context.Background(), dto.LedgerQuery{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
