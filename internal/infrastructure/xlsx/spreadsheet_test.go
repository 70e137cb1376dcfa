package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/ledger"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/xlsx"
)

func TestMaterialsXLSX_SeReimporta(t *testing.T) {
	ctx := context.Background()
	s := xlsx.New()
	out, err := s.MaterialsXLSX(ctx, []entity.Material{
		{Name: "Flour", UnitPrice: decimal.RequireFromString("0.5")},
		{Name: "Sugar", UnitPrice: decimal.RequireFromString("0.3")},
	})
	require.NoError(t, err)

	rows, err := s.ParseMaterialsXLSX(ctx, bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Flour", rows[0].Name)
	assert.Equal(t, 2, rows[0].Line)
	assert.True(t, rows[1].UnitPrice.Equal(decimal.RequireFromString("0.3")))
}

func TestParseMaterialsXLSX_PrecioInvalido(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"material", "unit_price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Butter", "cheap"}))
	buf := new(bytes.Buffer)
	require.NoError(t, f.Write(buf))

	_, err := xlsx.New().ParseMaterialsXLSX(context.Background(), buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseMaterialsXLSX_ArchivoIlegible(t *testing.T) {
	_, err := xlsx.New().ParseMaterialsXLSX(context.Background(), bytes.NewReader([]byte("no es excel")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedgerXLSX(t *testing.T) {
	records := []*entity.LedgerRecord{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Type: entity.RecordIncome, Category: "其他",
			Description: "門市銷售", Amount: decimal.NewFromInt(1000), Products: []string{"Bread", "Cake"}},
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Type: entity.RecordExpense, Category: "食材",
			Description: "麵粉", Amount: decimal.NewFromInt(400)},
	}
	out, err := xlsx.New().LedgerXLSX(context.Background(), records, ledger.Summarize(records))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("ledger")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-03-01", rows[1][0])
	assert.Equal(t, "Bread, Cake", rows[1][7])

	net, err := f.GetCellValue("summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "600", net)
}
