// Package xlsx exporta materiales y movimientos a Excel e importa listas de precios.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Costbook-api/internal/application/report"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/ledger"
	"github.com/jhoicas/Costbook-api/pkg/input"
)

var _ report.Spreadsheet = (*Spreadsheet)(nil)

var (
	materialsHeader = []interface{}{"material", "unit_price"}
	ledgerHeader    = []interface{}{"date", "type", "category", "description", "amount", "location", "buyer", "products", "remark"}
)

// Spreadsheet implementa report.Spreadsheet con excelize.
type Spreadsheet struct{}

// New construye el exportador.
func New() *Spreadsheet { return &Spreadsheet{} }

// MaterialsXLSX una hoja con material y precio por gramo, en el orden recibido.
func (s *Spreadsheet) MaterialsXLSX(_ context.Context, materials []entity.Material) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &materialsHeader); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	for i, m := range materials {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{m.Name, m.UnitPrice.InexactFloat64()}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 24)
	return write(f)
}

// LedgerXLSX hoja "ledger" con los movimientos y hoja "summary" con los totales.
func (s *Spreadsheet) LedgerXLSX(_ context.Context, records []*entity.LedgerRecord, summary ledger.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "ledger"); err != nil {
		return nil, err
	}
	sheet = "ledger"
	if err := f.SetSheetRow(sheet, "A1", &ledgerHeader); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			r.Date.Format("2006-01-02"),
			string(r.Type),
			r.Category,
			r.Description,
			r.Amount.InexactFloat64(),
			r.Location,
			r.Buyer,
			strings.Join(r.Products, ", "),
			r.Remark,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(sheet, "D", "D", 32)

	if _, err := f.NewSheet("summary"); err != nil {
		return nil, err
	}
	_ = f.SetCellValue("summary", "A1", "total_income")
	_ = f.SetCellValue("summary", "B1", summary.TotalIncome.InexactFloat64())
	_ = f.SetCellValue("summary", "A2", "total_expense")
	_ = f.SetCellValue("summary", "B2", summary.TotalExpense.InexactFloat64())
	_ = f.SetCellValue("summary", "A3", "net")
	_ = f.SetCellValue("summary", "B3", summary.Net.InexactFloat64())
	_ = f.SetCellValue("summary", "A4", "count")
	_ = f.SetCellValue("summary", "B4", summary.Count)

	return write(f)
}

// ParseMaterialsXLSX lee la hoja activa: columna A material, columna B precio por gramo.
// La primera fila es encabezado. Las filas vacías se ignoran.
func (s *Spreadsheet) ParseMaterialsXLSX(_ context.Context, r io.Reader) ([]report.MaterialRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: archivo Excel ilegible: %v", domain.ErrInvalidInput, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var out []report.MaterialRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: fila %d sin precio", domain.ErrInvalidInput, i+1)
		}
		price, err := input.ParseDecimal(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: precio %q", domain.ErrInvalidInput, i+1, row[1])
		}
		out = append(out, report.MaterialRow{
			Line:      i + 1,
			Name:      input.NormalizeName(row[0]),
			UnitPrice: price,
		})
	}
	return out, nil
}

func write(f *excelize.File) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
