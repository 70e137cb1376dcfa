package report

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/ledger"
)

// RecipeSheet datos de la hoja de costos de una receta.
type RecipeSheet struct {
	Recipe      *entity.Recipe
	Materials   []string // orden de las líneas
	Currency    costing.Formatter
	GeneratedAt time.Time
}

// LedgerReport datos del reporte del libro.
type LedgerReport struct {
	Title       string
	Period      string // texto libre, ej. "2024-01-01 ~ 2024-01-31"
	Records     []*entity.LedgerRecord
	Summary     ledger.Summary
	ByCategory  map[string]ledger.CategoryTotals
	Currency    costing.Formatter
	GeneratedAt time.Time
}

// MaterialRow fila leída de una planilla de precios.
type MaterialRow struct {
	Line      int // fila de la planilla (1 = encabezado)
	Name      string
	UnitPrice decimal.Decimal
}

// PDFGenerator genera documentos PDF.
type PDFGenerator interface {
	RecipeCostSheetPDF(ctx context.Context, sheet RecipeSheet) ([]byte, error)
	LedgerReportPDF(ctx context.Context, rep LedgerReport) ([]byte, error)
}

// Spreadsheet exporta e importa planillas.
type Spreadsheet interface {
	MaterialsXLSX(ctx context.Context, materials []entity.Material) ([]byte, error)
	LedgerXLSX(ctx context.Context, records []*entity.LedgerRecord, summary ledger.Summary) ([]byte, error)
	ParseMaterialsXLSX(ctx context.Context, r io.Reader) ([]MaterialRow, error)
}
