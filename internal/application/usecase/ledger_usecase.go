package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/report"
	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/ledger"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
	"github.com/jhoicas/Costbook-api/pkg/input"
)

// LedgerUseCase casos de uso del libro de ingresos y gastos.
type LedgerUseCase struct {
	s      *session.Session
	money  costing.Formatter
	sheets report.Spreadsheet
	pdf    report.PDFGenerator
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(s *session.Session, money costing.Formatter, sheets report.Spreadsheet, pdf report.PDFGenerator) *LedgerUseCase {
	return &LedgerUseCase{s: s, money: money, sheets: sheets, pdf: pdf}
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// List movimientos filtrados, más recientes primero, con sus totales.
func (uc *LedgerUseCase) List(q dto.LedgerQuery) (*dto.RecordListResponse, error) {
	records, err := uc.filtered(q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecordResponse, 0, len(records))
	for _, r := range ledger.SortForDisplay(records) {
		items = append(items, toRecordResponse(r, uc.money))
	}
	return &dto.RecordListResponse{
		Items:   items,
		Summary: toSummaryResponse(ledger.Summarize(records), uc.money),
	}, nil
}

// Summary totales de ingresos, gastos y neto.
func (uc *LedgerUseCase) Summary(q dto.LedgerQuery) (*dto.SummaryResponse, error) {
	records, err := uc.filtered(q)
	if err != nil {
		return nil, err
	}
	out := toSummaryResponse(ledger.Summarize(records), uc.money)
	return &out, nil
}

// ByCategory totales por categoría, en orden alfabético.
func (uc *LedgerUseCase) ByCategory(q dto.LedgerQuery) ([]dto.CategoryTotalsResponse, error) {
	records, err := uc.filtered(q)
	if err != nil {
		return nil, err
	}
	groups := ledger.GroupByCategory(records)
	out := make([]dto.CategoryTotalsResponse, 0, len(groups))
	for c, t := range groups {
		out = append(out, dto.CategoryTotalsResponse{Category: c, Income: t.Income, Expense: t.Expense})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// ByBuyer totales por comprador para un tipo (expense por defecto), mayor total primero.
func (uc *LedgerUseCase) ByBuyer(q dto.LedgerQuery) ([]dto.BuyerTotalsResponse, error) {
	typ := entity.RecordExpense
	if q.Type != "" {
		t, ok := entity.ParseRecordType(q.Type)
		if !ok {
			return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, q.Type)
		}
		typ = t
	}
	q.Type = ""
	records, err := uc.filtered(q)
	if err != nil {
		return nil, err
	}
	groups := ledger.GroupByBuyer(records, typ)
	out := make([]dto.BuyerTotalsResponse, 0, len(groups))
	for buyer, t := range groups {
		out = append(out, dto.BuyerTotalsResponse{Buyer: buyer, Count: t.Count, Total: t.Total, PerCategory: t.PerCategory})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Buyer < out[j].Buyer
	})
	return out, nil
}

// ByMonth totales por mes, en orden cronológico.
func (uc *LedgerUseCase) ByMonth(q dto.LedgerQuery) ([]dto.MonthTotalsResponse, error) {
	records, err := uc.filtered(q)
	if err != nil {
		return nil, err
	}
	months := ledger.GroupByMonth(records)
	out := make([]dto.MonthTotalsResponse, 0, len(months))
	for _, m := range months {
		out = append(out, dto.MonthTotalsResponse{Month: m.Month, Income: m.Income, Expense: m.Expense, Net: m.Net})
	}
	return out, nil
}

// SuggestCategory sugiere una categoría según los movimientos existentes.
func (uc *LedgerUseCase) SuggestCategory(description string) (*dto.SuggestionResponse, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description es requerido", domain.ErrInvalidInput)
	}
	var records []*entity.LedgerRecord
	uc.s.Read(func(b *costbook.Book) { records = b.Records() })
	s := ledger.NewCategorySuggester(records).Suggest(description)
	return &dto.SuggestionResponse{Category: s.Category, Confident: s.Confident}, nil
}

// ── Comandos ──────────────────────────────────────────────────────────────────

// Create agrega un movimiento. Una categoría desconocida se agrega al conjunto.
func (uc *LedgerUseCase) Create(ctx context.Context, in dto.CreateRecordRequest) (*dto.RecordMutationResponse, error) {
	typ, ok := entity.ParseRecordType(in.Type)
	if !ok {
		return nil, fmt.Errorf("%w: type debe ser income o expense", domain.ErrInvalidInput)
	}
	amount, err := entity.NewAmount(in.Amount.Decimal)
	if err != nil {
		return nil, err
	}
	var date time.Time
	if strings.TrimSpace(in.Date) != "" {
		if date, err = input.ParseDate(in.Date); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	draft := costbook.RecordDraft{
		Date:        date,
		Type:        typ,
		Category:    input.NormalizeName(in.Category),
		Description: in.Description,
		Amount:      amount,
		Location:    in.Location,
		Buyer:       in.Buyer,
		Products:    in.Products,
		Remark:      in.Remark,
	}

	var rec *entity.LedgerRecord
	warnings, err := uc.s.Mutate(ctx, "ledger.create", func(b *costbook.Book) error {
		var err error
		rec, err = b.AppendRecord(draft)
		return err
	}, repository.CollectionLedger, repository.CollectionCategories)
	if err != nil {
		return nil, err
	}
	out := toRecordResponse(rec, uc.money)
	return &dto.RecordMutationResponse{Record: &out, Warnings: warnings}, nil
}

// Update edita un movimiento existente.
func (uc *LedgerUseCase) Update(ctx context.Context, id string, in dto.UpdateRecordRequest) (*dto.RecordMutationResponse, error) {
	patch, err := toRecordPatch(in)
	if err != nil {
		return nil, err
	}
	var rec *entity.LedgerRecord
	warnings, err := uc.s.Mutate(ctx, "ledger.update", func(b *costbook.Book) error {
		var err error
		rec, err = b.EditRecord(id, patch)
		return err
	}, repository.CollectionLedger, repository.CollectionCategories)
	if err != nil {
		return nil, err
	}
	out := toRecordResponse(rec, uc.money)
	return &dto.RecordMutationResponse{Record: &out, Warnings: warnings}, nil
}

// Delete elimina un movimiento.
func (uc *LedgerUseCase) Delete(ctx context.Context, id string) (*dto.RecordMutationResponse, error) {
	warnings, err := uc.s.Mutate(ctx, "ledger.delete", func(b *costbook.Book) error {
		return b.DeleteRecord(id)
	}, repository.CollectionLedger)
	if err != nil {
		return nil, err
	}
	return &dto.RecordMutationResponse{Deleted: 1, Warnings: warnings}, nil
}

// Clear elimina todos los movimientos.
func (uc *LedgerUseCase) Clear(ctx context.Context) (*dto.RecordMutationResponse, error) {
	var n int
	warnings, err := uc.s.Mutate(ctx, "ledger.clear", func(b *costbook.Book) error {
		n = b.ClearRecords()
		return nil
	}, repository.CollectionLedger)
	if err != nil {
		return nil, err
	}
	return &dto.RecordMutationResponse{Deleted: n, Warnings: warnings}, nil
}

// ── Exportaciones ─────────────────────────────────────────────────────────────

// ExportXLSX planilla con los movimientos filtrados.
func (uc *LedgerUseCase) ExportXLSX(ctx context.Context, q dto.LedgerQuery) ([]byte, string, error) {
	records, err := uc.filtered(q)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.sheets.LedgerXLSX(ctx, ledger.SortForDisplay(records), ledger.Summarize(records))
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("ledger-%s.xlsx", time.Now().Format("20060102")), nil
}

// ReportPDF reporte PDF con resumen, totales por categoría y detalle.
func (uc *LedgerUseCase) ReportPDF(ctx context.Context, q dto.LedgerQuery) ([]byte, string, error) {
	records, err := uc.filtered(q)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.LedgerReportPDF(ctx, report.LedgerReport{
		Period:      ReportPeriod(q),
		Records:     ledger.SortForDisplay(records),
		Summary:     ledger.Summarize(records),
		ByCategory:  ledger.GroupByCategory(records),
		Currency:    uc.money,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("ledger-%s.pdf", time.Now().Format("20060102")), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *LedgerUseCase) filtered(q dto.LedgerQuery) ([]*entity.LedgerRecord, error) {
	crit, err := toCriteria(q)
	if err != nil {
		return nil, err
	}
	var records []*entity.LedgerRecord
	uc.s.Read(func(b *costbook.Book) { records = b.Records() })
	return ledger.Filter(records, crit), nil
}

func toCriteria(q dto.LedgerQuery) (ledger.Criteria, error) {
	c := ledger.Criteria{
		Category: input.NormalizeName(q.Category),
		Product:  input.NormalizeName(q.Product),
	}
	if q.Type != "" {
		t, ok := entity.ParseRecordType(q.Type)
		if !ok {
			return c, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, q.Type)
		}
		c.Type = t
	}
	for _, p := range []struct {
		raw string
		dst **time.Time
	}{{q.From, &c.From}, {q.To, &c.To}} {
		if strings.TrimSpace(p.raw) == "" {
			continue
		}
		d, err := input.ParseDate(p.raw)
		if err != nil {
			return c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		*p.dst = &d
	}
	if c.From != nil && c.To != nil && c.From.After(*c.To) {
		return c, fmt.Errorf("%w: from es posterior a to", domain.ErrInvalidInput)
	}
	return c, nil
}

func toRecordPatch(in dto.UpdateRecordRequest) (costbook.RecordPatch, error) {
	p := costbook.RecordPatch{
		Description: in.Description,
		Location:    in.Location,
		Buyer:       in.Buyer,
		Products:    in.Products,
		Remark:      in.Remark,
	}
	if in.Category != nil {
		c := input.NormalizeName(*in.Category)
		p.Category = &c
	}
	if in.Date != nil {
		d, err := input.ParseDate(*in.Date)
		if err != nil {
			return p, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		p.Date = &d
	}
	if in.Type != nil {
		t, ok := entity.ParseRecordType(*in.Type)
		if !ok {
			return p, fmt.Errorf("%w: type debe ser income o expense", domain.ErrInvalidInput)
		}
		p.Type = &t
	}
	if in.Amount != nil {
		a, err := entity.NewAmount(in.Amount.Decimal)
		if err != nil {
			return p, err
		}
		p.Amount = &a
	}
	return p, nil
}

// ReportPeriod texto del período filtrado (vacío sin fechas).
func ReportPeriod(q dto.LedgerQuery) string {
	switch {
	case q.From != "" && q.To != "":
		return q.From + " ~ " + q.To
	case q.From != "":
		return "desde " + q.From
	case q.To != "":
		return "hasta " + q.To
	}
	return ""
}
