package costbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
)

// RecordDraft datos de un movimiento nuevo, ya convertidos a value objects.
type RecordDraft struct {
	Date        time.Time
	Type        entity.RecordType
	Category    string
	Description string
	Amount      entity.Amount
	Location    string
	Buyer       string
	Products    []string
	Remark      string
}

// RecordPatch cambios parciales sobre un movimiento; nil = sin cambio.
type RecordPatch struct {
	Date        *time.Time
	Type        *entity.RecordType
	Category    *string
	Description *string
	Amount      *entity.Amount
	Location    *string
	Buyer       *string
	Products    *[]string
	Remark      *string
}

// AppendRecord agrega un movimiento al final del libro.
func (b *Book) AppendRecord(d RecordDraft) (*entity.LedgerRecord, error) {
	rec := &entity.LedgerRecord{
		Date:        dateOnly(d.Date),
		Type:        d.Type,
		Category:    strings.TrimSpace(d.Category),
		Description: strings.TrimSpace(d.Description),
		Amount:      d.Amount.Decimal(),
		Location:    strings.TrimSpace(d.Location),
		Buyer:       strings.TrimSpace(d.Buyer),
		Products:    cleanProducts(d.Products),
		Remark:      strings.TrimSpace(d.Remark),
	}
	if err := validateRecord(rec); err != nil {
		return nil, err
	}
	if rec.Category == "" {
		rec.Category = entity.CategoryOther
	}
	rec.ID = b.newID()
	rec.CreatedAt = b.timestamp()
	if rec.Date.IsZero() {
		rec.Date = dateOnly(rec.CreatedAt)
	}
	b.ensureCategory(rec.Category)
	b.records = append(b.records, rec)
	return rec.Clone(), nil
}

// EditRecord aplica un patch en el lugar. Valida sobre una copia: si falla, nada cambia.
func (b *Book) EditRecord(id string, p RecordPatch) (*entity.LedgerRecord, error) {
	idx := b.recordIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: movimiento %q", domain.ErrNotFound, id)
	}
	rec := b.records[idx].Clone()
	if p.Date != nil {
		rec.Date = dateOnly(*p.Date)
	}
	if p.Type != nil {
		rec.Type = *p.Type
	}
	if p.Category != nil {
		rec.Category = strings.TrimSpace(*p.Category)
		if rec.Category == "" {
			rec.Category = entity.CategoryOther
		}
	}
	if p.Description != nil {
		rec.Description = strings.TrimSpace(*p.Description)
	}
	if p.Amount != nil {
		rec.Amount = p.Amount.Decimal()
	}
	if p.Location != nil {
		rec.Location = strings.TrimSpace(*p.Location)
	}
	if p.Buyer != nil {
		rec.Buyer = strings.TrimSpace(*p.Buyer)
	}
	if p.Products != nil {
		rec.Products = cleanProducts(*p.Products)
	}
	if p.Remark != nil {
		rec.Remark = strings.TrimSpace(*p.Remark)
	}
	if err := validateRecord(rec); err != nil {
		return nil, err
	}
	b.ensureCategory(rec.Category)
	b.records[idx] = rec
	return rec.Clone(), nil
}

// DeleteRecord elimina un movimiento por id.
func (b *Book) DeleteRecord(id string) error {
	idx := b.recordIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: movimiento %q", domain.ErrNotFound, id)
	}
	b.records = append(b.records[:idx], b.records[idx+1:]...)
	return nil
}

// ClearRecords vacía el libro y devuelve cuántos movimientos se borraron.
func (b *Book) ClearRecords() int {
	n := len(b.records)
	b.records = nil
	return n
}

// Record devuelve una copia del movimiento.
func (b *Book) Record(id string) (*entity.LedgerRecord, bool) {
	idx := b.recordIndex(id)
	if idx < 0 {
		return nil, false
	}
	return b.records[idx].Clone(), true
}

// Records copia de todos los movimientos en orden de inserción.
func (b *Book) Records() []*entity.LedgerRecord {
	out := make([]*entity.LedgerRecord, 0, len(b.records))
	for _, r := range b.records {
		out = append(out, r.Clone())
	}
	return out
}

func (b *Book) recordIndex(id string) int {
	id = strings.TrimSpace(id)
	for i, r := range b.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func validateRecord(r *entity.LedgerRecord) error {
	if r.Description == "" {
		return fmt.Errorf("%w: la descripción es requerida", domain.ErrInvalidInput)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: el monto debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if r.Type != entity.RecordIncome && r.Type != entity.RecordExpense {
		return fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, r.Type)
	}
	return nil
}

func cleanProducts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = key(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
