package ledger

import (
	"time"

	"github.com/jhoicas/Costbook-api/internal/domain/entity"
)

// Criteria criterios conjuntivos; un campo vacío no filtra. From y To son inclusivos
// y se comparan solo por fecha.
type Criteria struct {
	Type     entity.RecordType
	Category string
	Product  string
	From     *time.Time
	To       *time.Time
}

// Match indica si el movimiento cumple todos los criterios.
func (f Criteria) Match(r *entity.LedgerRecord) bool {
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Product != "" && !contains(r.Products, f.Product) {
		return false
	}
	day := truncateDay(r.Date)
	if f.From != nil && day.Before(truncateDay(*f.From)) {
		return false
	}
	if f.To != nil && day.After(truncateDay(*f.To)) {
		return false
	}
	return true
}

// Filter devuelve el subconjunto que cumple los criterios, en el mismo orden.
func Filter(records []*entity.LedgerRecord, f Criteria) []*entity.LedgerRecord {
	out := make([]*entity.LedgerRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
