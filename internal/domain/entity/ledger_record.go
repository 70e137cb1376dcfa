package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordType tipo de movimiento del libro.
type RecordType string

// Tipos de movimiento.
const (
	RecordIncome  RecordType = "income"  // ingreso
	RecordExpense RecordType = "expense" // gasto
)

// ParseRecordType acepta el valor canónico o la etiqueta localizada de los archivos antiguos.
func ParseRecordType(s string) (RecordType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "收入":
		return RecordIncome, true
	case "expense", "支出":
		return RecordExpense, true
	}
	return "", false
}

// LedgerRecord movimiento de ingreso o gasto.
type LedgerRecord struct {
	ID          string
	Date        time.Time // solo fecha; la hora se ignora
	Type        RecordType
	Category    string
	Description string
	Amount      decimal.Decimal
	Location    string
	Buyer       string
	Products    []string // nombres de recetas
	Remark      string
	CreatedAt   time.Time
}

// Clone devuelve una copia con su propio slice de productos.
func (r *LedgerRecord) Clone() *LedgerRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Products = append([]string(nil), r.Products...)
	return &out
}
