// Package ledger contiene los cálculos de solo lectura sobre los movimientos del libro:
// totales, filtros, agrupaciones y orden de visualización.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/domain/entity"
)

// Summary totales del conjunto de movimientos. Net = TotalIncome - TotalExpense.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Net          decimal.Decimal
	Count        int
}

// Summarize particiona por tipo y suma. Un conjunto vacío da todo en cero.
func Summarize(records []*entity.LedgerRecord) Summary {
	s := Summary{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for _, r := range records {
		switch r.Type {
		case entity.RecordIncome:
			s.TotalIncome = s.TotalIncome.Add(r.Amount)
		case entity.RecordExpense:
			s.TotalExpense = s.TotalExpense.Add(r.Amount)
		default:
			continue
		}
		s.Count++
	}
	s.Net = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// CategoryTotals ingresos y gastos de una categoría.
type CategoryTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// GroupByCategory agrupa montos por categoría.
func GroupByCategory(records []*entity.LedgerRecord) map[string]CategoryTotals {
	out := make(map[string]CategoryTotals)
	for _, r := range records {
		t, ok := out[r.Category]
		if !ok {
			t = CategoryTotals{Income: decimal.Zero, Expense: decimal.Zero}
		}
		switch r.Type {
		case entity.RecordIncome:
			t.Income = t.Income.Add(r.Amount)
		case entity.RecordExpense:
			t.Expense = t.Expense.Add(r.Amount)
		}
		out[r.Category] = t
	}
	return out
}

// BuyerTotals movimientos de un comprador.
type BuyerTotals struct {
	Count       int
	Total       decimal.Decimal
	PerCategory map[string]decimal.Decimal
}

// GroupByBuyer agrupa los movimientos del tipo indicado por comprador.
// Los movimientos sin comprador quedan bajo la clave "".
func GroupByBuyer(records []*entity.LedgerRecord, typ entity.RecordType) map[string]BuyerTotals {
	out := make(map[string]BuyerTotals)
	for _, r := range records {
		if r.Type != typ {
			continue
		}
		t, ok := out[r.Buyer]
		if !ok {
			t = BuyerTotals{Total: decimal.Zero, PerCategory: make(map[string]decimal.Decimal)}
		}
		t.Count++
		t.Total = t.Total.Add(r.Amount)
		t.PerCategory[r.Category] = t.PerCategory[r.Category].Add(r.Amount)
		out[r.Buyer] = t
	}
	return out
}

// MonthTotals totales de un mes ("2006-01").
type MonthTotals struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// GroupByMonth agrupa por mes calendario de la fecha del movimiento, en orden cronológico.
func GroupByMonth(records []*entity.LedgerRecord) []MonthTotals {
	byMonth := make(map[string]*MonthTotals)
	for _, r := range records {
		m := r.Date.Format("2006-01")
		t, ok := byMonth[m]
		if !ok {
			t = &MonthTotals{Month: m, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[m] = t
		}
		switch r.Type {
		case entity.RecordIncome:
			t.Income = t.Income.Add(r.Amount)
		case entity.RecordExpense:
			t.Expense = t.Expense.Add(r.Amount)
		}
	}
	out := make([]MonthTotals, 0, len(byMonth))
	for _, t := range byMonth {
		t.Net = t.Income.Sub(t.Expense)
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// SortForDisplay devuelve una copia ordenada por fecha descendente. Los empates
// conservan el orden de inserción.
func SortForDisplay(records []*entity.LedgerRecord) []*entity.LedgerRecord {
	out := append([]*entity.LedgerRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
