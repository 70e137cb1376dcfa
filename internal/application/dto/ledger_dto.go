package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRecordRequest movimiento nuevo. Date vacío = hoy. Type acepta "income"/"expense"
// o las etiquetas 收入/支出.
type CreateRecordRequest struct {
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Amount      Quantity `json:"amount"`
	Location    string   `json:"location"`
	Buyer       string   `json:"buyer"`
	Products    []string `json:"products"`
	Remark      string   `json:"remark"`
}

// UpdateRecordRequest cambios parciales; campos ausentes no cambian.
type UpdateRecordRequest struct {
	Date        *string   `json:"date,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	Amount      *Quantity `json:"amount,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Buyer       *string   `json:"buyer,omitempty"`
	Products    *[]string `json:"products,omitempty"`
	Remark      *string   `json:"remark,omitempty"`
}

// LedgerQuery filtros de listado y agregados (query string).
type LedgerQuery struct {
	Type     string `query:"type"`
	Category string `query:"category"`
	Product  string `query:"product"`
	From     string `query:"from"`
	To       string `query:"to"`
}

// RecordResponse movimiento.
type RecordResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	AmountDisplay string          `json:"amount_display"`
	Location      string          `json:"location,omitempty"`
	Buyer         string          `json:"buyer,omitempty"`
	Products      []string        `json:"products"`
	Remark        string          `json:"remark,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RecordListResponse movimientos recientes primero, con sus totales.
type RecordListResponse struct {
	Items   []RecordResponse `json:"items"`
	Summary SummaryResponse  `json:"summary"`
}

// RecordMutationResponse resultado de crear o editar.
type RecordMutationResponse struct {
	Record   *RecordResponse `json:"record,omitempty"`
	Deleted  int             `json:"deleted,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// SummaryResponse totales.
type SummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
	NetDisplay   string          `json:"net_display"`
	Count        int             `json:"count"`
}

// CategoryTotalsResponse totales de una categoría.
type CategoryTotalsResponse struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
}

// BuyerTotalsResponse totales de un comprador.
type BuyerTotalsResponse struct {
	Buyer       string                     `json:"buyer"`
	Count       int                        `json:"count"`
	Total       decimal.Decimal            `json:"total"`
	PerCategory map[string]decimal.Decimal `json:"per_category"`
}

// MonthTotalsResponse totales de un mes (YYYY-MM).
type MonthTotalsResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// SuggestionResponse categoría sugerida para una descripción.
type SuggestionResponse struct {
	Category  string `json:"category"`
	Confident bool   `json:"confident"`
}
