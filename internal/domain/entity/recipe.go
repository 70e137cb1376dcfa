package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLine línea de material dentro de una receta.
// UnitPrice es una copia del precio al momento de guardar, no una referencia viva.
// AdjustedWeight y Cost son derivados: siempre se recalculan (ver costing.BuildLine).
type RecipeLine struct {
	Weight         decimal.Decimal
	UnitPrice      decimal.Decimal
	YieldRate      *decimal.Decimal // nil = sin merma
	AdjustedWeight decimal.Decimal
	Cost           decimal.Decimal
}

// Recipe combinación guardada de materiales con su costo total congelado.
type Recipe struct {
	Name      string
	Lines     map[string]RecipeLine // material -> línea
	TotalCost decimal.Decimal
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Clone devuelve una copia profunda (el mapa de líneas no se comparte).
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	out := *r
	out.Lines = make(map[string]RecipeLine, len(r.Lines))
	for k, v := range r.Lines {
		if v.YieldRate != nil {
			y := *v.YieldRate
			v.YieldRate = &y
		}
		out.Lines[k] = v
	}
	if r.UpdatedAt != nil {
		t := *r.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}
