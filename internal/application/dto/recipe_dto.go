package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculatorLine material elegido en la calculadora.
type CalculatorLine struct {
	Material  string    `json:"material"`
	Weight    Quantity  `json:"weight"`
	YieldRate *Quantity `json:"yield_rate,omitempty"`
}

// QuoteRequest cálculo sin guardar.
type QuoteRequest struct {
	Lines []CalculatorLine `json:"lines"`
}

// SaveRecipeRequest cálculo y guardado como receta.
type SaveRecipeRequest struct {
	Name  string           `json:"name"`
	Lines []CalculatorLine `json:"lines"`
}

// RecipeLineResponse línea con sus derivados.
type RecipeLineResponse struct {
	Material       string           `json:"material"`
	Weight         decimal.Decimal  `json:"weight"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	YieldRate      *decimal.Decimal `json:"yield_rate"`
	AdjustedWeight decimal.Decimal  `json:"adjusted_weight"`
	Cost           decimal.Decimal  `json:"cost"`
	CostDisplay    string           `json:"cost_display"`
}

// QuoteResponse resultado de la calculadora.
type QuoteResponse struct {
	Lines        []RecipeLineResponse `json:"lines"`
	TotalCost    decimal.Decimal      `json:"total_cost"`
	TotalDisplay string               `json:"total_display"`
}

// RecipeResponse receta guardada.
type RecipeResponse struct {
	Name         string               `json:"name"`
	Lines        []RecipeLineResponse `json:"lines"`
	TotalCost    decimal.Decimal      `json:"total_cost"`
	TotalDisplay string               `json:"total_display"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    *time.Time           `json:"updated_at,omitempty"`
}

// RecipeListResponse recetas por fecha de creación.
type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
}

// SaveRecipeResponse resultado de guardar desde la calculadora.
type SaveRecipeResponse struct {
	Recipe      RecipeResponse `json:"recipe"`
	Overwritten bool           `json:"overwritten"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// RenameRecipeRequest nombre nuevo.
type RenameRecipeRequest struct {
	Name string `json:"name"`
}

// RecipeMutationResponse resultado de renombrar, refrescar o borrar.
type RecipeMutationResponse struct {
	Recipe         *RecipeResponse `json:"recipe,omitempty"`
	UpdatedRecords int             `json:"updated_records,omitempty"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// CalculatorPresetResponse entradas para precargar la calculadora.
type CalculatorPresetResponse struct {
	Recipe string             `json:"recipe"`
	Lines  []CalculatorPreset `json:"lines"`
}

// CalculatorPreset una entrada precargada.
type CalculatorPreset struct {
	Material  string           `json:"material"`
	Weight    decimal.Decimal  `json:"weight"`
	YieldRate *decimal.Decimal `json:"yield_rate,omitempty"`
}
