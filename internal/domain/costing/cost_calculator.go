// Package costing es el motor de costos: convierte pesos, rendimientos y precios
// por gramo en costos por línea y totales de receta. Funciones puras, sin estado.
package costing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
)

// AdjustedWeight = peso / rendimiento si hay rendimiento > 0; si no, el peso.
func AdjustedWeight(weight decimal.Decimal, yieldRate *decimal.Decimal) decimal.Decimal {
	if yieldRate != nil && yieldRate.IsPositive() {
		return weight.Div(*yieldRate)
	}
	return weight
}

// LineCost = AdjustedWeight * precio unitario. Sin redondeo: el redondeo es solo de presentación.
func LineCost(weight, unitPrice decimal.Decimal, yieldRate *decimal.Decimal) decimal.Decimal {
	return AdjustedWeight(weight, yieldRate).Mul(unitPrice)
}

// BuildLine arma una línea de receta a partir de valores ya validados.
func BuildLine(weight entity.Weight, unitPrice decimal.Decimal, yieldRate *entity.YieldRate) entity.RecipeLine {
	line := entity.RecipeLine{
		Weight:    weight.Decimal(),
		UnitPrice: unitPrice,
	}
	if yieldRate != nil {
		y := yieldRate.Decimal()
		line.YieldRate = &y
	}
	return Recompute(line)
}

// Recompute recalcula los campos derivados de la línea (peso ajustado y costo).
func Recompute(line entity.RecipeLine) entity.RecipeLine {
	line.AdjustedWeight = AdjustedWeight(line.Weight, line.YieldRate)
	line.Cost = line.AdjustedWeight.Mul(line.UnitPrice)
	return line
}

// RecipeTotal suma el costo de las líneas con peso > 0.
// Las líneas en cero se guardan, pero no aportan al total.
func RecipeTotal(lines map[string]entity.RecipeLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Weight.IsPositive() {
			total = total.Add(l.Cost)
		}
	}
	return total
}

// HasPositiveWeight indica si al menos una línea tiene peso > 0 (requisito para guardar).
func HasPositiveWeight(lines map[string]entity.RecipeLine) bool {
	for _, l := range lines {
		if l.Weight.IsPositive() {
			return true
		}
	}
	return false
}

// Input entrada de la calculadora para un material seleccionado.
type Input struct {
	Material  string
	Weight    entity.Weight
	YieldRate *entity.YieldRate
}

// Quote calcula las líneas y el total para las entradas dadas usando la tabla de precios.
// Devuelve ErrNotFound si algún material no existe y ErrInvalidInput si se repite.
func Quote(prices map[string]decimal.Decimal, inputs []Input) (map[string]entity.RecipeLine, decimal.Decimal, error) {
	lines := make(map[string]entity.RecipeLine, len(inputs))
	for _, in := range inputs {
		price, ok := prices[in.Material]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: material %q", domain.ErrNotFound, in.Material)
		}
		if _, dup := lines[in.Material]; dup {
			return nil, decimal.Zero, fmt.Errorf("%w: material %q repetido", domain.ErrInvalidInput, in.Material)
		}
		lines[in.Material] = BuildLine(in.Weight, price, in.YieldRate)
	}
	return lines, RecipeTotal(lines), nil
}

// SortedMaterials devuelve los nombres de material de las líneas en orden alfabético.
func SortedMaterials(lines map[string]entity.RecipeLine) []string {
	names := make([]string, 0, len(lines))
	for name := range lines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
