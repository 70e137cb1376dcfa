package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/domain"
)

func init() {
	// Los montos viajan como números JSON, igual que en los archivos existentes.
	decimal.MarshalJSONWithoutQuotes = true
}

// UnitPrice precio por gramo de un material. Siempre > 0.
type UnitPrice struct{ d decimal.Decimal }

// NewUnitPrice valida y construye un precio unitario.
func NewUnitPrice(d decimal.Decimal) (UnitPrice, error) {
	if !d.IsPositive() {
		return UnitPrice{}, fmt.Errorf("%w: el precio unitario debe ser mayor que 0", domain.ErrInvalidInput)
	}
	return UnitPrice{d: d}, nil
}

// Decimal devuelve el valor interno.
func (p UnitPrice) Decimal() decimal.Decimal { return p.d }

// Amount monto de un movimiento del libro. Siempre > 0; el signo lo da el tipo.
type Amount struct{ d decimal.Decimal }

// NewAmount valida y construye un monto.
func NewAmount(d decimal.Decimal) (Amount, error) {
	if !d.IsPositive() {
		return Amount{}, fmt.Errorf("%w: el monto debe ser mayor que 0", domain.ErrInvalidInput)
	}
	return Amount{d: d}, nil
}

// Decimal devuelve el valor interno.
func (a Amount) Decimal() decimal.Decimal { return a.d }

// Weight peso en gramos (>= 0). Cero se permite para líneas sin cantidad.
type Weight struct{ d decimal.Decimal }

// NewWeight valida y construye un peso.
func NewWeight(d decimal.Decimal) (Weight, error) {
	if d.IsNegative() {
		return Weight{}, fmt.Errorf("%w: el peso no puede ser negativo", domain.ErrInvalidInput)
	}
	return Weight{d: d}, nil
}

// Decimal devuelve el valor interno.
func (w Weight) Decimal() decimal.Decimal { return w.d }

// IsPositive indica si el peso aporta costo.
func (w Weight) IsPositive() bool { return w.d.IsPositive() }

// YieldRate rendimiento (merma) de un material, en el intervalo (0, 1].
type YieldRate struct{ d decimal.Decimal }

// NewYieldRate valida y construye un rendimiento.
func NewYieldRate(d decimal.Decimal) (YieldRate, error) {
	if !d.IsPositive() || d.GreaterThan(decimal.NewFromInt(1)) {
		return YieldRate{}, fmt.Errorf("%w: el rendimiento debe estar en (0, 1]", domain.ErrInvalidInput)
	}
	return YieldRate{d: d}, nil
}

// Decimal devuelve el valor interno.
func (y YieldRate) Decimal() decimal.Decimal { return y.d }

// OptionalYieldRate construye un rendimiento opcional: nil significa "sin merma".
func OptionalYieldRate(d *decimal.Decimal) (*YieldRate, error) {
	if d == nil {
		return nil, nil
	}
	y, err := NewYieldRate(*d)
	if err != nil {
		return nil, err
	}
	return &y, nil
}
