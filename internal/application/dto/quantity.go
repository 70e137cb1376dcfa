package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/pkg/input"
)

// Quantity número recibido del cliente. Acepta número JSON o texto ("２００", "1,250",
// "150+50"); el texto se interpreta con input.ParseDecimal.
type Quantity struct {
	decimal.Decimal
}

// Q construye una Quantity (tests y clientes Go).
func Q(s string) Quantity {
	return Quantity{Decimal: decimal.RequireFromString(s)}
}

// UnmarshalJSON implementa json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := input.ParseDecimal(s)
		if err != nil {
			return err
		}
		q.Decimal = d
		return nil
	}
	return q.Decimal.UnmarshalJSON(b)
}

// Ptr devuelve el decimal como puntero (nil si q es nil).
func (q *Quantity) Ptr() *decimal.Decimal {
	if q == nil {
		return nil
	}
	d := q.Decimal
	return &d
}
