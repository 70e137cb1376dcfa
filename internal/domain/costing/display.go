package costing

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency moneda usada cuando la configuración no indica otra.
const DefaultCurrency = "TWD"

// FormatAmount aplica la política de presentación: valores enteros sin decimales,
// el resto con 2 decimales. No afecta a los cálculos.
func FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.Truncate(0).String()
	}
	return d.StringFixed(2)
}

// Formatter formatea montos con el símbolo de la moneda configurada.
type Formatter struct {
	symbol string
}

// NewFormatter construye el formateador; un código desconocido se usa tal cual como símbolo.
func NewFormatter(currencyCode string) Formatter {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = DefaultCurrency
	}
	symbol := code
	if c := money.GetCurrency(code); c != nil && c.Grapheme != "" {
		symbol = c.Grapheme
	}
	return Formatter{symbol: symbol}
}

// Symbol devuelve el símbolo de la moneda (ej. "NT$").
func (f Formatter) Symbol() string { return f.symbol }

// Format devuelve el monto con símbolo, ej. "NT$ 137.50".
func (f Formatter) Format(d decimal.Decimal) string {
	return f.symbol + " " + FormatAmount(d)
}
