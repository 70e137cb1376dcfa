// Package input normaliza texto capturado por el usuario: nombres de materiales,
// recetas y categorías, y cantidades escritas a mano (dígitos de ancho completo,
// separadores de miles o expresiones como "150+50").
package input

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alfredxing/calc/compute"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// ErrNotANumber el texto no es un número ni una expresión aritmética válida.
var ErrNotANumber = errors.New("input: no es un número")

// NormalizeName recorta espacios, colapsa espacios internos y normaliza a NFC,
// para que dos nombres visualmente iguales sean la misma clave.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// ParseDecimal interpreta una cantidad. Cadena vacía => 0.
// Acepta dígitos de ancho completo ("２００"), separadores de miles y expresiones
// aritméticas simples evaluadas con calc.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = width.Narrow.String(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if d, err := decimal.NewFromString(s); err == nil {
		return d, nil
	}
	f, err := compute.Evaluate(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return decimal.NewFromFloat(f), nil
}
