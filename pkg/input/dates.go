package input

import (
	"fmt"
	"strings"
	"time"

	date "github.com/joyt/godate"
	"golang.org/x/text/width"
)

// Formatos probados antes de recurrir a la detección de godate. Incluye la salida de
// isoformat() (sin zona, con microsegundos) de los archivos antiguos.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp interpreta una fecha u hora en cualquiera de los formatos conocidos.
// Los valores sin zona se toman en UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = width.Narrow.String(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, fmt.Errorf("input: fecha vacía")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	t, _, err := date.ParseAndGetLayout(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("input: fecha no reconocida %q: %w", s, err)
	}
	return t, nil
}

// ParseDate como ParseTimestamp pero descarta la hora.
func ParseDate(s string) (time.Time, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
