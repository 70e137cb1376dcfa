// Package codec traduce el estado (costbook.Data) a los documentos JSON persistidos y
// viceversa. El formato es el de los archivos existentes: montos como números JSON,
// claves en snake_case, texto no ASCII sin escapar e indentación de 2 espacios.
//
// La decodificación tolera los formatos antiguos: materiales en base64
// ({"encoded_data": ...}), la clave "datetime" en lugar de "date", tipos 收入/支出,
// marcas de tiempo de isoformat() y movimientos sin id.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
	"github.com/jhoicas/Costbook-api/pkg/input"
)

// DateLayout formato de la fecha de los movimientos.
const DateLayout = "2006-01-02"

type lineDoc struct {
	Weight         decimal.Decimal  `json:"weight"`
	Price          decimal.Decimal  `json:"price"`
	Cost           decimal.Decimal  `json:"cost"`
	YieldRate      *decimal.Decimal `json:"yield_rate"`
	AdjustedWeight decimal.Decimal  `json:"adjusted_weight"`
}

type recipeDoc struct {
	Materials map[string]lineDoc `json:"materials"`
	TotalCost decimal.Decimal    `json:"total_cost"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at,omitempty"`
}

type recordDoc struct {
	ID          string          `json:"id"`
	Date        string          `json:"date,omitempty"`
	Datetime    string          `json:"datetime,omitempty"` // formato antiguo, solo lectura
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Location    string          `json:"location,omitempty"`
	Buyer       string          `json:"buyer,omitempty"`
	Products    []string        `json:"products"`
	Remark      string          `json:"remark,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

// Marshal serializa con el formato de los archivos: indentado, sin escapar HTML.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode serializa una colección del estado.
func Encode(c repository.Collection, d costbook.Data) ([]byte, error) {
	switch c {
	case repository.CollectionMaterials:
		m := d.Materials
		if m == nil {
			m = map[string]decimal.Decimal{}
		}
		return Marshal(m)
	case repository.CollectionMaterialOrder:
		return Marshal(nonNil(d.MaterialOrder))
	case repository.CollectionRecipes:
		return Marshal(encodeRecipes(d.Recipes))
	case repository.CollectionLedger:
		return Marshal(encodeRecords(d.Records))
	case repository.CollectionCategories:
		return Marshal(nonNil(d.Categories))
	}
	return nil, fmt.Errorf("codec: colección desconocida %q", c)
}

// Decode interpreta el documento de una colección y lo vuelca en d. newID asigna ids
// a los movimientos antiguos que no lo tienen. Un documento vacío deja d sin cambios.
//
// Los nombres de materiales, recetas y categorías se normalizan al leer. Lo que se
// tolera vuelve como advertencias: nombres que coinciden tras normalizarse (se conserva
// el primero en orden alfabético de la clave original) y movimientos inválidos, que se
// omiten sin descartar el resto del libro.
func Decode(c repository.Collection, raw []byte, d *costbook.Data, newID func() string) ([]string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var (
		warnings []string
		err      error
	)
	switch c {
	case repository.CollectionMaterials:
		d.Materials, warnings, err = decodeMaterials(raw)
	case repository.CollectionMaterialOrder:
		d.MaterialOrder, warnings, err = decodeNames(raw, "orden de materiales")
	case repository.CollectionRecipes:
		d.Recipes, warnings, err = decodeRecipes(raw)
	case repository.CollectionLedger:
		d.Records, warnings, err = decodeRecords(raw, newID)
	case repository.CollectionCategories:
		d.Categories, warnings, err = decodeNames(raw, "categoría")
	default:
		return nil, fmt.Errorf("codec: colección desconocida %q", c)
	}
	if err != nil {
		return nil, fmt.Errorf("codec: %s: %w", c, err)
	}
	for i, w := range warnings {
		warnings[i] = fmt.Sprintf("%s: %s", c, w)
	}
	return warnings, nil
}

// normalizeKeys reindexa un mapa por nombre normalizado. En una colisión gana la clave
// original menor; las claves vacías tras normalizar se omiten.
func normalizeKeys[V any](in map[string]V, what string) (map[string]V, []string) {
	raw := make([]string, 0, len(in))
	for k := range in {
		raw = append(raw, k)
	}
	sort.Strings(raw)

	out := make(map[string]V, len(in))
	from := make(map[string]string, len(in))
	var warnings []string
	for _, k := range raw {
		n := input.NormalizeName(k)
		switch prev, dup := from[n]; {
		case n == "":
			warnings = append(warnings, fmt.Sprintf("%s sin nombre omitido", what))
		case dup:
			warnings = append(warnings, fmt.Sprintf("%s %q coincide con %q tras normalizar; se conserva %q", what, k, prev, prev))
		default:
			out[n] = in[k]
			from[n] = k
		}
	}
	return out, warnings
}

func decodeNames(raw []byte, what string) ([]string, []string, error) {
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, nil, err
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	var warnings []string
	for _, name := range names {
		n := input.NormalizeName(name)
		if n == "" || seen[n] {
			if name != n || n == "" {
				warnings = append(warnings, fmt.Sprintf("%s: se omite %q (vacío o repetido tras normalizar)", what, name))
			}
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, warnings, nil
}

// ── Materiales ──

func decodeMaterials(raw []byte) (map[string]decimal.Decimal, []string, error) {
	var legacy struct {
		EncodedData *string `json:"encoded_data"`
	}
	if err := json.Unmarshal(raw, &legacy); err == nil && legacy.EncodedData != nil {
		inner, err := base64.StdEncoding.DecodeString(*legacy.EncodedData)
		if err != nil {
			return nil, nil, fmt.Errorf("encoded_data: %w", err)
		}
		raw = inner
	}
	var m map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, err
	}
	for name, p := range m {
		// Las versiones antiguas permitían precio 0; se conserva al cargar.
		if p.IsNegative() {
			return nil, nil, fmt.Errorf("%w: precio negativo para %q", domain.ErrInvalidInput, name)
		}
	}
	out, warnings := normalizeKeys(m, "material")
	return out, warnings, nil
}

// ── Recetas ──

func encodeRecipes(recipes map[string]*entity.Recipe) map[string]recipeDoc {
	out := make(map[string]recipeDoc, len(recipes))
	for name, r := range recipes {
		doc := recipeDoc{
			Materials: make(map[string]lineDoc, len(r.Lines)),
			TotalCost: r.TotalCost,
			CreatedAt: formatTimestamp(r.CreatedAt),
		}
		if r.UpdatedAt != nil {
			doc.UpdatedAt = formatTimestamp(*r.UpdatedAt)
		}
		for m, l := range r.Lines {
			doc.Materials[m] = lineDoc{
				Weight:         l.Weight,
				Price:          l.UnitPrice,
				Cost:           l.Cost,
				YieldRate:      l.YieldRate,
				AdjustedWeight: l.AdjustedWeight,
			}
		}
		out[name] = doc
	}
	return out
}

func decodeRecipes(raw []byte) (map[string]*entity.Recipe, []string, error) {
	var raws map[string]recipeDoc
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, nil, err
	}
	docs, warnings := normalizeKeys(raws, "receta")
	out := make(map[string]*entity.Recipe, len(docs))
	for name, doc := range docs {
		lines, lineWarnings := normalizeKeys(doc.Materials, fmt.Sprintf("receta %q: línea", name))
		warnings = append(warnings, lineWarnings...)

		r := &entity.Recipe{Name: name, Lines: make(map[string]entity.RecipeLine, len(lines))}
		for m, l := range lines {
			if l.Weight.IsNegative() {
				return nil, nil, fmt.Errorf("%w: receta %q: peso negativo en %q", domain.ErrInvalidInput, name, m)
			}
			var yield *decimal.Decimal
			if l.YieldRate != nil {
				if _, err := entity.NewYieldRate(*l.YieldRate); err != nil {
					return nil, nil, fmt.Errorf("receta %q: %q: %w", name, m, err)
				}
				y := *l.YieldRate
				yield = &y
			}
			// Los derivados guardados se ignoran: siempre se recalculan.
			r.Lines[m] = costing.Recompute(entity.RecipeLine{Weight: l.Weight, UnitPrice: l.Price, YieldRate: yield})
		}
		r.TotalCost = costing.RecipeTotal(r.Lines)
		if doc.CreatedAt != "" {
			t, err := input.ParseTimestamp(doc.CreatedAt)
			if err != nil {
				return nil, nil, fmt.Errorf("receta %q: %w", name, err)
			}
			r.CreatedAt = t
		}
		if doc.UpdatedAt != "" {
			t, err := input.ParseTimestamp(doc.UpdatedAt)
			if err != nil {
				return nil, nil, fmt.Errorf("receta %q: %w", name, err)
			}
			r.UpdatedAt = &t
		}
		out[name] = r
	}
	return out, warnings, nil
}

// ── Libro ──

func encodeRecords(records []*entity.LedgerRecord) []recordDoc {
	out := make([]recordDoc, 0, len(records))
	for _, r := range records {
		out = append(out, recordDoc{
			ID:          r.ID,
			Date:        r.Date.Format(DateLayout),
			Type:        string(r.Type),
			Category:    r.Category,
			Description: r.Description,
			Amount:      r.Amount,
			Location:    r.Location,
			Buyer:       r.Buyer,
			Products:    nonNil(r.Products),
			Remark:      r.Remark,
			CreatedAt:   formatTimestamp(r.CreatedAt),
		})
	}
	return out
}

// decodeRecords falla solo si el documento no es JSON válido; un movimiento que no
// pasa las validaciones se omite con una advertencia.
func decodeRecords(raw []byte, newID func() string) ([]*entity.LedgerRecord, []string, error) {
	var docs []recordDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, nil, err
	}
	out := make([]*entity.LedgerRecord, 0, len(docs))
	var warnings []string
	for i, doc := range docs {
		r, err := decodeRecord(doc, newID)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("movimiento %d omitido: %v", i, err))
			continue
		}
		out = append(out, r)
	}
	return out, warnings, nil
}

func decodeRecord(doc recordDoc, newID func() string) (*entity.LedgerRecord, error) {
	typ, ok := entity.ParseRecordType(doc.Type)
	if !ok {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, doc.Type)
	}
	if !doc.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: monto %s", domain.ErrInvalidInput, doc.Amount)
	}
	r := &entity.LedgerRecord{
		ID:          doc.ID,
		Type:        typ,
		Category:    doc.Category,
		Description: doc.Description,
		Amount:      doc.Amount,
		Location:    doc.Location,
		Buyer:       doc.Buyer,
		Products:    nonNil(doc.Products),
		Remark:      doc.Remark,
	}
	if r.Category == "" {
		r.Category = entity.CategoryOther
	}
	if doc.CreatedAt != "" {
		t, err := input.ParseTimestamp(doc.CreatedAt)
		if err != nil {
			return nil, err
		}
		r.CreatedAt = t
	}

	dateText := doc.Date
	if dateText == "" {
		dateText = doc.Datetime
	}
	switch {
	case dateText != "":
		t, err := input.ParseDate(dateText)
		if err != nil {
			return nil, err
		}
		r.Date = t
	case !r.CreatedAt.IsZero():
		y, m, d := r.CreatedAt.Date()
		r.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	default:
		return nil, fmt.Errorf("%w: movimiento sin fecha", domain.ErrInvalidInput)
	}
	if r.ID == "" {
		r.ID = newID()
	}
	return r, nil
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
