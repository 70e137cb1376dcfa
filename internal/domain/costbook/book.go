// Package costbook contiene el estado de la aplicación: materiales, recetas, libro de
// ingresos/gastos y categorías. Todo cambio pasa por métodos con nombre (AddMaterial,
// DeleteMaterial, SaveRecipe, AppendRecord...) que validan antes de mutar: si un método
// devuelve error, el estado no cambió.
//
// Book no es seguro para uso concurrente; session.Session serializa el acceso.
package costbook

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/pkg/input"
)

// Book estado completo en memoria.
type Book struct {
	materials     map[string]decimal.Decimal
	materialOrder []string
	recipes       map[string]*entity.Recipe
	records       []*entity.LedgerRecord
	categories    []string

	now   func() time.Time
	newID func() string
}

// Option configura un Book (reloj e ids, útiles en tests).
type Option func(*Book)

// WithClock reemplaza time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// WithIDGenerator reemplaza la generación de UUIDs para movimientos.
func WithIDGenerator(newID func() string) Option {
	return func(b *Book) { b.newID = newID }
}

// Data vista plana del estado, usada para persistir y restaurar.
type Data struct {
	Materials     map[string]decimal.Decimal
	MaterialOrder []string
	Recipes       map[string]*entity.Recipe
	Records       []*entity.LedgerRecord
	Categories    []string
}

// New crea un libro vacío con las categorías por defecto.
func New(opts ...Option) *Book {
	return FromData(Data{}, opts...)
}

// FromData restaura un libro a partir de datos cargados. Copia todo lo recibido.
// Si no hay categorías se usan las de por defecto.
func FromData(d Data, opts ...Option) *Book {
	b := &Book{
		materials: make(map[string]decimal.Decimal, len(d.Materials)),
		recipes:   make(map[string]*entity.Recipe, len(d.Recipes)),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(b)
	}
	for name, price := range d.Materials {
		b.materials[name] = price
	}
	b.materialOrder = append([]string(nil), d.MaterialOrder...)
	for name, r := range d.Recipes {
		c := r.Clone()
		c.Name = name
		b.recipes[name] = c
	}
	for _, r := range d.Records {
		b.records = append(b.records, r.Clone())
	}
	if len(d.Categories) == 0 {
		b.categories = append([]string(nil), entity.DefaultCategories...)
	} else {
		b.categories = append([]string(nil), d.Categories...)
	}
	return b
}

// Data devuelve una copia profunda del estado.
func (b *Book) Data() Data {
	d := Data{
		Materials:     b.MaterialPrices(),
		MaterialOrder: b.orderedMaterialNames(),
		Recipes:       make(map[string]*entity.Recipe, len(b.recipes)),
		Records:       b.Records(),
		Categories:    b.Categories(),
	}
	for name, r := range b.recipes {
		d.Recipes[name] = r.Clone()
	}
	return d
}

// NewID genera un id de movimiento con el generador configurado.
func (b *Book) NewID() string {
	return b.newID()
}

func (b *Book) timestamp() time.Time {
	return b.now()
}

func key(name string) string {
	return input.NormalizeName(name)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
