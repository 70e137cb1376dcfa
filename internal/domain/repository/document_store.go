package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Collection nombre lógico de un documento persistido. Cada colección se guarda y
// se carga completa.
type Collection string

// Colecciones persistidas.
const (
	CollectionMaterials     Collection = "materials"
	CollectionMaterialOrder Collection = "material_order"
	CollectionRecipes       Collection = "recipes"
	CollectionLedger        Collection = "ledger"
	CollectionCategories    Collection = "categories"
)

// AllCollections en orden de carga.
var AllCollections = []Collection{
	CollectionMaterials,
	CollectionMaterialOrder,
	CollectionRecipes,
	CollectionLedger,
	CollectionCategories,
}

// DocumentStore frontera de persistencia: documentos JSON completos por colección.
// Las implementaciones (archivo JSON, PostgreSQL, SQLite) son intercambiables.
type DocumentStore interface {
	// Load devuelve el documento o nil si la colección no existe todavía.
	Load(ctx context.Context, c Collection) ([]byte, error)
	// Save reemplaza el documento completo.
	Save(ctx context.Context, c Collection, data []byte) error
	// Discard elimina el documento (usado cuando no se puede leer).
	Discard(ctx context.Context, c Collection) error
	// Close libera los recursos del backend.
	Close() error
}

// Revision copia histórica de una colección. Total es el resumen numérico guardado
// junto a la copia (neto del libro, suma de recetas) cuando la colección lo tiene.
type Revision struct {
	ID      int64
	SavedAt time.Time
	Total   decimal.NullDecimal
	Size    int
}

// RevisionLister lo implementan los backends que conservan historial.
type RevisionLister interface {
	// Revisions devuelve las últimas copias de la colección, la más reciente primero.
	Revisions(ctx context.Context, c Collection, limit int) ([]Revision, error)
}
