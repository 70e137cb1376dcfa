package costbook

import (
	"fmt"

	"github.com/jhoicas/Costbook-api/internal/domain"
)

// Categories copia del conjunto de categorías en orden de alta.
func (b *Book) Categories() []string {
	return append([]string(nil), b.categories...)
}

// AddCategory agrega una categoría al conjunto.
func (b *Book) AddCategory(name string) error {
	name = key(name)
	if name == "" {
		return fmt.Errorf("%w: el nombre de la categoría es requerido", domain.ErrInvalidInput)
	}
	if b.hasCategory(name) {
		return fmt.Errorf("%w: la categoría %q ya existe", domain.ErrDuplicate, name)
	}
	b.categories = append(b.categories, name)
	return nil
}

// DeleteCategory quita una categoría del conjunto. Los movimientos conservan el texto.
func (b *Book) DeleteCategory(name string) error {
	name = key(name)
	for i, c := range b.categories {
		if c == name {
			b.categories = append(b.categories[:i], b.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: categoría %q", domain.ErrNotFound, name)
}

func (b *Book) hasCategory(name string) bool {
	for _, c := range b.categories {
		if c == name {
			return true
		}
	}
	return false
}

// ensureCategory extiende el conjunto con categorías libres usadas en movimientos.
func (b *Book) ensureCategory(name string) {
	if name != "" && !b.hasCategory(name) {
		b.categories = append(b.categories, name)
	}
}
