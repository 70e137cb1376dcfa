package costbook

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
)

// SaveRecipe guarda (o sobrescribe) una receta. Los campos derivados de cada línea y el
// total se recalculan siempre. Sobrescribir no es un error: overwritten=true para avisar,
// se conserva CreatedAt y se marca UpdatedAt.
func (b *Book) SaveRecipe(name string, lines map[string]entity.RecipeLine) (recipe *entity.Recipe, overwritten bool, err error) {
	name = key(name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: el nombre de la receta es requerido", domain.ErrInvalidInput)
	}
	if !costing.HasPositiveWeight(lines) {
		return nil, false, fmt.Errorf("%w: ingrese el peso de al menos un material", domain.ErrInvalidInput)
	}
	clean := make(map[string]entity.RecipeLine, len(lines))
	for m, l := range lines {
		m = key(m)
		if m == "" {
			return nil, false, fmt.Errorf("%w: línea sin material", domain.ErrInvalidInput)
		}
		if l.Weight.IsNegative() {
			return nil, false, fmt.Errorf("%w: peso negativo en %q", domain.ErrInvalidInput, m)
		}
		clean[m] = costing.Recompute(l)
	}

	now := b.timestamp()
	r := &entity.Recipe{
		Name:      name,
		Lines:     clean,
		TotalCost: costing.RecipeTotal(clean),
		CreatedAt: now,
	}
	if prev, ok := b.recipes[name]; ok {
		overwritten = true
		r.CreatedAt = prev.CreatedAt
		r.UpdatedAt = &now
	}
	b.recipes[name] = r
	return r.Clone(), overwritten, nil
}

// Recipe devuelve una copia de la receta.
func (b *Book) Recipe(name string) (*entity.Recipe, bool) {
	r, ok := b.recipes[key(name)]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// ListRecipes devuelve copias de todas las recetas, de la más antigua a la más reciente.
func (b *Book) ListRecipes() []*entity.Recipe {
	out := make([]*entity.Recipe, 0, len(b.recipes))
	for _, r := range b.recipes {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// RenameRecipe cambia el nombre de una receta. Los movimientos del libro que la citan
// en Products se actualizan. Devuelve cuántos movimientos cambiaron.
func (b *Book) RenameRecipe(oldName, newName string) (int, error) {
	oldName, newName = key(oldName), key(newName)
	if newName == "" {
		return 0, fmt.Errorf("%w: el nombre nuevo es requerido", domain.ErrInvalidInput)
	}
	r, ok := b.recipes[oldName]
	if !ok {
		return 0, fmt.Errorf("%w: receta %q", domain.ErrNotFound, oldName)
	}
	if newName == oldName {
		return 0, nil
	}
	if _, exists := b.recipes[newName]; exists {
		return 0, fmt.Errorf("%w: la receta %q ya existe", domain.ErrDuplicate, newName)
	}
	now := b.timestamp()
	delete(b.recipes, oldName)
	r.Name = newName
	r.UpdatedAt = &now
	b.recipes[newName] = r

	changed := 0
	for _, rec := range b.records {
		hit := false
		for i, p := range rec.Products {
			if p == oldName {
				rec.Products[i] = newName
				hit = true
			}
		}
		if hit {
			changed++
		}
	}
	return changed, nil
}

// DeleteRecipe elimina una receta. Los movimientos que la citan conservan el nombre.
func (b *Book) DeleteRecipe(name string) error {
	name = key(name)
	if _, ok := b.recipes[name]; !ok {
		return fmt.Errorf("%w: receta %q", domain.ErrNotFound, name)
	}
	delete(b.recipes, name)
	return nil
}

// CalculatorPreset entradas de la calculadora precargadas desde una receta.
// Es una copia: editar la receta después no la afecta.
type CalculatorPreset struct {
	Materials  []string
	Weights    map[string]decimal.Decimal
	YieldRates map[string]decimal.Decimal
}

// LoadIntoCalculator exporta los materiales y pesos de una receta para reutilizarlos.
func (b *Book) LoadIntoCalculator(name string) (CalculatorPreset, error) {
	r, ok := b.recipes[key(name)]
	if !ok {
		return CalculatorPreset{}, fmt.Errorf("%w: receta %q", domain.ErrNotFound, key(name))
	}
	p := CalculatorPreset{
		Materials:  costing.SortedMaterials(r.Lines),
		Weights:    make(map[string]decimal.Decimal, len(r.Lines)),
		YieldRates: make(map[string]decimal.Decimal),
	}
	for m, l := range r.Lines {
		p.Weights[m] = l.Weight
		if l.YieldRate != nil {
			p.YieldRates[m] = *l.YieldRate
		}
	}
	return p, nil
}

// RefreshRecipePrices vuelve a copiar los precios actuales de los materiales en la receta.
// Las líneas cuyo material ya no existe conservan su precio.
func (b *Book) RefreshRecipePrices(name string) (*entity.Recipe, error) {
	r, ok := b.recipes[key(name)]
	if !ok {
		return nil, fmt.Errorf("%w: receta %q", domain.ErrNotFound, key(name))
	}
	for m, l := range r.Lines {
		if price, ok := b.materials[m]; ok {
			l.UnitPrice = price
		}
		r.Lines[m] = costing.Recompute(l)
	}
	r.TotalCost = costing.RecipeTotal(r.Lines)
	now := b.timestamp()
	r.UpdatedAt = &now
	return r.Clone(), nil
}
