package costbook

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
)

// AddMaterial registra un material nuevo al final del orden de visualización.
func (b *Book) AddMaterial(name string, price entity.UnitPrice) (entity.Material, error) {
	name = key(name)
	if name == "" {
		return entity.Material{}, fmt.Errorf("%w: el nombre del material es requerido", domain.ErrInvalidInput)
	}
	if !price.Decimal().IsPositive() {
		return entity.Material{}, fmt.Errorf("%w: el precio unitario debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if _, exists := b.materials[name]; exists {
		return entity.Material{}, fmt.Errorf("%w: el material %q ya existe", domain.ErrDuplicate, name)
	}
	b.materials[name] = price.Decimal()
	b.materialOrder = append(b.materialOrder, name)
	return entity.Material{Name: name, UnitPrice: price.Decimal()}, nil
}

// Material devuelve un material por nombre.
func (b *Book) Material(name string) (entity.Material, bool) {
	name = key(name)
	price, ok := b.materials[name]
	if !ok {
		return entity.Material{}, false
	}
	return entity.Material{Name: name, UnitPrice: price}, true
}

// MaterialPrices copia de la tabla nombre -> precio.
func (b *Book) MaterialPrices() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(b.materials))
	for k, v := range b.materials {
		out[k] = v
	}
	return out
}

// ListMaterials devuelve los materiales en el orden personalizado.
func (b *Book) ListMaterials() []entity.Material {
	names := b.orderedMaterialNames()
	out := make([]entity.Material, 0, len(names))
	for _, n := range names {
		out = append(out, entity.Material{Name: n, UnitPrice: b.materials[n]})
	}
	return out
}

// orderedMaterialNames concilia la lista de orden con las claves actuales:
// se descartan entradas que ya no existen y se agregan al final (en orden alfabético)
// las claves que no aparecen en la lista.
func (b *Book) orderedMaterialNames() []string {
	seen := make(map[string]bool, len(b.materials))
	out := make([]string, 0, len(b.materials))
	for _, n := range b.materialOrder {
		if _, ok := b.materials[n]; ok && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, n := range sortedKeys(b.materials) {
		if !seen[n] {
			out = append(out, n)
		}
	}
	return out
}

// ReorderMaterials fija un nuevo orden de visualización. Los nombres desconocidos se
// ignoran y los materiales omitidos quedan al final.
func (b *Book) ReorderMaterials(names []string) []entity.Material {
	order := make([]string, 0, len(names))
	for _, n := range names {
		order = append(order, key(n))
	}
	b.materialOrder = order
	b.materialOrder = b.orderedMaterialNames()
	return b.ListMaterials()
}

// RenameMaterial cambia la clave de un material y propaga el cambio a todas las líneas
// de receta que lo referencian. Los costos no cambian. Si alguna receta ya tiene una
// línea con el nombre nuevo, se rechaza con ErrDuplicate sin cambiar nada.
// Devuelve las recetas afectadas.
func (b *Book) RenameMaterial(oldName, newName string) ([]string, error) {
	oldName, newName = key(oldName), key(newName)
	if newName == "" {
		return nil, fmt.Errorf("%w: el nombre nuevo es requerido", domain.ErrInvalidInput)
	}
	price, ok := b.materials[oldName]
	if !ok {
		return nil, fmt.Errorf("%w: material %q", domain.ErrNotFound, oldName)
	}
	if newName == oldName {
		return nil, nil
	}
	if _, exists := b.materials[newName]; exists {
		return nil, fmt.Errorf("%w: el material %q ya existe", domain.ErrDuplicate, newName)
	}
	// Datos antiguos pueden conservar líneas de materiales ya borrados; renombrar sobre
	// una de ellas fusionaría dos líneas distintas.
	for _, rname := range sortedKeys(b.recipes) {
		if _, clash := b.recipes[rname].Lines[newName]; clash {
			return nil, fmt.Errorf("%w: la receta %q ya tiene una línea %q", domain.ErrDuplicate, rname, newName)
		}
	}

	delete(b.materials, oldName)
	b.materials[newName] = price
	for i, n := range b.materialOrder {
		if n == oldName {
			b.materialOrder[i] = newName
		}
	}

	now := b.timestamp()
	var affected []string
	for _, rname := range sortedKeys(b.recipes) {
		r := b.recipes[rname]
		line, ok := r.Lines[oldName]
		if !ok {
			continue
		}
		delete(r.Lines, oldName)
		r.Lines[newName] = line
		r.UpdatedAt = &now
		affected = append(affected, rname)
	}
	return affected, nil
}

// UpdateMaterialPrice cambia el precio de un material. Con cascade, el nuevo precio se
// copia a las líneas de receta que lo usan y se recalculan costo y total.
// Devuelve las recetas recalculadas.
func (b *Book) UpdateMaterialPrice(name string, price entity.UnitPrice, cascade bool) ([]string, error) {
	name = key(name)
	if !price.Decimal().IsPositive() {
		return nil, fmt.Errorf("%w: el precio unitario debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if _, ok := b.materials[name]; !ok {
		return nil, fmt.Errorf("%w: material %q", domain.ErrNotFound, name)
	}
	b.materials[name] = price.Decimal()
	if !cascade {
		return nil, nil
	}

	now := b.timestamp()
	var affected []string
	for _, rname := range sortedKeys(b.recipes) {
		r := b.recipes[rname]
		line, ok := r.Lines[name]
		if !ok {
			continue
		}
		line.UnitPrice = price.Decimal()
		r.Lines[name] = costing.Recompute(line)
		r.TotalCost = costing.RecipeTotal(r.Lines)
		r.UpdatedAt = &now
		affected = append(affected, rname)
	}
	return affected, nil
}

// DeleteMaterial elimina un material. Ver DeleteMaterials.
func (b *Book) DeleteMaterial(name string) ([]string, error) {
	return b.DeleteMaterials([]string{name})
}

// DeleteMaterials elimina varios materiales en bloque. Si alguno no existe no se borra nada.
// En cascada: quita la línea de cada receta, recalcula su total y elimina las recetas que
// quedan sin líneas. Devuelve las recetas eliminadas.
func (b *Book) DeleteMaterials(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no se indicó ningún material", domain.ErrInvalidInput)
	}
	targets := make(map[string]bool, len(names))
	for _, n := range names {
		n = key(n)
		if _, ok := b.materials[n]; !ok {
			return nil, fmt.Errorf("%w: material %q", domain.ErrNotFound, n)
		}
		targets[n] = true
	}
	return b.removeMaterials(targets), nil
}

// ClearMaterials elimina todos los materiales (y, en cascada, todas las recetas).
func (b *Book) ClearMaterials() []string {
	targets := make(map[string]bool, len(b.materials))
	for n := range b.materials {
		targets[n] = true
	}
	return b.removeMaterials(targets)
}

func (b *Book) removeMaterials(targets map[string]bool) []string {
	for n := range targets {
		delete(b.materials, n)
	}
	order := b.materialOrder[:0]
	for _, n := range b.materialOrder {
		if !targets[n] {
			order = append(order, n)
		}
	}
	b.materialOrder = order

	now := b.timestamp()
	var removed []string
	for _, rname := range sortedKeys(b.recipes) {
		r := b.recipes[rname]
		touched := false
		for m := range r.Lines {
			if targets[m] {
				delete(r.Lines, m)
				touched = true
			}
		}
		if !touched {
			continue
		}
		if len(r.Lines) == 0 {
			delete(b.recipes, rname)
			removed = append(removed, rname)
			continue
		}
		r.TotalCost = costing.RecipeTotal(r.Lines)
		r.UpdatedAt = &now
	}
	return removed
}
