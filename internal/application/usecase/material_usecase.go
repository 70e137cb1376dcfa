package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/report"
	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
	"github.com/jhoicas/Costbook-api/pkg/input"
)

// Colecciones que cambian cuando cambia un material (las recetas guardan copia del precio).
var materialCollections = []repository.Collection{
	repository.CollectionMaterials,
	repository.CollectionMaterialOrder,
	repository.CollectionRecipes,
}

// MaterialUseCase casos de uso de la tabla de materiales.
type MaterialUseCase struct {
	s      *session.Session
	money  costing.Formatter
	sheets report.Spreadsheet
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(s *session.Session, money costing.Formatter, sheets report.Spreadsheet) *MaterialUseCase {
	return &MaterialUseCase{s: s, money: money, sheets: sheets}
}

// List materiales en el orden de visualización.
func (uc *MaterialUseCase) List() *dto.MaterialListResponse {
	var list []entity.Material
	uc.s.Read(func(b *costbook.Book) { list = b.ListMaterials() })
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMaterialResponse(m, uc.money))
	}
	return &dto.MaterialListResponse{Items: items, Currency: uc.money.Symbol()}
}

// Create registra un material nuevo.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialMutationResponse, error) {
	price, err := entity.NewUnitPrice(in.UnitPrice.Decimal)
	if err != nil {
		return nil, err
	}
	var m entity.Material
	warnings, err := uc.s.Mutate(ctx, "material.create", func(b *costbook.Book) error {
		var err error
		m, err = b.AddMaterial(in.Name, price)
		return err
	}, repository.CollectionMaterials, repository.CollectionMaterialOrder)
	if err != nil {
		return nil, err
	}
	resp := toMaterialResponse(m, uc.money)
	return &dto.MaterialMutationResponse{Material: &resp, Warnings: warnings}, nil
}

// Update renombra y/o cambia el precio. El renombre se propaga a las recetas; el precio
// se propaga si Cascade no es false.
func (uc *MaterialUseCase) Update(ctx context.Context, name string, in dto.UpdateMaterialRequest) (*dto.MaterialMutationResponse, error) {
	if in.Name == nil && in.UnitPrice == nil {
		return nil, fmt.Errorf("%w: indique name o unit_price", domain.ErrInvalidInput)
	}
	var price *entity.UnitPrice
	if in.UnitPrice != nil {
		p, err := entity.NewUnitPrice(in.UnitPrice.Decimal)
		if err != nil {
			return nil, err
		}
		price = &p
	}
	cascade := in.Cascade == nil || *in.Cascade

	var (
		m        entity.Material
		affected []string
	)
	warnings, err := uc.s.Mutate(ctx, "material.update", func(b *costbook.Book) error {
		current := name
		if _, ok := b.Material(current); !ok {
			return fmt.Errorf("%w: material %q", domain.ErrNotFound, input.NormalizeName(current))
		}
		if in.Name != nil {
			renamed, err := b.RenameMaterial(current, *in.Name)
			if err != nil {
				return err
			}
			affected = renamed
			current = *in.Name
		}
		if price != nil {
			repriced, err := b.UpdateMaterialPrice(current, *price, cascade)
			if err != nil {
				return err
			}
			affected = mergeNames(affected, repriced)
		}
		m, _ = b.Material(current)
		return nil
	}, materialCollections...)
	if err != nil {
		return nil, err
	}
	resp := toMaterialResponse(m, uc.money)
	return &dto.MaterialMutationResponse{Material: &resp, UpdatedRecipes: affected, Warnings: warnings}, nil
}

// Delete elimina un material y, en cascada, sus líneas de receta.
func (uc *MaterialUseCase) Delete(ctx context.Context, name string) (*dto.MaterialMutationResponse, error) {
	return uc.BulkDelete(ctx, []string{name})
}

// BulkDelete elimina varios materiales; si alguno no existe no se borra ninguno.
func (uc *MaterialUseCase) BulkDelete(ctx context.Context, names []string) (*dto.MaterialMutationResponse, error) {
	var deleted []string
	warnings, err := uc.s.Mutate(ctx, "material.delete", func(b *costbook.Book) error {
		var err error
		deleted, err = b.DeleteMaterials(names)
		return err
	}, materialCollections...)
	if err != nil {
		return nil, err
	}
	return &dto.MaterialMutationResponse{DeletedRecipes: deleted, Warnings: warnings}, nil
}

// Clear elimina todos los materiales (y todas las recetas).
func (uc *MaterialUseCase) Clear(ctx context.Context) (*dto.MaterialMutationResponse, error) {
	var deleted []string
	warnings, err := uc.s.Mutate(ctx, "material.clear", func(b *costbook.Book) error {
		deleted = b.ClearMaterials()
		return nil
	}, materialCollections...)
	if err != nil {
		return nil, err
	}
	return &dto.MaterialMutationResponse{DeletedRecipes: deleted, Warnings: warnings}, nil
}

// Reorder fija el orden de visualización. Nombres desconocidos se ignoran y los
// materiales no mencionados quedan al final.
func (uc *MaterialUseCase) Reorder(ctx context.Context, names []string) (*dto.MaterialListResponse, []string, error) {
	var list []entity.Material
	warnings, err := uc.s.Mutate(ctx, "material.reorder", func(b *costbook.Book) error {
		list = b.ReorderMaterials(names)
		return nil
	}, repository.CollectionMaterialOrder)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMaterialResponse(m, uc.money))
	}
	return &dto.MaterialListResponse{Items: items, Currency: uc.money.Symbol()}, warnings, nil
}

// ExportXLSX planilla de materiales. Devuelve bytes y nombre de archivo sugerido.
func (uc *MaterialUseCase) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	var list []entity.Material
	uc.s.Read(func(b *costbook.Book) { list = b.ListMaterials() })
	out, err := uc.sheets.MaterialsXLSX(ctx, list)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("materials-%s.xlsx", time.Now().Format("20060102")), nil
}

// ImportXLSX aplica una planilla de precios: crea los materiales nuevos y actualiza
// (con cascada) el precio de los existentes. Se valida todo antes de aplicar.
func (uc *MaterialUseCase) ImportXLSX(ctx context.Context, r io.Reader) (*dto.ImportMaterialsResponse, error) {
	rows, err := uc.sheets.ParseMaterialsXLSX(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: la planilla no tiene materiales", domain.ErrInvalidInput)
	}
	prices := make([]entity.UnitPrice, len(rows))
	for i, row := range rows {
		p, err := entity.NewUnitPrice(row.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("fila %d (%s): %w", row.Line, row.Name, err)
		}
		prices[i] = p
	}

	resp := &dto.ImportMaterialsResponse{}
	warnings, err := uc.s.Mutate(ctx, "material.import", func(b *costbook.Book) error {
		for i, row := range rows {
			if _, exists := b.Material(row.Name); exists {
				affected, err := b.UpdateMaterialPrice(row.Name, prices[i], true)
				if err != nil {
					return err
				}
				resp.Updated++
				resp.UpdatedRecipes = mergeNames(resp.UpdatedRecipes, affected)
				continue
			}
			if _, err := b.AddMaterial(row.Name, prices[i]); err != nil {
				return err
			}
			resp.Created++
		}
		return nil
	}, materialCollections...)
	if err != nil {
		return nil, err
	}
	resp.Warnings = warnings
	return resp, nil
}

// mergeNames une dos listas sin repetir, conservando el orden.
func mergeNames(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, n := range a {
		seen[n] = true
	}
	for _, n := range b {
		if !seen[n] {
			seen[n] = true
			a = append(a, n)
		}
	}
	return a
}
