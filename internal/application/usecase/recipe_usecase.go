package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/report"
	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
)

// RecipeUseCase casos de uso de recetas guardadas.
type RecipeUseCase struct {
	s     *session.Session
	money costing.Formatter
	pdf   report.PDFGenerator
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(s *session.Session, money costing.Formatter, pdf report.PDFGenerator) *RecipeUseCase {
	return &RecipeUseCase{s: s, money: money, pdf: pdf}
}

// List recetas de la más antigua a la más reciente.
func (uc *RecipeUseCase) List() *dto.RecipeListResponse {
	var list []*entity.Recipe
	uc.s.Read(func(b *costbook.Book) { list = b.ListRecipes() })
	items := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toRecipeResponse(r, uc.money))
	}
	return &dto.RecipeListResponse{Items: items}
}

// Get una receta por nombre.
func (uc *RecipeUseCase) Get(name string) (*dto.RecipeResponse, error) {
	r, err := uc.find(name)
	if err != nil {
		return nil, err
	}
	out := toRecipeResponse(r, uc.money)
	return &out, nil
}

// Rename cambia el nombre; los movimientos que la citan se actualizan.
func (uc *RecipeUseCase) Rename(ctx context.Context, name string, in dto.RenameRecipeRequest) (*dto.RecipeMutationResponse, error) {
	var (
		changed int
		r       *entity.Recipe
	)
	warnings, err := uc.s.Mutate(ctx, "recipe.rename", func(b *costbook.Book) error {
		var err error
		if changed, err = b.RenameRecipe(name, in.Name); err != nil {
			return err
		}
		r, _ = b.Recipe(in.Name)
		return nil
	}, repository.CollectionRecipes, repository.CollectionLedger)
	if err != nil {
		return nil, err
	}
	out := toRecipeResponse(r, uc.money)
	return &dto.RecipeMutationResponse{Recipe: &out, UpdatedRecords: changed, Warnings: warnings}, nil
}

// Delete elimina una receta.
func (uc *RecipeUseCase) Delete(ctx context.Context, name string) (*dto.RecipeMutationResponse, error) {
	warnings, err := uc.s.Mutate(ctx, "recipe.delete", func(b *costbook.Book) error {
		return b.DeleteRecipe(name)
	}, repository.CollectionRecipes)
	if err != nil {
		return nil, err
	}
	return &dto.RecipeMutationResponse{Warnings: warnings}, nil
}

// Calculator entradas de la receta para precargar la calculadora.
func (uc *RecipeUseCase) Calculator(name string) (*dto.CalculatorPresetResponse, error) {
	var (
		p      costbook.CalculatorPreset
		recipe string
		err    error
	)
	uc.s.Read(func(b *costbook.Book) {
		if p, err = b.LoadIntoCalculator(name); err == nil {
			r, _ := b.Recipe(name)
			recipe = r.Name
		}
	})
	if err != nil {
		return nil, err
	}
	out := &dto.CalculatorPresetResponse{Recipe: recipe, Lines: make([]dto.CalculatorPreset, 0, len(p.Materials))}
	for _, m := range p.Materials {
		line := dto.CalculatorPreset{Material: m, Weight: p.Weights[m]}
		if y, ok := p.YieldRates[m]; ok {
			line.YieldRate = &y
		}
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}

// Refresh vuelve a copiar los precios actuales en la receta y recalcula.
func (uc *RecipeUseCase) Refresh(ctx context.Context, name string) (*dto.RecipeMutationResponse, error) {
	var r *entity.Recipe
	warnings, err := uc.s.Mutate(ctx, "recipe.refresh", func(b *costbook.Book) error {
		var err error
		r, err = b.RefreshRecipePrices(name)
		return err
	}, repository.CollectionRecipes)
	if err != nil {
		return nil, err
	}
	out := toRecipeResponse(r, uc.money)
	return &dto.RecipeMutationResponse{Recipe: &out, Warnings: warnings}, nil
}

// PDF hoja de costos de la receta. Devuelve bytes y nombre de archivo.
func (uc *RecipeUseCase) PDF(ctx context.Context, name string) ([]byte, string, error) {
	r, err := uc.find(name)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.RecipeCostSheetPDF(ctx, report.RecipeSheet{
		Recipe:      r,
		Currency:    uc.money,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("receta-%s.pdf", r.Name), nil
}

func (uc *RecipeUseCase) find(name string) (*entity.Recipe, error) {
	var (
		r  *entity.Recipe
		ok bool
	)
	uc.s.Read(func(b *costbook.Book) { r, ok = b.Recipe(name) })
	if !ok {
		return nil, fmt.Errorf("%w: receta %q", domain.ErrNotFound, name)
	}
	return r, nil
}
