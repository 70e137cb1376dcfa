package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
)

// CalculatorUseCase calculadora de costos: cotiza con los precios actuales y guarda recetas.
type CalculatorUseCase struct {
	s     *session.Session
	money costing.Formatter
}

// NewCalculatorUseCase construye el caso de uso.
func NewCalculatorUseCase(s *session.Session, money costing.Formatter) *CalculatorUseCase {
	return &CalculatorUseCase{s: s, money: money}
}

// Quote calcula costo por línea y total sin guardar nada. Las líneas vuelven en el
// orden recibido.
func (uc *CalculatorUseCase) Quote(in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	inputs, err := toCalculatorInputs(in.Lines)
	if err != nil {
		return nil, err
	}
	var prices map[string]decimal.Decimal
	uc.s.Read(func(b *costbook.Book) { prices = b.MaterialPrices() })

	lines, total, err := costing.Quote(prices, inputs)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{
		Lines:        toOrderedLineResponses(materialsOf(inputs), lines, uc.money),
		TotalCost:    total,
		TotalDisplay: uc.money.Format(total),
	}, nil
}

// Save cotiza y guarda el resultado como receta. Un nombre existente se sobrescribe
// (Overwritten=true); precios y costos quedan congelados en la receta.
func (uc *CalculatorUseCase) Save(ctx context.Context, in dto.SaveRecipeRequest) (*dto.SaveRecipeResponse, error) {
	inputs, err := toCalculatorInputs(in.Lines)
	if err != nil {
		return nil, err
	}
	var (
		recipe      *entity.Recipe
		overwritten bool
	)
	warnings, err := uc.s.Mutate(ctx, "recipe.save", func(b *costbook.Book) error {
		lines, _, err := costing.Quote(b.MaterialPrices(), inputs)
		if err != nil {
			return err
		}
		recipe, overwritten, err = b.SaveRecipe(in.Name, lines)
		return err
	}, repository.CollectionRecipes)
	if err != nil {
		return nil, err
	}
	if overwritten {
		warnings = append(warnings, "se sobrescribió la receta "+recipe.Name)
	}
	return &dto.SaveRecipeResponse{
		Recipe:      toRecipeResponse(recipe, uc.money),
		Overwritten: overwritten,
		Warnings:    warnings,
	}, nil
}
