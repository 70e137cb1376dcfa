package usecase

import (
	"fmt"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
	"github.com/jhoicas/Costbook-api/internal/domain/ledger"
	"github.com/jhoicas/Costbook-api/pkg/input"
)

func toMaterialResponse(m entity.Material, money costing.Formatter) dto.MaterialResponse {
	return dto.MaterialResponse{Name: m.Name, UnitPrice: m.UnitPrice, Display: money.Symbol() + " " + m.UnitPrice.String()}
}

func toLineResponses(lines map[string]entity.RecipeLine, money costing.Formatter) []dto.RecipeLineResponse {
	return toOrderedLineResponses(costing.SortedMaterials(lines), lines, money)
}

func toOrderedLineResponses(order []string, lines map[string]entity.RecipeLine, money costing.Formatter) []dto.RecipeLineResponse {
	out := make([]dto.RecipeLineResponse, 0, len(order))
	for _, m := range order {
		l := lines[m]
		out = append(out, dto.RecipeLineResponse{
			Material:       m,
			Weight:         l.Weight,
			UnitPrice:      l.UnitPrice,
			YieldRate:      l.YieldRate,
			AdjustedWeight: l.AdjustedWeight,
			Cost:           l.Cost,
			CostDisplay:    money.Format(l.Cost),
		})
	}
	return out
}

func toRecipeResponse(r *entity.Recipe, money costing.Formatter) dto.RecipeResponse {
	return dto.RecipeResponse{
		Name:         r.Name,
		Lines:        toLineResponses(r.Lines, money),
		TotalCost:    r.TotalCost,
		TotalDisplay: money.Format(r.TotalCost),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRecordResponse(r *entity.LedgerRecord, money costing.Formatter) dto.RecordResponse {
	products := r.Products
	if products == nil {
		products = []string{}
	}
	return dto.RecordResponse{
		ID:            r.ID,
		Date:          r.Date.Format("2006-01-02"),
		Type:          string(r.Type),
		Category:      r.Category,
		Description:   r.Description,
		Amount:        r.Amount,
		AmountDisplay: money.Format(r.Amount),
		Location:      r.Location,
		Buyer:         r.Buyer,
		Products:      products,
		Remark:        r.Remark,
		CreatedAt:     r.CreatedAt,
	}
}

func toSummaryResponse(s ledger.Summary, money costing.Formatter) dto.SummaryResponse {
	return dto.SummaryResponse{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Net:          s.Net,
		NetDisplay:   money.Format(s.Net),
		Count:        s.Count,
	}
}

// toCalculatorInputs convierte las líneas de la calculadora en entradas validadas.
func toCalculatorInputs(lines []dto.CalculatorLine) ([]costing.Input, error) {
	out := make([]costing.Input, 0, len(lines))
	for _, l := range lines {
		name := input.NormalizeName(l.Material)
		if name == "" {
			return nil, fmt.Errorf("%w: línea sin material", domain.ErrInvalidInput)
		}
		w, err := entity.NewWeight(l.Weight.Decimal)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		y, err := entity.OptionalYieldRate(l.YieldRate.Ptr())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, costing.Input{Material: name, Weight: w, YieldRate: y})
	}
	return out, nil
}

func materialsOf(inputs []costing.Input) []string {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, in.Material)
	}
	return out
}
