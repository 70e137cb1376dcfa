package postgres

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costbook-api/internal/domain/repository"
)

// SnapshotTotal resumen numérico que acompaña a cada copia en document_history:
// el neto (ingresos - egresos) para el libro y la suma de total_cost para las recetas.
// Las demás colecciones, o un documento ilegible, no tienen resumen.
func SnapshotTotal(c repository.Collection, data []byte) decimal.NullDecimal {
	switch c {
	case repository.CollectionLedger:
		var records []struct {
			Type   string          `json:"type"`
			Amount decimal.Decimal `json:"amount"`
		}
		if err := json.Unmarshal(data, &records); err != nil {
			return decimal.NullDecimal{}
		}
		net := decimal.Zero
		for _, r := range records {
			switch r.Type {
			case "income":
				net = net.Add(r.Amount)
			case "expense":
				net = net.Sub(r.Amount)
			}
		}
		return decimal.NewNullDecimal(net)

	case repository.CollectionRecipes:
		var recipes map[string]struct {
			TotalCost decimal.Decimal `json:"total_cost"`
		}
		if err := json.Unmarshal(data, &recipes); err != nil {
			return decimal.NullDecimal{}
		}
		sum := decimal.Zero
		for _, r := range recipes {
			sum = sum.Add(r.TotalCost)
		}
		return decimal.NewNullDecimal(sum)
	}
	return decimal.NullDecimal{}
}
