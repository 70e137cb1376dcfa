package dto

import "github.com/shopspring/decimal"

// MaterialResponse material con precio por gramo.
type MaterialResponse struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Display   string          `json:"display"` // precio con símbolo de moneda
}

// MaterialListResponse listado en el orden de visualización.
type MaterialListResponse struct {
	Items    []MaterialResponse `json:"items"`
	Currency string             `json:"currency"`
}

// CreateMaterialRequest alta de material.
type CreateMaterialRequest struct {
	Name      string   `json:"name"`
	UnitPrice Quantity `json:"unit_price"`
}

// UpdateMaterialRequest renombre y/o cambio de precio. Cascade (por defecto true)
// copia el precio nuevo a las recetas que usan el material.
type UpdateMaterialRequest struct {
	Name      *string   `json:"name,omitempty"`
	UnitPrice *Quantity `json:"unit_price,omitempty"`
	Cascade   *bool     `json:"cascade,omitempty"`
}

// MaterialNamesRequest lista de nombres (borrado en bloque, reordenamiento).
type MaterialNamesRequest struct {
	Names []string `json:"names"`
}

// MaterialMutationResponse resultado de un cambio sobre materiales.
type MaterialMutationResponse struct {
	Material       *MaterialResponse `json:"material,omitempty"`
	UpdatedRecipes []string          `json:"updated_recipes,omitempty"`
	DeletedRecipes []string          `json:"deleted_recipes,omitempty"`
	Warnings       []string          `json:"warnings,omitempty"`
}

// ImportMaterialsResponse resultado de la importación de una planilla de precios.
type ImportMaterialsResponse struct {
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	UpdatedRecipes []string `json:"updated_recipes,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}
