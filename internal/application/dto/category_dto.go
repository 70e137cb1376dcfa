package dto

// CategoryListResponse categorías en orden.
type CategoryListResponse struct {
	Items []string `json:"items"`
}

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryMutationResponse resultado de alta o baja.
type CategoryMutationResponse struct {
	Items    []string `json:"items"`
	Warnings []string `json:"warnings,omitempty"`
}
