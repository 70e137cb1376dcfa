package usecase

import (
	"context"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/domain/costbook"
	"github.com/jhoicas/Costbook-api/internal/domain/repository"
)

// CategoryUseCase conjunto de categorías del libro.
type CategoryUseCase struct {
	s *session.Session
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(s *session.Session) *CategoryUseCase {
	return &CategoryUseCase{s: s}
}

// List categorías en orden de alta.
func (uc *CategoryUseCase) List() *dto.CategoryListResponse {
	var items []string
	uc.s.Read(func(b *costbook.Book) { items = b.Categories() })
	return &dto.CategoryListResponse{Items: items}
}

// Create agrega una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryMutationResponse, error) {
	return uc.mutate(ctx, "category.create", func(b *costbook.Book) error { return b.AddCategory(in.Name) })
}

// Delete quita una categoría; los movimientos conservan el texto.
func (uc *CategoryUseCase) Delete(ctx context.Context, name string) (*dto.CategoryMutationResponse, error) {
	return uc.mutate(ctx, "category.delete", func(b *costbook.Book) error { return b.DeleteCategory(name) })
}

func (uc *CategoryUseCase) mutate(ctx context.Context, command string, fn func(b *costbook.Book) error) (*dto.CategoryMutationResponse, error) {
	var items []string
	warnings, err := uc.s.Mutate(ctx, command, func(b *costbook.Book) error {
		if err := fn(b); err != nil {
			return err
		}
		items = b.Categories()
		return nil
	}, repository.CollectionCategories)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryMutationResponse{Items: items, Warnings: warnings}, nil
}
