package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/usecase"
)

// RecipeHandler calculadora y recetas guardadas.
type RecipeHandler struct {
	calc *usecase.CalculatorUseCase
	uc   *usecase.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(calc *usecase.CalculatorUseCase, uc *usecase.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{calc: calc, uc: uc}
}

// Quote godoc
// @Summary      Calcular costo
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "Materiales, pesos y rendimientos"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/calculator/quote [post]
func (h *RecipeHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.calc.Quote(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Calcular y guardar receta
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveRecipeRequest  true  "Nombre y líneas"
// @Success      201   {object}  dto.SaveRecipeResponse
// @Success      200   {object}  dto.SaveRecipeResponse  "receta sobrescrita"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calculator/save [post]
func (h *RecipeHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.calc.Save(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	if out.Overwritten {
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar recetas
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  dto.RecipeListResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List())
}

// Get godoc
// @Summary      Obtener receta
// @Tags         recipes
// @Produce      json
// @Param        name  path  string  true  "Receta"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{name} [get]
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(param(c, "name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rename godoc
// @Summary      Renombrar receta
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        name  path  string                   true  "Receta"
// @Param        body  body  dto.RenameRecipeRequest  true  "Nombre nuevo"
// @Success      200   {object}  dto.RecipeMutationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes/{name} [put]
func (h *RecipeHandler) Rename(c *fiber.Ctx) error {
	var in dto.RenameRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Rename(c.UserContext(), param(c, "name"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar receta
// @Tags         recipes
// @Produce      json
// @Param        name  path  string  true  "Receta"
// @Success      200   {object}  dto.RecipeMutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{name} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), param(c, "name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calculator godoc
// @Summary      Usar receta en la calculadora
// @Tags         recipes
// @Produce      json
// @Param        name  path  string  true  "Receta"
// @Success      200   {object}  dto.CalculatorPresetResponse
// @Router       /api/recipes/{name}/calculator [get]
func (h *RecipeHandler) Calculator(c *fiber.Ctx) error {
	out, err := h.uc.Calculator(param(c, "name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Actualizar precios de la receta
// @Tags         recipes
// @Produce      json
// @Param        name  path  string  true  "Receta"
// @Success      200   {object}  dto.RecipeMutationResponse
// @Router       /api/recipes/{name}/refresh [post]
func (h *RecipeHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.uc.Refresh(c.UserContext(), param(c, "name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Hoja de costos en PDF
// @Tags         recipes
// @Produce      application/pdf
// @Param        name  path  string  true  "Receta"
// @Success      200
// @Router       /api/recipes/{name}/pdf [get]
func (h *RecipeHandler) PDF(c *fiber.Ctx) error {
	body, name, err := h.uc.PDF(c.UserContext(), param(c, "name"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimePDF, name, body)
}
