package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/usecase"
)

// MaterialHandler maneja la tabla de materiales.
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Produce      json
// @Success      200  {object}  dto.MaterialListResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List())
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Nombre y precio por gramo"
// @Success      201   {object}  dto.MaterialMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Renombrar o cambiar precio
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        name  path  string                     true  "Material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Cambios"
// @Success      200   {object}  dto.MaterialMutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{name} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), param(c, "name"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar material (cascada a recetas)
// @Tags         materials
// @Produce      json
// @Param        name  path  string  true  "Material"
// @Success      200   {object}  dto.MaterialMutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{name} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), param(c, "name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkDelete godoc
// @Summary      Eliminar varios materiales
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaterialNamesRequest  true  "Nombres"
// @Success      200   {object}  dto.MaterialMutationResponse
// @Router       /api/materials/bulk-delete [post]
func (h *MaterialHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.MaterialNamesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.BulkDelete(c.UserContext(), in.Names)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Eliminar todos los materiales
// @Tags         materials
// @Produce      json
// @Success      200  {object}  dto.MaterialMutationResponse
// @Router       /api/materials [delete]
func (h *MaterialHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reorder godoc
// @Summary      Ordenar materiales
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaterialNamesRequest  true  "Orden deseado"
// @Success      200   {object}  dto.MaterialListResponse
// @Router       /api/material-order [put]
func (h *MaterialHandler) Reorder(c *fiber.Ctx) error {
	var in dto.MaterialNamesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, warnings, err := h.uc.Reorder(c.UserContext(), in.Names)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": out.Items, "currency": out.Currency, "warnings": warnings})
}

// Export godoc
// @Summary      Exportar materiales a Excel
// @Tags         materials
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/materials/export.xlsx [get]
func (h *MaterialHandler) Export(c *fiber.Ctx) error {
	body, name, err := h.uc.ExportXLSX(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimeXLSX, name, body)
}

// Import godoc
// @Summary      Importar precios desde Excel
// @Tags         materials
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla .xlsx (material, unit_price)"
// @Success      200   {object}  dto.ImportMaterialsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials/import.xlsx [post]
func (h *MaterialHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	out, err := h.uc.ImportXLSX(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
