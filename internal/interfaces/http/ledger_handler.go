package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/usecase"
)

// LedgerHandler libro de ingresos y gastos.
type LedgerHandler struct {
	uc *usecase.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

func ledgerQuery(c *fiber.Ctx) dto.LedgerQuery {
	return dto.LedgerQuery{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Product:  c.Query("product"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}
}

// List godoc
// @Summary      Listar movimientos (recientes primero)
// @Tags         ledger
// @Produce      json
// @Param        type      query  string  false  "income | expense"
// @Param        category  query  string  false  "Categoría"
// @Param        product   query  string  false  "Receta vendida"
// @Param        from      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200       {object}  dto.RecordListResponse
// @Router       /api/ledger [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(ledgerQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar movimiento
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecordRequest  true  "Movimiento"
// @Success      201   {object}  dto.RecordMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ledger [post]
func (h *LedgerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecordRequest
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
// @Summary      Editar movimiento
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.UpdateRecordRequest  true  "Cambios"
// @Success      200   {object}  dto.RecordMutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/{id} [put]
func (h *LedgerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         ledger
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.RecordMutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/{id} [delete]
func (h *LedgerHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Eliminar todos los movimientos
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  dto.RecordMutationResponse
// @Router       /api/ledger [delete]
func (h *LedgerHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales de ingresos, gastos y neto
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/ledger/summary [get]
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(ledgerQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByCategory godoc
// @Summary      Totales por categoría
// @Tags         ledger
// @Produce      json
// @Success      200  {array}  dto.CategoryTotalsResponse
// @Router       /api/ledger/by-category [get]
func (h *LedgerHandler) ByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ByCategory(ledgerQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByBuyer godoc
// @Summary      Totales por comprador
// @Tags         ledger
// @Produce      json
// @Param        type  query  string  false  "expense (por defecto) | income"
// @Success      200   {array}  dto.BuyerTotalsResponse
// @Router       /api/ledger/by-buyer [get]
func (h *LedgerHandler) ByBuyer(c *fiber.Ctx) error {
	out, err := h.uc.ByBuyer(ledgerQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByMonth godoc
// @Summary      Totales por mes
// @Tags         ledger
// @Produce      json
// @Success      200  {array}  dto.MonthTotalsResponse
// @Router       /api/ledger/by-month [get]
func (h *LedgerHandler) ByMonth(c *fiber.Ctx) error {
	out, err := h.uc.ByMonth(ledgerQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SuggestCategory godoc
// @Summary      Sugerir categoría para una descripción
// @Tags         ledger
// @Produce      json
// @Param        description  query  string  true  "Descripción"
// @Success      200          {object}  dto.SuggestionResponse
// @Router       /api/ledger/suggest-category [get]
func (h *LedgerHandler) SuggestCategory(c *fiber.Ctx) error {
	out, err := h.uc.SuggestCategory(c.Query("description"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar movimientos a Excel
// @Tags         ledger
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/ledger/export.xlsx [get]
func (h *LedgerHandler) Export(c *fiber.Ctx) error {
	body, name, err := h.uc.ExportXLSX(c.UserContext(), ledgerQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimeXLSX, name, body)
}

// Report godoc
// @Summary      Reporte PDF del libro
// @Tags         ledger
// @Produce      application/pdf
// @Success      200
// @Router       /api/ledger/report.pdf [get]
func (h *LedgerHandler) Report(c *fiber.Ctx) error {
	body, name, err := h.uc.ReportPDF(c.UserContext(), ledgerQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimePDF, name, body)
}
