package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/usecase"
)

// BackupHandler respaldo completo y advertencias de carga.
type BackupHandler struct {
	uc *usecase.BackupUseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *usecase.BackupUseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary      Descargar respaldo JSON
// @Tags         backup
// @Produce      json
// @Success      200
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	body, err := h.uc.Export(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	name := fmt.Sprintf("costbook-%s.json", time.Now().Format("20060102"))
	return sendFile(c, fiber.MIMEApplicationJSONCharsetUTF8, name, body)
}

// Import godoc
// @Summary      Restaurar respaldo (reemplaza todo)
// @Tags         backup
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.ImportBackupResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/backup [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	out, err := h.uc.Import(c.UserContext(), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Warnings godoc
// @Summary      Advertencias de la carga inicial
// @Tags         backup
// @Produce      json
// @Success      200  {object}  dto.WarningsResponse
// @Router       /api/session/warnings [get]
func (h *BackupHandler) Warnings(c *fiber.Ctx) error {
	w := h.uc.Warnings()
	if w == nil {
		w = []string{}
	}
	return c.JSON(dto.WarningsResponse{Warnings: w})
}

// SyncStatus godoc
// @Summary      Colecciones pendientes de guardar
// @Tags         backup
// @Produce      json
// @Success      200  {object}  dto.SyncStatusResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/session/sync [get]
func (h *BackupHandler) SyncStatus(c *fiber.Ctx) error {
	out, err := h.uc.SyncStatus(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Resync godoc
// @Summary      Reintentar el guardado de las colecciones pendientes
// @Tags         backup
// @Produce      json
// @Success      200  {object}  dto.ResyncResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/session/sync [post]
func (h *BackupHandler) Resync(c *fiber.Ctx) error {
	out, err := h.uc.Resync(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Revisions godoc
// @Summary      Historial guardado de una colección (PostgreSQL)
// @Tags         backup
// @Produce      json
// @Param        collection  path   string  true   "materials | material_order | recipes | ledger | categories"
// @Param        limit       query  int     false  "Máximo de copias"
// @Success      200  {object}  dto.RevisionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/session/revisions/{collection} [get]
func (h *BackupHandler) Revisions(c *fiber.Ctx) error {
	out, err := h.uc.Revisions(c.UserContext(), c.Params("collection"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
