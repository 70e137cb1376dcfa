package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hako/durafmt"
)

// HealthHandler estado del servicio.
type HealthHandler struct {
	service string
	started time.Time
	now     func() time.Time
}

// NewHealthHandler construye el handler; started marca el arranque del proceso.
func NewHealthHandler(service string, started time.Time) *HealthHandler {
	return &HealthHandler{service: service, started: started, now: time.Now}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	up := h.now().Sub(h.started).Truncate(time.Second)
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.service,
		"uptime":  durafmt.Parse(up).LimitFirstN(2).String(),
	})
}
