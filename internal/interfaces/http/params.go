package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// param devuelve el parámetro de ruta decodificado (nombres con espacios o CJK).
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
