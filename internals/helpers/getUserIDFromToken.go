package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken membaca user_id yang ditaruh AuthMiddleware di locals.
// Nil atau kosong berarti belum login (401); isi yang bukan UUID berarti
// token rusak (400).
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	var raw string

	switch t := c.Locals("user_id").(type) {
	case nil:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		raw = t
	case []byte:
		raw = string(t)
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
	return id, nil
}
