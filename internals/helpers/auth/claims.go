// file: internals/helpers/auth/claims.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
)

// Ambil role dari c.Locals("role") (diisi oleh auth middleware).
func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals("role").(string); ok {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return ""
}

func IsTeacher(c *fiber.Ctx) bool { return GetRole(c) == constants.RoleTeacher }
func IsAdmin(c *fiber.Ctx) bool   { return GetRole(c) == constants.RoleAdmin }
func IsOwner(c *fiber.Ctx) bool   { return GetRole(c) == constants.RoleOwner }

func HasRole(c *fiber.Ctx, roles ...string) bool {
	r := GetRole(c)
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}

// GetActorID: user_id dari token, wajib ada untuk semua operasi mutasi.
func GetActorID(c *fiber.Ctx) (uuid.UUID, error) {
	return helper.GetUserIDFromToken(c)
}
