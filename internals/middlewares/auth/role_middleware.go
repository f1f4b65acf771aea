// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// RequireRoles menolak request jika role di token tidak ada di daftar.
// Dipasang SETELAH AuthMiddleware.
func RequireRoles(feature string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.HasRole(c, roles...) {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, "Akses ditolak untuk fitur "+feature)
	}
}
