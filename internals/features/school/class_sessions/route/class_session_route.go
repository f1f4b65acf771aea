// file: internals/features/school/class_sessions/route/class_session_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionCtrl "sekolahku_backend/internals/features/school/class_sessions/controller"
	middlewares "sekolahku_backend/internals/middlewares"
)

// SessionAdminRoutes: generate massal oleh admin.
func SessionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := sessionCtrl.NewClassSessionController(db)

	grp := admin.Group("/class-sessions")
	grp.Post("/generate", middlewares.BatchRateLimiter(), ctrl.Generate)
	grp.Get("/:id", ctrl.GetByID)

	admin.Get("/classes/:class_id/class-sessions", ctrl.ListByClass)
}

// SessionTeacherRoutes: sesi ad-hoc & transisi status oleh guru.
func SessionTeacherRoutes(teacher fiber.Router, db *gorm.DB) {
	ctrl := sessionCtrl.NewClassSessionController(db)

	grp := teacher.Group("/class-sessions")
	grp.Post("/", ctrl.CreateAdHoc)
	grp.Patch("/:id/status", ctrl.Transition)
	grp.Get("/:id", ctrl.GetByID)
}

// SessionUserRoutes: read-only untuk siswa/ortu.
func SessionUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := sessionCtrl.NewClassSessionController(db)

	user.Get("/class-sessions/:id", ctrl.GetByID)
	user.Get("/classes/:class_id/class-sessions", ctrl.ListByClass)
}
