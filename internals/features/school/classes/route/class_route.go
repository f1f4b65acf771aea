// file: internals/features/school/classes/route/class_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtrl "sekolahku_backend/internals/features/school/classes/controller"
)

// ClassAdminRoutes: CRUD kelas + roster (admin ke atas).
func ClassAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := classCtrl.NewClassController(db)

	grp := admin.Group("/classes")
	grp.Post("/", ctrl.Create)
	grp.Get("/", ctrl.List)
	grp.Get("/:id", ctrl.GetByID)
	grp.Delete("/:id", ctrl.Delete)

	grp.Post("/:id/students", ctrl.AddStudent)
	grp.Delete("/:id/students/:student_id", ctrl.RemoveStudent)
	grp.Get("/:id/students", ctrl.ListStudents)
}

// ClassUserRoutes: read-only untuk guru & siswa.
func ClassUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := classCtrl.NewClassController(db)

	grp := user.Group("/classes")
	grp.Get("/", ctrl.List)
	grp.Get("/:id", ctrl.GetByID)
	grp.Get("/:id/students", ctrl.ListStudents)
}
