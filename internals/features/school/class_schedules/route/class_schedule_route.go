// file: internals/features/school/class_schedules/route/class_schedule_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleCtrl "sekolahku_backend/internals/features/school/class_schedules/controller"
	middlewares "sekolahku_backend/internals/middlewares"
)

// ScheduleAdminRoutes: CRUD jadwal, penugasan guru, dan konsolidasi.
func ScheduleAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := scheduleCtrl.NewClassScheduleController(db)
	consolidation := scheduleCtrl.NewConsolidationController(db)

	grp := admin.Group("/class-schedules")
	// konsolidasi didaftarkan sebelum /:id supaya tidak tertangkap param
	grp.Post("/consolidate", middlewares.BatchRateLimiter(), consolidation.Run)

	grp.Post("/", ctrl.Create)
	grp.Get("/:id", ctrl.GetByID)
	grp.Patch("/:id", ctrl.Update)
	grp.Delete("/:id", ctrl.Delete)

	grp.Post("/:id/teachers", ctrl.AssignTeacher)
	grp.Delete("/:id/teachers/:teacher_id", ctrl.UnassignTeacher)
	grp.Get("/:id/teachers", ctrl.ListTeachers)

	admin.Get("/classes/:class_id/class-schedules", ctrl.ListByClass)
}

// ScheduleUserRoutes: read-only.
func ScheduleUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := scheduleCtrl.NewClassScheduleController(db)

	user.Get("/class-schedules/:id", ctrl.GetByID)
	user.Get("/class-schedules/:id/teachers", ctrl.ListTeachers)
	user.Get("/classes/:class_id/class-schedules", ctrl.ListByClass)
}
