// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	attendanceRoute "sekolahku_backend/internals/features/school/attendance/route"
	scheduleRoute "sekolahku_backend/internals/features/school/class_schedules/route"
	sessionRoute "sekolahku_backend/internals/features/school/class_sessions/route"
	classRoute "sekolahku_backend/internals/features/school/classes/route"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

// SetupRoutes memasang seluruh route API di bawah /api dengan tiga tier:
//
//	/api/a → admin ke atas (kelola kelas, jadwal, generate, konsolidasi)
//	/api/u → guru ke atas  (sesi ad-hoc, transisi status, catat kehadiran)
//	/api/n → semua user login (read-only)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api", authMw.AuthMiddleware())

	admin := api.Group("/a",
		authMw.RequireRoles("manajemen sekolah", constants.AdminAndAbove...))
	classRoute.ClassAdminRoutes(admin, db)
	scheduleRoute.ScheduleAdminRoutes(admin, db)
	sessionRoute.SessionAdminRoutes(admin, db)

	teacher := api.Group("/u",
		authMw.RequireRoles("operasional guru", constants.TeacherAndAbove...))
	sessionRoute.SessionTeacherRoutes(teacher, db)
	attendanceRoute.AttendanceTeacherRoutes(teacher, db)

	user := api.Group("/n")
	classRoute.ClassUserRoutes(user, db)
	scheduleRoute.ScheduleUserRoutes(user, db)
	sessionRoute.SessionUserRoutes(user, db)
	attendanceRoute.AttendanceUserRoutes(user, db)
}
