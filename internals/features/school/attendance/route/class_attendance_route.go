// file: internals/features/school/attendance/route/class_attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceCtrl "sekolahku_backend/internals/features/school/attendance/controller"
	middlewares "sekolahku_backend/internals/middlewares"
)

// AttendanceTeacherRoutes: pencatatan kehadiran per sesi oleh guru.
func AttendanceTeacherRoutes(teacher fiber.Router, db *gorm.DB) {
	ctrl := attendanceCtrl.NewClassAttendanceController(db)

	grp := teacher.Group("/class-sessions/:session_id/attendance")
	grp.Post("/", ctrl.Record)
	grp.Post("/batch", middlewares.BatchRateLimiter(), ctrl.RecordBatch)
	grp.Get("/", ctrl.SessionRoster)
}

// AttendanceUserRoutes: matriks rekap per kelas, read-only.
func AttendanceUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := attendanceCtrl.NewClassAttendanceController(db)

	user.Get("/classes/:class_id/attendance-matrix", ctrl.Matrix)
}
