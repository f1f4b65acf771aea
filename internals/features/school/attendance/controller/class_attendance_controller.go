// file: internals/features/school/attendance/controller/class_attendance_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceDTO "sekolahku_backend/internals/features/school/attendance/dto"
	attendanceService "sekolahku_backend/internals/features/school/attendance/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ClassAttendanceController struct {
	Service  *attendanceService.AttendanceService
	Validate *validator.Validate
}

func NewClassAttendanceController(db *gorm.DB) *ClassAttendanceController {
	return &ClassAttendanceController{
		Service:  attendanceService.NewAttendanceService(db),
		Validate: validator.New(),
	}
}

func validationMap(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			f := strings.ToLower(fe.Field())
			out[f] = append(out[f], fe.Tag())
		}
	} else {
		out["body"] = []string{err.Error()}
	}
	return out
}

func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

/* =========================================================
   POST /teacher/class-sessions/:session_id/attendance
========================================================= */

func (ctrl *ClassAttendanceController) Record(c *fiber.Ctx) error {
	sessionID, err := parseIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	var req attendanceDTO.AttendanceRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	actor, err := helperAuth.GetActorID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak memuat user")
	}

	rec, err := ctrl.Service.Record(sessionID, req.StudentID, req.Status, req.Notes, actor)
	if err != nil {
		switch {
		case errors.Is(err, attendanceService.ErrSessionNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		case errors.Is(err, attendanceService.ErrInvalidStatus):
			return helper.JsonError(c, fiber.StatusBadRequest, "Status kehadiran tidak dikenal")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat kehadiran")
		}
	}
	return helper.JsonOK(c, "Kehadiran tercatat", attendanceDTO.FromClassAttendanceModel(rec))
}

/* =========================================================
   POST /teacher/class-sessions/:session_id/attendance/batch
========================================================= */

func (ctrl *ClassAttendanceController) RecordBatch(c *fiber.Ctx) error {
	sessionID, err := parseIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	var req attendanceDTO.AttendanceBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	actor, err := helperAuth.GetActorID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak memuat user")
	}

	report, err := ctrl.Service.RecordBatch(sessionID, req.ToBatchEntries(), actor)
	if err != nil {
		if errors.Is(err, attendanceService.ErrSessionNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat kehadiran batch")
	}
	// entri yang gagal dilaporkan per item, batch tetap 200
	return helper.JsonOK(c, "Batch kehadiran diproses", report)
}

/* =========================================================
   GET /teacher/class-sessions/:session_id/attendance
========================================================= */

func (ctrl *ClassAttendanceController) SessionRoster(c *fiber.Ctx) error {
	sessionID, err := parseIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	rows, err := ctrl.Service.ListSessionRoster(sessionID)
	if err != nil {
		if errors.Is(err, attendanceService.ErrSessionNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil roster sesi")
	}
	return helper.JsonOK(c, "OK", rows)
}

/* =========================================================
   GET /classes/:class_id/attendance-matrix
========================================================= */

func (ctrl *ClassAttendanceController) Matrix(c *fiber.Ctx) error {
	classID, err := parseIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	matrix, err := ctrl.Service.BuildMatrix(classID)
	if err != nil {
		if errors.Is(err, attendanceService.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun matriks kehadiran")
	}
	return helper.JsonOK(c, "OK", matrix)
}
