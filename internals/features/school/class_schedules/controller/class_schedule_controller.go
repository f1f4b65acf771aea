// file: internals/features/school/class_schedules/controller/class_schedule_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	scheduleDTO "sekolahku_backend/internals/features/school/class_schedules/dto"
	scheduleService "sekolahku_backend/internals/features/school/class_schedules/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ClassScheduleController struct {
	Service  *scheduleService.ScheduleService
	Validate *validator.Validate
}

func NewClassScheduleController(db *gorm.DB) *ClassScheduleController {
	return &ClassScheduleController{
		Service:  scheduleService.NewScheduleService(db),
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

// mapScheduleError memetakan sentinel service → status HTTP.
func mapScheduleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, scheduleService.ErrClassNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	case errors.Is(err, scheduleService.ErrScheduleNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Jadwal tidak ditemukan")
	case errors.Is(err, scheduleService.ErrScheduleExists):
		return helper.JsonError(c, fiber.StatusConflict, "Jadwal dengan hari & jam yang sama sudah ada untuk kelas ini")
	case errors.Is(err, scheduleService.ErrScheduleInUse):
		return helper.JsonError(c, fiber.StatusConflict, "Jadwal masih memiliki sesi, gunakan cascade=true untuk ikut menghapus")
	case errors.Is(err, scheduleService.ErrInvalidDayOfWeek),
		errors.Is(err, scheduleService.ErrInvalidTimeRange):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, fallback)
	}
}

/* =========================================================
   POST /admin/class-schedules
========================================================= */

func (ctrl *ClassScheduleController) Create(c *fiber.Ctx) error {
	var req scheduleDTO.ClassScheduleCreateRequest
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

	m := req.ToModel(&actor)
	if err := ctrl.Service.Create(m); err != nil {
		return mapScheduleError(c, err, "Gagal membuat jadwal")
	}
	return helper.JsonCreated(c, "Jadwal berhasil dibuat", scheduleDTO.FromClassScheduleModel(m))
}

/* =========================================================
   GET /admin/class-schedules/:id
   GET /admin/classes/:class_id/class-schedules
========================================================= */

func (ctrl *ClassScheduleController) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID jadwal tidak valid")
	}
	m, err := ctrl.Service.GetByID(id)
	if err != nil {
		return mapScheduleError(c, err, "Gagal mengambil jadwal")
	}
	return helper.JsonOK(c, "OK", scheduleDTO.FromClassScheduleModel(m))
}

func (ctrl *ClassScheduleController) ListByClass(c *fiber.Ctx) error {
	classID, err := parseIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	rows, err := ctrl.Service.ListByClass(classID)
	if err != nil {
		return mapScheduleError(c, err, "Gagal mengambil daftar jadwal")
	}
	return helper.JsonOK(c, "OK", scheduleDTO.FromClassScheduleModels(rows))
}

/* =========================================================
   PATCH /admin/class-schedules/:id
========================================================= */

func (ctrl *ClassScheduleController) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID jadwal tidak valid")
	}
	var req scheduleDTO.ClassScheduleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	m, err := ctrl.Service.Update(id, scheduleService.UpdateScheduleInput{
		DayOfWeek: req.ClassScheduleDayOfWeek,
		StartTime: req.ClassScheduleStartTime,
		EndTime:   req.ClassScheduleEndTime,
		Room:      req.ClassScheduleRoom,
		Notes:     req.ClassScheduleNotes,
	})
	if err != nil {
		return mapScheduleError(c, err, "Gagal mengubah jadwal")
	}
	return helper.JsonUpdated(c, "Jadwal berhasil diubah", scheduleDTO.FromClassScheduleModel(m))
}

/* =========================================================
   DELETE /admin/class-schedules/:id?cascade=true
========================================================= */

func (ctrl *ClassScheduleController) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID jadwal tidak valid")
	}
	cascade := strings.EqualFold(c.Query("cascade"), "true")
	if err := ctrl.Service.Delete(id, cascade); err != nil {
		return mapScheduleError(c, err, "Gagal menghapus jadwal")
	}
	return helper.JsonDeleted(c, "Jadwal berhasil dihapus", fiber.Map{"class_schedule_id": id, "cascade": cascade})
}

/* =========================================================
   Teacher assignment:
   POST   /admin/class-schedules/:id/teachers
   DELETE /admin/class-schedules/:id/teachers/:teacher_id
   GET    /admin/class-schedules/:id/teachers
========================================================= */

func (ctrl *ClassScheduleController) AssignTeacher(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID jadwal tidak valid")
	}
	var req scheduleDTO.AssignTeacherRequest
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

	created, err := ctrl.Service.AssignTeacher(scheduleID, req.TeacherID, &actor)
	if err != nil {
		return mapScheduleError(c, err, "Gagal menugaskan guru")
	}
	if created {
		return helper.JsonCreated(c, "Guru berhasil ditugaskan", fiber.Map{"teacher_id": req.TeacherID})
	}
	return helper.JsonOK(c, "Guru sudah ditugaskan pada jadwal ini", fiber.Map{"teacher_id": req.TeacherID})
}

func (ctrl *ClassScheduleController) UnassignTeacher(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID jadwal tidak valid")
	}
	teacherID, err := parseIDParam(c, "teacher_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID guru tidak valid")
	}
	if err := ctrl.Service.UnassignTeacher(scheduleID, teacherID); err != nil {
		return mapScheduleError(c, err, "Gagal mencabut penugasan guru")
	}
	return helper.JsonOK(c, "Penugasan guru dicabut", fiber.Map{"teacher_id": teacherID})
}

func (ctrl *ClassScheduleController) ListTeachers(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID jadwal tidak valid")
	}
	rows, err := ctrl.Service.ListTeachers(scheduleID)
	if err != nil {
		return mapScheduleError(c, err, "Gagal mengambil daftar guru")
	}
	return helper.JsonOK(c, "OK", scheduleDTO.FromScheduleTeacherModels(rows))
}
