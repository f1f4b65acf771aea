// file: internals/features/school/class_sessions/controller/class_session_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionDTO "sekolahku_backend/internals/features/school/class_sessions/dto"
	sessionService "sekolahku_backend/internals/features/school/class_sessions/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ClassSessionController struct {
	Sessions  *sessionService.SessionService
	Generator *sessionService.SessionGeneratorService
	Lifecycle *sessionService.SessionLifecycleService
	Validate  *validator.Validate
}

func NewClassSessionController(db *gorm.DB) *ClassSessionController {
	return &ClassSessionController{
		Sessions:  sessionService.NewSessionService(db),
		Generator: sessionService.NewSessionGeneratorService(db),
		Lifecycle: sessionService.NewSessionLifecycleService(db),
		Validate:  validator.New(),
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

func parseYMD(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
}

/* =========================================================
   POST /admin/class-sessions/generate
========================================================= */

func (ctrl *ClassSessionController) Generate(c *fiber.Ctx) error {
	var req sessionDTO.GenerateSessionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}
	from, err := parseYMD(req.DateFrom)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date_from harus berformat YYYY-MM-DD")
	}
	to, err := parseYMD(req.DateTo)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date_to harus berformat YYYY-MM-DD")
	}

	actor, err := helperAuth.GetActorID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak memuat user")
	}

	report, err := ctrl.Generator.Generate(req.ScheduleIDs, from, to, actor)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal men-generate sesi")
	}
	return helper.JsonOK(c, "Generate sesi selesai", report)
}

/* =========================================================
   POST /teacher/class-sessions  (ad-hoc, di luar pola mingguan)
========================================================= */

func (ctrl *ClassSessionController) CreateAdHoc(c *fiber.Ctx) error {
	var req sessionDTO.CreateAdHocSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}
	date, err := parseYMD(req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date harus berformat YYYY-MM-DD")
	}

	teacherID, err := helperAuth.GetActorID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak memuat user")
	}

	sess, err := ctrl.Generator.CreateAdHoc(req.ScheduleID, date, teacherID)
	if err != nil {
		switch {
		case errors.Is(err, sessionService.ErrScheduleNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Jadwal tidak ditemukan")
		case errors.Is(err, sessionService.ErrNotClassTeacher):
			return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak ditugaskan pada kelas ini")
		case errors.Is(err, sessionService.ErrSessionExists):
			return helper.JsonError(c, fiber.StatusConflict, "Sesi untuk jadwal & tanggal tersebut sudah ada")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sesi")
		}
	}
	return helper.JsonCreated(c, "Sesi berhasil dibuat", sessionDTO.FromClassSessionModel(sess))
}

/* =========================================================
   PATCH /teacher/class-sessions/:id/status
========================================================= */

func (ctrl *ClassSessionController) Transition(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	var req sessionDTO.SessionTransitionRequest
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

	sess, err := ctrl.Lifecycle.Transition(id, req.Status, actor)
	if err != nil {
		switch {
		case errors.Is(err, sessionService.ErrSessionNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		case errors.Is(err, sessionService.ErrInvalidStatus):
			return helper.JsonError(c, fiber.StatusBadRequest, "Status sesi tidak dikenal")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah status sesi")
		}
	}
	return helper.JsonUpdated(c, "Status sesi berhasil diubah", sessionDTO.FromClassSessionModel(sess))
}

/* =========================================================
   GET /class-sessions/:id  &  GET /classes/:class_id/class-sessions
========================================================= */

func (ctrl *ClassSessionController) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	sess, err := ctrl.Sessions.GetByID(id)
	if err != nil {
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	return helper.JsonOK(c, "OK", sessionDTO.FromClassSessionModel(sess))
}

func (ctrl *ClassSessionController) ListByClass(c *fiber.Ctx) error {
	classID, err := parseIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	p := helper.ParseFiber(c, "class_session_date", "asc", helper.DefaultOpts)
	rows, total, err := ctrl.Sessions.ListByClass(classID, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar sesi")
	}
	return helper.JsonList(c, "OK", sessionDTO.FromClassSessionModels(rows), helper.BuildMeta(total, p))
}
