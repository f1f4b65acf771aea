// file: internals/features/school/classes/controller/class_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "sekolahku_backend/internals/features/school/classes/dto"
	classService "sekolahku_backend/internals/features/school/classes/service"
	helper "sekolahku_backend/internals/helpers"
)

type ClassController struct {
	Service  *classService.ClassService
	Validate *validator.Validate
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{
		Service:  classService.NewClassService(db),
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
   POST /admin/classes
========================================================= */

func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	var req classDTO.ClassCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	m := req.ToModel()
	if err := ctrl.Service.Create(m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", classDTO.FromClassModel(m))
}

/* =========================================================
   GET /admin/classes  &  GET /admin/classes/:id
========================================================= */

func (ctrl *ClassController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	rows, total, err := ctrl.Service.List(p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar kelas")
	}
	return helper.JsonList(c, "OK", classDTO.FromClassModels(rows), helper.BuildMeta(total, p))
}

func (ctrl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	m, err := ctrl.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, classService.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}
	return helper.JsonOK(c, "OK", classDTO.FromClassModel(m))
}

/* =========================================================
   DELETE /admin/classes/:id
========================================================= */

func (ctrl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	if err := ctrl.Service.Delete(id); err != nil {
		switch {
		case errors.Is(err, classService.ErrClassNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		case errors.Is(err, classService.ErrClassInUse):
			return helper.JsonError(c, fiber.StatusConflict, "Kelas masih memiliki jadwal, hapus jadwalnya dahulu")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kelas")
		}
	}
	return helper.JsonDeleted(c, "Kelas berhasil dihapus", fiber.Map{"class_id": id})
}

/* =========================================================
   Roster: POST/DELETE /admin/classes/:id/students
========================================================= */

func (ctrl *ClassController) AddStudent(c *fiber.Ctx) error {
	classID, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	var req classDTO.ClassStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	created, err := ctrl.Service.AddStudent(classID, req.StudentID)
	if err != nil {
		if errors.Is(err, classService.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan siswa")
	}
	if created {
		return helper.JsonCreated(c, "Siswa berhasil didaftarkan", fiber.Map{"student_id": req.StudentID})
	}
	return helper.JsonOK(c, "Siswa sudah terdaftar", fiber.Map{"student_id": req.StudentID})
}

func (ctrl *ClassController) RemoveStudent(c *fiber.Ctx) error {
	classID, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	studentID, err := parseIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	if err := ctrl.Service.RemoveStudent(classID, studentID); err != nil {
		if errors.Is(err, classService.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengeluarkan siswa")
	}
	return helper.JsonOK(c, "Siswa dikeluarkan dari roster", fiber.Map{"student_id": studentID})
}

func (ctrl *ClassController) ListStudents(c *fiber.Ctx) error {
	classID, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	rows, err := ctrl.Service.ListStudents(classID)
	if err != nil {
		if errors.Is(err, classService.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil roster")
	}
	return helper.JsonOK(c, "OK", classDTO.FromClassStudentModels(rows))
}
