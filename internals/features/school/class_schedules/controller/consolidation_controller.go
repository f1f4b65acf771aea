// file: internals/features/school/class_schedules/controller/consolidation_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleService "sekolahku_backend/internals/features/school/class_schedules/service"
	helper "sekolahku_backend/internals/helpers"
)

// ConsolidationController: endpoint administratif sekali-jalan untuk
// merapikan jadwal duplikat warisan data lama.
type ConsolidationController struct {
	Service *scheduleService.ConsolidationService
}

func NewConsolidationController(db *gorm.DB) *ConsolidationController {
	return &ConsolidationController{Service: scheduleService.NewConsolidationService(db)}
}

/* =========================================================
   POST /admin/class-schedules/consolidate
========================================================= */

func (ctrl *ConsolidationController) Run(c *fiber.Ctx) error {
	report, err := ctrl.Service.Run()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Konsolidasi jadwal gagal, tidak ada perubahan yang disimpan")
	}
	return helper.JsonOK(c, "Konsolidasi jadwal selesai", report)
}
