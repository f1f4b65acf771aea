// file: internals/features/school/class_schedules/controller/class_schedule_controller_test.go
package controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	scheduleModel "sekolahku_backend/internals/features/school/class_schedules/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
)

func openControllerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&classModel.ClassModel{},
		&scheduleModel.ClassScheduleModel{},
		&scheduleModel.ClassScheduleTeacherModel{},
	))
	return db
}

// scheduleApp meniru AuthMiddleware dengan menaruh user_id di locals
// sebelum handler Create dipanggil.
func scheduleApp(db *gorm.DB, actor uuid.UUID) *fiber.App {
	ctrl := NewClassScheduleController(db)
	app := fiber.New()
	app.Post("/class-schedules", func(c *fiber.Ctx) error {
		if actor != uuid.Nil {
			c.Locals("user_id", actor)
		}
		return c.Next()
	}, ctrl.Create)
	return app
}

func postSchedule(t *testing.T, app *fiber.App, classID uuid.UUID) *http.Response {
	t.Helper()
	body, err := sonic.Marshal(fiber.Map{
		"class_schedule_class_id":    classID,
		"class_schedule_day_of_week": 1,
		"class_schedule_start_time":  "07:30",
		"class_schedule_end_time":    "09:00",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/class-schedules", bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestScheduleCreateStampsActor(t *testing.T) {
	db := openControllerDB(t)
	slug := "kelas-7a-" + uuid.NewString()[:8]
	cls := classModel.ClassModel{ClassName: "Kelas 7A", ClassSlug: &slug}
	require.NoError(t, db.Create(&cls).Error)

	actor := uuid.New()
	resp := postSchedule(t, scheduleApp(db, actor), cls.ClassID)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var m scheduleModel.ClassScheduleModel
	require.NoError(t, db.First(&m, "class_schedule_class_id = ?", cls.ClassID).Error)
	require.NotNil(t, m.ClassScheduleCreatedBy)
	require.Equal(t, actor, *m.ClassScheduleCreatedBy)
}

func TestScheduleCreateRejectsMissingActor(t *testing.T) {
	db := openControllerDB(t)
	slug := "kelas-7b-" + uuid.NewString()[:8]
	cls := classModel.ClassModel{ClassName: "Kelas 7B", ClassSlug: &slug}
	require.NoError(t, db.Create(&cls).Error)

	resp := postSchedule(t, scheduleApp(db, uuid.Nil), cls.ClassID)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var n int64
	require.NoError(t, db.Model(&scheduleModel.ClassScheduleModel{}).Count(&n).Error)
	require.Zero(t, n)
}
