// file: internals/features/school/classes/service/class_service_test.go
package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	scheduleModel "sekolahku_backend/internals/features/school/class_schedules/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
)

func openTestDB(t *testing.T) *gorm.DB {
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
		&classModel.ClassStudentModel{},
		&scheduleModel.ClassScheduleModel{},
		&scheduleModel.ClassScheduleTeacherModel{},
	))
	return db
}

func createClass(t *testing.T, svc *ClassService, name string) classModel.ClassModel {
	t.Helper()
	m := classModel.ClassModel{ClassName: name}
	require.NoError(t, svc.Create(&m))
	return m
}

func TestClassCRUD(t *testing.T) {
	db := openTestDB(t)
	svc := NewClassService(db)

	cls := createClass(t, svc, "Kelas 3C")
	assert.NotEqual(t, uuid.Nil, cls.ClassID)

	got, err := svc.GetByID(cls.ClassID)
	require.NoError(t, err)
	assert.Equal(t, "Kelas 3C", got.ClassName)

	_, err = svc.GetByID(uuid.New())
	assert.ErrorIs(t, err, ErrClassNotFound)

	createClass(t, svc, "Kelas 3D")
	rows, total, err := svc.List(1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 1)
}

func TestClassDeleteBlockedBySchedules(t *testing.T) {
	db := openTestDB(t)
	svc := NewClassService(db)
	cls := createClass(t, svc, "Kelas 4A")

	sch := scheduleModel.ClassScheduleModel{
		ClassScheduleClassID:   cls.ClassID,
		ClassScheduleDayOfWeek: 2,
		ClassScheduleStartTime: "10:00",
		ClassScheduleEndTime:   "11:30",
	}
	require.NoError(t, db.Create(&sch).Error)

	assert.ErrorIs(t, svc.Delete(cls.ClassID), ErrClassInUse)

	// setelah jadwal dihapus, kelas boleh dihapus
	require.NoError(t, db.Unscoped().Delete(&sch).Error)
	require.NoError(t, svc.Delete(cls.ClassID))

	_, err := svc.GetByID(cls.ClassID)
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestAddStudentIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewClassService(db)
	cls := createClass(t, svc, "Kelas 5B")
	student := uuid.New()

	created, err := svc.AddStudent(cls.ClassID, student)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.AddStudent(cls.ClassID, student)
	require.NoError(t, err)
	assert.False(t, created)

	var n int64
	require.NoError(t, db.Model(&classModel.ClassStudentModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = svc.AddStudent(uuid.New(), student)
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestRemoveStudentKeepsHistory(t *testing.T) {
	db := openTestDB(t)
	svc := NewClassService(db)
	cls := createClass(t, svc, "Kelas 6A")
	student := uuid.New()

	_, err := svc.AddStudent(cls.ClassID, student)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveStudent(cls.ClassID, student))

	// baris keanggotaan masih ada, hanya nonaktif
	var row classModel.ClassStudentModel
	require.NoError(t, db.First(&row, "class_student_user_id = ?", student).Error)
	assert.False(t, row.ClassStudentIsActive)

	rows, err := svc.ListStudents(cls.ClassID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// daftar ulang = aktifkan kembali keanggotaan lama
	created, err := svc.AddStudent(cls.ClassID, student)
	require.NoError(t, err)
	assert.False(t, created)

	rows, err = svc.ListStudents(cls.ClassID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, student, rows[0].ClassStudentUserID)
}
