// file: internals/features/school/class_schedules/service/schedule_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
	scheduleModel "sekolahku_backend/internals/features/school/class_schedules/model"
	sessionModel "sekolahku_backend/internals/features/school/class_sessions/model"
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
		&sessionModel.ClassSessionModel{},
		&attendanceModel.ClassAttendanceModel{},
	))
	return db
}

func seedClass(t *testing.T, db *gorm.DB) classModel.ClassModel {
	t.Helper()
	cls := classModel.ClassModel{ClassName: "Kelas 1A"}
	require.NoError(t, db.Create(&cls).Error)
	return cls
}

func newSchedule(classID uuid.UUID, dow int, start, end string) scheduleModel.ClassScheduleModel {
	return scheduleModel.ClassScheduleModel{
		ClassScheduleClassID:   classID,
		ClassScheduleDayOfWeek: dow,
		ClassScheduleStartTime: start,
		ClassScheduleEndTime:   end,
	}
}

func TestScheduleCreate(t *testing.T) {
	db := openTestDB(t)
	svc := NewScheduleService(db)
	cls := seedClass(t, db)

	sch := newSchedule(cls.ClassID, 1, "09:00", "10:30")
	require.NoError(t, svc.Create(&sch))
	assert.NotEqual(t, uuid.Nil, sch.ClassScheduleID)

	t.Run("duplicate time key rejected", func(t *testing.T) {
		dup := newSchedule(cls.ClassID, 1, "09:00", "10:30")
		assert.ErrorIs(t, svc.Create(&dup), ErrScheduleExists)
	})

	t.Run("same class, different slot allowed", func(t *testing.T) {
		other := newSchedule(cls.ClassID, 1, "11:00", "12:00")
		assert.NoError(t, svc.Create(&other))
	})

	t.Run("unknown class", func(t *testing.T) {
		orphan := newSchedule(uuid.New(), 2, "09:00", "10:00")
		assert.ErrorIs(t, svc.Create(&orphan), ErrClassNotFound)
	})

	t.Run("day of week out of range", func(t *testing.T) {
		bad := newSchedule(cls.ClassID, 7, "09:00", "10:00")
		assert.ErrorIs(t, svc.Create(&bad), ErrInvalidDayOfWeek)
	})

	t.Run("end before start", func(t *testing.T) {
		bad := newSchedule(cls.ClassID, 3, "10:00", "09:00")
		assert.ErrorIs(t, svc.Create(&bad), ErrInvalidTimeRange)
	})
}

func TestScheduleUpdateLeavesSessionsAlone(t *testing.T) {
	db := openTestDB(t)
	svc := NewScheduleService(db)
	cls := seedClass(t, db)

	sch := newSchedule(cls.ClassID, 1, "09:00", "10:30")
	require.NoError(t, svc.Create(&sch))

	sessionDate := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	sess := sessionModel.ClassSessionModel{
		ClassSessionScheduleID: sch.ClassScheduleID,
		ClassSessionClassID:    cls.ClassID,
		ClassSessionDate:       datatypes.Date(sessionDate),
		ClassSessionStatus:     sessionModel.SessionScheduled,
	}
	require.NoError(t, db.Create(&sess).Error)

	newStart, newEnd := "13:00", "14:30"
	updated, err := svc.Update(sch.ClassScheduleID, UpdateScheduleInput{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, "13:00", updated.ClassScheduleStartTime)

	// sesi tetap menunjuk baris jadwal yang sama dan membawa tanggalnya sendiri
	var got sessionModel.ClassSessionModel
	require.NoError(t, db.First(&got, "class_session_id = ?", sess.ClassSessionID).Error)
	assert.Equal(t, sch.ClassScheduleID, got.ClassSessionScheduleID)
	assert.Equal(t, sessionDate.Format("2006-01-02"), time.Time(got.ClassSessionDate).Format("2006-01-02"))
}

func TestScheduleUpdateDuplicateTimeKey(t *testing.T) {
	db := openTestDB(t)
	svc := NewScheduleService(db)
	cls := seedClass(t, db)

	a := newSchedule(cls.ClassID, 1, "09:00", "10:30")
	require.NoError(t, svc.Create(&a))
	b := newSchedule(cls.ClassID, 1, "11:00", "12:00")
	require.NoError(t, svc.Create(&b))

	start, end := "09:00", "10:30"
	_, err := svc.Update(b.ClassScheduleID, UpdateScheduleInput{StartTime: &start, EndTime: &end})
	assert.ErrorIs(t, err, ErrScheduleExists)
}

func TestAssignTeacherIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewScheduleService(db)
	cls := seedClass(t, db)

	sch := newSchedule(cls.ClassID, 2, "08:00", "09:00")
	require.NoError(t, svc.Create(&sch))

	teacher := uuid.New()
	created, err := svc.AssignTeacher(sch.ClassScheduleID, teacher, nil)
	require.NoError(t, err)
	assert.True(t, created)

	// penugasan ulang pasangan yang sama = no-op, bukan error
	created, err = svc.AssignTeacher(sch.ClassScheduleID, teacher, nil)
	require.NoError(t, err)
	assert.False(t, created)

	rows, err := svc.ListTeachers(sch.ClassScheduleID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, svc.UnassignTeacher(sch.ClassScheduleID, teacher))
	rows, err = svc.ListTeachers(sch.ClassScheduleID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestScheduleDeleteGuard(t *testing.T) {
	db := openTestDB(t)
	svc := NewScheduleService(db)
	cls := seedClass(t, db)

	sch := newSchedule(cls.ClassID, 1, "09:00", "10:30")
	require.NoError(t, svc.Create(&sch))

	sess := sessionModel.ClassSessionModel{
		ClassSessionScheduleID: sch.ClassScheduleID,
		ClassSessionClassID:    cls.ClassID,
		ClassSessionDate:       datatypes.Date(time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)),
		ClassSessionStatus:     sessionModel.SessionScheduled,
	}
	require.NoError(t, db.Create(&sess).Error)
	att := attendanceModel.ClassAttendanceModel{
		ClassAttendanceSessionID:  sess.ClassSessionID,
		ClassAttendanceStudentID:  uuid.New(),
		ClassAttendanceStatus:     attendanceModel.AttendancePresent,
		ClassAttendanceRecordedBy: uuid.New(),
		ClassAttendanceRecordedAt: time.Now(),
	}
	require.NoError(t, db.Create(&att).Error)

	// diblokir selama masih ada sesi
	assert.ErrorIs(t, svc.Delete(sch.ClassScheduleID, false), ErrScheduleInUse)

	// cascade menghapus sesi + kehadiran di satu transaksi
	require.NoError(t, svc.Delete(sch.ClassScheduleID, true))

	var sessions int64
	require.NoError(t, db.Model(&sessionModel.ClassSessionModel{}).Count(&sessions).Error)
	assert.Zero(t, sessions)
	var attendances int64
	require.NoError(t, db.Model(&attendanceModel.ClassAttendanceModel{}).Count(&attendances).Error)
	assert.Zero(t, attendances)

	_, err := svc.GetByID(sch.ClassScheduleID)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestScheduleDeleteWithoutSessions(t *testing.T) {
	db := openTestDB(t)
	svc := NewScheduleService(db)
	cls := seedClass(t, db)

	sch := newSchedule(cls.ClassID, 4, "15:00", "16:00")
	require.NoError(t, svc.Create(&sch))
	_, err := svc.AssignTeacher(sch.ClassScheduleID, uuid.New(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(sch.ClassScheduleID, false))

	var assignments int64
	require.NoError(t, db.Model(&scheduleModel.ClassScheduleTeacherModel{}).Count(&assignments).Error)
	assert.Zero(t, assignments)
}
