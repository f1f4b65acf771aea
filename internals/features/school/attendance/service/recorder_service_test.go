// file: internals/features/school/attendance/service/recorder_service_test.go
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

// seedClassWithSession menyiapkan kelas + jadwal + satu sesi bertanggal.
func seedClassWithSession(t *testing.T, db *gorm.DB) (classModel.ClassModel, sessionModel.ClassSessionModel) {
	t.Helper()
	cls := classModel.ClassModel{ClassName: "Kelas 2B"}
	require.NoError(t, db.Create(&cls).Error)
	sch := scheduleModel.ClassScheduleModel{
		ClassScheduleClassID:   cls.ClassID,
		ClassScheduleDayOfWeek: 1,
		ClassScheduleStartTime: "07:30",
		ClassScheduleEndTime:   "09:00",
	}
	require.NoError(t, db.Create(&sch).Error)
	sess := sessionModel.ClassSessionModel{
		ClassSessionScheduleID: sch.ClassScheduleID,
		ClassSessionClassID:    cls.ClassID,
		ClassSessionDate:       datatypes.Date(time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)),
		ClassSessionStatus:     sessionModel.SessionScheduled,
	}
	require.NoError(t, db.Create(&sess).Error)
	return cls, sess
}

func enrollStudent(t *testing.T, db *gorm.DB, classID uuid.UUID, joinedAt time.Time) uuid.UUID {
	t.Helper()
	studentID := uuid.New()
	require.NoError(t, db.Create(&classModel.ClassStudentModel{
		ClassStudentClassID:  classID,
		ClassStudentUserID:   studentID,
		ClassStudentIsActive: true,
		ClassStudentJoinedAt: joinedAt,
	}).Error)
	return studentID
}

func TestRecordUpsertsInPlace(t *testing.T) {
	db := openTestDB(t)
	_, sess := seedClassWithSession(t, db)
	student := uuid.New()
	actor := uuid.New()
	svc := NewAttendanceService(db)

	first, err := svc.Record(sess.ClassSessionID, student, attendanceModel.AttendancePresent, nil, actor)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendancePresent, first.ClassAttendanceStatus)
	assert.NotNil(t, first.ClassAttendanceCheckedInAt)

	// record ulang pasangan yang sama: update, bukan baris baru
	notes := "izin setengah hari"
	second, err := svc.Record(sess.ClassSessionID, student, attendanceModel.AttendanceExcused, &notes, actor)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendanceExcused, second.ClassAttendanceStatus)
	require.NotNil(t, second.ClassAttendanceNotes)
	assert.Equal(t, notes, *second.ClassAttendanceNotes)
	// excused bukan status check-in → stempel di-NULL-kan
	assert.Nil(t, second.ClassAttendanceCheckedInAt)

	var n int64
	require.NoError(t, db.Model(&attendanceModel.ClassAttendanceModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRecordValidation(t *testing.T) {
	db := openTestDB(t)
	_, sess := seedClassWithSession(t, db)
	svc := NewAttendanceService(db)

	_, err := svc.Record(sess.ClassSessionID, uuid.New(), attendanceModel.ClassAttendanceStatus("dunno"), nil, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Record(uuid.New(), uuid.New(), attendanceModel.AttendancePresent, nil, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRecordBatchPartialFailure(t *testing.T) {
	db := openTestDB(t)
	cls, sess := seedClassWithSession(t, db)
	okStudent := enrollStudent(t, db, cls.ClassID, time.Now())
	svc := NewAttendanceService(db)

	entries := []BatchEntry{
		{StudentID: okStudent, Status: attendanceModel.AttendanceLate},
		{StudentID: uuid.Nil, Status: attendanceModel.AttendancePresent},
		{StudentID: uuid.New(), Status: attendanceModel.ClassAttendanceStatus("nope")},
	}
	report, err := svc.RecordBatch(sess.ClassSessionID, entries, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Recorded)
	assert.Len(t, report.Failed, 2)

	var n int64
	require.NoError(t, db.Model(&attendanceModel.ClassAttendanceModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRecordBatchUnknownSession(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttendanceService(db)
	_, err := svc.RecordBatch(uuid.New(), []BatchEntry{
		{StudentID: uuid.New(), Status: attendanceModel.AttendancePresent},
	}, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListSessionRoster(t *testing.T) {
	db := openTestDB(t)
	cls, sess := seedClassWithSession(t, db)
	base := time.Date(2025, 8, 1, 8, 0, 0, 0, time.Local)
	recordedStudent := enrollStudent(t, db, cls.ClassID, base)
	silentStudent := enrollStudent(t, db, cls.ClassID, base.Add(time.Hour))
	svc := NewAttendanceService(db)

	_, err := svc.Record(sess.ClassSessionID, recordedStudent, attendanceModel.AttendanceSick, nil, uuid.New())
	require.NoError(t, err)

	rows, err := svc.ListSessionRoster(sess.ClassSessionID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, recordedStudent, rows[0].StudentID)
	require.NotNil(t, rows[0].Status)
	assert.Equal(t, attendanceModel.AttendanceSick, *rows[0].Status)

	// belum tercatat → status nil, bukan absen eksplisit
	assert.Equal(t, silentStudent, rows[1].StudentID)
	assert.Nil(t, rows[1].Status)

	_, err = svc.ListSessionRoster(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
