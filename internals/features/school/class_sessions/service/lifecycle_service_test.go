// file: internals/features/school/class_sessions/service/lifecycle_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	sessionModel "sekolahku_backend/internals/features/school/class_sessions/model"
)

func seedLifecycleSession(t *testing.T, db *gorm.DB) sessionModel.ClassSessionModel {
	t.Helper()
	cls := seedClass(t, db)
	sch := seedSchedule(t, db, cls.ClassID, 1)
	sess := sessionModel.ClassSessionModel{
		ClassSessionScheduleID: sch.ClassScheduleID,
		ClassSessionClassID:    cls.ClassID,
		ClassSessionDate:       datatypes.Date(time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)),
		ClassSessionStatus:     sessionModel.SessionScheduled,
	}
	require.NoError(t, db.Create(&sess).Error)
	return sess
}

func TestTransitionStamps(t *testing.T) {
	db := openTestDB(t)
	sess := seedLifecycleSession(t, db)
	actor := uuid.New()
	svc := NewSessionLifecycleService(db)

	got, err := svc.Transition(sess.ClassSessionID, sessionModel.SessionInProgress, actor)
	require.NoError(t, err)
	assert.Equal(t, sessionModel.SessionInProgress, got.ClassSessionStatus)
	require.NotNil(t, got.ClassSessionStartedAt)
	require.NotNil(t, got.ClassSessionStartedBy)
	assert.Equal(t, actor, *got.ClassSessionStartedBy)
	assert.Nil(t, got.ClassSessionEndedAt)

	ender := uuid.New()
	got, err = svc.Transition(sess.ClassSessionID, sessionModel.SessionCompleted, ender)
	require.NoError(t, err)
	assert.Equal(t, sessionModel.SessionCompleted, got.ClassSessionStatus)
	require.NotNil(t, got.ClassSessionEndedAt)
	require.NotNil(t, got.ClassSessionEndedBy)
	assert.Equal(t, ender, *got.ClassSessionEndedBy)
	// stempel start dari transisi sebelumnya tetap ada
	require.NotNil(t, got.ClassSessionStartedBy)
	assert.Equal(t, actor, *got.ClassSessionStartedBy)

	var stored sessionModel.ClassSessionModel
	require.NoError(t, db.First(&stored, "class_session_id = ?", sess.ClassSessionID).Error)
	assert.Equal(t, sessionModel.SessionCompleted, stored.ClassSessionStatus)
	assert.NotNil(t, stored.ClassSessionStartedAt)
	assert.NotNil(t, stored.ClassSessionEndedAt)
}

func TestTransitionPermissive(t *testing.T) {
	db := openTestDB(t)
	sess := seedLifecycleSession(t, db)
	svc := NewSessionLifecycleService(db)
	actor := uuid.New()

	// tidak ada matriks legalitas: completed boleh kembali ke scheduled
	_, err := svc.Transition(sess.ClassSessionID, sessionModel.SessionCompleted, actor)
	require.NoError(t, err)
	got, err := svc.Transition(sess.ClassSessionID, sessionModel.SessionScheduled, actor)
	require.NoError(t, err)
	assert.Equal(t, sessionModel.SessionScheduled, got.ClassSessionStatus)

	_, err = svc.Transition(sess.ClassSessionID, sessionModel.SessionCancelled, actor)
	require.NoError(t, err)
}

func TestTransitionErrors(t *testing.T) {
	db := openTestDB(t)
	sess := seedLifecycleSession(t, db)
	svc := NewSessionLifecycleService(db)

	_, err := svc.Transition(sess.ClassSessionID, sessionModel.ClassSessionStatus("paused"), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Transition(uuid.New(), sessionModel.SessionCompleted, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionListByClass(t *testing.T) {
	db := openTestDB(t)
	cls := seedClass(t, db)
	sch := seedSchedule(t, db, cls.ClassID, 1)
	for i := 0; i < 3; i++ {
		sess := sessionModel.ClassSessionModel{
			ClassSessionScheduleID: sch.ClassScheduleID,
			ClassSessionClassID:    cls.ClassID,
			ClassSessionDate:       datatypes.Date(time.Date(2025, 9, 1+7*i, 0, 0, 0, 0, time.Local)),
			ClassSessionStatus:     sessionModel.SessionScheduled,
		}
		require.NoError(t, db.Create(&sess).Error)
	}

	svc := NewSessionService(db)
	rows, total, err := svc.ListByClass(cls.ClassID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	assert.True(t, time.Time(rows[0].ClassSessionDate).Before(time.Time(rows[1].ClassSessionDate)))

	rows, total, err = svc.ListByClass(uuid.New(), 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}
