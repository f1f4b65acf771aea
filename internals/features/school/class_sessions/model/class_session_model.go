// file: internals/features/school/class_sessions/model/class_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enum
========================= */

type ClassSessionStatus string

const (
	SessionScheduled  ClassSessionStatus = "scheduled"
	SessionNotStarted ClassSessionStatus = "not_started"
	SessionInProgress ClassSessionStatus = "in_progress"
	SessionCompleted  ClassSessionStatus = "completed"
	SessionCancelled  ClassSessionStatus = "cancelled"
)

// ValidSessionStatus: cek nilai status yang dikenal. Tidak ada matriks
// legalitas transisi di luar cek ini.
func ValidSessionStatus(s ClassSessionStatus) bool {
	switch s {
	case SessionScheduled, SessionNotStarted, SessionInProgress, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

/* =========================
   Model: ClassSessionModel
========================= */

// ClassSessionModel: satu kejadian bertanggal dari sebuah jadwal mingguan.
// Unik per (schedule, date). Tidak ada soft delete: sesi tidak pernah
// dihapus oleh operasi normal, hanya oleh cleanup administratif.
type ClassSessionModel struct {
	// PK
	ClassSessionID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_session_id" json:"class_session_id"`

	// FKs
	ClassSessionScheduleID uuid.UUID `gorm:"type:uuid;not null;column:class_session_schedule_id;index;uniqueIndex:uq_class_sessions_schedule_date" json:"class_session_schedule_id"`
	ClassSessionClassID    uuid.UUID `gorm:"type:uuid;not null;column:class_session_class_id;index" json:"class_session_class_id"`

	// Guru hasil resolve saat generate; boleh NULL jika jadwal belum punya
	// penugasan guru (diisi manusia belakangan).
	ClassSessionTeacherID *uuid.UUID `gorm:"type:uuid;column:class_session_teacher_id;index" json:"class_session_teacher_id,omitempty"`

	ClassSessionDate datatypes.Date `gorm:"not null;column:class_session_date;uniqueIndex:uq_class_sessions_schedule_date" json:"class_session_date"`

	ClassSessionStatus ClassSessionStatus `gorm:"type:varchar(16);not null;default:scheduled;column:class_session_status;index" json:"class_session_status"`

	// Stempel lifecycle
	ClassSessionStartedAt *time.Time `gorm:"column:class_session_started_at" json:"class_session_started_at,omitempty"`
	ClassSessionEndedAt   *time.Time `gorm:"column:class_session_ended_at" json:"class_session_ended_at,omitempty"`
	ClassSessionStartedBy *uuid.UUID `gorm:"type:uuid;column:class_session_started_by" json:"class_session_started_by,omitempty"`
	ClassSessionEndedBy   *uuid.UUID `gorm:"type:uuid;column:class_session_ended_by" json:"class_session_ended_by,omitempty"`
	ClassSessionCreatedBy *uuid.UUID `gorm:"type:uuid;column:class_session_created_by" json:"class_session_created_by,omitempty"`

	ClassSessionNotes *string `gorm:"type:text;column:class_session_notes" json:"class_session_notes,omitempty"`

	// Timestamps
	ClassSessionCreatedAt time.Time `gorm:"column:class_session_created_at;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time `gorm:"column:class_session_updated_at;autoUpdateTime" json:"class_session_updated_at"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }

func (m *ClassSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSessionID == uuid.Nil {
		m.ClassSessionID = uuid.New()
	}
	return nil
}
