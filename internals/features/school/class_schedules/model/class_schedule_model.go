// file: internals/features/school/class_schedules/model/class_schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: ClassScheduleModel
========================= */

// ClassScheduleModel merepresentasikan satu jam mengajar mingguan untuk
// satu kelas (mis. "Senin 09:00–10:30").
//
// Invariant: maksimal satu baris hidup per (class, day_of_week, start, end).
// Ditegakkan di service saat create/update — bukan unique index DB, karena
// data historis pernah melanggarnya dan harus bisa dimuat untuk konsolidasi.
type ClassScheduleModel struct {
	// PK
	ClassScheduleID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_schedule_id" json:"class_schedule_id"`

	// Kelas pemilik
	ClassScheduleClassID uuid.UUID `gorm:"type:uuid;not null;column:class_schedule_class_id;index" json:"class_schedule_class_id"`

	// Pola berulang mingguan. DayOfWeek 0..6 mengikuti time.Weekday (0=Minggu).
	ClassScheduleDayOfWeek int    `gorm:"not null;column:class_schedule_day_of_week" json:"class_schedule_day_of_week"`
	ClassScheduleStartTime string `gorm:"type:varchar(5);not null;column:class_schedule_start_time" json:"class_schedule_start_time"` // HH:MM
	ClassScheduleEndTime   string `gorm:"type:varchar(5);not null;column:class_schedule_end_time" json:"class_schedule_end_time"`     // HH:MM

	ClassScheduleRoom  *string `gorm:"type:varchar(80);column:class_schedule_room" json:"class_schedule_room,omitempty"`
	ClassScheduleNotes *string `gorm:"type:text;column:class_schedule_notes" json:"class_schedule_notes,omitempty"`

	// Kolom legacy satu-guru-per-jadwal. Hanya dibaca oleh konsolidasi
	// sebagai sumber backfill; penugasan guru yang berlaku ada di
	// class_schedule_teachers.
	ClassScheduleTeacherID *uuid.UUID `gorm:"type:uuid;column:class_schedule_teacher_id" json:"class_schedule_teacher_id,omitempty"`

	ClassScheduleCreatedBy *uuid.UUID `gorm:"type:uuid;column:class_schedule_created_by" json:"class_schedule_created_by,omitempty"`

	// Timestamps
	ClassScheduleCreatedAt time.Time      `gorm:"column:class_schedule_created_at;autoCreateTime" json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt time.Time      `gorm:"column:class_schedule_updated_at;autoUpdateTime" json:"class_schedule_updated_at"`
	ClassScheduleDeletedAt gorm.DeletedAt `gorm:"column:class_schedule_deleted_at;index" json:"class_schedule_deleted_at,omitempty"`
}

func (ClassScheduleModel) TableName() string { return "class_schedules" }

func (m *ClassScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassScheduleID == uuid.Nil {
		m.ClassScheduleID = uuid.New()
	}
	return nil
}

// TimeKey: kunci waktu mingguan untuk deteksi duplikat & konsolidasi.
type TimeKey struct {
	ClassID   uuid.UUID
	DayOfWeek int
	StartTime string
	EndTime   string
}

func (m *ClassScheduleModel) TimeKey() TimeKey {
	return TimeKey{
		ClassID:   m.ClassScheduleClassID,
		DayOfWeek: m.ClassScheduleDayOfWeek,
		StartTime: m.ClassScheduleStartTime,
		EndTime:   m.ClassScheduleEndTime,
	}
}
