// file: internals/features/school/attendance/model/class_attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassAttendanceStatus string

const (
	AttendancePresent ClassAttendanceStatus = "present"
	AttendanceLate    ClassAttendanceStatus = "late"
	AttendanceAbsent  ClassAttendanceStatus = "absent"
	AttendanceExcused ClassAttendanceStatus = "excused"
	AttendanceSick    ClassAttendanceStatus = "sick"
)

func ValidAttendanceStatus(s ClassAttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent, AttendanceExcused, AttendanceSick:
		return true
	}
	return false
}

// NeedsCheckIn: hanya present/late yang membawa jam check-in.
func (s ClassAttendanceStatus) NeedsCheckIn() bool {
	return s == AttendancePresent || s == AttendanceLate
}

// ClassAttendanceModel: status kehadiran satu siswa pada satu sesi.
// Unik per (session, student); record ulang = update in place (upsert).
// Siswa tanpa baris dianggap absen implisit oleh pembaca, tidak pernah
// dimaterialisasikan sebagai row.
type ClassAttendanceModel struct {
	// PK
	ClassAttendanceID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_attendance_id" json:"class_attendance_id"`

	// FKs
	ClassAttendanceSessionID uuid.UUID `gorm:"type:uuid;not null;column:class_attendance_session_id;index;uniqueIndex:uq_class_attendances_pair" json:"class_attendance_session_id"`
	ClassAttendanceStudentID uuid.UUID `gorm:"type:uuid;not null;column:class_attendance_student_id;index;uniqueIndex:uq_class_attendances_pair" json:"class_attendance_student_id"`

	ClassAttendanceStatus ClassAttendanceStatus `gorm:"type:varchar(16);not null;column:class_attendance_status;index" json:"class_attendance_status"`
	ClassAttendanceNotes  *string               `gorm:"type:text;column:class_attendance_notes" json:"class_attendance_notes,omitempty"`

	// Diisi hanya untuk present/late, NULL untuk status lain.
	ClassAttendanceCheckedInAt *time.Time `gorm:"column:class_attendance_checked_in_at" json:"class_attendance_checked_in_at,omitempty"`

	ClassAttendanceRecordedBy uuid.UUID `gorm:"type:uuid;not null;column:class_attendance_recorded_by" json:"class_attendance_recorded_by"`
	ClassAttendanceRecordedAt time.Time `gorm:"not null;column:class_attendance_recorded_at" json:"class_attendance_recorded_at"`

	// Timestamps
	ClassAttendanceCreatedAt time.Time `gorm:"column:class_attendance_created_at;autoCreateTime" json:"class_attendance_created_at"`
	ClassAttendanceUpdatedAt time.Time `gorm:"column:class_attendance_updated_at;autoUpdateTime" json:"class_attendance_updated_at"`
}

func (ClassAttendanceModel) TableName() string { return "class_attendances" }

func (m *ClassAttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassAttendanceID == uuid.Nil {
		m.ClassAttendanceID = uuid.New()
	}
	return nil
}
