// file: internals/features/school/attendance/dto/class_attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/attendance/model"
	service "sekolahku_backend/internals/features/school/attendance/service"
)

/* =========================================================
   RECORD DTO (satu siswa)
========================================================= */

type AttendanceRecordRequest struct {
	StudentID uuid.UUID                   `json:"student_id" validate:"required"`
	Status    model.ClassAttendanceStatus `json:"status" validate:"required"`
	Notes     *string                     `json:"notes" validate:"omitempty"`
}

/* =========================================================
   RECORD BATCH DTO (satu form kehadiran)
========================================================= */

type AttendanceBatchRequest struct {
	Entries []AttendanceRecordRequest `json:"entries" validate:"required,min=1,dive"`
}

func (in *AttendanceBatchRequest) ToBatchEntries() []service.BatchEntry {
	out := make([]service.BatchEntry, 0, len(in.Entries))
	for _, e := range in.Entries {
		out = append(out, service.BatchEntry{
			StudentID: e.StudentID,
			Status:    e.Status,
			Notes:     e.Notes,
		})
	}
	return out
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type ClassAttendanceResponse struct {
	ClassAttendanceID        uuid.UUID                   `json:"class_attendance_id"`
	ClassAttendanceSessionID uuid.UUID                   `json:"class_attendance_session_id"`
	ClassAttendanceStudentID uuid.UUID                   `json:"class_attendance_student_id"`
	ClassAttendanceStatus    model.ClassAttendanceStatus `json:"class_attendance_status"`
	ClassAttendanceNotes     *string                     `json:"class_attendance_notes,omitempty"`
	CheckedInAt              *time.Time                  `json:"checked_in_at,omitempty"`
	RecordedBy               uuid.UUID                   `json:"recorded_by"`
	RecordedAt               time.Time                   `json:"recorded_at"`
}

func FromClassAttendanceModel(m *model.ClassAttendanceModel) ClassAttendanceResponse {
	return ClassAttendanceResponse{
		ClassAttendanceID:        m.ClassAttendanceID,
		ClassAttendanceSessionID: m.ClassAttendanceSessionID,
		ClassAttendanceStudentID: m.ClassAttendanceStudentID,
		ClassAttendanceStatus:    m.ClassAttendanceStatus,
		ClassAttendanceNotes:     m.ClassAttendanceNotes,
		CheckedInAt:              m.ClassAttendanceCheckedInAt,
		RecordedBy:               m.ClassAttendanceRecordedBy,
		RecordedAt:               m.ClassAttendanceRecordedAt,
	}
}
