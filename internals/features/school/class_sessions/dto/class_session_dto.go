// file: internals/features/school/class_sessions/dto/class_session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/class_sessions/model"
)

/* =========================================================
   GENERATE DTO (bulk)
========================================================= */

type GenerateSessionsRequest struct {
	ScheduleIDs []uuid.UUID `json:"schedule_ids" validate:"required"`
	DateFrom    string      `json:"date_from" validate:"required"` // YYYY-MM-DD
	DateTo      string      `json:"date_to" validate:"required"`
}

/* =========================================================
   AD-HOC DTO (satu sesi oleh guru)
========================================================= */

type CreateAdHocSessionRequest struct {
	ScheduleID uuid.UUID `json:"schedule_id" validate:"required"`
	Date       string    `json:"date" validate:"required"` // YYYY-MM-DD
}

/* =========================================================
   TRANSITION DTO
========================================================= */

type SessionTransitionRequest struct {
	Status model.ClassSessionStatus `json:"status" validate:"required"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type ClassSessionResponse struct {
	ClassSessionID         uuid.UUID                `json:"class_session_id"`
	ClassSessionScheduleID uuid.UUID                `json:"class_session_schedule_id"`
	ClassSessionClassID    uuid.UUID                `json:"class_session_class_id"`
	ClassSessionTeacherID  *uuid.UUID               `json:"class_session_teacher_id,omitempty"`
	ClassSessionDate       string                   `json:"class_session_date"` // YYYY-MM-DD
	ClassSessionStatus     model.ClassSessionStatus `json:"class_session_status"`
	ClassSessionStartedAt  *time.Time               `json:"class_session_started_at,omitempty"`
	ClassSessionEndedAt    *time.Time               `json:"class_session_ended_at,omitempty"`
	ClassSessionNotes      *string                  `json:"class_session_notes,omitempty"`
}

func FromClassSessionModel(m *model.ClassSessionModel) ClassSessionResponse {
	return ClassSessionResponse{
		ClassSessionID:         m.ClassSessionID,
		ClassSessionScheduleID: m.ClassSessionScheduleID,
		ClassSessionClassID:    m.ClassSessionClassID,
		ClassSessionTeacherID:  m.ClassSessionTeacherID,
		ClassSessionDate:       time.Time(m.ClassSessionDate).Format("2006-01-02"),
		ClassSessionStatus:     m.ClassSessionStatus,
		ClassSessionStartedAt:  m.ClassSessionStartedAt,
		ClassSessionEndedAt:    m.ClassSessionEndedAt,
		ClassSessionNotes:      m.ClassSessionNotes,
	}
}

func FromClassSessionModels(ms []model.ClassSessionModel) []ClassSessionResponse {
	out := make([]ClassSessionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromClassSessionModel(&ms[i]))
	}
	return out
}
