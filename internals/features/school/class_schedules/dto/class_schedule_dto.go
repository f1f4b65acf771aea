// file: internals/features/school/class_schedules/dto/class_schedule_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/class_schedules/model"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   CREATE DTO
========================================================= */

type ClassScheduleCreateRequest struct {
	ClassScheduleClassID   uuid.UUID `json:"class_schedule_class_id" validate:"required"`
	ClassScheduleDayOfWeek int       `json:"class_schedule_day_of_week" validate:"min=0,max=6"`   // 0 = Minggu
	ClassScheduleStartTime string    `json:"class_schedule_start_time" validate:"required,len=5"` // HH:MM
	ClassScheduleEndTime   string    `json:"class_schedule_end_time" validate:"required,len=5"`
	ClassScheduleRoom      *string   `json:"class_schedule_room" validate:"omitempty,max=80"`
	ClassScheduleNotes     *string   `json:"class_schedule_notes" validate:"omitempty"`
}

func (in *ClassScheduleCreateRequest) ToModel(createdBy *uuid.UUID) *model.ClassScheduleModel {
	return &model.ClassScheduleModel{
		ClassScheduleClassID:   in.ClassScheduleClassID,
		ClassScheduleDayOfWeek: in.ClassScheduleDayOfWeek,
		ClassScheduleStartTime: strings.TrimSpace(in.ClassScheduleStartTime),
		ClassScheduleEndTime:   strings.TrimSpace(in.ClassScheduleEndTime),
		ClassScheduleRoom:      trimPtr(in.ClassScheduleRoom),
		ClassScheduleNotes:     trimPtr(in.ClassScheduleNotes),
		ClassScheduleCreatedBy: createdBy,
	}
}

/* =========================================================
   UPDATE DTO (partial: nil = tidak diubah)
========================================================= */

type ClassScheduleUpdateRequest struct {
	ClassScheduleDayOfWeek *int    `json:"class_schedule_day_of_week" validate:"omitempty,min=0,max=6"`
	ClassScheduleStartTime *string `json:"class_schedule_start_time" validate:"omitempty,len=5"`
	ClassScheduleEndTime   *string `json:"class_schedule_end_time" validate:"omitempty,len=5"`
	ClassScheduleRoom      *string `json:"class_schedule_room" validate:"omitempty,max=80"`
	ClassScheduleNotes     *string `json:"class_schedule_notes" validate:"omitempty"`
}

/* =========================================================
   TEACHER ASSIGNMENT DTO
========================================================= */

type AssignTeacherRequest struct {
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
}

type ScheduleTeacherResponse struct {
	TeacherID  uuid.UUID  `json:"teacher_id"`
	AssignedAt time.Time  `json:"assigned_at"`
	AssignedBy *uuid.UUID `json:"assigned_by,omitempty"`
}

func FromScheduleTeacherModels(ms []model.ClassScheduleTeacherModel) []ScheduleTeacherResponse {
	out := make([]ScheduleTeacherResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ScheduleTeacherResponse{
			TeacherID:  m.ClassScheduleTeacherTeacherID,
			AssignedAt: m.ClassScheduleTeacherAssignedAt,
			AssignedBy: m.ClassScheduleTeacherAssignedBy,
		})
	}
	return out
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type ClassScheduleResponse struct {
	ClassScheduleID        uuid.UUID `json:"class_schedule_id"`
	ClassScheduleClassID   uuid.UUID `json:"class_schedule_class_id"`
	ClassScheduleDayOfWeek int       `json:"class_schedule_day_of_week"`
	ClassScheduleStartTime string    `json:"class_schedule_start_time"`
	ClassScheduleEndTime   string    `json:"class_schedule_end_time"`
	ClassScheduleRoom      *string   `json:"class_schedule_room,omitempty"`
	ClassScheduleNotes     *string   `json:"class_schedule_notes,omitempty"`
	ClassScheduleCreatedAt time.Time `json:"class_schedule_created_at"`
}

func FromClassScheduleModel(m *model.ClassScheduleModel) ClassScheduleResponse {
	return ClassScheduleResponse{
		ClassScheduleID:        m.ClassScheduleID,
		ClassScheduleClassID:   m.ClassScheduleClassID,
		ClassScheduleDayOfWeek: m.ClassScheduleDayOfWeek,
		ClassScheduleStartTime: m.ClassScheduleStartTime,
		ClassScheduleEndTime:   m.ClassScheduleEndTime,
		ClassScheduleRoom:      m.ClassScheduleRoom,
		ClassScheduleNotes:     m.ClassScheduleNotes,
		ClassScheduleCreatedAt: m.ClassScheduleCreatedAt,
	}
}

func FromClassScheduleModels(ms []model.ClassScheduleModel) []ClassScheduleResponse {
	out := make([]ClassScheduleResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromClassScheduleModel(&ms[i]))
	}
	return out
}
