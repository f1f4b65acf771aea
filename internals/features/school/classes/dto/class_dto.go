// file: internals/features/school/classes/dto/class_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/classes/model"
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

type ClassCreateRequest struct {
	ClassName string  `json:"class_name" validate:"required,max=120"`
	ClassSlug *string `json:"class_slug" validate:"omitempty,max=160"`
}

func (in *ClassCreateRequest) ToModel() *model.ClassModel {
	return &model.ClassModel{
		ClassName: strings.TrimSpace(in.ClassName),
		ClassSlug: trimPtr(in.ClassSlug),
	}
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type ClassResponse struct {
	ClassID        uuid.UUID `json:"class_id"`
	ClassName      string    `json:"class_name"`
	ClassSlug      *string   `json:"class_slug,omitempty"`
	ClassIsActive  bool      `json:"class_is_active"`
	ClassCreatedAt time.Time `json:"class_created_at"`
}

func FromClassModel(m *model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:        m.ClassID,
		ClassName:      m.ClassName,
		ClassSlug:      m.ClassSlug,
		ClassIsActive:  m.ClassIsActive,
		ClassCreatedAt: m.ClassCreatedAt,
	}
}

func FromClassModels(ms []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromClassModel(&ms[i]))
	}
	return out
}

/* =========================================================
   ROSTER DTO
========================================================= */

type ClassStudentRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

type ClassStudentResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	IsActive  bool      `json:"is_active"`
	JoinedAt  time.Time `json:"joined_at"`
}

func FromClassStudentModels(ms []model.ClassStudentModel) []ClassStudentResponse {
	out := make([]ClassStudentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ClassStudentResponse{
			StudentID: m.ClassStudentUserID,
			IsActive:  m.ClassStudentIsActive,
			JoinedAt:  m.ClassStudentJoinedAt,
		})
	}
	return out
}
