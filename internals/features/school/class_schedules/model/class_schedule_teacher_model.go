// file: internals/features/school/class_schedules/model/class_schedule_teacher_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassScheduleTeacherModel: penugasan guru ke satu jadwal (many-to-many).
// Unik per (schedule, teacher); menugaskan guru yang sama dua kali = no-op.
type ClassScheduleTeacherModel struct {
	// PK
	ClassScheduleTeacherID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_schedule_teacher_id" json:"class_schedule_teacher_id"`

	// FKs
	ClassScheduleTeacherScheduleID uuid.UUID `gorm:"type:uuid;not null;column:class_schedule_teacher_schedule_id;index;uniqueIndex:uq_class_schedule_teachers_pair" json:"class_schedule_teacher_schedule_id"`
	ClassScheduleTeacherTeacherID  uuid.UUID `gorm:"type:uuid;not null;column:class_schedule_teacher_teacher_id;index;uniqueIndex:uq_class_schedule_teachers_pair" json:"class_schedule_teacher_teacher_id"`

	ClassScheduleTeacherAssignedAt time.Time  `gorm:"column:class_schedule_teacher_assigned_at;autoCreateTime" json:"class_schedule_teacher_assigned_at"`
	ClassScheduleTeacherAssignedBy *uuid.UUID `gorm:"type:uuid;column:class_schedule_teacher_assigned_by" json:"class_schedule_teacher_assigned_by,omitempty"`
}

func (ClassScheduleTeacherModel) TableName() string { return "class_schedule_teachers" }

func (m *ClassScheduleTeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassScheduleTeacherID == uuid.Nil {
		m.ClassScheduleTeacherID = uuid.New()
	}
	return nil
}
