// file: internals/features/school/classes/model/class_student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassStudentModel: roster keanggotaan siswa pada sebuah kelas.
// Unik per (class, student); daftar ulang = no-op di service.
type ClassStudentModel struct {
	// PK
	ClassStudentID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_student_id" json:"class_student_id"`

	// FKs
	ClassStudentClassID uuid.UUID `gorm:"type:uuid;not null;column:class_student_class_id;index;uniqueIndex:uq_class_students_pair" json:"class_student_class_id"`
	ClassStudentUserID  uuid.UUID `gorm:"type:uuid;not null;column:class_student_user_id;index;uniqueIndex:uq_class_students_pair" json:"class_student_user_id"`

	ClassStudentIsActive bool      `gorm:"not null;default:true;column:class_student_is_active" json:"class_student_is_active"`
	ClassStudentJoinedAt time.Time `gorm:"column:class_student_joined_at;autoCreateTime" json:"class_student_joined_at"`

	ClassStudentCreatedAt time.Time `gorm:"column:class_student_created_at;autoCreateTime" json:"class_student_created_at"`
	ClassStudentUpdatedAt time.Time `gorm:"column:class_student_updated_at;autoUpdateTime" json:"class_student_updated_at"`
}

func (ClassStudentModel) TableName() string { return "class_students" }

func (m *ClassStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassStudentID == uuid.Nil {
		m.ClassStudentID = uuid.New()
	}
	return nil
}
