// file: internals/features/school/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	// PK
	ClassID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_id" json:"class_id"`

	ClassName string  `gorm:"type:varchar(120);not null;column:class_name" json:"class_name"`
	ClassSlug *string `gorm:"type:varchar(160);uniqueIndex:uq_classes_slug;column:class_slug" json:"class_slug,omitempty"`

	ClassIsActive bool `gorm:"not null;default:true;column:class_is_active" json:"class_is_active"`

	// Timestamps
	ClassCreatedAt time.Time      `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
