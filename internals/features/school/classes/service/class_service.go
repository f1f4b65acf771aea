// file: internals/features/school/classes/service/class_service.go
package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	scheduleModel "sekolahku_backend/internals/features/school/class_schedules/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	helper "sekolahku_backend/internals/helpers"
)

var (
	ErrClassNotFound = errors.New("kelas tidak ditemukan")
	// Kelas memiliki jadwal & sesi di bawahnya; penghapusan DIBLOKIR
	// selama masih ada jadwal hidup (pilihan eksplisit, bukan cascade).
	ErrClassInUse = errors.New("kelas masih memiliki jadwal")
)

type ClassService struct {
	DB *gorm.DB
}

func NewClassService(db *gorm.DB) *ClassService { return &ClassService{DB: db} }

func (s *ClassService) Create(m *classModel.ClassModel) error {
	m.ClassName = strings.TrimSpace(m.ClassName)

	// slug kosong diturunkan dari nama, unik case-insensitive
	if m.ClassSlug == nil || strings.TrimSpace(*m.ClassSlug) == "" {
		slug, err := helper.GenerateUniqueSlug(s.DB, helper.SlugOptions{
			Table:            "classes",
			SlugColumn:       "class_slug",
			SoftDeleteColumn: "class_deleted_at",
			DefaultBase:      "kelas",
		}, m.ClassName)
		if err != nil {
			return err
		}
		m.ClassSlug = &slug
	}
	return s.DB.Create(m).Error
}

func (s *ClassService) GetByID(id uuid.UUID) (*classModel.ClassModel, error) {
	var m classModel.ClassModel
	if err := s.DB.First(&m, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *ClassService) List(limit, offset int) ([]classModel.ClassModel, int64, error) {
	q := s.DB.Model(&classModel.ClassModel{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []classModel.ClassModel
	err := q.
		Order("class_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (s *ClassService) Delete(id uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var m classModel.ClassModel
		if err := tx.First(&m, "class_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}
		var n int64
		if err := tx.Model(&scheduleModel.ClassScheduleModel{}).
			Where("class_schedule_class_id = ?", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrClassInUse
		}
		if err := tx.
			Where("class_student_class_id = ?", id).
			Delete(&classModel.ClassStudentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
}

/* =========================================================
   Roster
========================================================= */

// AddStudent idempoten: siswa yang sudah terdaftar bukan error.
func (s *ClassService) AddStudent(classID, studentID uuid.UUID) (created bool, err error) {
	if _, err := s.GetByID(classID); err != nil {
		return false, err
	}

	var existing classModel.ClassStudentModel
	err = s.DB.
		Where("class_student_class_id = ? AND class_student_user_id = ?", classID, studentID).
		First(&existing).Error
	switch {
	case err == nil:
		if !existing.ClassStudentIsActive {
			// daftar ulang siswa nonaktif = aktifkan lagi
			return false, s.DB.Model(&existing).
				Update("class_student_is_active", true).Error
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := classModel.ClassStudentModel{
			ClassStudentClassID: classID,
			ClassStudentUserID:  studentID,
		}
		if err := s.DB.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// RemoveStudent menonaktifkan keanggotaan (bukan hapus baris) supaya
// record kehadiran historis tetap punya konteks roster.
func (s *ClassService) RemoveStudent(classID, studentID uuid.UUID) error {
	if _, err := s.GetByID(classID); err != nil {
		return err
	}
	return s.DB.Model(&classModel.ClassStudentModel{}).
		Where("class_student_class_id = ? AND class_student_user_id = ?", classID, studentID).
		Update("class_student_is_active", false).Error
}

// ListStudents: roster aktif, urutan deterministik.
func (s *ClassService) ListStudents(classID uuid.UUID) ([]classModel.ClassStudentModel, error) {
	if _, err := s.GetByID(classID); err != nil {
		return nil, err
	}
	var rows []classModel.ClassStudentModel
	err := s.DB.
		Where("class_student_class_id = ? AND class_student_is_active = ?", classID, true).
		Order("class_student_joined_at ASC, class_student_user_id ASC").
		Find(&rows).Error
	return rows, err
}
