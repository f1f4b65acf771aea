// file: internals/features/school/class_sessions/service/session_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "sekolahku_backend/internals/features/school/class_sessions/model"
)

var (
	ErrScheduleNotFound = errors.New("jadwal tidak ditemukan")
	ErrSessionNotFound  = errors.New("sesi tidak ditemukan")
	ErrSessionExists    = errors.New("sesi untuk jadwal & tanggal tersebut sudah ada")
	ErrNotClassTeacher  = errors.New("guru tidak ditugaskan pada kelas ini")
	ErrInvalidStatus    = errors.New("status sesi tidak dikenal")
)

// SessionService: baca sesi untuk controller & aggregator.
type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService { return &SessionService{DB: db} }

func (s *SessionService) GetByID(id uuid.UUID) (*sessionModel.ClassSessionModel, error) {
	var m sessionModel.ClassSessionModel
	if err := s.DB.First(&m, "class_session_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *SessionService) ListByClass(classID uuid.UUID, limit, offset int) ([]sessionModel.ClassSessionModel, int64, error) {
	q := s.DB.Model(&sessionModel.ClassSessionModel{}).
		Where("class_session_class_id = ?", classID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []sessionModel.ClassSessionModel
	err := q.
		Order("class_session_date ASC, class_session_created_at ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}
