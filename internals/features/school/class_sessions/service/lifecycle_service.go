// file: internals/features/school/class_sessions/service/lifecycle_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "sekolahku_backend/internals/features/school/class_sessions/model"
)

// SessionLifecycleService menggerakkan sesi melewati state operasionalnya:
// scheduled → not_started → in_progress → completed, dengan cancelled bisa
// dicapai dari state non-terminal mana pun.
//
// Di luar cek nilai status, TIDAK ada matriks legalitas transisi —
// completed → scheduled tidak ditolak. Ini disengaja: caller lama
// mengandalkan kelonggaran tersebut.
type SessionLifecycleService struct {
	DB *gorm.DB
}

func NewSessionLifecycleService(db *gorm.DB) *SessionLifecycleService {
	return &SessionLifecycleService{DB: db}
}

// Transition memindahkan status dan menstempel aktor/waktu:
//   - → in_progress: started_at = now, started_by = actor
//   - → completed:   ended_at = now, ended_by = actor
//   - lainnya: hanya status + updated_at
//
// Tidak ada tulisan parsial saat gagal: validasi dulu, satu UPDATE.
func (s *SessionLifecycleService) Transition(sessionID uuid.UUID, target sessionModel.ClassSessionStatus, actor uuid.UUID) (*sessionModel.ClassSessionModel, error) {
	if !sessionModel.ValidSessionStatus(target) {
		return nil, ErrInvalidStatus
	}

	var m sessionModel.ClassSessionModel
	if err := s.DB.First(&m, "class_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]any{
		"class_session_status": target,
	}
	switch target {
	case sessionModel.SessionInProgress:
		updates["class_session_started_at"] = now
		updates["class_session_started_by"] = actor
	case sessionModel.SessionCompleted:
		updates["class_session_ended_at"] = now
		updates["class_session_ended_by"] = actor
	}

	if err := s.DB.Model(&m).Updates(updates).Error; err != nil {
		return nil, err
	}

	m.ClassSessionStatus = target
	switch target {
	case sessionModel.SessionInProgress:
		m.ClassSessionStartedAt = &now
		m.ClassSessionStartedBy = &actor
	case sessionModel.SessionCompleted:
		m.ClassSessionEndedAt = &now
		m.ClassSessionEndedBy = &actor
	}
	return &m, nil
}
