// file: internals/features/school/class_schedules/service/schedule_service.go
package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
	scheduleModel "sekolahku_backend/internals/features/school/class_schedules/model"
	sessionModel "sekolahku_backend/internals/features/school/class_sessions/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
)

var (
	ErrClassNotFound    = errors.New("kelas tidak ditemukan")
	ErrScheduleNotFound = errors.New("jadwal tidak ditemukan")
	ErrScheduleExists   = errors.New("jadwal dengan hari & jam yang sama sudah ada")
	ErrScheduleInUse    = errors.New("jadwal masih dipakai oleh sesi")
	ErrInvalidDayOfWeek = errors.New("day_of_week harus 0..6")
	ErrInvalidTimeRange = errors.New("jam selesai harus setelah jam mulai")
)

type ScheduleService struct {
	DB *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService { return &ScheduleService{DB: db} }

/* =========================================================
   Validation helpers
========================================================= */

// parseClock menerima "HH:MM" dan mengembalikan menit sejak 00:00.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("format jam %q tidak valid (HH:MM)", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("format jam %q tidak valid (HH:MM)", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("format jam %q tidak valid (HH:MM)", s)
	}
	return h*60 + m, nil
}

func validateTimeKey(dayOfWeek int, startTime, endTime string) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	start, err := parseClock(startTime)
	if err != nil {
		return err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return err
	}
	if end <= start {
		return ErrInvalidTimeRange
	}
	return nil
}

func (s *ScheduleService) classExists(classID uuid.UUID) error {
	var n int64
	if err := s.DB.Model(&classModel.ClassModel{}).
		Where("class_id = ?", classID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrClassNotFound
	}
	return nil
}

// duplicateTimeKeyExists: cek baris HIDUP lain dengan time key identik.
func (s *ScheduleService) duplicateTimeKeyExists(key scheduleModel.TimeKey, excludeID uuid.UUID) (bool, error) {
	q := s.DB.Model(&scheduleModel.ClassScheduleModel{}).
		Where("class_schedule_class_id = ?", key.ClassID).
		Where("class_schedule_day_of_week = ?", key.DayOfWeek).
		Where("class_schedule_start_time = ?", key.StartTime).
		Where("class_schedule_end_time = ?", key.EndTime)
	if excludeID != uuid.Nil {
		q = q.Where("class_schedule_id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

/* =========================================================
   CRUD
========================================================= */

func (s *ScheduleService) Create(m *scheduleModel.ClassScheduleModel) error {
	m.ClassScheduleStartTime = strings.TrimSpace(m.ClassScheduleStartTime)
	m.ClassScheduleEndTime = strings.TrimSpace(m.ClassScheduleEndTime)

	if err := validateTimeKey(m.ClassScheduleDayOfWeek, m.ClassScheduleStartTime, m.ClassScheduleEndTime); err != nil {
		return err
	}
	if err := s.classExists(m.ClassScheduleClassID); err != nil {
		return err
	}
	dup, err := s.duplicateTimeKeyExists(m.TimeKey(), uuid.Nil)
	if err != nil {
		return err
	}
	if dup {
		return ErrScheduleExists
	}
	return s.DB.Create(m).Error
}

func (s *ScheduleService) GetByID(id uuid.UUID) (*scheduleModel.ClassScheduleModel, error) {
	var m scheduleModel.ClassScheduleModel
	if err := s.DB.First(&m, "class_schedule_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *ScheduleService) ListByClass(classID uuid.UUID) ([]scheduleModel.ClassScheduleModel, error) {
	var rows []scheduleModel.ClassScheduleModel
	err := s.DB.
		Where("class_schedule_class_id = ?", classID).
		Order("class_schedule_day_of_week ASC, class_schedule_start_time ASC").
		Find(&rows).Error
	return rows, err
}

// UpdateScheduleInput: patch parsial untuk reschedule / pindah ruang.
// Field nil berarti tidak diubah.
type UpdateScheduleInput struct {
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	Room      *string
	Notes     *string
}

// Update hanya menyentuh baris jadwal itu sendiri. Sesi yang sudah ada
// tetap menunjuk baris yang sama dan membawa tanggalnya sendiri, jadi
// edit jam/ruang tidak pernah meng-orphan sesi.
func (s *ScheduleService) Update(id uuid.UUID, in UpdateScheduleInput) (*scheduleModel.ClassScheduleModel, error) {
	m, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.DayOfWeek != nil {
		m.ClassScheduleDayOfWeek = *in.DayOfWeek
	}
	if in.StartTime != nil {
		m.ClassScheduleStartTime = strings.TrimSpace(*in.StartTime)
	}
	if in.EndTime != nil {
		m.ClassScheduleEndTime = strings.TrimSpace(*in.EndTime)
	}
	if in.Room != nil {
		room := strings.TrimSpace(*in.Room)
		if room == "" {
			m.ClassScheduleRoom = nil
		} else {
			m.ClassScheduleRoom = &room
		}
	}
	if in.Notes != nil {
		m.ClassScheduleNotes = in.Notes
	}

	if err := validateTimeKey(m.ClassScheduleDayOfWeek, m.ClassScheduleStartTime, m.ClassScheduleEndTime); err != nil {
		return nil, err
	}
	dup, err := s.duplicateTimeKeyExists(m.TimeKey(), m.ClassScheduleID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrScheduleExists
	}

	if err := s.DB.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// Delete menghapus jadwal. Gagal dengan ErrScheduleInUse jika masih ada
// sesi yang menunjuk jadwal ini, kecuali cascade=true: sesi beserta
// kehadirannya ikut dihapus permanen dalam satu transaksi. Baris
// penugasan guru selalu ikut terhapus.
func (s *ScheduleService) Delete(id uuid.UUID, cascade bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var m scheduleModel.ClassScheduleModel
		if err := tx.First(&m, "class_schedule_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScheduleNotFound
			}
			return err
		}

		var sessionCount int64
		if err := tx.Model(&sessionModel.ClassSessionModel{}).
			Where("class_session_schedule_id = ?", id).
			Count(&sessionCount).Error; err != nil {
			return err
		}
		if sessionCount > 0 {
			if !cascade {
				return ErrScheduleInUse
			}
			if err := tx.
				Where("class_attendance_session_id IN (?)",
					tx.Model(&sessionModel.ClassSessionModel{}).
						Select("class_session_id").
						Where("class_session_schedule_id = ?", id),
				).
				Delete(&attendanceModel.ClassAttendanceModel{}).Error; err != nil {
				return err
			}
			if err := tx.
				Where("class_session_schedule_id = ?", id).
				Delete(&sessionModel.ClassSessionModel{}).Error; err != nil {
				return err
			}
		}

		if err := tx.
			Where("class_schedule_teacher_schedule_id = ?", id).
			Delete(&scheduleModel.ClassScheduleTeacherModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
}

/* =========================================================
   Teacher assignments
========================================================= */

// AssignTeacher bersifat idempoten: pasangan yang sudah ada bukan error,
// melainkan no-op (created=false).
func (s *ScheduleService) AssignTeacher(scheduleID, teacherID uuid.UUID, assignedBy *uuid.UUID) (created bool, err error) {
	if _, err := s.GetByID(scheduleID); err != nil {
		return false, err
	}

	var n int64
	if err := s.DB.Model(&scheduleModel.ClassScheduleTeacherModel{}).
		Where("class_schedule_teacher_schedule_id = ? AND class_schedule_teacher_teacher_id = ?", scheduleID, teacherID).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	row := scheduleModel.ClassScheduleTeacherModel{
		ClassScheduleTeacherScheduleID: scheduleID,
		ClassScheduleTeacherTeacherID:  teacherID,
		ClassScheduleTeacherAssignedBy: assignedBy,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		// balapan dengan insert lain untuk pasangan yang sama: tetap no-op
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *ScheduleService) UnassignTeacher(scheduleID, teacherID uuid.UUID) error {
	if _, err := s.GetByID(scheduleID); err != nil {
		return err
	}
	return s.DB.
		Where("class_schedule_teacher_schedule_id = ? AND class_schedule_teacher_teacher_id = ?", scheduleID, teacherID).
		Delete(&scheduleModel.ClassScheduleTeacherModel{}).Error
}

// ListTeachers: penugasan diurutkan eksplisit (assigned_at lalu teacher_id),
// urutan yang sama dengan resolusi default teacher di generator.
func (s *ScheduleService) ListTeachers(scheduleID uuid.UUID) ([]scheduleModel.ClassScheduleTeacherModel, error) {
	if _, err := s.GetByID(scheduleID); err != nil {
		return nil, err
	}
	var rows []scheduleModel.ClassScheduleTeacherModel
	err := s.DB.
		Where("class_schedule_teacher_schedule_id = ?", scheduleID).
		Order("class_schedule_teacher_assigned_at ASC, class_schedule_teacher_teacher_id ASC").
		Find(&rows).Error
	return rows, err
}
