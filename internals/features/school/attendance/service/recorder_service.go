// file: internals/features/school/attendance/service/recorder_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
	sessionModel "sekolahku_backend/internals/features/school/class_sessions/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
)

var (
	ErrClassNotFound   = errors.New("kelas tidak ditemukan")
	ErrSessionNotFound = errors.New("sesi tidak ditemukan")
	ErrInvalidStatus   = errors.New("status kehadiran tidak dikenal")
)

type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService { return &AttendanceService{DB: db} }

var attendanceUpsertColumns = []string{
	"class_attendance_status",
	"class_attendance_notes",
	"class_attendance_checked_in_at",
	"class_attendance_recorded_by",
	"class_attendance_recorded_at",
	"class_attendance_updated_at",
}

func (s *AttendanceService) sessionExists(sessionID uuid.UUID) error {
	var n int64
	if err := s.DB.Model(&sessionModel.ClassSessionModel{}).
		Where("class_session_id = ?", sessionID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Record meng-upsert satu record kehadiran per (session, student):
// record ulang untuk pasangan yang sama meng-update in place, tidak pernah
// menyisipkan baris kedua. checked_in_at diisi now untuk present/late dan
// di-NULL-kan untuk status lain.
//
// Record TIDAK memverifikasi siswa terdaftar di kelas sesi — cek roster
// adalah tanggung jawab caller (sengaja mengikuti perilaku sumber).
func (s *AttendanceService) Record(
	sessionID, studentID uuid.UUID,
	status attendanceModel.ClassAttendanceStatus,
	notes *string,
	actor uuid.UUID,
) (*attendanceModel.ClassAttendanceModel, error) {
	if !attendanceModel.ValidAttendanceStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.sessionExists(sessionID); err != nil {
		return nil, err
	}

	now := time.Now()
	row := attendanceModel.ClassAttendanceModel{
		ClassAttendanceSessionID:  sessionID,
		ClassAttendanceStudentID:  studentID,
		ClassAttendanceStatus:     status,
		ClassAttendanceNotes:      notes,
		ClassAttendanceRecordedBy: actor,
		ClassAttendanceRecordedAt: now,
	}
	if status.NeedsCheckIn() {
		row.ClassAttendanceCheckedInAt = &now
	}

	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "class_attendance_session_id"},
			{Name: "class_attendance_student_id"},
		},
		DoUpdates: clause.AssignmentColumns(attendanceUpsertColumns),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	// Create di jalur conflict-update tidak mengembalikan baris existing,
	// jadi baca ulang untuk dapat ID & timestamps yang benar.
	var saved attendanceModel.ClassAttendanceModel
	if err := s.DB.
		Where("class_attendance_session_id = ? AND class_attendance_student_id = ?", sessionID, studentID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

/* =========================================================
   Batch (pola partial-failure, seperti import spreadsheet)
========================================================= */

type BatchEntry struct {
	StudentID uuid.UUID                             `json:"student_id"`
	Status    attendanceModel.ClassAttendanceStatus `json:"status"`
	Notes     *string                               `json:"notes,omitempty"`
}

type BatchFailure struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

type RecordReport struct {
	Recorded int            `json:"recorded"`
	Failed   []BatchFailure `json:"failed"`
}

// RecordBatch menerapkan aturan upsert yang sama per entri untuk satu
// sesi. Satu entri jelek tidak menggagalkan seluruh batch: hasil per
// entri dikumpulkan dan dikembalikan sebagai laporan.
func (s *AttendanceService) RecordBatch(sessionID uuid.UUID, entries []BatchEntry, actor uuid.UUID) (*RecordReport, error) {
	if err := s.sessionExists(sessionID); err != nil {
		return nil, err
	}

	report := &RecordReport{Failed: []BatchFailure{}}
	for _, e := range entries {
		if e.StudentID == uuid.Nil {
			report.Failed = append(report.Failed, BatchFailure{
				Item:   e.StudentID.String(),
				Reason: "student_id kosong",
			})
			continue
		}
		if !attendanceModel.ValidAttendanceStatus(e.Status) {
			report.Failed = append(report.Failed, BatchFailure{
				Item:   e.StudentID.String(),
				Reason: "status kehadiran tidak dikenal: " + string(e.Status),
			})
			continue
		}
		if _, err := s.Record(sessionID, e.StudentID, e.Status, e.Notes, actor); err != nil {
			report.Failed = append(report.Failed, BatchFailure{
				Item:   e.StudentID.String(),
				Reason: err.Error(),
			})
			continue
		}
		report.Recorded++
	}
	return report, nil
}

/* =========================================================
   Roster listing untuk satu sesi
========================================================= */

type SessionRosterRow struct {
	StudentID   uuid.UUID                              `json:"student_id"`
	Status      *attendanceModel.ClassAttendanceStatus `json:"status,omitempty"` // nil = belum tercatat (absen implisit)
	Notes       *string                                `json:"notes,omitempty"`
	CheckedInAt *time.Time                             `json:"checked_in_at,omitempty"`
}

// ListSessionRoster: roster aktif kelas milik sesi, masing-masing dengan
// record kehadirannya (atau nil). Dipakai form kehadiran per sesi.
func (s *AttendanceService) ListSessionRoster(sessionID uuid.UUID) ([]SessionRosterRow, error) {
	var sess sessionModel.ClassSessionModel
	if err := s.DB.First(&sess, "class_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var roster []classModel.ClassStudentModel
	if err := s.DB.
		Where("class_student_class_id = ? AND class_student_is_active = ?", sess.ClassSessionClassID, true).
		Order("class_student_joined_at ASC, class_student_user_id ASC").
		Find(&roster).Error; err != nil {
		return nil, err
	}

	var records []attendanceModel.ClassAttendanceModel
	if err := s.DB.
		Where("class_attendance_session_id = ?", sessionID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	byStudent := make(map[uuid.UUID]attendanceModel.ClassAttendanceModel, len(records))
	for _, r := range records {
		byStudent[r.ClassAttendanceStudentID] = r
	}

	rows := make([]SessionRosterRow, 0, len(roster))
	for _, st := range roster {
		row := SessionRosterRow{StudentID: st.ClassStudentUserID}
		if rec, ok := byStudent[st.ClassStudentUserID]; ok {
			status := rec.ClassAttendanceStatus
			row.Status = &status
			row.Notes = rec.ClassAttendanceNotes
			row.CheckedInAt = rec.ClassAttendanceCheckedInAt
		}
		rows = append(rows, row)
	}
	return rows, nil
}
