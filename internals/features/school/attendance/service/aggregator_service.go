// file: internals/features/school/attendance/service/aggregator_service.go
package service

import (
	"math"
	"time"

	"github.com/google/uuid"

	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
	sessionModel "sekolahku_backend/internals/features/school/class_sessions/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
)

/* =========================================================
   Matriks kehadiran per kelas (read-only)
========================================================= */

type StudentSessionRow struct {
	SessionID        uuid.UUID                              `json:"session_id"`
	Date             string                                 `json:"date"` // YYYY-MM-DD
	SessionStatus    sessionModel.ClassSessionStatus        `json:"session_status"`
	AttendanceStatus *attendanceModel.ClassAttendanceStatus `json:"attendance_status"` // nil = tidak tercatat
	Notes            *string                                `json:"notes,omitempty"`
	CheckedInAt      *time.Time                             `json:"checked_in_at,omitempty"`
}

type AttendanceCounts struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Excused int `json:"excused"`
	Sick    int `json:"sick"`
}

type StudentAttendanceSummary struct {
	StudentID uuid.UUID           `json:"student_id"`
	Rows      []StudentSessionRow `json:"rows"`
	Counts    AttendanceCounts    `json:"counts"`
	// Recorded: jumlah sesi yang punya record APA PUN untuk siswa ini.
	// Sesi tanpa record tidak masuk penyebut — tidak dihitung absen.
	Recorded int `json:"recorded"`
	// Rate = round((present+late)/recorded × 100); 0 saat recorded 0.
	Rate int `json:"rate"`
}

type ClassAttendanceMatrix struct {
	ClassID      uuid.UUID                  `json:"class_id"`
	SessionCount int                        `json:"session_count"`
	Students     []StudentAttendanceSummary `json:"students"`
}

// BuildMatrix menyusun matriks status per (siswa, sesi) untuk satu kelas
// beserta ringkasan hitungan dan attendance rate per siswa. Murni baca,
// tanpa efek samping — aman dipanggil kapan pun.
func (s *AttendanceService) BuildMatrix(classID uuid.UUID) (*ClassAttendanceMatrix, error) {
	var n int64
	if err := s.DB.Model(&classModel.ClassModel{}).
		Where("class_id = ?", classID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrClassNotFound
	}

	var sessions []sessionModel.ClassSessionModel
	if err := s.DB.
		Where("class_session_class_id = ?", classID).
		Order("class_session_date ASC, class_session_created_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	var roster []classModel.ClassStudentModel
	if err := s.DB.
		Where("class_student_class_id = ? AND class_student_is_active = ?", classID, true).
		Order("class_student_joined_at ASC, class_student_user_id ASC").
		Find(&roster).Error; err != nil {
		return nil, err
	}

	sessionIDs := make([]uuid.UUID, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.ClassSessionID)
	}

	// record per (student, session)
	recorded := map[uuid.UUID]map[uuid.UUID]attendanceModel.ClassAttendanceModel{}
	if len(sessionIDs) > 0 {
		var records []attendanceModel.ClassAttendanceModel
		if err := s.DB.
			Where("class_attendance_session_id IN ?", sessionIDs).
			Find(&records).Error; err != nil {
			return nil, err
		}
		for _, r := range records {
			m, ok := recorded[r.ClassAttendanceStudentID]
			if !ok {
				m = map[uuid.UUID]attendanceModel.ClassAttendanceModel{}
				recorded[r.ClassAttendanceStudentID] = m
			}
			m[r.ClassAttendanceSessionID] = r
		}
	}

	matrix := &ClassAttendanceMatrix{
		ClassID:      classID,
		SessionCount: len(sessions),
		Students:     make([]StudentAttendanceSummary, 0, len(roster)),
	}

	for _, st := range roster {
		summary := StudentAttendanceSummary{
			StudentID: st.ClassStudentUserID,
			Rows:      make([]StudentSessionRow, 0, len(sessions)),
		}
		for _, sess := range sessions {
			row := StudentSessionRow{
				SessionID:     sess.ClassSessionID,
				Date:          time.Time(sess.ClassSessionDate).Format("2006-01-02"),
				SessionStatus: sess.ClassSessionStatus,
			}
			if rec, ok := recorded[st.ClassStudentUserID][sess.ClassSessionID]; ok {
				status := rec.ClassAttendanceStatus
				row.AttendanceStatus = &status
				row.Notes = rec.ClassAttendanceNotes
				row.CheckedInAt = rec.ClassAttendanceCheckedInAt

				summary.Recorded++
				switch status {
				case attendanceModel.AttendancePresent:
					summary.Counts.Present++
				case attendanceModel.AttendanceLate:
					summary.Counts.Late++
				case attendanceModel.AttendanceAbsent:
					summary.Counts.Absent++
				case attendanceModel.AttendanceExcused:
					summary.Counts.Excused++
				case attendanceModel.AttendanceSick:
					summary.Counts.Sick++
				}
			}
			summary.Rows = append(summary.Rows, row)
		}

		if summary.Recorded > 0 {
			attended := summary.Counts.Present + summary.Counts.Late
			summary.Rate = int(math.Round(float64(attended) / float64(summary.Recorded) * 100))
		}
		matrix.Students = append(matrix.Students, summary)
	}
	return matrix, nil
}
