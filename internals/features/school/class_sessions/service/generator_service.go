// file: internals/features/school/class_sessions/service/generator_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	scheduleModel "sekolahku_backend/internals/features/school/class_schedules/model"
	sessionModel "sekolahku_backend/internals/features/school/class_sessions/model"
)

/* =========================================================
   Batch result (pola partial-failure)
========================================================= */

type BatchFailure struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// GenerateReport: hasil bulk job. Generate tidak pernah gagal total karena
// satu item jelek; kegagalan per item dikumpulkan di Failed.
type GenerateReport struct {
	Created int            `json:"created"`
	Skipped int            `json:"skipped"`
	Failed  []BatchFailure `json:"failed"`
}

// SessionGeneratorService meng-expand jadwal mingguan menjadi sesi
// bertanggal pada rentang [from, to] inklusif.
type SessionGeneratorService struct {
	DB *gorm.DB
}

func NewSessionGeneratorService(db *gorm.DB) *SessionGeneratorService {
	return &SessionGeneratorService{DB: db}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sessionKey(scheduleID uuid.UUID, d time.Time) string {
	return scheduleID.String() + "|" + d.Format("2006-01-02")
}

// Generate membuat satu sesi per (jadwal, tanggal) untuk setiap tanggal
// dalam rentang yang day-of-week-nya cocok, melewati pasangan yang sudah
// punya sesi. Set jadwal kosong atau rentang terbalik menghasilkan nol
// sesi, bukan error.
//
// Dua generate konkuren untuk rentang yang tumpang-tindih tidak akan
// membuat duplikat: unik (schedule, date) ditegakkan di store, dan konflik
// saat insert dihitung sebagai skip, bukan error.
func (s *SessionGeneratorService) Generate(scheduleIDs []uuid.UUID, from, to time.Time, actor uuid.UUID) (*GenerateReport, error) {
	report := &GenerateReport{Failed: []BatchFailure{}}

	if len(scheduleIDs) == 0 {
		return report, nil
	}
	from = dateOnly(from)
	to = dateOnly(to)
	if to.Before(from) {
		return report, nil
	}

	var schedules []scheduleModel.ClassScheduleModel
	if err := s.DB.Where("class_schedule_id IN ?", scheduleIDs).Find(&schedules).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]scheduleModel.ClassScheduleModel, len(schedules))
	foundIDs := make([]uuid.UUID, 0, len(schedules))
	for _, sch := range schedules {
		byID[sch.ClassScheduleID] = sch
		foundIDs = append(foundIDs, sch.ClassScheduleID)
	}
	for _, id := range scheduleIDs {
		if _, ok := byID[id]; !ok {
			report.Failed = append(report.Failed, BatchFailure{
				Item:   id.String(),
				Reason: "jadwal tidak ditemukan",
			})
		}
	}
	if len(foundIDs) == 0 {
		return report, nil
	}

	defaultTeachers, err := s.resolveDefaultTeachers(foundIDs)
	if err != nil {
		return nil, err
	}

	existing, err := s.existingSessionKeys(foundIDs, from, to)
	if err != nil {
		return nil, err
	}

	var staged []sessionModel.ClassSessionModel
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		for _, id := range foundIDs {
			sch := byID[id]
			if int(d.Weekday()) != sch.ClassScheduleDayOfWeek {
				continue
			}
			if existing[sessionKey(id, d)] {
				report.Skipped++
				continue
			}
			row := sessionModel.ClassSessionModel{
				ClassSessionScheduleID: sch.ClassScheduleID,
				ClassSessionClassID:    sch.ClassScheduleClassID,
				ClassSessionDate:       datatypes.Date(d),
				ClassSessionStatus:     sessionModel.SessionScheduled,
				ClassSessionCreatedBy:  &actor,
			}
			// jadwal tanpa penugasan guru tetap menghasilkan sesi dengan
			// teacher NULL — diisi manusia belakangan
			if teacherID, ok := defaultTeachers[id]; ok {
				t := teacherID
				row.ClassSessionTeacherID = &t
			}
			staged = append(staged, row)
		}
	}

	if len(staged) > 0 {
		// balapan dengan generate lain: konflik (schedule, date) = skip
		res := s.DB.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&staged, 200)
		if res.Error != nil {
			return nil, res.Error
		}
		report.Created = int(res.RowsAffected)
		report.Skipped += len(staged) - report.Created
	}
	return report, nil
}

// resolveDefaultTeachers: guru default per jadwal = penugasan dengan
// assigned_at paling awal, seri dipecah dengan teacher_id. Urutan dibuat
// eksplisit — tidak bergantung urutan kembalian store.
func (s *SessionGeneratorService) resolveDefaultTeachers(scheduleIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	var assignments []scheduleModel.ClassScheduleTeacherModel
	if err := s.DB.
		Where("class_schedule_teacher_schedule_id IN ?", scheduleIDs).
		Order("class_schedule_teacher_assigned_at ASC, class_schedule_teacher_teacher_id ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]uuid.UUID)
	for _, a := range assignments {
		if _, ok := out[a.ClassScheduleTeacherScheduleID]; !ok {
			out[a.ClassScheduleTeacherScheduleID] = a.ClassScheduleTeacherTeacherID
		}
	}
	return out, nil
}

func (s *SessionGeneratorService) existingSessionKeys(scheduleIDs []uuid.UUID, from, to time.Time) (map[string]bool, error) {
	var rows []sessionModel.ClassSessionModel
	if err := s.DB.
		Select("class_session_schedule_id, class_session_date").
		Where("class_session_schedule_id IN ?", scheduleIDs).
		Where("class_session_date BETWEEN ? AND ?", from, to).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(rows))
	for _, r := range rows {
		out[sessionKey(r.ClassSessionScheduleID, time.Time(r.ClassSessionDate))] = true
	}
	return out, nil
}

// CreateAdHoc: satu guru membuat satu sesi tunggal di luar batch.
// Keunikan (schedule, date) tetap berlaku, dan guru pemohon harus benar
// ditugaskan pada kelas milik jadwal tersebut.
func (s *SessionGeneratorService) CreateAdHoc(scheduleID uuid.UUID, date time.Time, teacherID uuid.UUID) (*sessionModel.ClassSessionModel, error) {
	var sch scheduleModel.ClassScheduleModel
	if err := s.DB.First(&sch, "class_schedule_id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	assigned, err := s.teacherAssignedToClass(teacherID, sch.ClassScheduleClassID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotClassTeacher
	}

	row := sessionModel.ClassSessionModel{
		ClassSessionScheduleID: sch.ClassScheduleID,
		ClassSessionClassID:    sch.ClassScheduleClassID,
		ClassSessionTeacherID:  &teacherID,
		ClassSessionDate:       datatypes.Date(dateOnly(date)),
		ClassSessionStatus:     sessionModel.SessionScheduled,
		ClassSessionCreatedBy:  &teacherID,
	}
	res := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrSessionExists
	}
	return &row, nil
}

// teacherAssignedToClass: guru dianggap "guru kelas" jika punya penugasan
// pada jadwal hidup mana pun milik kelas itu.
func (s *SessionGeneratorService) teacherAssignedToClass(teacherID, classID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.Model(&scheduleModel.ClassScheduleTeacherModel{}).
		Joins("JOIN class_schedules ON class_schedules.class_schedule_id = class_schedule_teachers.class_schedule_teacher_schedule_id").
		Where("class_schedule_teachers.class_schedule_teacher_teacher_id = ?", teacherID).
		Where("class_schedules.class_schedule_class_id = ?", classID).
		Where("class_schedules.class_schedule_deleted_at IS NULL").
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
