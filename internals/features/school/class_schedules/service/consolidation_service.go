// file: internals/features/school/class_schedules/service/consolidation_service.go
package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
	scheduleModel "sekolahku_backend/internals/features/school/class_schedules/model"
	sessionModel "sekolahku_backend/internals/features/school/class_sessions/model"
)

// ConsolidationReport: ringkasan hasil satu run.
type ConsolidationReport struct {
	Groups             int `json:"groups"`
	DuplicatesRemoved  int `json:"duplicates_removed"`
	AssignmentsCreated int `json:"assignments_created"`
	SessionsRepointed  int `json:"sessions_repointed"`
	SessionsMerged     int `json:"sessions_merged"`
	TeachersBackfilled int `json:"teachers_backfilled"`
}

// ConsolidationService memperbaiki data historis: beberapa baris jadwal
// dibuat untuk time key yang seharusnya satu baris, masing-masing membawa
// satu guru di kolom legacy, alih-alih satu baris dengan banyak penugasan.
//
// Run bersifat idempoten dan berjalan dalam SATU transaksi: setelah
// selesai tidak ada grup berukuran > 1 tersisa, jadi run ulang = no-op.
// Harus selesai sebelum generate sesi konkuren dipercaya.
type ConsolidationService struct {
	DB *gorm.DB
}

func NewConsolidationService(db *gorm.DB) *ConsolidationService {
	return &ConsolidationService{DB: db}
}

func (s *ConsolidationService) Run() (*ConsolidationReport, error) {
	report := &ConsolidationReport{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Baris tertua jadi kanonis, maka urutkan created_at ASC.
		// id sebagai pemecah seri agar urutan deterministik.
		var schedules []scheduleModel.ClassScheduleModel
		if err := tx.
			Order("class_schedule_created_at ASC, class_schedule_id ASC").
			Find(&schedules).Error; err != nil {
			return err
		}

		// Grup per time key, urutan kemunculan pertama dipertahankan.
		groups := map[scheduleModel.TimeKey][]scheduleModel.ClassScheduleModel{}
		var keyOrder []scheduleModel.TimeKey
		for _, sch := range schedules {
			k := sch.TimeKey()
			if _, ok := groups[k]; !ok {
				keyOrder = append(keyOrder, k)
			}
			groups[k] = append(groups[k], sch)
		}

		for _, k := range keyOrder {
			group := groups[k]
			if len(group) < 2 {
				continue
			}
			report.Groups++

			keeper := group[0]
			duplicates := group[1:]

			if err := s.consolidateGroup(tx, keeper, duplicates, report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] konsolidasi jadwal selesai: groups=%d removed=%d assignments=%d repointed=%d merged=%d backfilled=%d",
		report.Groups, report.DuplicatesRemoved, report.AssignmentsCreated,
		report.SessionsRepointed, report.SessionsMerged, report.TeachersBackfilled)
	return report, nil
}

func (s *ConsolidationService) consolidateGroup(
	tx *gorm.DB,
	keeper scheduleModel.ClassScheduleModel,
	duplicates []scheduleModel.ClassScheduleModel,
	report *ConsolidationReport,
) error {
	groupIDs := make([]uuid.UUID, 0, len(duplicates)+1)
	groupIDs = append(groupIDs, keeper.ClassScheduleID)
	for _, d := range duplicates {
		groupIDs = append(groupIDs, d.ClassScheduleID)
	}

	// ---- 1) Union semua guru di grup ke penugasan keeper ----

	var assignments []scheduleModel.ClassScheduleTeacherModel
	if err := tx.
		Where("class_schedule_teacher_schedule_id IN ?", groupIDs).
		Order("class_schedule_teacher_assigned_at ASC, class_schedule_teacher_teacher_id ASC").
		Find(&assignments).Error; err != nil {
		return err
	}

	onKeeper := map[uuid.UUID]bool{}
	for _, a := range assignments {
		if a.ClassScheduleTeacherScheduleID == keeper.ClassScheduleID {
			onKeeper[a.ClassScheduleTeacherTeacherID] = true
		}
	}

	// guru dari baris penugasan + kolom legacy, urutan deterministik
	var teacherOrder []uuid.UUID
	seen := map[uuid.UUID]bool{}
	addTeacher := func(id uuid.UUID) {
		if id != uuid.Nil && !seen[id] {
			seen[id] = true
			teacherOrder = append(teacherOrder, id)
		}
	}
	for _, a := range assignments {
		addTeacher(a.ClassScheduleTeacherTeacherID)
	}
	if keeper.ClassScheduleTeacherID != nil {
		addTeacher(*keeper.ClassScheduleTeacherID)
	}
	for _, d := range duplicates {
		if d.ClassScheduleTeacherID != nil {
			addTeacher(*d.ClassScheduleTeacherID)
		}
	}

	for _, teacherID := range teacherOrder {
		if onKeeper[teacherID] {
			continue
		}
		row := scheduleModel.ClassScheduleTeacherModel{
			ClassScheduleTeacherScheduleID: keeper.ClassScheduleID,
			ClassScheduleTeacherTeacherID:  teacherID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		report.AssignmentsCreated++
	}

	// ---- 2) Pindahkan sesi tiap duplikat ke keeper, lalu hapus duplikat ----

	for _, dup := range duplicates {
		// backfill guru dari kolom legacy duplikat SEBELUM repoint,
		// supaya histori guru tidak hilang saat kolomnya dipensiunkan
		if dup.ClassScheduleTeacherID != nil {
			res := tx.Model(&sessionModel.ClassSessionModel{}).
				Where("class_session_schedule_id = ? AND class_session_teacher_id IS NULL", dup.ClassScheduleID).
				Update("class_session_teacher_id", *dup.ClassScheduleTeacherID)
			if res.Error != nil {
				return res.Error
			}
			report.TeachersBackfilled += int(res.RowsAffected)
		}

		// tabrakan tanggal: keeper & duplikat sama-sama pernah generate
		// sesi untuk tanggal yang sama. Repoint langsung akan melanggar
		// unik (schedule, date), jadi sesi duplikat di-merge ke sesi
		// keeper: kehadirannya ikut pindah untuk siswa yang belum punya
		// record di sesi keeper.
		if err := s.mergeCollidingSessions(tx, keeper.ClassScheduleID, dup.ClassScheduleID, report); err != nil {
			return err
		}

		res := tx.Model(&sessionModel.ClassSessionModel{}).
			Where("class_session_schedule_id = ?", dup.ClassScheduleID).
			Update("class_session_schedule_id", keeper.ClassScheduleID)
		if res.Error != nil {
			return res.Error
		}
		report.SessionsRepointed += int(res.RowsAffected)

		if err := tx.
			Where("class_schedule_teacher_schedule_id = ?", dup.ClassScheduleID).
			Delete(&scheduleModel.ClassScheduleTeacherModel{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&scheduleModel.ClassScheduleModel{}, "class_schedule_id = ?", dup.ClassScheduleID).Error; err != nil {
			return err
		}
		report.DuplicatesRemoved++
	}

	// ---- 3) Backfill guru untuk sesi keeper yang masih kosong ----

	if keeper.ClassScheduleTeacherID != nil {
		res := tx.Model(&sessionModel.ClassSessionModel{}).
			Where("class_session_schedule_id = ? AND class_session_teacher_id IS NULL", keeper.ClassScheduleID).
			Update("class_session_teacher_id", *keeper.ClassScheduleTeacherID)
		if res.Error != nil {
			return res.Error
		}
		report.TeachersBackfilled += int(res.RowsAffected)
	}
	return nil
}

// mergeCollidingSessions menangani tanggal yang dimiliki keeper DAN
// duplikat sekaligus: record kehadiran sesi duplikat dipindah ke sesi
// keeper (kecuali siswa yang sudah tercatat di keeper), lalu sesi
// duplikatnya dihapus permanen. Ini satu-satunya jalur konsolidasi
// yang menghapus baris sesi; uq_class_sessions_schedule_date tidak
// mengizinkan dua sesi pada (schedule, tanggal) yang sama, jadi sesi
// yang bentrok tidak mungkin di-repoint.
func (s *ConsolidationService) mergeCollidingSessions(tx *gorm.DB, keeperID, dupID uuid.UUID, report *ConsolidationReport) error {
	type collision struct {
		DupSessionID    uuid.UUID `gorm:"column:dup_session_id"`
		KeeperSessionID uuid.UUID `gorm:"column:keeper_session_id"`
	}
	var collisions []collision
	if err := tx.Table("class_sessions AS d").
		Select("d.class_session_id AS dup_session_id, k.class_session_id AS keeper_session_id").
		Joins("JOIN class_sessions AS k ON k.class_session_schedule_id = ? AND k.class_session_date = d.class_session_date", keeperID).
		Where("d.class_session_schedule_id = ?", dupID).
		Scan(&collisions).Error; err != nil {
		return err
	}

	for _, col := range collisions {
		if err := tx.Model(&attendanceModel.ClassAttendanceModel{}).
			Where("class_attendance_session_id = ?", col.DupSessionID).
			Where("class_attendance_student_id NOT IN (?)",
				tx.Model(&attendanceModel.ClassAttendanceModel{}).
					Select("class_attendance_student_id").
					Where("class_attendance_session_id = ?", col.KeeperSessionID),
			).
			Update("class_attendance_session_id", col.KeeperSessionID).Error; err != nil {
			return err
		}
		// sisa record duplikat (siswa sudah tercatat di keeper) ikut terhapus
		if err := tx.
			Where("class_attendance_session_id = ?", col.DupSessionID).
			Delete(&attendanceModel.ClassAttendanceModel{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("class_session_id = ?", col.DupSessionID).
			Delete(&sessionModel.ClassSessionModel{}).Error; err != nil {
			return err
		}
		report.SessionsMerged++
	}
	return nil
}
