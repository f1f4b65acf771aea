// file: internals/seeds/runner.go
package seeds

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	scheduleModel "sekolahku_backend/internals/features/school/class_schedules/model"
	scheduleService "sekolahku_backend/internals/features/school/class_schedules/service"
	classModel "sekolahku_backend/internals/features/school/classes/model"
)

// Run mengisi data demo (kelas, roster, jadwal, penugasan guru) saat
// SEED=true. Idempoten lewat cek slug: run kedua tidak menduplikasi.
func Run(db *gorm.DB) {
	if os.Getenv("SEED") != "true" {
		return
	}

	const demoSlug = "kelas-demo-7a"
	var existing int64
	if err := db.Model(&classModel.ClassModel{}).
		Where("class_slug = ?", demoSlug).
		Count(&existing).Error; err != nil {
		log.Printf("[ERROR] Seed: gagal cek kelas demo: %v", err)
		return
	}
	if existing > 0 {
		log.Println("[INFO] Seed: kelas demo sudah ada, dilewati")
		return
	}

	slug := demoSlug
	cls := classModel.ClassModel{ClassName: "Kelas Demo 7A", ClassSlug: &slug}
	if err := db.Create(&cls).Error; err != nil {
		log.Printf("[ERROR] Seed: gagal membuat kelas demo: %v", err)
		return
	}

	// roster demo
	for i := 0; i < 5; i++ {
		student := classModel.ClassStudentModel{
			ClassStudentClassID: cls.ClassID,
			ClassStudentUserID:  uuid.New(),
		}
		if err := db.Create(&student).Error; err != nil {
			log.Printf("[ERROR] Seed: gagal menambah siswa demo: %v", err)
			return
		}
	}

	// Senin 07:30-09:00 dan Rabu 10:00-11:30
	svc := scheduleService.NewScheduleService(db)
	teacherID := uuid.New()
	slots := []scheduleModel.ClassScheduleModel{
		{ClassScheduleClassID: cls.ClassID, ClassScheduleDayOfWeek: 1, ClassScheduleStartTime: "07:30", ClassScheduleEndTime: "09:00"},
		{ClassScheduleClassID: cls.ClassID, ClassScheduleDayOfWeek: 3, ClassScheduleStartTime: "10:00", ClassScheduleEndTime: "11:30"},
	}
	for i := range slots {
		if err := svc.Create(&slots[i]); err != nil {
			log.Printf("[ERROR] Seed: gagal membuat jadwal demo: %v", err)
			return
		}
		if _, err := svc.AssignTeacher(slots[i].ClassScheduleID, teacherID, nil); err != nil {
			log.Printf("[ERROR] Seed: gagal menugaskan guru demo: %v", err)
			return
		}
	}

	log.Printf("[INFO] Seed selesai: kelas %s, 5 siswa, %d jadwal (%s)",
		cls.ClassID, len(slots), time.Now().Format(time.RFC3339))
}
