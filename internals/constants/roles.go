package constants

import "fmt"

// Role names (disimpan di klaim JWT `role`)
const (
	RoleUser    = "user" // siswa / wali
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess = "❌ Hanya teacher, admin, atau owner yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess   = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyOwnersCanAccess   = "❌ Hanya owner yang boleh mengakses fitur %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleTeacher,
		RoleAdmin,
		RoleOwner,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RoleAdmin,
		RoleOwner,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}

	OwnerOnly = []string{
		RoleOwner,
	}
)
