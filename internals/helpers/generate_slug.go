package helper

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Batas default panjang slug, termasuk suffix -2, -3, dst.
const DefaultSlugMaxLen = 160

// SlugOptions menentukan tabel dan kolom yang dipakai untuk cek keunikan slug.
type SlugOptions struct {
	Table      string // contoh: "classes"
	SlugColumn string // contoh: "class_slug"

	// Kolom soft-delete (NULL berarti baris masih hidup).
	// Kosongkan jika tabel tidak pakai soft-delete.
	SoftDeleteColumn string

	// Filter tambahan agar slug unik per scope, misal map[string]any{"class_id": id}.
	Filters map[string]any

	// Jika 0, pakai DefaultSlugMaxLen.
	MaxLen int

	// Base fallback jika input kosong setelah dinormalisasi, misal "kelas".
	DefaultBase string
}

// GenerateSlug menormalkan teks jadi slug: lower-case, semua non-alnum
// jadi "-", run "-" dirapatkan, lalu trim "-" di kedua ujung.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func cutToLen(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return strings.Trim(s, "-")
	}
	return strings.Trim(s[:n], "-")
}

// isTaken: cek case-insensitive, hormati Filters dan SoftDeleteColumn.
func isTaken(db *gorm.DB, opts SlugOptions, candidate string) (bool, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return false, errors.New("slug options: table/slug column required")
	}

	q := db.Table(opts.Table).
		Where(fmt.Sprintf("lower(%s) = lower(?)", opts.SlugColumn), candidate)
	for k, v := range opts.Filters {
		q = q.Where(fmt.Sprintf("%s = ?", k), v)
	}
	if opts.SoftDeleteColumn != "" {
		q = q.Where(fmt.Sprintf("%s IS NULL", opts.SoftDeleteColumn))
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GenerateUniqueSlug membuat slug unik berbasis base (atau DefaultBase bila
// kosong): coba base dulu, kalau bentrok coba base-2, base-3, dst.
// Hanya baris yang belum soft-delete yang dihitung bentrok.
func GenerateUniqueSlug(db *gorm.DB, opts SlugOptions, base string) (string, error) {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	base = strings.TrimSpace(base)
	if base == "" {
		base = opts.DefaultBase
	}
	base = GenerateSlug(base)
	if base == "" {
		base = GenerateSlug(opts.DefaultBase)
	}
	if base == "" {
		base = "x"
	}
	if len(base) > maxLen {
		base = cutToLen(base, maxLen)
		if base == "" {
			base = "x"
		}
	}

	taken, err := isTaken(db, opts, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 2; i < 10000; i++ {
		suf := fmt.Sprintf("-%d", i)
		candidate := base
		if len(candidate)+len(suf) > maxLen {
			cut := maxLen - len(suf)
			if cut < 1 {
				cut = 1
			}
			candidate = cutToLen(candidate, cut)
			if candidate == "" {
				candidate = "x"
			}
		}
		candidate += suf

		taken, err = isTaken(db, opts, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("failed to generate unique slug after many attempts")
}
