// file: internals/helpers/pagination.go
package helper

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const DefaultPage = 1

// Options membatasi per_page per jenis listing.
type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

var DefaultOpts = Options{DefaultPerPage: 25, MaxPerPage: 200}

type Params struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // asc|desc
}

func (p Params) Limit() int  { return p.PerPage }
func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// ParseFiber membaca page, per_page (alias: limit), sort_by, dan order
// (alias: sort) dari query string. Nilai aneh jatuh ke default,
// per_page dipagari opt.MaxPerPage.
func ParseFiber(c *fiber.Ctx, defaultSortBy, defaultSortOrder string, opt Options) Params {
	q := c.Queries()

	page := atoiDefault(q["page"], DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	per := opt.DefaultPerPage
	if n, err := strconv.Atoi(strings.TrimSpace(firstNonEmpty(q["per_page"], q["limit"]))); err == nil && n > 0 {
		per = n
	}
	if per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}
	if per < 1 {
		per = opt.DefaultPerPage
	}

	sortBy := strings.TrimSpace(q["sort_by"])
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	order := strings.ToLower(strings.TrimSpace(firstNonEmpty(q["order"], q["sort"])))
	if order != "asc" && order != "desc" {
		order = strings.ToLower(defaultSortOrder)
		if order != "asc" && order != "desc" {
			order = "desc"
		}
	}

	return Params{
		Page:      page,
		PerPage:   per,
		SortBy:    sortBy,
		SortOrder: order,
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

/* ===============================
   Meta untuk amplop JsonList
=================================*/

type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	NextPage   *int  `json:"next_page,omitempty"`
	PrevPage   *int  `json:"prev_page,omitempty"`
}

func BuildMeta(total int64, p Params) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.PerPage)))
	}
	meta := Meta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    p.Page > 1,
		HasNext:    totalPages > 0 && p.Page < totalPages,
	}
	if meta.HasPrev {
		prev := p.Page - 1
		meta.PrevPage = &prev
	}
	if meta.HasNext {
		next := p.Page + 1
		meta.NextPage = &next
	}
	return meta
}
