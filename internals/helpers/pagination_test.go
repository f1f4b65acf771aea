package helper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, target string) Params {
	t.Helper()

	app := fiber.New()
	var got Params
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "created_at", "desc", DefaultOpts)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestParseFiberDefaults(t *testing.T) {
	p := parseQuery(t, "/items")

	require.Equal(t, DefaultPage, p.Page)
	require.Equal(t, DefaultOpts.DefaultPerPage, p.PerPage)
	require.Equal(t, "created_at", p.SortBy)
	require.Equal(t, "desc", p.SortOrder)
	require.Equal(t, 0, p.Offset())
}

func TestParseFiberClampsAndAliases(t *testing.T) {
	// per_page di atas MaxPerPage dipagari
	p := parseQuery(t, "/items?page=3&per_page=9999")
	require.Equal(t, 3, p.Page)
	require.Equal(t, DefaultOpts.MaxPerPage, p.PerPage)
	require.Equal(t, 2*DefaultOpts.MaxPerPage, p.Offset())

	// limit adalah alias per_page, sort alias order
	p = parseQuery(t, "/items?limit=10&sort_by=class_name&sort=asc")
	require.Equal(t, 10, p.PerPage)
	require.Equal(t, "class_name", p.SortBy)
	require.Equal(t, "asc", p.SortOrder)

	// nilai rusak jatuh ke default
	p = parseQuery(t, "/items?page=-2&per_page=abc&order=sideways")
	require.Equal(t, DefaultPage, p.Page)
	require.Equal(t, DefaultOpts.DefaultPerPage, p.PerPage)
	require.Equal(t, "desc", p.SortOrder)
}

func TestBuildMeta(t *testing.T) {
	p := Params{Page: 2, PerPage: 10}
	meta := BuildMeta(25, p)

	require.Equal(t, int64(25), meta.Total)
	require.Equal(t, 3, meta.TotalPages)
	require.True(t, meta.HasPrev)
	require.True(t, meta.HasNext)
	require.NotNil(t, meta.PrevPage)
	require.Equal(t, 1, *meta.PrevPage)
	require.NotNil(t, meta.NextPage)
	require.Equal(t, 3, *meta.NextPage)

	empty := BuildMeta(0, Params{Page: 1, PerPage: 10})
	require.Equal(t, 0, empty.TotalPages)
	require.False(t, empty.HasNext)
	require.False(t, empty.HasPrev)
	require.Nil(t, empty.NextPage)
	require.Nil(t, empty.PrevPage)
}
