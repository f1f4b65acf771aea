package helper

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func ctxWithUserID(t *testing.T, app *fiber.App, v any) *fiber.Ctx {
	t.Helper()

	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	t.Cleanup(func() { app.ReleaseCtx(c) })
	if v != nil {
		c.Locals("user_id", v)
	}
	return c
}

func TestGetUserIDFromToken(t *testing.T) {
	app := fiber.New()
	id := uuid.New()

	t.Run("uuid langsung", func(t *testing.T) {
		got, err := GetUserIDFromToken(ctxWithUserID(t, app, id))
		require.NoError(t, err)
		require.Equal(t, id, got)
	})

	t.Run("string dan []byte diparse", func(t *testing.T) {
		got, err := GetUserIDFromToken(ctxWithUserID(t, app, "  "+id.String()+"  "))
		require.NoError(t, err)
		require.Equal(t, id, got)

		got, err = GetUserIDFromToken(ctxWithUserID(t, app, []byte(id.String())))
		require.NoError(t, err)
		require.Equal(t, id, got)
	})

	t.Run("belum login", func(t *testing.T) {
		for _, v := range []any{nil, uuid.Nil, "", "   "} {
			_, err := GetUserIDFromToken(ctxWithUserID(t, app, v))
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			require.Equal(t, fiber.StatusUnauthorized, fe.Code)
		}
	})

	t.Run("isi tidak valid", func(t *testing.T) {
		for _, v := range []any{"bukan-uuid", 42} {
			_, err := GetUserIDFromToken(ctxWithUserID(t, app, v))
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			require.Equal(t, fiber.StatusBadRequest, fe.Code)
		}
	})
}
