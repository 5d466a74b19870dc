package middleware

import (
	"net/http/httptest"
	"testing"

	"gamedex/config"
	"gamedex/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTraceApp(t *testing.T) (*fiber.App, *string) {
	t.Helper()

	mw := New(database.DB{}, config.Config{})
	app := fiber.New()
	app.Use(mw.TraceID())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen = GetTraceID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	return app, &seen
}

func TestTraceID_GeneratesWhenMissing(t *testing.T) {
	app, seen := setupTraceApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	header := resp.Header.Get(TraceIDHeader)
	require.NotEmpty(t, header)

	// Generated IDs are UUIDs and the handler sees the same value
	_, err = uuid.Parse(header)
	assert.NoError(t, err)
	assert.Equal(t, header, *seen)
}

func TestTraceID_ReusesIncomingHeader(t *testing.T) {
	app, seen := setupTraceApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "client-supplied-id")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "client-supplied-id", resp.Header.Get(TraceIDHeader))
	assert.Equal(t, "client-supplied-id", *seen)
}
