package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/flowops/flow-ops-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCORSApp(allowCredentials bool) *fiber.App {
	app := fiber.New()
	m := middleware.NewCORSGlobalMiddleware(
		[]string{"*"},
		[]string{"GET", "OPTIONS"},
		[]string{"*"},
		allowCredentials,
		[]string{"X-Request-ID"},
		"600",
	)
	app.Use(m.Middleware())
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestCORS_SimpleRequestAllowsAnyOrigin(t *testing.T) {
	app := newCORSApp(false)

	req := httptest.NewRequest(fiber.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Request-ID", resp.Header.Get("Access-Control-Expose-Headers"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_CredentialsEchoOrigin(t *testing.T) {
	app := newCORSApp(true)

	req := httptest.NewRequest(fiber.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "https://dashboard.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Preflight(t *testing.T) {
	app := newCORSApp(false)

	req := httptest.NewRequest(fiber.MethodOptions, "/api/v1/raw-data", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "Authorization, X-Custom")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Authorization, X-Custom", resp.Header.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "600", resp.Header.Get("Access-Control-Max-Age"))
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	app := newCORSApp(false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
