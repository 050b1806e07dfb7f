package http

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceHandlers(t *testing.T) {
	app := fiber.New()
	app.Get("/", NewRootHandler().Handle)
	app.Get("/health", NewHealthHandler().Handle)
	app.Get("/version", NewGetVersionHandler().Handle)

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: `{"message":"Flow Ops Backend API","status":"running"}`},
		{path: "/health", want: `{"status":"healthy","service":"flow-ops-backend"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))
		})
	}

	t.Run("/version", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/version", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"app_name":"flow-ops-backend"`)
	})
}
