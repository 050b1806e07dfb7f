package http

import (
	"github.com/flowops/flow-ops-backend/pkg/common"
	"github.com/flowops/flow-ops-backend/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
)

type healthHandler struct{}

func NewHealthHandler() Handler {
	return &healthHandler{}
}

// Handle @Summary Health check
// @Description Liveness probe. Does not contact the Flow API.
// @Tags Service
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.HealthResponse{
		Status:  "healthy",
		Service: common.ServiceName,
	})
}
