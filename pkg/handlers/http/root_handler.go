package http

import (
	"github.com/flowops/flow-ops-backend/pkg/common"
	"github.com/flowops/flow-ops-backend/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
)

type rootHandler struct{}

func NewRootHandler() Handler {
	return &rootHandler{}
}

// Handle @Summary Service banner
// @Description Confirms the API is running
// @Tags Service
// @Produce json
// @Success 200 {object} response.RootResponse
// @Router / [get]
func (h *rootHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.RootResponse{
		Message: common.ServiceTitle,
		Status:  "running",
	})
}
