package http

import (
	"github.com/flowops/flow-ops-backend/pkg/handlers/http/request"
	"github.com/flowops/flow-ops-backend/pkg/infra/flowapi"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type rawDataHandler struct {
	*BaseHandler
}

func NewRawDataHandler(logger *logrus.Logger, flowClient flowapi.Client) Handler {
	return &rawDataHandler{
		BaseHandler: NewBaseHandler(logger, flowClient),
	}
}

// Handle @Summary Get raw productivity data
// @Description Relays a paginated, date-ranged query to the Flow API burn raw-data endpoint and returns its JSON unchanged
// @Tags Flow API
// @Produce json
// @Param start_date query string true "Start date"
// @Param end_date query string true "End date"
// @Param page query int false "Page number" default(1) minimum(1)
// @Param items_per_page query int false "Items per page" default(10) minimum(1) maximum(100)
// @Success 200 {object} map[string]interface{} "Flow API payload"
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Failure 504 {object} response.ErrorResponse
// @Router /api/v1/raw-data [get]
func (h *rawDataHandler) Handle(c *fiber.Ctx) error {
	req := request.NewRawDataRequest(c.Context().QueryArgs())
	query, err := req.ToQuery()
	if err != nil {
		return h.HandleValidationError(c, err)
	}

	result, err := h.FetchRawData(c, query)
	if err != nil {
		return h.HandleFlowAPIError(c, err)
	}

	entry := h.entry(c).WithFields(logrus.Fields{
		"page":           query.Page,
		"items_per_page": query.ItemsPerPage,
	})
	if result.HasItems {
		entry.Infof("Successfully retrieved %d items from Flow API", result.ItemCount)
	} else {
		entry.Info("Successfully retrieved data from Flow API")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(result.Body)
}
