package http

import (
	"github.com/flowops/flow-ops-backend/pkg/domain/rawdata"
	"github.com/flowops/flow-ops-backend/pkg/handlers/http/request"
	"github.com/flowops/flow-ops-backend/pkg/handlers/http/response"
	"github.com/flowops/flow-ops-backend/pkg/infra/flowapi"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type rawDataFieldsHandler struct {
	*BaseHandler
}

func NewRawDataFieldsHandler(logger *logrus.Logger, flowClient flowapi.Client) Handler {
	return &rawDataFieldsHandler{
		BaseHandler: NewBaseHandler(logger, flowClient),
	}
}

// Handle @Summary List raw data fields
// @Description Fetches the first page of raw data for the range and returns the keys found in its items
// @Tags Flow API
// @Produce json
// @Param start_date query string true "Start date"
// @Param end_date query string true "End date"
// @Success 200 {object} response.FieldsResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Failure 504 {object} response.ErrorResponse
// @Router /api/v1/raw-data/fields [get]
func (h *rawDataFieldsHandler) Handle(c *fiber.Ctx) error {
	req := request.NewRawDataFieldsRequest(c.Context().QueryArgs())
	query, err := req.ToQuery()
	if err != nil {
		return h.HandleValidationError(c, err)
	}

	result, err := h.FetchRawData(c, query)
	if err != nil {
		return h.HandleFlowAPIError(c, err)
	}

	fields, err := result.Fields()
	if err != nil {
		return h.HandleFlowAPIError(c, rawdata.NewInternalError(err))
	}

	h.entry(c).Infof("Successfully retrieved %d fields from Flow API", len(fields))
	return c.Status(fiber.StatusOK).JSON(response.FieldsResponse{Fields: fields})
}
