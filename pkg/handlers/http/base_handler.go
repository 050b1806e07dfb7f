package http

import (
	"errors"
	"time"

	"github.com/flowops/flow-ops-backend/pkg/domain/rawdata"
	"github.com/flowops/flow-ops-backend/pkg/handlers/http/response"
	"github.com/flowops/flow-ops-backend/pkg/infra/flowapi"
	"github.com/flowops/flow-ops-backend/pkg/infra/httpx"
	"github.com/flowops/flow-ops-backend/pkg/infra/prometheus"
	"github.com/flowops/flow-ops-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const internalErrorDetail = "Internal server error"

// BaseHandler carries what the Flow API handlers share: the outbound client,
// error translation and upstream metrics.
type BaseHandler struct {
	logger     *logrus.Logger
	flowClient flowapi.Client
}

func NewBaseHandler(logger *logrus.Logger, flowClient flowapi.Client) *BaseHandler {
	return &BaseHandler{
		logger:     logger,
		flowClient: flowClient,
	}
}

func (h *BaseHandler) HandleErrorResponse(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(response.ErrorResponse{Detail: detail})
}

// HandleValidationError answers 400 for a query that never reached the Flow API.
func (h *BaseHandler) HandleValidationError(c *fiber.Ctx, err error) error {
	h.entry(c).WithError(err).Warn("Invalid raw data query")
	return h.HandleErrorResponse(c, fiber.StatusBadRequest, err.Error())
}

// FetchRawData calls the Flow API once and records the upstream outcome.
func (h *BaseHandler) FetchRawData(c *fiber.Ctx, query rawdata.Query) (*rawdata.Result, error) {
	start := time.Now()
	result, err := h.flowClient.FetchRawData(c.UserContext(), query)
	h.recordUpstreamMetrics(err, time.Since(start))
	return result, err
}

// HandleFlowAPIError translates a Flow API client error into the downstream
// response and logs it. Internal details never reach the caller.
func (h *BaseHandler) HandleFlowAPIError(c *fiber.Ctx, err error) error {
	var rdErr *rawdata.Error
	if !errors.As(err, &rdErr) {
		h.entry(c).WithError(err).Error("Unexpected error")
		return h.HandleErrorResponse(c, fiber.StatusInternalServerError, internalErrorDetail)
	}

	switch rdErr.Kind {
	case rawdata.KindConfiguration:
		h.entry(c).WithError(rdErr.Err).Error("Flow API is not configured")
		return h.HandleErrorResponse(c, fiber.StatusInternalServerError, causeOf(rdErr))
	case rawdata.KindUpstreamStatus:
		h.entry(c).WithFields(logrus.Fields{
			"status_code": rdErr.StatusCode,
			"body":        rdErr.Body,
		}).Error("Flow API error")
		return h.HandleErrorResponse(c, rdErr.StatusCode, "Flow API error: "+rdErr.Body)
	case rawdata.KindTimeout:
		h.entry(c).WithError(rdErr.Err).Error("Timeout connecting to Flow API")
		return h.HandleErrorResponse(c, fiber.StatusGatewayTimeout, "Timeout connecting to Flow API")
	case rawdata.KindNetwork:
		h.entry(c).WithError(rdErr.Err).
			WithField("breaker_open", httpx.IsBreakerOpen(rdErr.Err)).
			Error("Network error")
		return h.HandleErrorResponse(c, fiber.StatusServiceUnavailable, "Network error: "+causeOf(rdErr))
	default:
		h.entry(c).WithError(rdErr).Error("Unexpected error")
		return h.HandleErrorResponse(c, fiber.StatusInternalServerError, internalErrorDetail)
	}
}

func (h *BaseHandler) entry(c *fiber.Ctx) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"path":       c.Path(),
		"request_id": middleware.RequestID(c),
	})
}

func (h *BaseHandler) recordUpstreamMetrics(err error, elapsed time.Duration) {
	if !prometheus.Config.EnableUpstream {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = rawdata.KindOf(err).String()
	}
	prometheus.UpstreamRequests.WithLabelValues(outcome).Inc()
	prometheus.UpstreamLatency.WithLabelValues(outcome).Observe(float64(elapsed.Milliseconds()))
}

func causeOf(rdErr *rawdata.Error) string {
	if rdErr.Err == nil {
		return rdErr.Kind.String()
	}
	return rdErr.Err.Error()
}
