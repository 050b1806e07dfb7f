package router

import (
	"errors"

	_ "github.com/flowops/flow-ops-backend/docs"
	handlers "github.com/flowops/flow-ops-backend/pkg/handlers/http"
	"github.com/flowops/flow-ops-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

var (
	ErrInvalidHandlerTransport = errors.New("invalid handler transport")
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	ht := r.handlerTransport
	if ht == nil ||
		ht.RootHandler == nil ||
		ht.HealthHandler == nil ||
		ht.GetVersionHandler == nil ||
		ht.RawDataHandler == nil ||
		ht.RawDataFieldsHandler == nil {
		return ErrInvalidHandlerTransport
	}

	if r.middlewareTransport != nil {
		for _, m := range r.middlewareTransport.GetMiddlewares() {
			router.Use(m.Middleware())
		}
	}

	router.Get("/", ht.RootHandler.Handle)
	router.Get("/health", ht.HealthHandler.Handle)
	router.Get("/version", ht.GetVersionHandler.Handle)
	router.Get("/docs/*", swagger.HandlerDefault)

	v1 := router.Group("/api/v1")
	{
		rawData := v1.Group("/raw-data")
		{
			rawData.Get("", ht.RawDataHandler.Handle)
			rawData.Get("/fields", ht.RawDataFieldsHandler.Handle)
		}
	}
	return nil
}
