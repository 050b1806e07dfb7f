package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Service
	RootHandler       Handler
	HealthHandler     Handler
	GetVersionHandler Handler

	// Flow API
	RawDataHandler       Handler
	RawDataFieldsHandler Handler
}
