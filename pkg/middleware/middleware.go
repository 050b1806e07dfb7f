package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	PanicRecoverMiddleware Middleware
	RequestIDMiddleware    Middleware
	CORSMiddleware         Middleware
	AccessLogMiddleware    Middleware
	MetricsMiddleware      Middleware
}

// GetMiddlewares returns the configured middlewares in the order they must be
// mounted. Nil entries are skipped.
func (t *Transport) GetMiddlewares() []Middleware {
	ordered := []Middleware{
		t.PanicRecoverMiddleware,
		t.RequestIDMiddleware,
		t.CORSMiddleware,
		t.AccessLogMiddleware,
		t.MetricsMiddleware,
	}
	result := make([]Middleware, 0, len(ordered))
	for _, m := range ordered {
		if m != nil {
			result = append(result, m)
		}
	}
	return result
}
