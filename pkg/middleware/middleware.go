package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	PanicRecoverMiddleware Middleware
	TraceMiddleware        Middleware
	MetricsMiddleware      Middleware
}

// Handlers returns the middleware chain in the order it must run.
func (t Transport) Handlers() []interface{} {
	var handlers []interface{}
	for _, m := range []Middleware{t.PanicRecoverMiddleware, t.TraceMiddleware, t.MetricsMiddleware} {
		if m != nil {
			handlers = append(handlers, m.Middleware())
		}
	}
	return handlers
}
