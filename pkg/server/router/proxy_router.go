package router

import (
	"net/http"
	"time"

	handlers "github.com/NeuralTrust/GateFilters/pkg/handlers/http"
	"github.com/NeuralTrust/GateFilters/pkg/middleware"
	"github.com/NeuralTrust/GateFilters/pkg/version"
	"github.com/gofiber/fiber/v2"
)

const (
	HealthPath           = "/health"
	PingPath             = "/__/ping"
	RoutesPath           = "/api/gateway/routes"
	SwaggerResourcesPath = "/swagger-resources"
)

type proxyRouter struct {
	middlewareTransport middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewProxyRouter(
	middlewareTransport middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &proxyRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *proxyRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport.ForwardedHandler == nil {
		return ErrMissingForwardedHandler
	}

	router.Get(HealthPath, func(ctx *fiber.Ctx) error {
		return ctx.Status(http.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"version": version.Version,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	router.Get(PingPath, func(ctx *fiber.Ctx) error {
		return ctx.Status(http.StatusOK).JSON(fiber.Map{
			"message": "pong",
		})
	})

	if h := r.handlerTransport.ListRoutesHandler; h != nil {
		router.Get(RoutesPath, h.Handle)
	}
	if h := r.handlerTransport.ListSwaggerResourcesHandler; h != nil {
		router.Get(SwaggerResourcesPath, h.Handle)
	}

	// every other path goes through the filter pipeline
	chain := append(r.middlewareTransport.Handlers(), r.handlerTransport.ForwardedHandler.Handle)
	router.Use(chain...)
	return nil
}
