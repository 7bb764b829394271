package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var ErrMissingForwardedHandler = errors.New("proxy router needs a forwarded handler")

type ServerRouter interface {
	BuildRoutes(router *fiber.App) error
}
