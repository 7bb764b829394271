package http

import (
	"github.com/NeuralTrust/GateFilters/pkg/app/routing"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RouteView is the public description of an active route.
type RouteView struct {
	Path      string `json:"path"`
	ServiceID string `json:"service_id"`
	Location  string `json:"location"`
}

type listRoutesHandler struct {
	logger *logrus.Logger
	routes routing.RouteTable
}

func NewListRoutesHandler(logger *logrus.Logger, routes routing.RouteTable) Handler {
	return &listRoutesHandler{
		logger: logger,
		routes: routes,
	}
}

// Handle lists the active routes in lookup order.
func (h *listRoutesHandler) Handle(c *fiber.Ctx) error {
	routes := h.routes.Routes()
	views := make([]RouteView, 0, len(routes))
	for _, r := range routes {
		views = append(views, RouteView{
			Path:      r.Path,
			ServiceID: r.ID,
			Location:  r.Location,
		})
	}
	h.logger.WithField("count", len(views)).Debug("listing active routes")
	return c.Status(fiber.StatusOK).JSON(views)
}
