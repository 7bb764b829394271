package http

import (
	"strings"

	"github.com/NeuralTrust/GateFilters/pkg/app/routing"
	"github.com/NeuralTrust/GateFilters/pkg/domain/route"
	"github.com/gofiber/fiber/v2"
)

const SwaggerVersion = "2.0"

// SwaggerResource is one entry of the list Swagger UI loads to offer the
// documentation of every routed service. Field names follow Swagger UI.
type SwaggerResource struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	SwaggerVersion string `json:"swaggerVersion"`
}

type listSwaggerResourcesHandler struct {
	routes     routing.RouteTable
	docsSuffix string
}

// NewListSwaggerResourcesHandler publishes one resource per route, located at
// the route prefix followed by docsSuffix.
func NewListSwaggerResourcesHandler(routes routing.RouteTable, docsSuffix string) Handler {
	return &listSwaggerResourcesHandler{
		routes:     routes,
		docsSuffix: "/" + strings.TrimPrefix(docsSuffix, "/"),
	}
}

func (h *listSwaggerResourcesHandler) Handle(c *fiber.Ctx) error {
	routes := h.routes.Routes()
	resources := make([]SwaggerResource, 0, len(routes))
	for _, r := range routes {
		resources = append(resources, SwaggerResource{
			Name:           r.ID,
			Location:       DocsLocation(r, h.docsSuffix),
			SwaggerVersion: SwaggerVersion,
		})
	}
	return c.Status(fiber.StatusOK).JSON(resources)
}

// DocsLocation is the gateway-side path of the documentation of r.
func DocsLocation(r route.Route, docsSuffix string) string {
	return strings.TrimSuffix(r.Prefix(), "/") + docsSuffix
}
