package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/NeuralTrust/GateFilters/pkg/app/routing"
	"github.com/NeuralTrust/GateFilters/pkg/common"
	infraFilters "github.com/NeuralTrust/GateFilters/pkg/infra/filters"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/infra/httpx"
	"github.com/NeuralTrust/GateFilters/pkg/infra/prometheus"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type forwardedHandler struct {
	logger    *logrus.Logger
	filters   infraFilters.Manager
	routes    routing.RouteTable
	forwarder httpx.Forwarder
}

// ForwardedHandlerDeps contains all dependencies for ForwardedHandler.
type ForwardedHandlerDeps struct {
	Logger    *logrus.Logger
	Filters   infraFilters.Manager
	Routes    routing.RouteTable
	Forwarder httpx.Forwarder
}

func NewForwardedHandler(deps ForwardedHandlerDeps) Handler {
	return &forwardedHandler{
		logger:    deps.Logger,
		filters:   deps.Filters,
		routes:    deps.Routes,
		forwarder: deps.Forwarder,
	}
}

// Handle runs the request through the PRE filters, the backend call and the
// POST filters. A failure in any step runs the ERROR filters before answering.
func (h *forwardedHandler) Handle(c *fiber.Ctx) error {
	req := h.transformToRequestContext(c)
	ctx := req.Context

	if err := h.filters.ExecutePhase(ctx, filterTypes.Pre, req); err != nil {
		return h.handleError(c, req, http.StatusInternalServerError, err)
	}

	if req.SendToBackend {
		if req.Route == nil {
			r, err := h.routes.Lookup(ctx, req.Path)
			if err != nil {
				if errors.Is(err, routing.ErrRouteNotFound) {
					return h.writeError(c, req, http.StatusNotFound, "no route")
				}
				return h.handleError(c, req, http.StatusInternalServerError, err)
			}
			req.Route = r
		}
		c.Locals(common.RouteIDKey, req.Route.ID)

		if err := h.filters.ExecutePhase(ctx, filterTypes.Route, req); err != nil {
			return h.handleError(c, req, http.StatusInternalServerError, err)
		}
		if req.SendToBackend {
			upstreamStart := time.Now()
			err := h.forwarder.Forward(req)
			if prometheus.Config.EnableUpstreamLatency {
				prometheus.GatewayRequestLatency.WithLabelValues(req.Route.ID, "upstream").
					Observe(float64(time.Since(upstreamStart).Microseconds()) / 1000)
			}
			if err != nil {
				return h.handleError(c, req, backendErrorStatus(err), err)
			}
		}
	} else if req.Route != nil {
		c.Locals(common.RouteIDKey, req.Route.ID)
	}

	if err := h.filters.ExecutePhase(ctx, filterTypes.Post, req); err != nil {
		return h.handleError(c, req, http.StatusInternalServerError, err)
	}

	return h.writeResponse(c, req.Response)
}

func (h *forwardedHandler) transformToRequestContext(c *fiber.Ctx) *types.RequestContext {
	// fasthttp decodes the path; filters and the forwarder share its canonical form.
	path := routing.NormalizePath(string(c.Request().URI().Path()))
	req := types.NewRequestContext(c.UserContext(), c.Method(), path)
	if traceID, ok := c.Locals(common.TraceIdKey).(string); ok && traceID != "" {
		req.ID = traceID
	}
	req.Query = getQueryParams(c)
	req.RemoteAddr = c.Context().RemoteAddr().String()
	req.Body = append([]byte(nil), c.Body()...)
	for key, values := range c.GetReqHeaders() {
		req.Headers[key] = values
	}
	return req
}

func (h *forwardedHandler) handleError(c *fiber.Ctx, req *types.RequestContext, status int, cause error) error {
	h.logger.WithError(cause).WithFields(logrus.Fields{
		"path":       req.Path,
		"request_id": req.ID,
		"status":     status,
	}).Error("request failed")

	req.Response.StatusCode = status
	req.Attributes[common.ErrorAttribute] = cause
	if err := h.filters.ExecutePhase(req.Context, filterTypes.Error, req); err != nil {
		h.logger.WithError(err).WithField("request_id", req.ID).Error("error filters failed")
	}
	if req.Response.Final {
		return h.writeResponse(c, req.Response)
	}
	return h.writeError(c, req, status, http.StatusText(status))
}

func (h *forwardedHandler) writeError(c *fiber.Ctx, req *types.RequestContext, status int, message string) error {
	if req.Route == nil {
		c.Locals(common.RouteIDKey, common.UnmatchedRoute)
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (h *forwardedHandler) writeResponse(c *fiber.Ctx, resp *types.ResponseContext) error {
	for k, values := range resp.Headers {
		if http.CanonicalHeaderKey(k) == "Content-Length" {
			continue
		}
		for i, v := range values {
			if i == 0 {
				c.Set(k, v)
			} else {
				c.Response().Header.Add(k, v)
			}
		}
	}
	return c.Status(resp.StatusCode).Send(resp.Body)
}

func backendErrorStatus(err error) int {
	switch {
	case errors.Is(err, httpx.ErrBackendTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, httpx.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func getQueryParams(c *fiber.Ctx) url.Values {
	queryParams := make(url.Values)
	c.Request().URI().QueryArgs().VisitAll(func(k, v []byte) {
		queryParams.Add(string(k), string(v))
	})
	return queryParams
}
