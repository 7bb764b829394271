package access_control

import (
	"errors"
	"net/http"

	"github.com/NeuralTrust/GateFilters/pkg/app/routing"
	"github.com/NeuralTrust/GateFilters/pkg/common"
	"github.com/NeuralTrust/GateFilters/pkg/infra/filteriface"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

const (
	FilterName = "access_control"
	Order      = 0
)

var forbiddenBody = []byte(`{"error":"forbidden"}`)

type Config struct {
	AuthorizedMicroservicesEndpoints map[string][]string `mapstructure:"authorized_microservices_endpoints"`
}

func DecodeConfig(settings map[string]interface{}) (*Policy, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, err
	}
	return NewPolicy(cfg.AuthorizedMicroservicesEndpoints)
}

// AccessControlFilter denies requests that match no route, and requests to a
// restricted service outside its allowed endpoints. Lookup failures deny too.
type AccessControlFilter struct {
	routes routing.RouteTable
	policy *Policy
	logger *logrus.Logger
}

func NewAccessControlFilter(routes routing.RouteTable, policy *Policy, logger *logrus.Logger) filteriface.Filter {
	return &AccessControlFilter{
		routes: routes,
		policy: policy,
		logger: logger,
	}
}

func (f *AccessControlFilter) Name() string {
	return FilterName
}

func (f *AccessControlFilter) Phase() filterTypes.Phase {
	return filterTypes.Pre
}

func (f *AccessControlFilter) Order() int {
	return Order
}

func (f *AccessControlFilter) ShouldFilter(_ *types.RequestContext) bool {
	return true
}

func (f *AccessControlFilter) Run(req *types.RequestContext) error {
	path := routing.NormalizePath(req.Path)
	// later filters and the forwarder must see the path that was authorized
	req.Path = path
	r, err := f.routes.Lookup(req.Context, path)
	if err != nil {
		entry := f.logger.WithFields(logrus.Fields{
			"path":       req.Path,
			"request_id": req.ID,
		})
		if errors.Is(err, routing.ErrRouteNotFound) {
			entry.Debug("access denied: no route")
		} else {
			entry.WithError(err).Warn("access denied: route lookup failed")
		}
		deny(req)
		return nil
	}

	req.Route = r
	if !f.policy.Allows(r, path) {
		f.logger.WithFields(logrus.Fields{
			"path":       req.Path,
			"route":      r.ID,
			"request_id": req.ID,
		}).Debug("access denied: endpoint not allowed")
		deny(req)
	}
	return nil
}

func deny(req *types.RequestContext) {
	req.Block(http.StatusForbidden)
	if !req.Response.HasBody() {
		req.Response.WriteBody(forbiddenBody)
		req.Response.SetHeader("Content-Type", common.JSONContentType)
	}
}
