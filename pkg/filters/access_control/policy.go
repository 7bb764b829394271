package access_control

import (
	"strings"

	domain "github.com/NeuralTrust/GateFilters/pkg/domain/errors"
	"github.com/NeuralTrust/GateFilters/pkg/domain/route"
)

type endpoint struct {
	prefix   string
	wildcard bool
}

// Policy maps a service id to the endpoint suffixes callers may reach through
// the gateway. A service without entries is unrestricted.
type Policy struct {
	endpoints map[string][]endpoint
}

// NewPolicy validates the configured allow-lists. Service ids are matched
// case-insensitively since configuration keys are lower-cased on load.
func NewPolicy(raw map[string][]string) (*Policy, error) {
	p := &Policy{endpoints: make(map[string][]endpoint, len(raw))}
	for service, suffixes := range raw {
		if service == "" {
			return nil, domain.NewConfigurationError("access control", "empty service id in allow-list")
		}
		parsed := make([]endpoint, 0, len(suffixes))
		for _, suffix := range suffixes {
			if !strings.HasPrefix(suffix, "/") {
				return nil, domain.NewConfigurationError("access control",
					"endpoint %q of service %s must start with '/'", suffix, service)
			}
			ep := endpoint{prefix: strings.TrimSuffix(suffix, route.Wildcard)}
			ep.wildcard = ep.prefix != suffix
			if strings.Contains(ep.prefix, "*") {
				return nil, domain.NewConfigurationError("access control",
					"endpoint %q of service %s may only end with %q", suffix, service, route.Wildcard)
			}
			parsed = append(parsed, ep)
		}
		key := strings.ToLower(service)
		p.endpoints[key] = append(p.endpoints[key], parsed...)
	}
	return p, nil
}

// Restricted reports whether the service has an allow-list.
func (p *Policy) Restricted(serviceID string) bool {
	return len(p.endpoints[strings.ToLower(serviceID)]) > 0
}

// Allows checks path against the allow-list of the route's service. The gateway
// prefix of the route is prepended to every allowed suffix.
func (p *Policy) Allows(r *route.Route, path string) bool {
	endpoints := p.endpoints[strings.ToLower(r.ID)]
	if len(endpoints) == 0 {
		return true
	}
	for _, ep := range endpoints {
		allowed := r.Prefix() + ep.prefix
		if ep.wildcard {
			if route.HasSegmentPrefix(path, allowed) {
				return true
			}
			continue
		}
		if strings.HasPrefix(path, allowed) {
			return true
		}
	}
	return false
}
