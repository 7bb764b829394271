package route

import (
	"strings"

	domain "github.com/NeuralTrust/GateFilters/pkg/domain/errors"
)

// Wildcard is the marker every gateway-side route pattern must end with.
const Wildcard = "/**"

// Route maps a gateway-side path prefix to a backend service.
type Route struct {
	ID       string `mapstructure:"id" json:"id"`
	Path     string `mapstructure:"path" json:"path"`
	Location string `mapstructure:"url" json:"url"`
}

func New(id, path, location string) (*Route, error) {
	r := &Route{ID: id, Path: path, Location: location}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Route) Validate() error {
	if r.ID == "" {
		return domain.NewConfigurationError("route", "route id is required")
	}
	if !strings.HasPrefix(r.Path, "/") {
		return domain.NewConfigurationError("route", "pattern %q of route %s must start with '/'", r.Path, r.ID)
	}
	if !strings.HasSuffix(r.Path, Wildcard) {
		return domain.NewConfigurationError("route", "pattern %q of route %s must end with %q", r.Path, r.ID, Wildcard)
	}
	if strings.Contains(strings.TrimSuffix(r.Path, Wildcard), "*") {
		return domain.NewConfigurationError("route", "pattern %q of route %s has a wildcard before its last segment", r.Path, r.ID)
	}
	return nil
}

// Prefix is the gateway-side prefix: the pattern without its trailing wildcard segment.
// The catch-all pattern "/**" has an empty prefix.
func (r *Route) Prefix() string {
	return strings.TrimSuffix(r.Path, Wildcard)
}

// Matches reports whether path falls under the route prefix on a segment boundary.
func (r *Route) Matches(path string) bool {
	return HasSegmentPrefix(path, r.Prefix())
}

// StripPrefix returns the backend-side path for a gateway path handled by this route.
func (r *Route) StripPrefix(path string) string {
	if !r.Matches(path) {
		return path
	}
	rest := path[len(r.Prefix()):]
	if rest == "" {
		return "/"
	}
	return rest
}

// HasSegmentPrefix is strings.HasPrefix restricted to whole path segments:
// "/svc" is a segment prefix of "/svc" and "/svc/x" but not of "/svc2".
func HasSegmentPrefix(path, prefix string) bool {
	if prefix == "" || prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if len(path) == len(prefix) || strings.HasSuffix(prefix, "/") {
		return true
	}
	return path[len(prefix)] == '/'
}
