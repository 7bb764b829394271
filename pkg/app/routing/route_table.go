package routing

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"
	"sync"

	domain "github.com/NeuralTrust/GateFilters/pkg/domain/errors"
	"github.com/NeuralTrust/GateFilters/pkg/domain/route"
)

var ErrRouteNotFound = errors.New("no route matches path")

//go:generate mockery --name=RouteTable --dir=. --output=./mocks --filename=route_table_mock.go --case=underscore --with-expecter
type RouteTable interface {
	// Lookup returns the route with the longest prefix matching path on a
	// segment boundary. Routes with the same prefix resolve to the first registered.
	Lookup(ctx context.Context, path string) (*route.Route, error)
	Routes() []route.Route
}

// StaticRouteTable serves a snapshot built from configuration. Replace swaps
// the snapshot as a whole so a lookup never sees a partial update.
type StaticRouteTable struct {
	mu     sync.RWMutex
	routes []route.Route
}

func NewRouteTable(routes []route.Route) (*StaticRouteTable, error) {
	t := &StaticRouteTable{}
	if err := t.Replace(routes); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *StaticRouteTable) Replace(routes []route.Route) error {
	snapshot, err := buildSnapshot(routes)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.routes = snapshot
	t.mu.Unlock()
	return nil
}

func (t *StaticRouteTable) Lookup(ctx context.Context, path string) (*route.Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	routes := t.routes
	t.mu.RUnlock()

	path = NormalizePath(path)
	for i := range routes {
		if routes[i].Matches(path) {
			found := routes[i]
			return &found, nil
		}
	}
	return nil, ErrRouteNotFound
}

// Routes returns the snapshot in lookup order.
func (t *StaticRouteTable) Routes() []route.Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]route.Route, len(t.routes))
	copy(out, t.routes)
	return out
}

func buildSnapshot(routes []route.Route) ([]route.Route, error) {
	seen := make(map[string]struct{}, len(routes))
	snapshot := make([]route.Route, 0, len(routes))
	for _, r := range routes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.ID]; dup {
			return nil, domain.NewConfigurationError("route", "duplicate route id %s", r.ID)
		}
		seen[r.ID] = struct{}{}
		snapshot = append(snapshot, r)
	}
	sort.SliceStable(snapshot, func(i, j int) bool {
		return len(snapshot[i].Prefix()) > len(snapshot[j].Prefix())
	})
	return snapshot, nil
}

// NormalizePath returns the canonical form of a decoded request path: repeated
// slashes collapsed, "." and ".." segments resolved and percent-encoded dots
// treated as dots. A trailing slash is kept. Access decisions and forwarding
// must both use this form.
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if strings.Contains(p, "%") {
		p = encodedDot.Replace(p)
	}
	trailing := strings.HasSuffix(p, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = path.Clean(p)
	if trailing && p != "/" {
		p += "/"
	}
	return p
}

var encodedDot = strings.NewReplacer("%2e", ".", "%2E", ".")
