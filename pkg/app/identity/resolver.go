package identity

import (
	"net"
	"strings"
	"time"

	"github.com/NeuralTrust/GateFilters/pkg/infra/cache"
	"github.com/NeuralTrust/GateFilters/pkg/infra/jwt"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/sirupsen/logrus"
)

const (
	bearerPrefix = "bearer "

	principalCacheTTL  = 30 * time.Second
	principalCacheSize = 10_000
)

type Resolver interface {
	// CurrentPrincipal returns the login of the caller. A missing or invalid
	// token means an anonymous caller, never an error.
	CurrentPrincipal(req *types.RequestContext) (string, bool)
}

type jwtResolver struct {
	manager jwt.Manager
	logger  *logrus.Logger
	logins  *cache.TTLMap[string]
}

// NewResolver reads the principal from the bearer token. With a nil manager
// every caller is anonymous.
func NewResolver(manager jwt.Manager, logger *logrus.Logger) Resolver {
	return &jwtResolver{
		manager: manager,
		logger:  logger,
		logins:  cache.NewTTLMap[string](principalCacheTTL, principalCacheSize),
	}
}

func (r *jwtResolver) CurrentPrincipal(req *types.RequestContext) (string, bool) {
	if r.manager == nil {
		return "", false
	}
	token := BearerToken(req.Header("Authorization"))
	if token == "" {
		return "", false
	}
	if login, ok := r.logins.Get(token); ok {
		return login, true
	}

	claims, err := r.manager.DecodeToken(token)
	if err != nil {
		r.logger.WithError(err).WithField("request_id", req.ID).Debug("ignoring bearer token")
		return "", false
	}
	login := claims.Login()
	if login == "" {
		return "", false
	}
	r.logins.Set(token, login)
	return login, true
}

// BearerToken extracts the token of an Authorization header value.
func BearerToken(header string) string {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// RemoteHost strips the port from a remote address.
func RemoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}
