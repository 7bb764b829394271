package dependency_container

import (
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/GateFilters/pkg/app/identity"
	"github.com/NeuralTrust/GateFilters/pkg/app/routing"
	"github.com/NeuralTrust/GateFilters/pkg/config"
	"github.com/NeuralTrust/GateFilters/pkg/filters"
	"github.com/NeuralTrust/GateFilters/pkg/filters/rate_limiting"
	"github.com/NeuralTrust/GateFilters/pkg/filters/swagger_rewrite"
	handlers "github.com/NeuralTrust/GateFilters/pkg/handlers/http"
	"github.com/NeuralTrust/GateFilters/pkg/infra/cache"
	infraFilters "github.com/NeuralTrust/GateFilters/pkg/infra/filters"
	"github.com/NeuralTrust/GateFilters/pkg/infra/httpx"
	"github.com/NeuralTrust/GateFilters/pkg/infra/jwt"
	"github.com/NeuralTrust/GateFilters/pkg/infra/ratelimit"
	"github.com/NeuralTrust/GateFilters/pkg/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Redis               *redis.Client
	Routes              *routing.StaticRouteTable
	FilterManager       infraFilters.Manager
	HandlerTransport    handlers.HandlerTransport
	MiddlewareTransport middleware.Transport
}

// NewContainer wires the gateway from its configuration. Redis is only dialled
// when a filter is configured to use it.
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	routes, err := routing.NewRouteTable(cfg.Routes)
	if err != nil {
		return nil, err
	}

	deps := filters.Dependencies{
		Routes:  routes,
		Breaker: ratelimit.DefaultBreakerConfig(),
		Logger:  logger,
	}

	var redisClient *redis.Client
	if needsRedis(cfg) {
		redisClient, err = cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		if err != nil {
			return nil, err
		}
		deps.Redis = redisClient
	}

	jwtManager, err := jwt.NewJwtManager(jwt.Config{
		Secret: cfg.Identity.JWTSecret,
		Issuer: cfg.Identity.Issuer,
	})
	if err != nil {
		if !errors.Is(err, jwt.ErrNoSecret) {
			return nil, err
		}
		logger.Warn("no jwt secret configured, every caller is rate limited by remote address")
	}
	deps.Identity = identity.NewResolver(jwtManager, logger)

	filterManager := infraFilters.NewManager(logger, infraFilters.WithMetrics(cfg.Metrics.Enabled))
	if err := filters.InitializeFilters(filterManager, cfg.Filters, deps); err != nil {
		return nil, err
	}

	forwarder, err := newForwarder(cfg)
	if err != nil {
		return nil, err
	}

	return &Container{
		Redis:         redisClient,
		Routes:        routes,
		FilterManager: filterManager,
		HandlerTransport: handlers.HandlerTransport{
			ForwardedHandler: handlers.NewForwardedHandler(handlers.ForwardedHandlerDeps{
				Logger:    logger,
				Filters:   filterManager,
				Routes:    routes,
				Forwarder: forwarder,
			}),
			ListRoutesHandler:           handlers.NewListRoutesHandler(logger, routes),
			ListSwaggerResourcesHandler: handlers.NewListSwaggerResourcesHandler(routes, docsSuffix(cfg)),
		},
		MiddlewareTransport: middleware.Transport{
			PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
			TraceMiddleware:        middleware.NewTraceMiddleware(),
			MetricsMiddleware:      middleware.NewMetricsMiddleware(cfg.Metrics.Enabled),
		},
	}, nil
}

// Close releases the connections the container opened.
func (c *Container) Close() error {
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}

func needsRedis(cfg *config.Config) bool {
	if !cfg.FilterEnabled(rate_limiting.FilterName) {
		return false
	}
	rlConfig, err := rate_limiting.DecodeConfig(cfg.Filters[rate_limiting.FilterName].Settings)
	return err == nil && rlConfig.Store == ratelimit.StoreRedis
}

// docsSuffix is the documentation path the swagger rewrite filter targets, so
// published resources and rewritten documents agree.
func docsSuffix(cfg *config.Config) string {
	rwConfig, err := swagger_rewrite.DecodeConfig(cfg.Filters[swagger_rewrite.FilterName].Settings)
	if err != nil {
		return swagger_rewrite.DefaultDocsSuffix
	}
	return rwConfig.DocsSuffix
}

func newForwarder(cfg *config.Config) (httpx.Forwarder, error) {
	tlsConfig, err := config.BuildBackendTLSConfig(cfg.Backend.TLS)
	if err != nil {
		return nil, fmt.Errorf("backend tls: %w", err)
	}
	opts := []httpx.ForwarderOption{httpx.WithTLSConfig(tlsConfig)}
	if cfg.Backend.TimeoutSeconds > 0 {
		opts = append(opts, httpx.WithTimeout(time.Duration(cfg.Backend.TimeoutSeconds)*time.Second))
	}
	if cfg.Backend.MaxConnsPerHost > 0 {
		opts = append(opts, httpx.WithMaxConnsPerHost(cfg.Backend.MaxConnsPerHost))
	}
	return httpx.NewForwarder(opts...), nil
}
