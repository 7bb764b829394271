package filters

import (
	"fmt"
	"sort"

	"github.com/NeuralTrust/GateFilters/pkg/app/identity"
	"github.com/NeuralTrust/GateFilters/pkg/app/routing"
	domain "github.com/NeuralTrust/GateFilters/pkg/domain/errors"
	"github.com/NeuralTrust/GateFilters/pkg/filters/access_control"
	"github.com/NeuralTrust/GateFilters/pkg/filters/rate_limiting"
	"github.com/NeuralTrust/GateFilters/pkg/filters/swagger_rewrite"
	"github.com/NeuralTrust/GateFilters/pkg/filters/token_relay"
	"github.com/NeuralTrust/GateFilters/pkg/infra/filteriface"
	infraFilters "github.com/NeuralTrust/GateFilters/pkg/infra/filters"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/infra/ratelimit"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Dependencies are the collaborators filters are built with.
type Dependencies struct {
	Routes   routing.RouteTable
	Identity identity.Resolver
	// Redis backs the shared bucket store. It may be nil when no filter uses it.
	Redis   redis.UniversalClient
	Breaker ratelimit.BreakerConfig
	Logger  *logrus.Logger
}

type builder func(cfg filterTypes.FilterConfig, deps Dependencies) (filteriface.Filter, error)

var builders = map[string]builder{
	access_control.FilterName:  buildAccessControl,
	rate_limiting.FilterName:   buildRateLimiting,
	token_relay.FilterName:     buildTokenRelay,
	swagger_rewrite.FilterName: buildSwaggerRewrite,
}

// Known lists the filter names a configuration may refer to.
func Known() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitializeFilters builds every enabled filter of configs and registers it on
// manager. Disabled sections are skipped; unknown names fail startup.
func InitializeFilters(
	manager infraFilters.Manager,
	configs map[string]filterTypes.FilterConfig,
	deps Dependencies,
) error {
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cfg := configs[name]
		build, ok := builders[name]
		if !ok {
			return fmt.Errorf("%w: %s", filterTypes.ErrUnknownFilter, name)
		}
		if !cfg.Enabled {
			deps.Logger.WithField("filter", name).Info("filter disabled by configuration")
			continue
		}
		filter, err := build(cfg, deps)
		if err != nil {
			return fmt.Errorf("failed to build filter %s: %w", name, err)
		}
		if err := manager.RegisterFilter(filter); err != nil {
			return err
		}
		deps.Logger.WithFields(logrus.Fields{
			"filter": filter.Name(),
			"phase":  filter.Phase(),
			"order":  filter.Order(),
		}).Info("filter registered")
	}
	return nil
}

func buildAccessControl(cfg filterTypes.FilterConfig, deps Dependencies) (filteriface.Filter, error) {
	policy, err := access_control.DecodeConfig(cfg.Settings)
	if err != nil {
		return nil, err
	}
	return access_control.NewAccessControlFilter(deps.Routes, policy, deps.Logger), nil
}

func buildRateLimiting(cfg filterTypes.FilterConfig, deps Dependencies) (filteriface.Filter, error) {
	rlConfig, err := rate_limiting.DecodeConfig(cfg.Settings)
	if err != nil {
		return nil, err
	}
	store, err := NewBucketStore(rlConfig.Store, deps)
	if err != nil {
		return nil, err
	}
	return rate_limiting.NewRateLimitingFilter(store, deps.Identity, rlConfig, deps.Logger), nil
}

func buildTokenRelay(_ filterTypes.FilterConfig, _ Dependencies) (filteriface.Filter, error) {
	return token_relay.NewTokenRelayFilter(), nil
}

func buildSwaggerRewrite(cfg filterTypes.FilterConfig, deps Dependencies) (filteriface.Filter, error) {
	swConfig, err := swagger_rewrite.DecodeConfig(cfg.Settings)
	if err != nil {
		return nil, err
	}
	return swagger_rewrite.NewSwaggerRewriteFilter(swConfig, deps.Logger), nil
}

// NewBucketStore returns the store named by kind. The redis store sits behind
// a circuit breaker so an outage fails fast.
func NewBucketStore(kind string, deps Dependencies) (ratelimit.BucketStore, error) {
	switch kind {
	case "", ratelimit.StoreMemory:
		return ratelimit.NewMemoryStore(), nil
	case ratelimit.StoreRedis:
		if deps.Redis == nil {
			return nil, domain.NewConfigurationError("rate limiting", "store %q needs a redis connection", kind)
		}
		breaker := deps.Breaker
		if breaker.Name == "" {
			breaker = ratelimit.DefaultBreakerConfig()
		}
		return ratelimit.NewBreakerStore(ratelimit.NewRedisStore(deps.Redis), breaker, deps.Logger), nil
	default:
		return nil, domain.NewConfigurationError("rate limiting", "unknown store %q", kind)
	}
}
