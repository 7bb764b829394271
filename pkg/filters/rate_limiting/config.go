package rate_limiting

import (
	"time"

	domain "github.com/NeuralTrust/GateFilters/pkg/domain/errors"
	"github.com/NeuralTrust/GateFilters/pkg/infra/ratelimit"
	"github.com/mitchellh/mapstructure"
)

const (
	DefaultLimit         = 100_000
	DefaultWindowSeconds = 3600
)

type Config struct {
	Limit         int64  `mapstructure:"limit"`
	WindowSeconds int64  `mapstructure:"window_seconds"`
	Store         string `mapstructure:"store"`
	// FailOpen admits requests while the bucket store is unavailable.
	FailOpen *bool `mapstructure:"fail_open"`
}

func DecodeConfig(settings map[string]interface{}) (Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(settings); err != nil {
		return cfg, domain.NewConfigurationError("rate limiting", "%v", err)
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.WindowSeconds == 0 {
		c.WindowSeconds = DefaultWindowSeconds
	}
	if c.Store == "" {
		c.Store = ratelimit.StoreMemory
	}
	if c.FailOpen == nil {
		failOpen := true
		c.FailOpen = &failOpen
	}
}

func (c Config) Validate() error {
	if err := c.limit().Validate(); err != nil {
		return domain.NewConfigurationError("rate limiting", "%v", err)
	}
	if c.Store != ratelimit.StoreMemory && c.Store != ratelimit.StoreRedis {
		return domain.NewConfigurationError("rate limiting", "unknown store %q", c.Store)
	}
	return nil
}

func (c Config) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

func (c Config) limit() ratelimit.Limit {
	return ratelimit.Limit{Capacity: c.Limit, Window: c.Window()}
}

func (c Config) failOpen() bool {
	return c.FailOpen == nil || *c.FailOpen
}
