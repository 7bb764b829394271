package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NeuralTrust/GateFilters/pkg/domain/route"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig                        `mapstructure:"server"`
	Metrics  MetricsConfig                       `mapstructure:"metrics"`
	Redis    RedisConfig                         `mapstructure:"redis"`
	Identity IdentityConfig                      `mapstructure:"identity"`
	Backend  BackendConfig                       `mapstructure:"backend"`
	Routes   []route.Route                       `mapstructure:"routes"`
	Filters  map[string]filterTypes.FilterConfig `mapstructure:"filters"`
}

type ServerConfig struct {
	ProxyPort   int `mapstructure:"proxy_port"`
	MetricsPort int `mapstructure:"metrics_port"`
	// BodyLimit is the largest request body the proxy accepts, in bytes.
	BodyLimit int `mapstructure:"body_limit"`
}

type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	EnableLatency  bool `mapstructure:"enable_latency"`
	EnableUpstream bool `mapstructure:"enable_upstream"`
	EnableFilters  bool `mapstructure:"enable_filters"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type IdentityConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type BackendConfig struct {
	TimeoutSeconds  int              `mapstructure:"timeout_seconds"`
	MaxConnsPerHost int              `mapstructure:"max_conns_per_host"`
	TLS             BackendTLSConfig `mapstructure:"tls"`
}

var globalConfig Config

// Load reads config.yaml from configPath and lets environment variables
// override any key, e.g. SERVER_PROXY_PORT or IDENTITY_JWT_SECRET.
func Load(configPath string) error {
	cfg, err := Read(configPath)
	if err != nil {
		return err
	}
	globalConfig = *cfg
	return nil
}

func Read(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaultValues(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file config.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	for name, fc := range cfg.Filters {
		fc.Name = name
		cfg.Filters[name] = fc
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.proxy_port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.body_limit", 8*1024*1024)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.enable_latency", true)
	v.SetDefault("metrics.enable_upstream", false)
	v.SetDefault("metrics.enable_filters", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)
	v.SetDefault("identity.jwt_secret", "")
	v.SetDefault("identity.issuer", "")
	v.SetDefault("backend.timeout_seconds", 30)
	v.SetDefault("backend.max_conns_per_host", 512)
}

func (c *Config) Validate() error {
	if c.Server.ProxyPort <= 0 {
		return fmt.Errorf("server.proxy_port must be positive, got %d", c.Server.ProxyPort)
	}
	if c.Metrics.Enabled && c.Server.MetricsPort <= 0 {
		return fmt.Errorf("server.metrics_port must be positive, got %d", c.Server.MetricsPort)
	}
	if c.Metrics.Enabled && c.Server.MetricsPort == c.Server.ProxyPort {
		return fmt.Errorf("server.metrics_port and server.proxy_port must differ")
	}
	return nil
}

// FilterEnabled reports whether the filter section exists and is switched on.
func (c *Config) FilterEnabled(name string) bool {
	fc, ok := c.Filters[name]
	return ok && fc.Enabled
}

func GetConfig() *Config {
	return &globalConfig
}
