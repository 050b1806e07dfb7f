package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	DefaultFlowAPIBaseURL = "https://flow.ciandt.com/flow-ops-api"
	DefaultFlowTimeout    = 30 * time.Second

	DefaultFlowMaxConnsPerHost     = 512
	DefaultFlowMaxResponseBodySize = 100 * 1024 * 1024
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Flow    FlowConfig    `mapstructure:"flow"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	MetricsPort  int           `mapstructure:"metrics_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	EnableLatency  bool `mapstructure:"enable_latency"`
	EnableUpstream bool `mapstructure:"enable_upstream"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File is relative to the working directory and must live under logs/.
	// Empty means console only.
	File string `mapstructure:"file"`
}

type CORSConfig struct {
	AllowOrigins  []string `mapstructure:"allow_origins"`
	AllowMethods  []string `mapstructure:"allow_methods"`
	AllowHeaders  []string `mapstructure:"allow_headers"`
	ExposeHeaders []string `mapstructure:"expose_headers"`
	// AllowCredentials echoes the request origin instead of "*".
	AllowCredentials bool   `mapstructure:"allow_credentials"`
	MaxAge           string `mapstructure:"max_age"`
}

// FlowConfig describes the upstream Flow API. It is resolved once at startup
// and handed out by value.
type FlowConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxConnsPerHost and MaxResponseBodySize bound the outbound client.
	// A body above the limit fails the call as a network error.
	MaxConnsPerHost     int                  `mapstructure:"max_conns_per_host"`
	MaxResponseBodySize int                  `mapstructure:"max_response_body_size"`
	CircuitBreaker      CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	TLS                 TLSConfig            `mapstructure:"tls"`
}

type CircuitBreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

type TLSConfig struct {
	CACert             string `mapstructure:"ca_cert"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

// HasToken reports whether a bearer token is configured for the Flow API.
func (c FlowConfig) HasToken() bool {
	return c.Token != ""
}

// envBindings maps config keys to the environment variables the service has
// always been deployed with.
var envBindings = map[string]string{
	"flow.base_url": "FLOW_API_BASE_URL",
	"flow.token":    "FLOW_TOKEN",
	"log.level":     "LOG_LEVEL",
	"server.port":   "PORT",
}

// Load reads config.yaml from configPath (falling back to ./config and .),
// overlays environment variables and returns the resulting configuration.
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaultValues(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s to %s: %w", key, env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file config.yaml: %w", err)
		}
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Flow.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Flow.BaseURL), "/")
	if cfg.Flow.BaseURL == "" {
		cfg.Flow.BaseURL = DefaultFlowAPIBaseURL
	}
	if cfg.Flow.Timeout <= 0 {
		cfg.Flow.Timeout = DefaultFlowTimeout
	}
	if cfg.Flow.MaxConnsPerHost <= 0 {
		cfg.Flow.MaxConnsPerHost = DefaultFlowMaxConnsPerHost
	}
	if cfg.Flow.MaxResponseBodySize <= 0 {
		cfg.Flow.MaxResponseBodySize = DefaultFlowMaxResponseBodySize
	}

	return &cfg, nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.enable_latency", true)
	v.SetDefault("metrics.enable_upstream", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"*"})
	v.SetDefault("cors.expose_headers", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", "")

	v.SetDefault("flow.base_url", DefaultFlowAPIBaseURL)
	v.SetDefault("flow.token", "")
	v.SetDefault("flow.timeout", DefaultFlowTimeout.String())
	v.SetDefault("flow.max_conns_per_host", DefaultFlowMaxConnsPerHost)
	v.SetDefault("flow.max_response_body_size", DefaultFlowMaxResponseBodySize)
	v.SetDefault("flow.circuit_breaker.enabled", false)
	v.SetDefault("flow.circuit_breaker.max_failures", 5)
	v.SetDefault("flow.circuit_breaker.open_timeout", "30s")
	v.SetDefault("flow.tls.ca_cert", "")
	v.SetDefault("flow.tls.insecure_skip_verify", false)
}
