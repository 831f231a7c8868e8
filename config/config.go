// Package config loads deployment configuration from FERRYMAN_-prefixed
// environment variables, with optional .env autoloading for local
// development. It also provides a ready-made configuration factory for
// deployments that configure purely from the environment.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/proxyforge/ferryman/proxy"
)

const envPrefix = "FERRYMAN_"

// Config is the per-deployment configuration of a ferryman-based service.
//
// Environment keys map to fields by lower-casing after the prefix is
// stripped, e.g. FERRYMAN_STAGE -> stage.
type Config struct {
	// Stage names the deployment stage (dev, staging, prod). Required.
	Stage string `koanf:"stage" validate:"required"`

	// EnableCors turns on OPTIONS preflight negotiation in the dispatcher.
	EnableCors bool `koanf:"enable_cors"`

	// LogLevel is a zerolog level name. Defaults to info.
	LogLevel string `koanf:"log_level"`
}

// Load reads, unmarshals and validates the configuration from the
// environment.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, err
	}

	cfg := &Config{LogLevel: "info"}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Factory adapts Load into a proxy.ConfigurationFactory. The configuration
// is loaded fresh on every invocation; a load failure surfaces as the
// dispatcher's mis-configured 500.
func Factory() proxy.ConfigurationFactory {
	return func(proxy.Request, *proxy.InvocationContext) (proxy.Configuration, error) {
		return Load()
	}
}
