package observability

import (
	"strings"

	"github.com/smallbiznis/whateat/internal/config"
)

// Config is the observability view of the application settings.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	config.ObservabilityConfig
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "whateat"
	}
	obs := cfg.Observability
	if obs.MetricsNamespace == "" {
		obs.MetricsNamespace = strings.ReplaceAll(serviceName, "-", "_")
	}

	return Config{
		ServiceName:         serviceName,
		Environment:         strings.TrimSpace(cfg.Environment),
		Version:             strings.TrimSpace(cfg.AppVersion),
		ObservabilityConfig: obs,
	}
}

// Debug enables gin debug mode and stack traces on error logs.
func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
