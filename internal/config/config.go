package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewDrawConfigHolder),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	NodeID      int64

	AuthJWTSecret string

	Observability ObservabilityConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
	DBMetricsEnabled  bool

	Redis     RedisConfig
	RateLimit RateLimitConfig

	// CatalogCacheTTL of zero queries the catalog on every draw.
	CatalogCacheTTL time.Duration
	SeedSampleData  bool
}

// ObservabilityConfig drives logging, tracing and metric naming.
type ObservabilityConfig struct {
	LogLevel            string
	LogFormat           string
	LogSampleInitial    int
	LogSampleThereafter int

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string

	// OtelSamplingRatio applies to every request span; draws are sampled
	// at DrawTraceSamplingRatio when that is higher.
	OtelSamplingRatio      float64
	DrawTraceSamplingRatio float64

	MetricsNamespace string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis endpoint is configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

type RateLimitConfig struct {
	Enabled       bool
	DrawUserRate  float64
	DrawUserBurst int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "whateat"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		HTTPAddr:          getenv("HTTP_ADDR", ":8000"),
		NodeID:            int64(getenvInt("SNOWFLAKE_NODE_ID", 1)),
		AuthJWTSecret:     strings.TrimSpace(getenv("AUTH_JWT_SECRET", "")),
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "what_eat"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 15),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 1800),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 300),
		DBMetricsEnabled:  getenvBool("DATABASE_METRICS_ENABLED", true),
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			Password: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			DB:       getenvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getenvBool("DRAW_RATE_LIMIT_ENABLED", false),
			DrawUserRate:  getenvFloat("DRAW_RATE_LIMIT_RATE", 1),
			DrawUserBurst: getenvInt("DRAW_RATE_LIMIT_BURST", 5),
		},
		CatalogCacheTTL: getenvDuration("CATALOG_CACHE_TTL", 0),
		SeedSampleData:  getenvBool("SEED_SAMPLE_DATA", false),
	}

	cfg.Observability = loadObservability(cfg)
	return cfg
}

func loadObservability(cfg Config) ObservabilityConfig {
	protocol := strings.ToLower(strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")))
	if traces := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL")); traces != "" {
		protocol = strings.ToLower(traces)
	}
	namespace := strings.TrimSpace(getenv("METRICS_NAMESPACE", ""))
	if namespace == "" {
		namespace = strings.ReplaceAll(strings.TrimSpace(cfg.AppName), "-", "_")
	}

	return ObservabilityConfig{
		LogLevel:               strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
		LogFormat:              strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
		LogSampleInitial:       getenvInt("LOG_SAMPLE_INITIAL", 100),
		LogSampleThereafter:    getenvInt("LOG_SAMPLE_THEREAFTER", 100),
		OtelEnabled:            getenvBool("OTEL_ENABLED", cfg.IsProduction()),
		OtelExporterEndpoint:   strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")),
		OtelExporterProtocol:   protocol,
		OtelSamplingRatio:      clampRatio(getenvFloat("OTEL_SAMPLING_RATIO", 0.1)),
		DrawTraceSamplingRatio: clampRatio(getenvFloat("DRAW_TRACE_SAMPLING_RATIO", 1)),
		MetricsNamespace:       namespace,
	}
}

func clampRatio(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

// getenvDuration accepts Go durations ("30s") or bare seconds ("30").
func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return def
}
