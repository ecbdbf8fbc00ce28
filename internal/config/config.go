package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

const (
	defaultPort            = 3040
	defaultEnv             = "development"
	defaultLogDir          = "logs"
	defaultServiceName     = "calculator-microservice"
	defaultShutdownTimeout = 5 * time.Second

	// EnvProduction disables console logging.
	EnvProduction = "production"
)

// Config holds the process settings read from the environment.
type Config struct {
	Port            int
	Env             string
	LogDir          string
	LogLevel        zapcore.Level
	ServiceName     string
	OTLPEndpoint    string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Production reports whether the service runs with APP_ENV=production.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// TelemetryEnabled reports whether OTLP exporters should be started.
func (c Config) TelemetryEnabled() bool {
	return c.OTLPEndpoint != ""
}

// Load reads .env (if any) and then the process environment.
func Load(dotenvFiles ...string) (Config, error) {
	if err := loadDotEnv(dotenvFiles...); err != nil {
		return Config{}, err
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to resolve variables.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			return fallback
		}
		return v
	}

	cfg := Config{
		Env:          get("APP_ENV", defaultEnv),
		LogDir:       get("LOG_DIR", defaultLogDir),
		ServiceName:  get("SERVICE_NAME", defaultServiceName),
		OTLPEndpoint: get("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		CORSOrigins:  splitList(get("CORS_ALLOWED_ORIGINS", "")),
	}

	port, err := strconv.Atoi(get("PORT", strconv.Itoa(defaultPort)))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", get("PORT", ""))
	}
	cfg.Port = port

	level, err := zapcore.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	timeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String()))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", get("SHUTDOWN_TIMEOUT", ""))
	}
	cfg.ShutdownTimeout = timeout

	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
