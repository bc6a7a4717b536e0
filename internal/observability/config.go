package observability

import (
	"os"
	"strconv"
	"strings"

	"github.com/markahope-aag/hazardos-sub007/internal/config"
)

// Config holds observability configuration derived from environment variables.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "hazardos"
	}
	logLevel := strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info")))
	logFormat := strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json")))
	otlpEndpoint := getenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)
	otlpProtocol := strings.ToLower(strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")))

	return Config{
		ServiceName:          serviceName,
		Environment:          strings.TrimSpace(getenv("DEPLOYMENT_ENV", cfg.Environment)),
		Version:              strings.TrimSpace(getenv("SERVICE_VERSION", cfg.AppVersion)),
		LogLevel:             logLevel,
		LogFormat:            logFormat,
		OtelEnabled:          getenvBool("OTEL_ENABLED", false),
		OtelExporterEndpoint: strings.TrimSpace(otlpEndpoint),
		OtelExporterProtocol: otlpProtocol,
	}
}

func (c Config) Debug() bool {
	if strings.ToLower(strings.TrimSpace(c.LogLevel)) == "debug" {
		return true
	}
	return isDevEnv(c.Environment)
}

func isDevEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func getenv(key, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
