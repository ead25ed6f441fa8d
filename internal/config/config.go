package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/volleyball-feed/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ShutdownTimeout            time.Duration
	CORSAllowedOrigins         []string
	LogLevel                   logging.Level
	CacheEnabled               bool
	CacheTTL                   time.Duration
	RedisURL                   string
	RedisKeyPrefix             string
	RedisTimeout               time.Duration
	VBDBBaseURL                string
	VBDBTimeout                time.Duration
	VBDBMaxRetries             int
	VBDBRetryBackoff           time.Duration
	VBDBCircuitEnabled         bool
	VBDBCircuitFailureCount    int
	VBDBCircuitOpenTimeout     time.Duration
	VBDBCircuitHalfOpenMaxReq  int
	WarmupEnabled              bool
	WarmupInterval             time.Duration
	WarmupDivisions            []string
	WarmupWorkers              int
	MetricsEnabled             bool
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsPositiveDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsPositiveDuration("CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}

	redisURL := strings.TrimSpace(getEnv("REDIS_URL", ""))
	redisTimeout, err := getEnvAsPositiveDuration("REDIS_TIMEOUT", "2s")
	if err != nil {
		return Config{}, err
	}

	vbdbBaseURL := strings.TrimRight(strings.TrimSpace(getEnv("VBDB_BASE_URL", "https://api.volleyballdatabased.com")), "/")
	if parsed, err := url.Parse(vbdbBaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("VBDB_BASE_URL must be an absolute URL, got %q", vbdbBaseURL)
	}
	vbdbTimeout, err := getEnvAsPositiveDuration("VBDB_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	vbdbMaxRetries, err := getEnvAsInt("VBDB_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse VBDB_MAX_RETRIES: %w", err)
	}
	if vbdbMaxRetries < 0 {
		return Config{}, fmt.Errorf("VBDB_MAX_RETRIES must be >= 0")
	}
	vbdbRetryBackoff, err := getEnvAsPositiveDuration("VBDB_RETRY_BACKOFF", "500ms")
	if err != nil {
		return Config{}, err
	}
	vbdbCircuitEnabled, err := strconv.ParseBool(getEnv("VBDB_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VBDB_CIRCUIT_ENABLED: %w", err)
	}
	vbdbCircuitFailureCount, err := getEnvAsInt("VBDB_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse VBDB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if vbdbCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("VBDB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	vbdbCircuitOpenTimeout, err := getEnvAsPositiveDuration("VBDB_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	vbdbCircuitHalfOpenMaxReq, err := getEnvAsInt("VBDB_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse VBDB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if vbdbCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("VBDB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	warmupEnabled, err := strconv.ParseBool(getEnv("WARMUP_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WARMUP_ENABLED: %w", err)
	}
	warmupInterval, err := getEnvAsPositiveDuration("WARMUP_INTERVAL", "45s")
	if err != nil {
		return Config{}, err
	}
	warmupWorkers, err := getEnvAsInt("WARMUP_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse WARMUP_WORKERS: %w", err)
	}
	if warmupWorkers < 1 {
		return Config{}, fmt.Errorf("WARMUP_WORKERS must be >= 1")
	}
	warmupDivisions := splitCSV(getEnv("WARMUP_DIVISIONS", "D-I"))
	if warmupEnabled && len(warmupDivisions) == 0 {
		return Config{}, fmt.Errorf("WARMUP_DIVISIONS cannot be empty when WARMUP_ENABLED=true")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "volleyball-feed-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		ShutdownTimeout:            shutdownTimeout,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		RedisURL:                   redisURL,
		RedisKeyPrefix:             getEnv("REDIS_KEY_PREFIX", "vbfeed:"),
		RedisTimeout:               redisTimeout,
		VBDBBaseURL:                vbdbBaseURL,
		VBDBTimeout:                vbdbTimeout,
		VBDBMaxRetries:             vbdbMaxRetries,
		VBDBRetryBackoff:           vbdbRetryBackoff,
		VBDBCircuitEnabled:         vbdbCircuitEnabled,
		VBDBCircuitFailureCount:    vbdbCircuitFailureCount,
		VBDBCircuitOpenTimeout:     vbdbCircuitOpenTimeout,
		VBDBCircuitHalfOpenMaxReq:  vbdbCircuitHalfOpenMaxReq,
		WarmupEnabled:              warmupEnabled,
		WarmupInterval:             warmupInterval,
		WarmupDivisions:            warmupDivisions,
		WarmupWorkers:              warmupWorkers,
		MetricsEnabled:             metricsEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.RedisURL != "" && !cfg.CacheEnabled {
		return Config{}, fmt.Errorf("REDIS_URL requires CACHE_ENABLED=true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
