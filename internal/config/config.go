package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
	"gopkg.in/yaml.v3"
)

// Config stores runtime configuration for the API and the nextmatch driver.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string
	SwaggerEnabled     bool

	CacheTTL          time.Duration
	CacheWarmSchedule string
	CompetitionsFile  string
	Competitions      []competition.Source

	ScrapeTimeout               time.Duration
	ScrapeMaxRetries            int
	ScrapeConcurrency           int
	ScrapeUserAgent             string
	ScrapeCircuitEnabled        bool
	ScrapeCircuitFailureCount   int
	ScrapeCircuitOpenTimeout    time.Duration
	ScrapeCircuitHalfOpenMaxReq int

	PprofEnabled           bool
	PprofAddr              string
	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeUploadRate    time.Duration
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Load reads configuration from the environment, after merging a local .env file when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	readTimeout, err := positiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := positiveDuration("APP_WRITE_TIMEOUT", "60s")
	if err != nil {
		return Config{}, err
	}

	cacheTTL, err := positiveDuration("CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}

	competitionsFile := strings.TrimSpace(getEnv("COMPETITIONS_FILE", ""))
	competitions := competition.DefaultSources()
	if competitionsFile != "" {
		competitions, err = LoadCompetitions(competitionsFile)
		if err != nil {
			return Config{}, err
		}
	}

	scrapeTimeout, err := positiveDuration("SCRAPE_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	scrapeMaxRetries, err := getEnvAsInt("SCRAPE_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_MAX_RETRIES: %w", err)
	}
	if scrapeMaxRetries < 0 {
		return Config{}, fmt.Errorf("SCRAPE_MAX_RETRIES must be >= 0")
	}
	scrapeConcurrency, err := getEnvAsInt("SCRAPE_CONCURRENCY", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_CONCURRENCY: %w", err)
	}
	if scrapeConcurrency < 1 {
		return Config{}, fmt.Errorf("SCRAPE_CONCURRENCY must be >= 1")
	}

	scrapeCircuitEnabled, err := strconv.ParseBool(getEnv("SCRAPE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_CIRCUIT_ENABLED: %w", err)
	}
	scrapeCircuitFailureCount, err := getEnvAsInt("SCRAPE_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if scrapeCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SCRAPE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	scrapeCircuitOpenTimeout, err := positiveDuration("SCRAPE_CIRCUIT_OPEN_TIMEOUT", "1m")
	if err != nil {
		return Config{}, err
	}
	scrapeCircuitHalfOpenMaxReq, err := getEnvAsInt("SCRAPE_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if scrapeCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SCRAPE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
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

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "no-draw-tracker-api"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":3000"),
		ReadTimeout:                 readTimeout,
		WriteTimeout:                writeTimeout,
		LogLevel:                    logLevel,
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:              swaggerEnabled,
		CacheTTL:                    cacheTTL,
		CacheWarmSchedule:           strings.TrimSpace(getEnv("CACHE_WARM_SCHEDULE", "")),
		CompetitionsFile:            competitionsFile,
		Competitions:                competitions,
		ScrapeTimeout:               scrapeTimeout,
		ScrapeMaxRetries:            scrapeMaxRetries,
		ScrapeConcurrency:           scrapeConcurrency,
		ScrapeUserAgent:             strings.TrimSpace(getEnv("SCRAPE_USER_AGENT", "")),
		ScrapeCircuitEnabled:        scrapeCircuitEnabled,
		ScrapeCircuitFailureCount:   scrapeCircuitFailureCount,
		ScrapeCircuitOpenTimeout:    scrapeCircuitOpenTimeout,
		ScrapeCircuitHalfOpenMaxReq: scrapeCircuitHalfOpenMaxReq,
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeUploadRate:         pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

type competitionsDocument struct {
	Competitions []competition.Source `yaml:"competitions"`
}

// LoadCompetitions reads a YAML competitions list. Entries keep file order.
func LoadCompetitions(path string) ([]competition.Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read COMPETITIONS_FILE: %w", err)
	}

	var file competitionsDocument
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse COMPETITIONS_FILE: %w", err)
	}
	if len(file.Competitions) == 0 {
		return nil, fmt.Errorf("COMPETITIONS_FILE %q lists no competitions", path)
	}

	seen := make(map[string]struct{}, len(file.Competitions))
	for i, src := range file.Competitions {
		name := strings.TrimSpace(src.Name)
		if name == "" || strings.TrimSpace(src.URL) == "" {
			return nil, fmt.Errorf("competition #%d requires name and url", i+1)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate competition name %q", name)
		}
		seen[name] = struct{}{}
	}

	return file.Competitions, nil
}

func positiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
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

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
