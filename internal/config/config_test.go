package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("COMPETITIONS_FILE", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("SCRAPE_TIMEOUT", "")
	t.Setenv("SCRAPE_CONCURRENCY", "")
	t.Setenv("APP_LOG_LEVEL", "")
	t.Setenv("SCRAPE_USER_AGENT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.ScrapeTimeout != 20*time.Second {
		t.Fatalf("unexpected ScrapeTimeout: %s", cfg.ScrapeTimeout)
	}
	if cfg.ScrapeConcurrency != 5 {
		t.Fatalf("unexpected ScrapeConcurrency: %d", cfg.ScrapeConcurrency)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if len(cfg.Competitions) != 5 {
		t.Fatalf("expected built-in competitions, got %d", len(cfg.Competitions))
	}
	if cfg.ScrapeUserAgent != "" {
		t.Fatalf("expected empty user agent so the scraper default applies, got %q", cfg.ScrapeUserAgent)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_ScrapeValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cases := map[string]string{
		"SCRAPE_TIMEOUT":                   "0s",
		"SCRAPE_MAX_RETRIES":               "-1",
		"SCRAPE_CONCURRENCY":               "0",
		"SCRAPE_CIRCUIT_ENABLED":           "maybe",
		"SCRAPE_CIRCUIT_FAILURE_COUNT":     "0",
		"SCRAPE_CIRCUIT_OPEN_TIMEOUT":      "soon",
		"SCRAPE_CIRCUIT_HALF_OPEN_MAX_REQ": "0",
		"CACHE_TTL":                        "-5m",
		"APP_LOG_LEVEL":                    "verbose",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "no-draw-tracker-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "no-draw-tracker-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CompetitionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "competitions.yaml")
	body := `competitions:
  - name: Eredivisie
    country: Netherlands
    url: https://www.soccerstats.com/latest.asp?league=netherlands
    season: 2024-2025
  - name: Ligue 1
    country: France
    url: https://www.soccerstats.com/latest.asp?league=france
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write competitions file: %v", err)
	}

	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("COMPETITIONS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Competitions) != 2 {
		t.Fatalf("expected 2 competitions, got %d", len(cfg.Competitions))
	}
	if cfg.Competitions[0].Name != "Eredivisie" || cfg.Competitions[1].Name != "Ligue 1" {
		t.Fatalf("unexpected competition order: %+v", cfg.Competitions)
	}
	if cfg.Competitions[0].Season != "2024-2025" {
		t.Fatalf("unexpected season: %q", cfg.Competitions[0].Season)
	}
}

func TestLoadCompetitions_Invalid(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"empty":     "competitions: []\n",
		"no url":    "competitions:\n  - name: Eredivisie\n",
		"duplicate": "competitions:\n  - name: A\n    url: http://a\n  - name: A\n    url: http://b\n",
		"malformed": "competitions: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("write file: %v", err)
			}
			if _, err := LoadCompetitions(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}

	if _, err := LoadCompetitions(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
	}
	if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
		t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
	}
}
