package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/no-draw-tracker/external/soccerstats"
	"github.com/riskibarqy/no-draw-tracker/internal/config"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
	"github.com/riskibarqy/no-draw-tracker/internal/interfaces/httpapi"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/resilience"
	"github.com/riskibarqy/no-draw-tracker/internal/usecase"
	"github.com/robfig/cron/v3"
)

// API bundles the HTTP server with the background cache warmer.
type API struct {
	Server    *http.Server
	Standings *usecase.StandingsService

	warmer *cron.Cron
	logger *logging.Logger
}

// NewScraper builds the soccerstats client shared by the API and the nextmatch driver.
func NewScraper(cfg config.Config, logger *logging.Logger) *soccerstats.Client {
	return soccerstats.NewClient(soccerstats.ClientConfig{
		Timeout:    cfg.ScrapeTimeout,
		MaxRetries: cfg.ScrapeMaxRetries,
		UserAgent:  cfg.ScrapeUserAgent,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScrapeCircuitEnabled,
			FailureThreshold: cfg.ScrapeCircuitFailureCount,
			OpenTimeout:      cfg.ScrapeCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ScrapeCircuitHalfOpenMaxReq,
		},
	})
}

func NewAPI(cfg config.Config, logger *logging.Logger) (*API, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	catalog := competition.NewCatalog(cfg.Competitions)
	scraper := NewScraper(cfg, logger)
	standingsSvc := usecase.NewStandingsService(catalog, scraper, usecase.StandingsServiceConfig{
		TTL:         cfg.CacheTTL,
		Concurrency: cfg.ScrapeConcurrency,
		Logger:      logger,
	})

	warmer, err := newCacheWarmer(cfg.CacheWarmSchedule, standingsSvc, logger)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(standingsSvc, scraper, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	return &API{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Standings: standingsSvc,
		warmer:    warmer,
		logger:    logger,
	}, nil
}

// StartBackground starts the cache warmer when a schedule is configured.
func (a *API) StartBackground() {
	if a.warmer == nil {
		return
	}
	a.warmer.Start()
	a.logger.Info("cache warmer started", "entries", len(a.warmer.Entries()))
}

// Shutdown stops the warmer, waits for a running warm-up, then drains the HTTP server.
func (a *API) Shutdown(ctx context.Context) error {
	if a.warmer != nil {
		select {
		case <-a.warmer.Stop().Done():
		case <-ctx.Done():
		}
	}
	return a.Server.Shutdown(ctx)
}

// NewNextMatchService wires the fixture lookup used by the nextmatch driver.
func NewNextMatchService(cfg config.Config, logger *logging.Logger) *usecase.NextMatchService {
	catalog := competition.NewCatalog(cfg.Competitions)
	return usecase.NewNextMatchService(catalog, NewScraper(cfg, logger), usecase.NextMatchServiceConfig{
		Concurrency: cfg.ScrapeConcurrency,
		Logger:      logger,
	})
}
