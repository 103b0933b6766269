package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/standing"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/cache"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultSnapshotTTL        = 10 * time.Minute
	defaultScrapeConcurrency  = 5
	defaultLoadTimeout        = 2 * time.Minute
	standingsSnapshotSpanName = "usecase.StandingsService.Snapshot"
)

type StandingsServiceConfig struct {
	TTL         time.Duration
	Concurrency int
	// LoadTimeout bounds one scrape round. Rounds do not inherit the caller's cancellation.
	LoadTimeout time.Duration
	Now         func() time.Time
	Logger      *logging.Logger
}

// StandingsService owns the merged standings snapshot of every configured competition.
type StandingsService struct {
	catalog     competition.Catalog
	provider    standing.Provider
	snapshots   *cache.Snapshot[standing.Snapshot]
	concurrency int
	loadTimeout time.Duration
	now         func() time.Time
	logger      *logging.Logger

	// Serializes read-modify-write merges done by Refresh.
	mergeMu sync.Mutex
}

type RefreshResult struct {
	Competitions []string
	TotalTeams   int
}

type competitionResult struct {
	source  competition.Source
	records []standing.TeamRecord
	err     error
}

func NewStandingsService(catalog competition.Catalog, provider standing.Provider, cfg StandingsServiceConfig) *StandingsService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultScrapeConcurrency
	}
	loadTimeout := cfg.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = defaultLoadTimeout
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		catalog:     catalog,
		provider:    provider,
		snapshots:   cache.NewSnapshot[standing.Snapshot](ttl, now),
		concurrency: concurrency,
		loadTimeout: loadTimeout,
		now:         now,
		logger:      logger,
	}
}

// Snapshot returns the cached snapshot while it is fresh, otherwise scrapes every
// competition. forceRefresh always scrapes. The returned value is a private copy.
func (s *StandingsService) Snapshot(ctx context.Context, forceRefresh bool) (standing.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, standingsSnapshotSpanName)
	defer span.End()
	span.SetAttributes(attribute.Bool("force_refresh", forceRefresh))

	if forceRefresh {
		loadCtx, cancel := s.detached(ctx)
		defer cancel()

		snap := s.build(loadCtx, s.catalog.All())
		s.snapshots.Set(snap, snap.FetchedAt)
		return snap.Clone(), nil
	}

	snap, err := s.snapshots.GetOrLoad(ctx, func(ctx context.Context) (standing.Snapshot, time.Time, error) {
		loadCtx, cancel := s.detached(ctx)
		defer cancel()

		built := s.build(loadCtx, s.catalog.All())
		return built, built.FetchedAt, nil
	})
	if err != nil {
		return standing.Snapshot{}, fmt.Errorf("load standings snapshot: %w", err)
	}
	return snap.Clone(), nil
}

// Cached returns the stored snapshot regardless of age without scraping.
func (s *StandingsService) Cached() (standing.Snapshot, bool) {
	snap, _, ok := s.snapshots.Peek()
	if !ok {
		return standing.Snapshot{}, false
	}
	return snap.Clone(), true
}

func (s *StandingsService) Invalidate(ctx context.Context) {
	s.snapshots.Invalidate()
	s.logger.InfoContext(ctx, "standings snapshot invalidated")
}

// Refresh re-scrapes the named competitions and merges them into the cached
// snapshot. Empty names means every configured competition. Names that are not
// configured are ignored; when none match, the cache is left untouched.
//
// A merge into a fresh snapshot keeps its FetchedAt, so untouched competitions
// still expire on schedule. Without a fresh snapshot every competition is
// scraped and a complete snapshot is stored. TotalTeams counts the targets only.
func (s *StandingsService) Refresh(ctx context.Context, names []string) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Refresh")
	defer span.End()

	requested := normalizeNames(names)
	targets := s.catalog.All()
	if len(requested) == 0 {
		requested = s.catalog.Names()
	} else {
		targets = s.catalog.Select(requested)
	}
	span.SetAttributes(attribute.Int("targets", len(targets)))

	result := RefreshResult{Competitions: requested}
	if len(targets) == 0 {
		s.logger.WarnContext(ctx, "refresh requested no configured competition", "requested", requested)
		return result, nil
	}

	loadCtx, cancel := s.detached(ctx)
	defer cancel()

	s.mergeMu.Lock()
	defer s.mergeMu.Unlock()

	previous, _, warm := s.snapshots.Get()
	scrape := targets
	if !warm {
		scrape = s.catalog.All()
	}
	results := s.collect(loadCtx, scrape)

	targeted := make(map[string]struct{}, len(targets))
	for _, src := range targets {
		targeted[src.Name] = struct{}{}
	}
	for _, item := range results {
		if _, ok := targeted[item.source.Name]; ok {
			result.TotalTeams += len(item.records)
		}
	}

	fetchedAt := s.now()
	if warm && len(scrape) < s.catalog.Len() {
		fetchedAt = previous.FetchedAt
	}
	merged := s.merge(previous, results, fetchedAt)
	s.snapshots.Set(merged, merged.FetchedAt)

	s.logger.InfoContext(ctx, "standings refreshed",
		"competitions", len(targets),
		"scraped", len(scrape),
		"total_teams", result.TotalTeams,
	)
	return result, nil
}

func (s *StandingsService) build(ctx context.Context, sources []competition.Source) standing.Snapshot {
	results := s.collect(ctx, sources)
	return s.merge(standing.Snapshot{}, results, s.now())
}

// detached derives the context of one scrape round: it keeps the caller's values
// and trace but not its cancellation, and is bounded by loadTimeout.
func (s *StandingsService) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
}

// merge lays competitions out in catalog order. Competitions present in fresh
// replace whatever previous held for them; the rest keep previous records.
func (s *StandingsService) merge(previous standing.Snapshot, fresh []competitionResult, fetchedAt time.Time) standing.Snapshot {
	freshByName := make(map[string]competitionResult, len(fresh))
	for _, item := range fresh {
		freshByName[item.source.Name] = item
	}
	previousByName := previous.TeamsByLeague()
	previousOutcomes := make(map[string]standing.CompetitionOutcome, len(previous.Competitions))
	for _, outcome := range previous.Competitions {
		previousOutcomes[outcome.Name] = outcome
	}

	out := standing.Snapshot{
		Teams:        make([]standing.TeamRecord, 0, len(previous.Teams)),
		Competitions: make([]standing.CompetitionOutcome, 0, s.catalog.Len()),
		FetchedAt:    fetchedAt,
	}
	for _, src := range s.catalog.All() {
		if item, ok := freshByName[src.Name]; ok {
			outcome := standing.CompetitionOutcome{Name: src.Name, Teams: len(item.records)}
			if item.err != nil {
				outcome.Error = item.err.Error()
			}
			out.Teams = append(out.Teams, item.records...)
			out.Competitions = append(out.Competitions, outcome)
			continue
		}
		if outcome, ok := previousOutcomes[src.Name]; ok {
			out.Teams = append(out.Teams, previousByName[src.Name]...)
			out.Competitions = append(out.Competitions, outcome)
		}
	}
	return out
}

// collect scrapes sources concurrently; results keep the order of sources.
func (s *StandingsService) collect(ctx context.Context, sources []competition.Source) []competitionResult {
	mapper := iter.Mapper[competition.Source, competitionResult]{MaxGoroutines: s.concurrency}
	return mapper.Map(sources, func(src *competition.Source) competitionResult {
		return s.fetchOne(ctx, *src)
	})
}

func (s *StandingsService) fetchOne(ctx context.Context, src competition.Source) (result competitionResult) {
	result.source = src
	defer func() {
		if rec := recover(); rec != nil {
			result.records = nil
			result.err = fmt.Errorf("panic while scraping: %v", rec)
			s.logger.ErrorContext(ctx, "standings scrape panicked", "competition", src.Name, "panic", rec)
		}
	}()

	start := s.now()
	records, err := s.provider.FetchStandings(ctx, src)
	if err != nil {
		s.logger.WarnContext(ctx, "standings scrape failed, competition contributes no teams",
			"competition", src.Name,
			"url", src.URL,
			"error", err,
		)
		result.err = err
		return result
	}

	result.records = records
	s.logger.DebugContext(ctx, "standings scraped",
		"competition", src.Name,
		"teams", len(records),
		"duration", s.now().Sub(start),
	)
	return result
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}
