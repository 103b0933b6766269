package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/fixture"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
)

// NextMatch is the earliest upcoming fixture found for a team.
type NextMatch struct {
	Competition competition.Source
	Fixture     fixture.Candidate
	CheckedAt   time.Time
}

// DaysUntil rounds the time left before kickoff up to whole days, measured from
// the moment the lookup started.
func (m NextMatch) DaysUntil() int {
	return m.Fixture.DaysUntil(m.CheckedAt)
}

// IsTomorrow reports the notify condition: kickoff is exactly one day away.
func (m NextMatch) IsTomorrow() bool {
	return m.DaysUntil() == 1
}

type NextMatchServiceConfig struct {
	Concurrency int
	Now         func() time.Time
	Logger      *logging.Logger
}

type NextMatchService struct {
	catalog     competition.Catalog
	provider    fixture.Provider
	concurrency int
	now         func() time.Time
	logger      *logging.Logger
}

func NewNextMatchService(catalog competition.Catalog, provider fixture.Provider, cfg NextMatchServiceConfig) *NextMatchService {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultScrapeConcurrency
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &NextMatchService{
		catalog:     catalog,
		provider:    provider,
		concurrency: concurrency,
		now:         now,
		logger:      logger,
	}
}

// FindNextMatch searches every configured competition for fixtures involving team
// and returns the earliest one. Competitions whose page cannot be read count as
// having no match. Equal kickoffs resolve to the competition configured first.
func (s *NextMatchService) FindNextMatch(ctx context.Context, team string) (NextMatch, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NextMatchService.FindNextMatch")
	defer span.End()

	team = strings.TrimSpace(team)
	if team == "" {
		return NextMatch{}, false, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	sources := s.catalog.All()
	if len(sources) == 0 {
		return NextMatch{}, false, nil
	}

	now := s.now()
	found := make([]*fixture.Candidate, len(sources))

	pool, err := ants.NewPool(min(len(sources), s.concurrency))
	if err != nil {
		return NextMatch{}, false, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx, src := range sources {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			found[idx] = s.earliestIn(ctx, src, team, now)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return NextMatch{}, false, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	var (
		best      *fixture.Candidate
		bestIndex int
	)
	for idx, item := range found {
		if item == nil {
			continue
		}
		if best == nil || item.KickoffAt.Before(best.KickoffAt) {
			best = item
			bestIndex = idx
		}
	}
	if best == nil {
		return NextMatch{}, false, nil
	}

	return NextMatch{
		Competition: sources[bestIndex],
		Fixture:     *best,
		CheckedAt:   now,
	}, true, nil
}

func (s *NextMatchService) earliestIn(ctx context.Context, src competition.Source, team string, now time.Time) (out *fixture.Candidate) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.ErrorContext(ctx, "fixture lookup panicked", "competition", src.Name, "panic", rec)
			out = nil
		}
	}()

	s.logger.InfoContext(ctx, "checking competition", "competition", src.Name, "country", src.Country)
	items, err := s.provider.FetchUpcomingFixtures(ctx, src, now)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture lookup failed, treating as no match",
			"competition", src.Name,
			"error", err,
		)
		return nil
	}

	matching := make([]fixture.Candidate, 0, 2)
	for _, item := range items {
		if item.KickoffAt.After(now) && item.Involves(team) {
			matching = append(matching, item)
		}
	}
	earliest, ok := fixture.Earliest(matching)
	if !ok {
		return nil
	}
	return &earliest
}
