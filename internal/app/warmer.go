package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/no-draw-tracker/internal/domain/standing"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

const warmTimeout = 2 * time.Minute

type snapshotRefresher interface {
	Snapshot(ctx context.Context, force bool) (standing.Snapshot, error)
}

// newCacheWarmer schedules forced snapshot rebuilds. An empty schedule disables warming.
// Schedules accept an optional seconds field and descriptors such as "@every 5m".
func newCacheWarmer(schedule string, svc snapshotRefresher, logger *logging.Logger) (*cron.Cron, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return nil, nil
	}

	c := cron.New(
		cron.WithParser(cron.NewParser(cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(schedule, func() { warmOnce(svc, logger) }); err != nil {
		return nil, fmt.Errorf("parse CACHE_WARM_SCHEDULE %q: %w", schedule, err)
	}

	return c, nil
}

func warmOnce(svc snapshotRefresher, logger *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	started := time.Now()
	snapshot, err := svc.Snapshot(ctx, true)
	if err != nil {
		logger.Warn("cache warm-up failed", "error", err)
		return
	}

	failed := 0
	for _, outcome := range snapshot.Competitions {
		if outcome.Error != "" {
			failed++
		}
	}
	logger.Info("cache warmed",
		"teams", len(snapshot.Teams),
		"competitions", len(snapshot.Competitions),
		"failed", failed,
		"duration_ms", time.Since(started).Milliseconds(),
	)
}
