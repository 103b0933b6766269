package fixture

import (
	"context"
	"time"

	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
)

// Provider lists fixtures of one competition that kick off strictly after now.
type Provider interface {
	FetchUpcomingFixtures(ctx context.Context, src competition.Source, now time.Time) ([]Candidate, error)
}
