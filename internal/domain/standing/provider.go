package standing

import (
	"context"

	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
)

// Provider loads the current standings table for one competition.
type Provider interface {
	FetchStandings(ctx context.Context, src competition.Source) ([]TeamRecord, error)
}
