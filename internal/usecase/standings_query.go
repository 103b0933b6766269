package usecase

import (
	"sort"

	"github.com/riskibarqy/no-draw-tracker/internal/domain/standing"
)

// AllCompetitions is the competition filter value that disables filtering.
const AllCompetitions = "all"

type QueryInput struct {
	Competition string
	MinStreak   int
}

// Query filters snapshot teams by minimum no-draw streak and competition name,
// then orders them by streak descending and position ascending. Ties keep
// snapshot order. The snapshot is not modified.
func Query(snapshot standing.Snapshot, input QueryInput) []standing.TeamRecord {
	filterCompetition := input.Competition != "" && input.Competition != AllCompetitions

	out := make([]standing.TeamRecord, 0, len(snapshot.Teams))
	for _, item := range snapshot.Teams {
		if item.NoDrawStreak < input.MinStreak {
			continue
		}
		if filterCompetition && item.LeagueName != input.Competition {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NoDrawStreak != out[j].NoDrawStreak {
			return out[i].NoDrawStreak > out[j].NoDrawStreak
		}
		return out[i].Position < out[j].Position
	})
	return out
}
