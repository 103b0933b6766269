package standing

import (
	"strings"
	"time"
)

// Result codes used in a form string.
const (
	ResultWin  = 'W'
	ResultDraw = 'D'
	ResultLoss = 'L'
)

// TeamRecord is one scraped standings row for a team.
type TeamRecord struct {
	Name         string `json:"name"`
	Position     int    `json:"position"`
	TotalGames   int    `json:"total_games"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	Form         string `json:"form"`
	NoDrawStreak int    `json:"no_draw_streak"`
	LeagueName   string `json:"league_name"`
	Country      string `json:"country"`
}

// NoDrawStreak counts the characters of form before the first draw.
// Form is most-recent-first, so this is the current run without a draw.
func NoDrawStreak(form string) int {
	if idx := strings.IndexByte(form, ResultDraw); idx >= 0 {
		return idx
	}
	return len(form)
}

// CompetitionOutcome records how one competition contributed to a snapshot.
type CompetitionOutcome struct {
	Name  string `json:"name"`
	Teams int    `json:"teams"`
	Error string `json:"error,omitempty"`
}

// Snapshot is one merged, timestamped aggregation of every competition's standings.
type Snapshot struct {
	Teams        []TeamRecord
	Competitions []CompetitionOutcome
	FetchedAt    time.Time
}

func (s Snapshot) IsZero() bool {
	return s.FetchedAt.IsZero()
}

// Clone returns a snapshot whose slices are not shared with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{FetchedAt: s.FetchedAt}
	if s.Teams != nil {
		out.Teams = make([]TeamRecord, len(s.Teams))
		copy(out.Teams, s.Teams)
	}
	if s.Competitions != nil {
		out.Competitions = make([]CompetitionOutcome, len(s.Competitions))
		copy(out.Competitions, s.Competitions)
	}
	return out
}

// TeamsByLeague groups records by competition name preserving record order.
func (s Snapshot) TeamsByLeague() map[string][]TeamRecord {
	out := make(map[string][]TeamRecord, len(s.Competitions))
	for _, item := range s.Teams {
		out[item.LeagueName] = append(out[item.LeagueName], item)
	}
	return out
}
