package fixture

import (
	"math"
	"strings"
	"time"
)

// Candidate is one upcoming match parsed from a fixtures table.
type Candidate struct {
	KickoffAt time.Time `json:"kickoff_at"`
	DateText  string    `json:"date_text"`
	TimeText  string    `json:"time_text"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
}

// Involves reports whether team appears in either side's name, ignoring case.
func (c Candidate) Involves(team string) bool {
	needle := strings.ToLower(strings.TrimSpace(team))
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.HomeTeam), needle) ||
		strings.Contains(strings.ToLower(c.AwayTeam), needle)
}

// DaysUntil rounds the remaining time up to whole days.
func (c Candidate) DaysUntil(now time.Time) int {
	return int(math.Ceil(c.KickoffAt.Sub(now).Hours() / 24))
}

// Earliest returns the candidate with the soonest kickoff. Ties keep the first one.
func Earliest(items []Candidate) (Candidate, bool) {
	if len(items) == 0 {
		return Candidate{}, false
	}
	best := items[0]
	for _, item := range items[1:] {
		if item.KickoffAt.Before(best.KickoffAt) {
			best = item
		}
	}
	return best, true
}
