package fixture

import (
	"strconv"
	"strings"
	"time"
)

var monthByAbbrev = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// ResolveKickoff turns a partial date like "Sat 6 Dec" and a time like "18:30" into
// an absolute time in now's location. The weekday token is not validated.
//
// The year starts as now's year. A result that is not after now moves to the next
// year only when its month is January through June; July through December dates are
// left in the past and get filtered out by callers.
func ResolveKickoff(dateText, timeText string, now time.Time) (time.Time, bool) {
	parts := strings.Fields(dateText)
	if len(parts) < 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := monthByAbbrev[parts[2]]
	if !ok {
		return time.Time{}, false
	}

	hour, minute := parseClock(timeText)
	kickoff := time.Date(now.Year(), month, day, hour, minute, 0, 0, now.Location())
	if !kickoff.After(now) && month < time.July {
		kickoff = kickoff.AddDate(1, 0, 0)
	}

	return kickoff, true
}

func parseClock(v string) (int, int) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	hour, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	minute := 0
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return hour, minute
}
