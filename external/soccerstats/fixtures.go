package soccerstats

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/fixture"
)

var (
	fixtureDatePattern = regexp.MustCompile(`^[A-Za-z]{3}\s+\d{1,2}\s+[A-Za-z]{3}`)
	kickoffTimePattern = regexp.MustCompile(`\d{1,2}:\d{2}`)
	lineBreakPattern   = regexp.MustCompile(`(?i)<br\s*/?>`)
)

const teamSeparator = " - "

// ExtractUpcomingFixtures scans every table row of a league page for fixtures that
// still show a kickoff time and resolve to a moment strictly after now.
func ExtractUpcomingFixtures(html []byte, now time.Time) ([]fixture.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, crerr.Wrap(err, "parse fixtures page")
	}

	out := make([]fixture.Candidate, 0, 16)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		if item, ok := parseFixtureRow(row, now); ok {
			out = append(out, item)
		}
	})
	return out, nil
}

func parseFixtureRow(row *goquery.Selection, now time.Time) (fixture.Candidate, bool) {
	cells := row.Find("td")
	if cells.Length() < 2 {
		return fixture.Candidate{}, false
	}

	first := cellText(cells, 0)
	if !fixtureDatePattern.MatchString(first) {
		return fixture.Candidate{}, false
	}

	// Completed matches show a score instead of a kickoff time.
	timeText := kickoffTimePattern.FindString(first)
	if timeText == "" {
		return fixture.Candidate{}, false
	}
	dateText := strings.TrimSpace(strings.Replace(first, timeText, "", 1))

	home, away := splitParticipants(cells.Eq(1))
	if home == "" || away == "" {
		return fixture.Candidate{}, false
	}

	kickoff, ok := fixture.ResolveKickoff(dateText, timeText, now)
	if !ok || !kickoff.After(now) {
		return fixture.Candidate{}, false
	}

	return fixture.Candidate{
		KickoffAt: kickoff,
		DateText:  dateText,
		TimeText:  timeText,
		HomeTeam:  home,
		AwayTeam:  away,
	}, true
}

// splitParticipants reads "Home<br>Away" markup, falling back to "Home - Away" text.
func splitParticipants(cell *goquery.Selection) (string, string) {
	markup, err := cell.Html()
	if err == nil && lineBreakPattern.MatchString(markup) {
		parts := lineBreakPattern.Split(markup, -1)
		if len(parts) >= 2 {
			return fragmentText(parts[0]), fragmentText(parts[1])
		}
		return "", ""
	}

	text := strings.TrimSpace(cell.Text())
	if strings.Contains(text, teamSeparator) {
		parts := strings.Split(text, teamSeparator)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "", ""
}

func fragmentText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + markup + "</div>"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}
