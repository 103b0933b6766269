package soccerstats

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/standing"
)

// Layout of the "latest" league page.
const (
	standingsLandmark  = `label[for="LTAB_1"]`
	standingsTableID   = "#btable"
	standingsMinCells  = 11
	standingsFormCell  = 10
	minTeamNameRunes   = 2
	formWinClass       = "dgreen"
	formDrawClass      = "dorange"
	formLossClass      = "dred"
	averageRowFragment = "average"
)

var ErrStandingsTableNotFound = crerr.New("standings table not found")

// ExtractStandings reads the main standings table of a soccerstats league page.
// Malformed rows are skipped. A page without the table yields no records and
// ErrStandingsTableNotFound.
func ExtractStandings(html []byte, src competition.Source) ([]standing.TeamRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, crerr.Wrap(err, "parse standings page")
	}

	table := doc.Find(standingsLandmark).NextFiltered("div").Find(standingsTableID)
	if table.Length() == 0 {
		return nil, crerr.WithDetailf(ErrStandingsTableNotFound, "url=%s", src.URL)
	}

	records := make([]standing.TeamRecord, 0, 24)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if record, ok := parseStandingRow(row, src); ok {
			records = append(records, record)
		}
	})
	return records, nil
}

func parseStandingRow(row *goquery.Selection, src competition.Source) (standing.TeamRecord, bool) {
	cells := row.Find("td")
	if cells.Length() < standingsMinCells || row.Find("th").Length() > 0 {
		return standing.TeamRecord{}, false
	}

	positionText := cellText(cells, 0)
	position, ok := leadingInt(positionText)
	if !ok || position <= 0 || strings.Contains(strings.ToLower(positionText), averageRowFragment) {
		return standing.TeamRecord{}, false
	}

	name := cellText(cells, 1)
	if utf8.RuneCountInString(name) < minTeamNameRunes {
		return standing.TeamRecord{}, false
	}

	form := parseForm(cells.Eq(standingsFormCell))
	return standing.TeamRecord{
		Name:         name,
		Position:     position,
		TotalGames:   intOrZero(cellText(cells, 2)),
		Wins:         intOrZero(cellText(cells, 3)),
		Draws:        intOrZero(cellText(cells, 4)),
		Losses:       intOrZero(cellText(cells, 5)),
		Form:         form,
		NoDrawStreak: standing.NoDrawStreak(form),
		LeagueName:   src.Name,
		Country:      src.Country,
	}, true
}

// parseForm maps the coloured result markers to W/D/L in document order.
func parseForm(cell *goquery.Selection) string {
	var b strings.Builder
	cell.Find("div").Each(func(_ int, marker *goquery.Selection) {
		class, _ := marker.Attr("class")
		switch {
		case strings.Contains(class, formWinClass):
			b.WriteByte(standing.ResultWin)
		case strings.Contains(class, formDrawClass):
			b.WriteByte(standing.ResultDraw)
		case strings.Contains(class, formLossClass):
			b.WriteByte(standing.ResultLoss)
		}
	})
	return b.String()
}

func cellText(cells *goquery.Selection, idx int) string {
	return strings.TrimSpace(cells.Eq(idx).Text())
}

// leadingInt parses the integer prefix of s, so "1." and "12abc" are accepted.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	sign := 1
	if s != "" && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	return sign * n, true
}

func intOrZero(s string) int {
	n, _ := leadingInt(s)
	return n
}
