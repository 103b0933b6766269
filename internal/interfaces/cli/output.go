package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/no-draw-tracker/external/soccerstats"
	"github.com/riskibarqy/no-draw-tracker/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

var rule = strings.Repeat("=", 60)

func parseFormat(raw string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(raw))); format {
	case FormatText, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", raw)
	}
}

// Report is the outcome of one lookup.
type Report struct {
	Team        string     `json:"team"`
	CheckedAt   time.Time  `json:"checked_at"`
	Found       bool       `json:"found"`
	Competition string     `json:"competition,omitempty"`
	Country     string     `json:"country,omitempty"`
	HomeTeam    string     `json:"home_team,omitempty"`
	AwayTeam    string     `json:"away_team,omitempty"`
	Date        string     `json:"date,omitempty"`
	Time        string     `json:"time,omitempty"`
	KickoffAt   *time.Time `json:"kickoff_at,omitempty"`
	DaysUntil   int        `json:"days_until,omitempty"`
	Tomorrow    bool       `json:"tomorrow"`
}

func newReport(team string, match usecase.NextMatch, found bool) Report {
	report := Report{Team: team, CheckedAt: match.CheckedAt, Found: found}
	if !found {
		if report.CheckedAt.IsZero() {
			report.CheckedAt = time.Now()
		}
		return report
	}

	kickoff := match.Fixture.KickoffAt
	report.Competition = match.Competition.Name
	report.Country = match.Competition.Country
	report.HomeTeam = match.Fixture.HomeTeam
	report.AwayTeam = match.Fixture.AwayTeam
	report.Date = match.Fixture.DateText
	report.Time = match.Fixture.TimeText
	report.KickoffAt = &kickoff
	report.DaysUntil = match.DaysUntil()
	report.Tomorrow = match.IsTomorrow()
	return report
}

func writeReport(w io.Writer, report Report, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, report)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(parts ...string) {
		for _, part := range parts {
			_, _ = buf.WriteString(part)
		}
		_ = buf.WriteByte('\n')
	}

	line("Checking next match for: ", report.Team)
	line(rule)
	if !report.Found {
		line("NO UPCOMING MATCH FOUND")
		line(`No upcoming fixtures found for "`, report.Team, `" in any competition.`)
		line(rule)
		_, err := w.Write(buf.B)
		return err
	}

	line("NEXT MATCH FOUND")
	line(rule)
	line("League:      ", report.Competition, " (", report.Country, ")")
	line("Match:       ", report.HomeTeam, " vs ", report.AwayTeam)
	line("Date:        ", report.Date)
	line("Time:        ", report.Time)
	line("Full Date:   ", report.KickoffAt.Format("Mon 2 Jan 2006 15:04 MST"))
	line("Days until:  ", strconv.Itoa(report.DaysUntil), " day(s)")
	line(rule)
	if report.Tomorrow {
		line("NOTIFICATION: Match is TOMORROW!")
	} else {
		line("Match is in ", strconv.Itoa(report.DaysUntil), " days (no notification needed)")
	}

	_, err := w.Write(buf.B)
	return err
}

func writeDebugRows(w io.Writer, pageURL string, rows []soccerstats.DebugRow, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, rows)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = fmt.Fprintf(buf, "Fixture rows on %s: %d\n", pageURL, len(rows))
	for _, row := range rows {
		_, _ = fmt.Fprintf(buf, "\nRow %d:\n", row.Number)
		for _, cell := range row.Cells {
			_, _ = fmt.Fprintf(buf, "  Cell %d: %q\n", cell.Index, cell.Text)
			if cell.HTML != "" {
				_, _ = fmt.Fprintf(buf, "    HTML: %s\n", cell.HTML)
			}
		}
	}

	_, err := w.Write(buf.B)
	return err
}

func writeJSON(w io.Writer, v any) error {
	payload, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	payload = append(payload, '\n')
	_, err = w.Write(payload)
	return err
}
