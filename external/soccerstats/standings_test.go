package soccerstats

import (
	"errors"
	"testing"

	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
)

var greece = competition.Source{
	URL:     "https://www.soccerstats.com/latest.asp?league=greece",
	Name:    "Super League",
	Country: "Greece",
	Season:  "2024-2025",
}

func TestExtractStandings_ParsesRowsAndForm(t *testing.T) {
	t.Parallel()

	page := standingsPage(
		standingRow("1", "Olympiakos", "12", "9", "2", "1", formCell("dgreen", "dgreen", "dred", "dorange", "dgreen")),
		standingRow("2.", " PAOK ", "n/a", "8", "", "2", formCell("dorange", "dgreen", "dgreen", "dred")),
		standingRow("Average", "League average", "12", "5", "3", "4", formCell("dgreen")),
		standingRow("3", "X", "12", "5", "3", "4", formCell("dgreen")),
		"<tr><td>4</td><td>Short Row</td><td>1</td><td>1</td><td>0</td><td>0</td><td>1</td><td>1</td><td>0</td><td>3</td></tr>",
		standingRow("5", "AEK Athens", "12", "7", "3", "2", formCell("dgreen", "dorange", "dred", "zzz")),
		standingRow("6 average", "Fake", "12", "5", "3", "4", formCell("dgreen")),
		standingRow("0", "Zero", "12", "5", "3", "4", formCell("dgreen")),
	)

	got, err := ExtractStandings([]byte(page), greece)
	if err != nil {
		t.Fatalf("extract standings: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d: %+v", len(got), got)
	}

	first := got[0]
	if first.Name != "Olympiakos" || first.Position != 1 || first.TotalGames != 12 || first.Wins != 9 || first.Draws != 2 || first.Losses != 1 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Form != "WWLDW" || first.NoDrawStreak != 3 {
		t.Fatalf("unexpected form/streak: %q/%d", first.Form, first.NoDrawStreak)
	}
	if first.LeagueName != "Super League" || first.Country != "Greece" {
		t.Fatalf("unexpected competition tags: %+v", first)
	}

	second := got[1]
	if second.Name != "PAOK" || second.Position != 2 {
		t.Fatalf("unexpected second record: %+v", second)
	}
	if second.TotalGames != 0 || second.Draws != 0 {
		t.Fatalf("expected unparsable counts to default to zero: %+v", second)
	}
	if second.Form != "DWWL" || second.NoDrawStreak != 0 {
		t.Fatalf("unexpected form/streak: %q/%d", second.Form, second.NoDrawStreak)
	}

	third := got[2]
	if third.Name != "AEK Athens" || third.Form != "WDL" || third.NoDrawStreak != 1 {
		t.Fatalf("unexpected third record: %+v", third)
	}
}

func TestExtractStandings_StreakNeverExceedsForm(t *testing.T) {
	t.Parallel()

	page := standingsPage(
		standingRow("1", "Team A", "1", "1", "0", "0", formCell("dgreen", "dgreen", "dgreen", "dgreen")),
		standingRow("2", "Team B", "1", "1", "0", "0", formCell()),
	)
	got, err := ExtractStandings([]byte(page), greece)
	if err != nil {
		t.Fatalf("extract standings: %v", err)
	}
	for _, item := range got {
		if item.NoDrawStreak > len(item.Form) {
			t.Fatalf("streak %d exceeds form %q", item.NoDrawStreak, item.Form)
		}
	}
	if got[0].NoDrawStreak != 4 || got[1].Form != "" || got[1].NoDrawStreak != 0 {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestExtractStandings_MissingLandmark(t *testing.T) {
	t.Parallel()

	page := `<html><body><div><table id="btable"><tr><td>1</td></tr></table></div></body></html>`
	got, err := ExtractStandings([]byte(page), greece)
	if !errors.Is(err, ErrStandingsTableNotFound) {
		t.Fatalf("expected ErrStandingsTableNotFound, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestExtractStandings_LandmarkMustBeFollowedByDiv(t *testing.T) {
	t.Parallel()

	page := `<html><body><label for="LTAB_1">Overall</label><span><table id="btable"></table></span></body></html>`
	if _, err := ExtractStandings([]byte(page), greece); !errors.Is(err, ErrStandingsTableNotFound) {
		t.Fatalf("expected ErrStandingsTableNotFound, got %v", err)
	}
}

func TestLeadingInt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"12.", 12, true},
		{" 7abc", 7, true},
		{"-3", -3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"+", 0, false},
	}
	for _, tc := range cases {
		got, ok := leadingInt(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("leadingInt(%q)=(%d,%v), want (%d,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
