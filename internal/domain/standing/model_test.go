package standing

import (
	"testing"
	"time"
)

func TestNoDrawStreak(t *testing.T) {
	t.Parallel()

	cases := []struct {
		form string
		want int
	}{
		{form: "WWLDW", want: 3},
		{form: "DWWL", want: 0},
		{form: "WWWW", want: 4},
		{form: "", want: 0},
		{form: "LLL", want: 3},
		{form: "WXD", want: 2},
	}

	for _, tc := range cases {
		got := NoDrawStreak(tc.form)
		if got != tc.want {
			t.Fatalf("NoDrawStreak(%q)=%d, want %d", tc.form, got, tc.want)
		}
		if got > len(tc.form) {
			t.Fatalf("NoDrawStreak(%q)=%d exceeds form length", tc.form, got)
		}
	}
}

func TestSnapshot_CloneDoesNotShareTeams(t *testing.T) {
	t.Parallel()

	original := Snapshot{
		Teams:     []TeamRecord{{Name: "Volos", Position: 1}},
		FetchedAt: time.Date(2025, time.December, 1, 10, 0, 0, 0, time.UTC),
	}
	cloned := original.Clone()
	cloned.Teams[0].Name = "changed"

	if original.Teams[0].Name != "Volos" {
		t.Fatalf("clone shares backing array with original")
	}
	if !cloned.FetchedAt.Equal(original.FetchedAt) {
		t.Fatalf("clone lost timestamp")
	}
}
