package usecase

import (
	"testing"

	"github.com/riskibarqy/no-draw-tracker/internal/domain/standing"
	"github.com/stretchr/testify/require"
)

func querySnapshot() standing.Snapshot {
	return standing.Snapshot{Teams: []standing.TeamRecord{
		team("Super League", "Olympiakos", 1, 3),
		team("Super League", "PAOK", 2, 5),
		team("Super League", "AEK", 3, 0),
		team("Premier League", "Arsenal", 1, 5),
		team("Premier League", "Chelsea", 2, 3),
		team("Serie A", "Inter", 2, 5),
		team("Serie A", "Napoli", 1, 3),
	}}
}

func names(items []standing.TeamRecord) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestQuery_SortsByStreakThenPositionStably(t *testing.T) {
	t.Parallel()

	got := Query(querySnapshot(), QueryInput{Competition: AllCompetitions})
	require.Equal(t, []string{"Arsenal", "PAOK", "Inter", "Olympiakos", "Napoli", "Chelsea", "AEK"}, names(got))

	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		if a.NoDrawStreak < b.NoDrawStreak || (a.NoDrawStreak == b.NoDrawStreak && a.Position > b.Position) {
			t.Fatalf("ordering violated between %s and %s", a.Name, b.Name)
		}
	}
}

func TestQuery_FiltersByMinStreakAndCompetition(t *testing.T) {
	t.Parallel()

	got := Query(querySnapshot(), QueryInput{Competition: "Super League", MinStreak: 3})
	require.Equal(t, []string{"PAOK", "Olympiakos"}, names(got))

	require.Empty(t, Query(querySnapshot(), QueryInput{Competition: "super league"}))
	require.Len(t, Query(querySnapshot(), QueryInput{}), 7)
	require.Empty(t, Query(querySnapshot(), QueryInput{MinStreak: 6}))
}

func TestQuery_IsIdempotentAndDoesNotMutate(t *testing.T) {
	t.Parallel()

	snap := querySnapshot()
	original := names(snap.Teams)

	first := Query(snap, QueryInput{MinStreak: 1})
	second := Query(snap, QueryInput{MinStreak: 1})
	require.Equal(t, first, second)
	require.Equal(t, original, names(snap.Teams))
}
