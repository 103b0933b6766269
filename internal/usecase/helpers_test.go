package usecase

import (
	"sync"
	"time"

	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/standing"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, time.December, 5, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testCatalog() competition.Catalog {
	return competition.NewCatalog([]competition.Source{
		{URL: "https://www.soccerstats.com/latest.asp?league=greece", Name: "Super League", Country: "Greece"},
		{URL: "https://www.soccerstats.com/latest.asp?league=england", Name: "Premier League", Country: "England"},
		{URL: "https://www.soccerstats.com/latest.asp?league=italy", Name: "Serie A", Country: "Italy"},
	})
}

func team(league, name string, position, streak int) standing.TeamRecord {
	return standing.TeamRecord{
		Name:         name,
		Position:     position,
		NoDrawStreak: streak,
		LeagueName:   league,
	}
}
