package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/team"
	"github.com/riskibarqy/season-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/season-engine/internal/platform/random"
)

var testNow = time.Date(2026, 4, 4, 18, 30, 0, 0, time.UTC)

type sequentialIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequentialIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("season-%d", g.next), nil
}

func testRoster(teamID string, rating int) []player.Player {
	positions := []player.Position{player.PositionGoalkeeper, player.PositionDefender, player.PositionMidfielder, player.PositionAttacker}
	out := make([]player.Player, 0, len(positions))
	for i, pos := range positions {
		out = append(out, player.Player{
			ID:       fmt.Sprintf("%s-p%d", teamID, i+1),
			Name:     fmt.Sprintf("%s %d", pos, i+1),
			Position: pos,
			Rating:   rating,
			Value:    2_000_000,
			Age:      25,
		})
	}
	return out
}

// testTeams is a four-club league. With the circle schedule team-a meets
// team-d in week one.
func testTeams() []team.Team {
	return []team.Team{
		{ID: "team-a", Name: "Alpha", Roster: testRoster("team-a", 80)},
		{ID: "team-b", Name: "Bravo", Roster: testRoster("team-b", 70)},
		{ID: "team-c", Name: "Charlie", Roster: testRoster("team-c", 60)},
		{ID: "team-d", Name: "Delta", Roster: testRoster("team-d", 50)},
	}
}

func testMarket() []player.Player {
	return []player.Player{
		{ID: "fa-01", Name: "Cheap Keeper", Position: player.PositionGoalkeeper, Rating: 70, Value: 1_000_000, Age: 30},
		{ID: "fa-02", Name: "Star Forward", Position: player.PositionAttacker, Rating: 89, Value: 90_000_000, Age: 27},
	}
}

type seasonFixture struct {
	service *SeasonService
	seasons *memory.SeasonRepository
}

func newSeasonFixture(t *testing.T, seed int64) seasonFixture {
	t.Helper()

	seasons := memory.NewSeasonRepository()
	svc := NewSeasonService(
		memory.NewTeamRepository(testTeams()),
		memory.NewMarketRepository(testMarket()),
		seasons,
		&sequentialIDs{},
		random.NewSeeded(seed),
		SeasonConfig{LeagueName: "Test League", StartingBudget: 10_000_000},
		nil,
	)
	svc.now = func() time.Time { return testNow }
	return seasonFixture{service: svc, seasons: seasons}
}

func (f seasonFixture) start(t *testing.T, teamID string) string {
	t.Helper()

	state, err := f.service.Start(context.Background(), teamID)
	if err != nil {
		t.Fatalf("start season: %v", err)
	}
	return state.ID
}
