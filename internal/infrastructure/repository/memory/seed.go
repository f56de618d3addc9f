package memory

import (
	"fmt"

	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/team"
	"github.com/riskibarqy/season-engine/internal/platform/random"
)

var seedTeamNames = []string{
	"Flamengo", "Palmeiras", "São Paulo", "Corinthians", "Atlético-MG",
	"Fluminense", "Grêmio", "Internacional", "Botafogo", "Vasco",
	"Cruzeiro", "Bahia", "Fortaleza", "Athletico-PR", "Santos",
	"Bragantino", "Cuiabá", "Criciúma", "Juventude", "Vitória",
}

var rosterShape = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender, player.PositionDefender, player.PositionDefender, player.PositionDefender,
	player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder,
	player.PositionAttacker, player.PositionAttacker, player.PositionAttacker,
}

var positionLabels = map[player.Position]string{
	player.PositionGoalkeeper: "Goalkeeper",
	player.PositionDefender:   "Defender",
	player.PositionMidfielder: "Midfielder",
	player.PositionAttacker:   "Forward",
}

// SeedTeams builds the 20-club catalogue. Rosters are drawn from rng, so
// the same seed always yields the same squads.
func SeedTeams(rng random.Source) []team.Team {
	out := make([]team.Team, 0, len(seedTeamNames))
	for i, name := range seedTeamNames {
		teamID := fmt.Sprintf("team-%02d", i+1)
		roster := make([]player.Player, 0, len(rosterShape))
		for slot, pos := range rosterShape {
			roster = append(roster, player.Player{
				ID:       fmt.Sprintf("%s-p%02d", teamID, slot+1),
				Name:     fmt.Sprintf("%s %d (%s)", positionLabels[pos], slot+1, name),
				Position: pos,
				Rating:   random.IntRange(rng, 65, 85),
				Value:    int64(random.IntRange(rng, 1_000_000, 10_000_000)),
				Age:      random.IntRange(rng, 18, 35),
			})
		}
		out = append(out, team.Team{
			ID:             teamID,
			Name:           name,
			PrimaryColor:   "#ff0000",
			SecondaryColor: "#000000",
			Roster:         roster,
		})
	}
	return out
}

// SeedMarket is the initial free-agent pool.
func SeedMarket() []player.Player {
	return []player.Player{
		{ID: "fa-01", Name: "Gabriel Barbosa", Position: player.PositionAttacker, Rating: 84, Value: 15_000_000, Age: 27},
		{ID: "fa-02", Name: "Arrascaeta", Position: player.PositionMidfielder, Rating: 88, Value: 20_000_000, Age: 29},
		{ID: "fa-03", Name: "Hulk", Position: player.PositionAttacker, Rating: 85, Value: 12_000_000, Age: 37},
		{ID: "fa-04", Name: "Lucas Moura", Position: player.PositionMidfielder, Rating: 82, Value: 10_000_000, Age: 31},
		{ID: "fa-05", Name: "Endrick", Position: player.PositionAttacker, Rating: 80, Value: 40_000_000, Age: 17},
		{ID: "fa-06", Name: "Payet", Position: player.PositionMidfielder, Rating: 81, Value: 8_000_000, Age: 36},
		{ID: "fa-07", Name: "Veiga", Position: player.PositionMidfielder, Rating: 86, Value: 18_000_000, Age: 28},
		{ID: "fa-08", Name: "Cássio", Position: player.PositionGoalkeeper, Rating: 79, Value: 5_000_000, Age: 36},
		{ID: "fa-09", Name: "Marcelo", Position: player.PositionDefender, Rating: 81, Value: 6_000_000, Age: 35},
		{ID: "fa-10", Name: "Suárez (Icon)", Position: player.PositionAttacker, Rating: 89, Value: 25_000_000, Age: 36},
	}
}
