package season

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/season-engine/internal/domain/fixture"
	"github.com/riskibarqy/season-engine/internal/domain/match"
	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/standing"
)

var (
	ErrSeasonComplete    = errors.New("season: all weeks have been played")
	ErrNoFixture         = errors.New("season: no fixture for the user this week")
	ErrOpponentMismatch  = errors.New("season: result opponent does not match the fixture")
	ErrUnknownTeam       = errors.New("season: team is not part of the league")
	ErrInsufficientFunds = errors.New("season: insufficient funds")
	ErrPlayerNotFound    = errors.New("season: player not found")
)

// State is the whole persisted season. It is sufficient to resume play.
type State struct {
	ID               string            `json:"id"`
	UserTeamID       string            `json:"userTeamId"`
	LeagueName       string            `json:"leagueName"`
	Year             int               `json:"year"`
	Week             int               `json:"week"`
	Table            []standing.Entry  `json:"table"`
	Fixtures         []fixture.Fixture `json:"fixtures"`
	Trophies         []string          `json:"trophies"`
	VarLog           []match.VarEntry  `json:"varLog"`
	MyPlayers        []player.Player   `json:"myPlayers"`
	Market           []player.Player   `json:"market"`
	Budget           int64             `json:"budget"`
	TransferExpenses int64             `json:"transferExpenses"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Params describes a season about to start.
type Params struct {
	ID         string
	UserTeamID string
	LeagueName string
	Year       int
	TeamIDs    []string
	MyPlayers  []player.Player
	Market     []player.Player
	Budget     int64
	Now        time.Time
}

// New builds week one of a season: fixtures, a zeroed table and the
// user's starting roster.
func New(p Params) (State, error) {
	if p.ID == "" {
		return State{}, fmt.Errorf("season id is required")
	}
	fixtures, err := fixture.BuildSeason(p.TeamIDs)
	if err != nil {
		return State{}, err
	}

	table := standing.NewTable(p.TeamIDs)
	if standing.IndexOf(table, p.UserTeamID) < 0 {
		return State{}, fmt.Errorf("%w: %s", ErrUnknownTeam, p.UserTeamID)
	}
	standing.Sort(table)

	return State{
		ID:         p.ID,
		UserTeamID: p.UserTeamID,
		LeagueName: p.LeagueName,
		Year:       p.Year,
		Week:       1,
		Table:      table,
		Fixtures:   fixtures,
		Trophies:   []string{},
		VarLog:     []match.VarEntry{},
		MyPlayers:  clonePlayers(p.MyPlayers),
		Market:     clonePlayers(p.Market),
		Budget:     p.Budget,
		CreatedAt:  p.Now,
		UpdatedAt:  p.Now,
	}, nil
}

// LastWeek is the final scheduled week.
func (s State) LastWeek() int {
	return fixture.LastWeek(s.Fixtures)
}

// Complete reports whether every scheduled week has been played.
func (s State) Complete() bool {
	return s.Week > s.LastWeek()
}

// UserFixture returns the user's fixture for the current week.
func (s State) UserFixture() (fixture.Fixture, bool) {
	return fixture.FindForTeam(s.Fixtures, s.Week, s.UserTeamID)
}

// Position returns the 1-based table position of teamID, or 0.
func (s State) Position(teamID string) int {
	return standing.IndexOf(s.Table, teamID) + 1
}

// TrophyTitle is the trophy label awarded for this season.
func (s State) TrophyTitle() string {
	return fmt.Sprintf("%s - Season %d", s.LeagueName, s.Year)
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Table = standing.Clone(s.Table)
	out.Fixtures = append(make([]fixture.Fixture, 0, len(s.Fixtures)), s.Fixtures...)
	out.Trophies = append(make([]string, 0, len(s.Trophies)+1), s.Trophies...)
	out.VarLog = append(make([]match.VarEntry, 0, len(s.VarLog)), s.VarLog...)
	out.MyPlayers = clonePlayers(s.MyPlayers)
	out.Market = clonePlayers(s.Market)
	return out
}

func clonePlayers(in []player.Player) []player.Player {
	return append(make([]player.Player, 0, len(in)), in...)
}
