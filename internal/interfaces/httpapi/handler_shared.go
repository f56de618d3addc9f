package httpapi

import (
	"math"
	"time"

	"github.com/riskibarqy/season-engine/internal/domain/fixture"
	"github.com/riskibarqy/season-engine/internal/domain/match"
	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/season"
	"github.com/riskibarqy/season-engine/internal/domain/standing"
	"github.com/riskibarqy/season-engine/internal/domain/team"
	"github.com/riskibarqy/season-engine/internal/usecase"
)

type startSeasonRequest struct {
	TeamID string `json:"teamId" validate:"required,max=64"`
}

type teamDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	TeamColor []string `json:"teamColor,omitempty"`
}

type teamDetailDTO struct {
	Team     teamDTO         `json:"team"`
	Strength float64         `json:"strength"`
	Roster   []player.Player `json:"roster"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	IsUser         bool   `json:"isUser"`
}

type fixtureDTO struct {
	Week       int    `json:"week"`
	HomeTeamID string `json:"homeTeamId"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeamID string `json:"awayTeamId"`
	AwayTeam   string `json:"awayTeam"`
	Played     bool   `json:"played"`
}

type seasonDTO struct {
	ID               string          `json:"id"`
	UserTeamID       string          `json:"userTeamId"`
	LeagueName       string          `json:"leagueName"`
	Year             int             `json:"year"`
	Week             int             `json:"week"`
	LastWeek         int             `json:"lastWeek"`
	Complete         bool            `json:"complete"`
	Position         int             `json:"position"`
	Budget           int64           `json:"budget"`
	TransferExpenses int64           `json:"transferExpenses"`
	Trophies         []string        `json:"trophies"`
	NextFixture      *fixtureDTO     `json:"nextFixture,omitempty"`
	Table            []standingDTO   `json:"table"`
	MyPlayers        []player.Player `json:"myPlayers"`
	VarLog           []varEntryDTO   `json:"varLog"`
	UpdatedAt        string          `json:"updatedAt"`
}

type varEntryDTO struct {
	Minute  int           `json:"minute"`
	Scorer  string        `json:"scorer,omitempty"`
	Team    string        `json:"team,omitempty"`
	Outcome match.Outcome `json:"outcome"`
	Note    string        `json:"note,omitempty"`
	Text    string        `json:"text"`
}

type logEntryDTO struct {
	Minute int    `json:"minute"`
	Text   string `json:"text"`
	Line   string `json:"line"`
}

type matchDTO struct {
	SeasonID         string        `json:"seasonId"`
	Week             int           `json:"week"`
	HomeTeamID       string        `json:"homeTeamId"`
	UserTeam         string        `json:"userTeam"`
	OpponentTeam     string        `json:"opponentTeam"`
	Phase            match.Phase   `json:"phase"`
	Minute           int           `json:"minute"`
	UserGoals        int           `json:"userGoals"`
	OpponentGoals    int           `json:"opponentGoals"`
	Log              []logEntryDTO `json:"log"`
	VarLog           []varEntryDTO `json:"varLog"`
	Revealing        bool          `json:"revealing"`
	Abandoned        bool          `json:"abandoned"`
	Commentary       string        `json:"commentary,omitempty"`
	CommentaryStatus string        `json:"commentaryStatus"`
}

type transferDTO struct {
	Player player.Player `json:"player"`
	Amount int64         `json:"amount"`
	Budget int64         `json:"budget"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		TeamColor: teamColorArray(v.PrimaryColor, v.SecondaryColor),
	}
}

func teamColorArray(primary, secondary string) []string {
	out := make([]string, 0, 2)
	if primary != "" {
		out = append(out, primary)
	}
	if secondary != "" {
		out = append(out, secondary)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func standingsToDTO(entries []standing.Entry, userTeamID string, names map[string]string) []standingDTO {
	out := make([]standingDTO, 0, len(entries))
	for i, e := range entries {
		out = append(out, standingDTO{
			Position:       i + 1,
			TeamID:         e.TeamID,
			TeamName:       nameOrID(names, e.TeamID),
			Played:         e.Played,
			Won:            e.Won,
			Drawn:          e.Drawn,
			Lost:           e.Lost,
			GoalsFor:       e.GoalsFor,
			GoalsAgainst:   e.GoalsAgainst,
			GoalDifference: e.GoalDifference(),
			Points:         e.Points,
			IsUser:         e.TeamID == userTeamID,
		})
	}
	return out
}

func fixtureToDTO(f fixture.Fixture, names map[string]string) fixtureDTO {
	return fixtureDTO{
		Week:       f.Week,
		HomeTeamID: f.HomeTeamID,
		HomeTeam:   nameOrID(names, f.HomeTeamID),
		AwayTeamID: f.AwayTeamID,
		AwayTeam:   nameOrID(names, f.AwayTeamID),
		Played:     f.Played,
	}
}

func fixturesToDTO(items []fixture.Fixture, names map[string]string) []fixtureDTO {
	out := make([]fixtureDTO, 0, len(items))
	for _, f := range items {
		out = append(out, fixtureToDTO(f, names))
	}
	return out
}

func varLogToDTO(items []match.VarEntry) []varEntryDTO {
	out := make([]varEntryDTO, 0, len(items))
	for _, v := range items {
		out = append(out, varEntryDTO{
			Minute:  v.Minute,
			Scorer:  v.Scorer,
			Team:    v.Team,
			Outcome: v.Outcome,
			Note:    v.Note,
			Text:    v.String(),
		})
	}
	return out
}

func seasonToDTO(s season.State, names map[string]string) seasonDTO {
	out := seasonDTO{
		ID:               s.ID,
		UserTeamID:       s.UserTeamID,
		LeagueName:       s.LeagueName,
		Year:             s.Year,
		Week:             s.Week,
		LastWeek:         s.LastWeek(),
		Complete:         s.Complete(),
		Position:         s.Position(s.UserTeamID),
		Budget:           s.Budget,
		TransferExpenses: s.TransferExpenses,
		Trophies:         append(make([]string, 0, len(s.Trophies)), s.Trophies...),
		Table:            standingsToDTO(s.Table, s.UserTeamID, names),
		MyPlayers:        s.MyPlayers,
		VarLog:           varLogToDTO(s.VarLog),
		UpdatedAt:        formatTime(s.UpdatedAt),
	}
	if f, ok := s.UserFixture(); ok {
		next := fixtureToDTO(f, names)
		out.NextFixture = &next
	}
	return out
}

func matchToDTO(v usecase.MatchSnapshot) matchDTO {
	logs := make([]logEntryDTO, 0, len(v.Log))
	for _, entry := range v.Log {
		logs = append(logs, logEntryDTO{Minute: entry.Minute, Text: entry.Text, Line: entry.String()})
	}
	return matchDTO{
		SeasonID:         v.SeasonID,
		Week:             v.Week,
		HomeTeamID:       v.HomeTeamID,
		UserTeam:         v.UserTeam,
		OpponentTeam:     v.OpponentTeam,
		Phase:            v.Phase,
		Minute:           v.Minute,
		UserGoals:        v.Score.User,
		OpponentGoals:    v.Score.Opponent,
		Log:              logs,
		VarLog:           varLogToDTO(v.VarLog),
		Revealing:        v.Revealing,
		Abandoned:        v.Abandoned,
		Commentary:       v.Commentary,
		CommentaryStatus: string(v.CommentaryStatus),
	}
}

func nameOrID(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
