package season

import (
	"fmt"
	"time"

	"github.com/riskibarqy/season-engine/internal/domain/fixture"
	"github.com/riskibarqy/season-engine/internal/domain/match"
	"github.com/riskibarqy/season-engine/internal/domain/standing"
	"github.com/riskibarqy/season-engine/internal/platform/random"
)

// MaxPeerGoals bounds the synthesized score of a simulated peer match.
const MaxPeerGoals = 3

const skipWeekNote = "Week simulated, VAR not used."

// WeekResult is the user's outcome for the current week.
type WeekResult struct {
	OpponentID    string
	UserGoals     int
	OpponentGoals int
	VarLog        []match.VarEntry
}

// FromMatch adapts a finished match result.
func FromMatch(r match.Result) WeekResult {
	return WeekResult{
		OpponentID:    r.OpponentID,
		UserGoals:     r.UserGoals,
		OpponentGoals: r.OpponentGoals,
		VarLog:        r.VarLog,
	}
}

// SkipResult is the auto-draw recorded when the user skips a week.
func SkipResult(opponentID string) WeekResult {
	return WeekResult{
		OpponentID: opponentID,
		VarLog:     []match.VarEntry{match.NoteEntry(skipWeekNote)},
	}
}

// ApplyWeek folds the user's result and every simulated peer match of
// the current week into the table, re-ranks it, awards the trophy after
// the final week when the user is top, marks the week played and moves
// to the next week. The input is never modified.
//
// Peer scores are two independent draws in 0..MaxPeerGoals per fixture,
// taken in calendar order.
func ApplyWeek(s State, result WeekResult, rng random.Source, now time.Time) (State, error) {
	if s.Complete() {
		return s, ErrSeasonComplete
	}
	userFixture, ok := s.UserFixture()
	if !ok {
		return s, fmt.Errorf("%w: week=%d", ErrNoFixture, s.Week)
	}
	if opponent := userFixture.Opponent(s.UserTeamID); opponent != result.OpponentID {
		return s, fmt.Errorf("%w: got=%s want=%s", ErrOpponentMismatch, result.OpponentID, opponent)
	}

	next := s.Clone()
	if !standing.ApplyResult(next.Table, s.UserTeamID, result.OpponentID, result.UserGoals, result.OpponentGoals) {
		return s, fmt.Errorf("%w: %s", ErrUnknownTeam, result.OpponentID)
	}

	for _, f := range fixture.ForWeek(s.Fixtures, s.Week) {
		if f.Involves(s.UserTeamID) {
			continue
		}
		homeGoals := rng.Intn(MaxPeerGoals + 1)
		awayGoals := rng.Intn(MaxPeerGoals + 1)
		if !standing.ApplyResult(next.Table, f.HomeTeamID, f.AwayTeamID, homeGoals, awayGoals) {
			return s, fmt.Errorf("%w: fixture %s-%s", ErrUnknownTeam, f.HomeTeamID, f.AwayTeamID)
		}
	}
	standing.Sort(next.Table)

	next.VarLog = append(make([]match.VarEntry, 0, len(result.VarLog)), result.VarLog...)

	if s.Week == s.LastWeek() && len(next.Table) > 0 && next.Table[0].TeamID == s.UserTeamID {
		next.Trophies = append(next.Trophies, s.TrophyTitle())
	}

	next.Fixtures = fixture.MarkWeekPlayed(next.Fixtures, s.Week)
	next.Week = s.Week + 1
	next.UpdatedAt = now
	return next, nil
}

// AdvanceWithoutFixture moves past a week in which the user has no
// fixture. Standings are untouched.
func AdvanceWithoutFixture(s State, now time.Time) (State, error) {
	if s.Complete() {
		return s, ErrSeasonComplete
	}
	next := s.Clone()
	next.Week = s.Week + 1
	next.UpdatedAt = now
	return next, nil
}
