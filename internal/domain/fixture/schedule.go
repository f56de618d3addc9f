package fixture

import (
	"errors"
	"fmt"
)

var (
	ErrOddTeamCount  = errors.New("fixture: team count must be even")
	ErrTooFewTeams   = errors.New("fixture: at least two teams are required")
	ErrDuplicateTeam = errors.New("fixture: duplicate team id")
)

// WeekCount is the number of weeks in a double round-robin of n teams.
func WeekCount(n int) int {
	if n < 2 {
		return 0
	}
	return 2 * (n - 1)
}

// Schedule builds a double round-robin calendar with the circle method.
//
// The first id is held fixed and the rest form a rotating sequence. In
// each round the fixed team hosts the last element of the sequence and
// element i hosts element len-2-i, mirroring the sequence without its
// last element. After every round the last element moves to the front.
// Rounds n..2(n-1) replay rounds 1..n-1 with home and away swapped.
//
// teamIDs must have an even length; use BuildSeason for validated input.
// Fewer than two teams yields no fixtures. Output depends only on the
// order of teamIDs.
func Schedule(teamIDs []string) []Fixture {
	n := len(teamIDs)
	if n < 2 {
		return []Fixture{}
	}

	fixed := teamIDs[0]
	rotating := make([]string, n-1)
	copy(rotating, teamIDs[1:])

	rounds := n - 1
	perRound := n / 2
	firstHalf := make([]Fixture, 0, rounds*perRound)

	for round := 1; round <= rounds; round++ {
		last := len(rotating) - 1
		firstHalf = append(firstHalf, Fixture{Week: round, HomeTeamID: fixed, AwayTeamID: rotating[last]})
		for i := 0; i < perRound-1; i++ {
			firstHalf = append(firstHalf, Fixture{
				Week:       round,
				HomeTeamID: rotating[i],
				AwayTeamID: rotating[last-1-i],
			})
		}

		tail := rotating[last]
		copy(rotating[1:], rotating[:last])
		rotating[0] = tail
	}

	out := make([]Fixture, 0, 2*len(firstHalf))
	out = append(out, firstHalf...)
	for _, f := range firstHalf {
		out = append(out, Fixture{
			Week:       f.Week + rounds,
			HomeTeamID: f.AwayTeamID,
			AwayTeamID: f.HomeTeamID,
		})
	}

	return out
}

// BuildSeason validates teamIDs and returns their Schedule.
func BuildSeason(teamIDs []string) ([]Fixture, error) {
	if len(teamIDs) < 2 {
		return nil, ErrTooFewTeams
	}
	if len(teamIDs)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddTeamCount, len(teamIDs))
	}
	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id == "" {
			return nil, fmt.Errorf("fixture: empty team id")
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTeam, id)
		}
		seen[id] = struct{}{}
	}

	return Schedule(teamIDs), nil
}
