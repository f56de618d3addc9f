package fixture

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func teamIDs(n int) []string {
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		ids = append(ids, fmt.Sprintf("team-%02d", i))
	}
	return ids
}

func TestSchedule_DoubleRoundRobinInvariants(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 4, 6, 10, 20} {
		ids := teamIDs(n)
		fixtures := Schedule(ids)

		if got, want := len(fixtures), n*(n-1); got != want {
			t.Fatalf("n=%d fixture count: got=%d want=%d", n, got, want)
		}
		if got, want := LastWeek(fixtures), WeekCount(n); got != want {
			t.Fatalf("n=%d week count: got=%d want=%d", n, got, want)
		}

		ordered := make(map[[2]string]int)
		for week := 1; week <= WeekCount(n); week++ {
			weekFixtures := ForWeek(fixtures, week)
			if len(weekFixtures) != n/2 {
				t.Fatalf("n=%d week %d: got=%d fixtures want=%d", n, week, len(weekFixtures), n/2)
			}
			busy := make(map[string]bool)
			for _, f := range weekFixtures {
				if f.HomeTeamID == f.AwayTeamID {
					t.Fatalf("n=%d week %d: team plays itself: %s", n, week, f.HomeTeamID)
				}
				if busy[f.HomeTeamID] || busy[f.AwayTeamID] {
					t.Fatalf("n=%d week %d: team scheduled twice", n, week)
				}
				busy[f.HomeTeamID] = true
				busy[f.AwayTeamID] = true
				ordered[[2]string{f.HomeTeamID, f.AwayTeamID}]++
			}
		}

		for _, home := range ids {
			for _, away := range ids {
				if home == away {
					continue
				}
				if got := ordered[[2]string{home, away}]; got != 1 {
					t.Fatalf("n=%d pair %s-%s: got=%d want=1", n, home, away, got)
				}
			}
		}
	}
}

func TestSchedule_SecondHalfMirrorsFirst(t *testing.T) {
	t.Parallel()

	n := 8
	fixtures := Schedule(teamIDs(n))
	for week := 1; week < n; week++ {
		first := ForWeek(fixtures, week)
		second := ForWeek(fixtures, week+n-1)
		if len(first) != len(second) {
			t.Fatalf("week %d: mirrored round size differs", week)
		}
		for i := range first {
			if first[i].HomeTeamID != second[i].AwayTeamID || first[i].AwayTeamID != second[i].HomeTeamID {
				t.Fatalf("week %d slot %d: got=%+v want reverse of %+v", week, i, second[i], first[i])
			}
		}
	}
}

func TestSchedule_FirstRoundPairing(t *testing.T) {
	t.Parallel()

	got := ForWeek(Schedule([]string{"A", "B", "C", "D"}), 1)
	want := []Fixture{
		{Week: 1, HomeTeamID: "A", AwayTeamID: "D"},
		{Week: 1, HomeTeamID: "B", AwayTeamID: "C"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected first round: got=%+v want=%+v", got, want)
	}
}

func TestSchedule_Deterministic(t *testing.T) {
	t.Parallel()

	ids := teamIDs(20)
	if !reflect.DeepEqual(Schedule(ids), Schedule(ids)) {
		t.Fatalf("expected identical schedules for identical input")
	}
}

func TestSchedule_TooFewTeams(t *testing.T) {
	t.Parallel()

	if got := Schedule(nil); len(got) != 0 {
		t.Fatalf("expected empty schedule, got %d fixtures", len(got))
	}
	if got := Schedule([]string{"solo"}); len(got) != 0 {
		t.Fatalf("expected empty schedule, got %d fixtures", len(got))
	}
}

func TestBuildSeason_Validation(t *testing.T) {
	t.Parallel()

	if _, err := BuildSeason([]string{"A", "B", "C"}); !errors.Is(err, ErrOddTeamCount) {
		t.Fatalf("expected ErrOddTeamCount, got %v", err)
	}
	if _, err := BuildSeason([]string{"A", "A"}); !errors.Is(err, ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam, got %v", err)
	}
	if _, err := BuildSeason([]string{"A"}); !errors.Is(err, ErrTooFewTeams) {
		t.Fatalf("expected ErrTooFewTeams, got %v", err)
	}
	fixtures, err := BuildSeason([]string{"A", "B"})
	if err != nil {
		t.Fatalf("build season: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("unexpected fixture count: got=%d want=2", len(fixtures))
	}
}

func TestFixtureHelpers(t *testing.T) {
	t.Parallel()

	fixtures := Schedule([]string{"A", "B", "C", "D"})
	f, ok := FindForTeam(fixtures, 2, "B")
	if !ok {
		t.Fatalf("expected fixture for B in week 2")
	}
	if got := f.Opponent("B"); got != "D" {
		t.Fatalf("unexpected opponent: got=%s want=D", got)
	}
	if got := f.Opponent("Z"); got != "" {
		t.Fatalf("expected empty opponent for outsider, got %s", got)
	}

	marked := MarkWeekPlayed(fixtures, 2)
	for _, fx := range marked {
		if fx.Played != (fx.Week == 2) {
			t.Fatalf("unexpected played flag on %+v", fx)
		}
	}
	for _, fx := range fixtures {
		if fx.Played {
			t.Fatalf("MarkWeekPlayed mutated its input")
		}
	}
}
