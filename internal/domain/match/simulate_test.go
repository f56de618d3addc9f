package match

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/platform/random"
)

func squad(rating int, names ...string) []player.Player {
	out := make([]player.Player, 0, len(names))
	for _, name := range names {
		out = append(out, player.Player{ID: name + "-id", Name: name, Position: player.PositionAttacker, Rating: rating})
	}
	return out
}

func fixtureLineups() (Lineup, Lineup) {
	user := Lineup{TeamID: "home", TeamName: "Home FC", Players: squad(80, "Striker", "Winger")}
	opponent := Lineup{TeamID: "away", TeamName: "Away United", Players: squad(50, "Defender")}
	return user, opponent
}

// firstSlotGoal scripts a user goal in slot one followed by quiet slots.
func firstSlotGoal(review, decision float64) *random.Scripted {
	return &random.Scripted{
		// jitter, user luck, opponent luck, event roll, chance roll, review roll, decision roll
		Floats: []float64{0, 0, 0, 0.9, 0.9, review, decision},
		Ints:   []int{0},
	}
}

func TestKickoff_ReviewAnnulsGoal(t *testing.T) {
	t.Parallel()

	user, opponent := fixtureLineups()
	state, _ := New(user, opponent)

	next, events, err := Kickoff(state, DefaultRules(), firstSlotGoal(0.1, 0.1))
	if err != nil {
		t.Fatalf("kickoff: %v", err)
	}
	if next.Score != (Score{}) {
		t.Fatalf("annulled goal must not count: got=%+v", next.Score)
	}
	if len(next.VarLog) != 1 {
		t.Fatalf("unexpected var log size: got=%d want=1", len(next.VarLog))
	}
	entry := next.VarLog[0]
	if entry.Outcome != OutcomeAnnulled || entry.Scorer != "Striker" || entry.Team != "Home FC" {
		t.Fatalf("unexpected var entry: %+v", entry)
	}
	if entry.Minute != 9 {
		t.Fatalf("unexpected var minute: got=%d want=9", entry.Minute)
	}
	if next.Phase != PhaseHalftime {
		t.Fatalf("unexpected phase: got=%s want=%s", next.Phase, PhaseHalftime)
	}

	var sawReviewPause bool
	for _, ev := range events {
		if ev.Kind == EventReviewAnnulled {
			sawReviewPause = ev.Pace == PaceReview
		}
	}
	if !sawReviewPause {
		t.Fatalf("expected the review decision to carry the review pause")
	}
}

func TestKickoff_ReviewConfirmsGoal(t *testing.T) {
	t.Parallel()

	user, opponent := fixtureLineups()
	state, _ := New(user, opponent)

	next, _, err := Kickoff(state, DefaultRules(), firstSlotGoal(0.1, 0.9))
	if err != nil {
		t.Fatalf("kickoff: %v", err)
	}
	if next.Score.User != 1 || next.Score.Opponent != 0 {
		t.Fatalf("unexpected score: got=%+v want=1-0", next.Score)
	}
	if len(next.VarLog) != 1 || next.VarLog[0].Outcome != OutcomeConfirmed {
		t.Fatalf("unexpected var log: %+v", next.VarLog)
	}
}

func TestKickoff_UnreviewedGoalCountsImmediately(t *testing.T) {
	t.Parallel()

	user, opponent := fixtureLineups()
	state, _ := New(user, opponent)
	rng := &random.Scripted{
		Floats: []float64{0, 0, 0, 0.9, 0.9, 0.5},
		Ints:   []int{1},
	}

	next, _, err := Kickoff(state, DefaultRules(), rng)
	if err != nil {
		t.Fatalf("kickoff: %v", err)
	}
	if next.Score.User != 1 {
		t.Fatalf("unexpected score: got=%+v want=1-0", next.Score)
	}
	if len(next.VarLog) != 0 {
		t.Fatalf("unreviewed goals must not produce var entries: %+v", next.VarLog)
	}
	if !strings.Contains(next.Log[0].Text, "Winger") {
		t.Fatalf("expected scorer picked by index, got %q", next.Log[0].Text)
	}
}

func TestKickoff_EqualStrengthShootsWide(t *testing.T) {
	t.Parallel()

	user := Lineup{TeamID: "a", TeamName: "A", Players: squad(70, "One")}
	opponent := Lineup{TeamID: "b", TeamName: "B", Players: squad(70, "Two")}
	state, _ := New(user, opponent)
	rng := &random.Scripted{Floats: []float64{0, 0.5, 0.5, 0.9, 0.99}}

	next, _, err := Kickoff(state, DefaultRules(), rng)
	if err != nil {
		t.Fatalf("kickoff: %v", err)
	}
	if next.Score != (Score{}) {
		t.Fatalf("unexpected score: %+v", next.Score)
	}
	if next.Log[0].Text != textShotOffTarget {
		t.Fatalf("unexpected first log: got=%q want=%q", next.Log[0].Text, textShotOffTarget)
	}
}

func TestKickoff_EmptyRosterUsesDefaultsAndPlaceholder(t *testing.T) {
	t.Parallel()

	user := Lineup{TeamID: "a", TeamName: "A", Players: []player.Player{}}
	opponent := Lineup{TeamID: "b", TeamName: "B", Players: squad(50, "Two")}
	state, events := New(user, opponent)
	if len(events) != 0 || state.Phase != PhasePre {
		t.Fatalf("empty roster is not a walkover: phase=%s events=%d", state.Phase, len(events))
	}
	// user 50+9 beats opponent 50+0; no scorer draw for an empty roster.
	rng := &random.Scripted{Floats: []float64{0, 0.9, 0, 0.9, 0.9, 0.5}}

	next, _, err := Kickoff(state, DefaultRules(), rng)
	if err != nil {
		t.Fatalf("kickoff: %v", err)
	}
	if next.Score.User != 1 {
		t.Fatalf("unexpected score: %+v", next.Score)
	}
	if !strings.Contains(next.Log[0].Text, UnknownScorer) {
		t.Fatalf("expected placeholder scorer, got %q", next.Log[0].Text)
	}
}

func TestNew_MissingOpponentIsWalkover(t *testing.T) {
	t.Parallel()

	user, _ := fixtureLineups()
	state, events := New(user, Lineup{TeamID: "ghost", TeamName: "Ghost"})

	if state.Phase != PhaseWalkover {
		t.Fatalf("unexpected phase: got=%s want=%s", state.Phase, PhaseWalkover)
	}
	if len(state.Log) != 1 || len(events) != 1 {
		t.Fatalf("expected exactly one log entry: log=%d events=%d", len(state.Log), len(events))
	}
	for _, ev := range events {
		if ev.Phase == PhaseFirstHalf {
			t.Fatalf("walkover must never enter the first half")
		}
	}
	result, ok := state.Result()
	if !ok || !result.Walkover || result.UserGoals != 0 || result.OpponentGoals != 0 {
		t.Fatalf("unexpected walkover result: %+v ok=%v", result, ok)
	}
	if _, _, err := Kickoff(state, DefaultRules(), random.NewSeeded(1)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestFullMatch_PhasesAndReplay(t *testing.T) {
	t.Parallel()

	user, opponent := fixtureLineups()
	rules := DefaultRules()
	rng := random.NewSeeded(2024)

	pre, _ := New(user, opponent)
	if _, _, err := StartSecondHalf(pre, rules, rng); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected second half from pre to fail, got %v", err)
	}

	half, firstEvents, err := Kickoff(pre, rules, rng)
	if err != nil {
		t.Fatalf("kickoff: %v", err)
	}
	if _, ok := half.Result(); ok {
		t.Fatalf("result must not be available at halftime")
	}
	if half.Log[len(half.Log)-1].Text != textFirstHalfEnd {
		t.Fatalf("expected halftime marker, got %q", half.Log[len(half.Log)-1].Text)
	}

	final, secondEvents, err := StartSecondHalf(half, rules, rng)
	if err != nil {
		t.Fatalf("second half: %v", err)
	}
	if final.Phase != PhaseFinished || final.Minute != 90 {
		t.Fatalf("unexpected final state: phase=%s minute=%d", final.Phase, final.Minute)
	}
	if _, _, err := Kickoff(final, rules, rng); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected kickoff after full time to fail, got %v", err)
	}
	if len(pre.Log) != 0 {
		t.Fatalf("transitions must not mutate their input")
	}

	replayed := pre
	for _, ev := range append(firstEvents, secondEvents...) {
		if ev.Kind == EventPhaseStart || ev.Kind == EventFlavour || ev.Kind == EventShotOffTarget || ev.Kind == EventGoal {
			if ev.Phase == PhaseFirstHalf && (ev.Minute < 0 || ev.Minute > 45) {
				t.Fatalf("first half event outside 0..45: %d", ev.Minute)
			}
			if ev.Phase == PhaseSecondHalf && (ev.Minute < 45 || ev.Minute > 90) {
				t.Fatalf("second half event outside 45..90: %d", ev.Minute)
			}
		}
		replayed = replayed.Apply(ev)
	}
	if !reflect.DeepEqual(replayed, final) {
		t.Fatalf("replaying events diverged from the final state")
	}

	confirmed := 0
	for _, v := range final.VarLog {
		if v.Outcome == OutcomeConfirmed {
			confirmed++
		}
	}
	if confirmed > final.Score.User+final.Score.Opponent {
		t.Fatalf("more confirmed reviews than goals: %d > %+v", confirmed, final.Score)
	}
}

func TestRecentLog_NewestFirst(t *testing.T) {
	t.Parallel()

	s := State{Log: []LogEntry{{Minute: 1, Text: "a"}, {Minute: 2, Text: "b"}, {Minute: 3, Text: "c"}}}
	got := s.RecentLog(2)
	if len(got) != 2 || got[0].Text != "c" || got[1].Text != "b" {
		t.Fatalf("unexpected recent log: %+v", got)
	}
}
