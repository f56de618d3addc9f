package match

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/season-engine/internal/domain/player"
)

// Phase is the match state machine position.
type Phase string

const (
	PhasePre        Phase = "pre"
	PhaseFirstHalf  Phase = "first_half"
	PhaseHalftime   Phase = "halftime"
	PhaseSecondHalf Phase = "second_half"
	PhaseFinished   Phase = "finished"
	// PhaseWalkover is terminal and bypasses the four playing phases.
	PhaseWalkover Phase = "walkover"
)

// Done reports whether the match has a final result.
func (p Phase) Done() bool {
	return p == PhaseFinished || p == PhaseWalkover
}

// Side identifies one of the two teams from the user's point of view.
type Side string

const (
	SideUser     Side = "user"
	SideOpponent Side = "opponent"
)

// Outcome of a video review.
type Outcome string

const (
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeAnnulled  Outcome = "annulled"
	// OutcomeNone marks note-only entries where no review took place.
	OutcomeNone Outcome = "none"
)

// UnknownScorer is credited when the scoring roster is empty or a player
// has no name.
const UnknownScorer = "Unknown Player"

var ErrInvalidTransition = errors.New("match: invalid phase transition")

// Lineup is one side's team identity and the players whose ratings feed
// its strength. A nil Players slice means the roster data is missing.
type Lineup struct {
	TeamID   string          `json:"teamId"`
	TeamName string          `json:"teamName"`
	Players  []player.Player `json:"players"`
}

// Missing reports whether the lineup cannot be simulated at all.
func (l Lineup) Missing() bool {
	return l.TeamID == "" || l.Players == nil
}

type Score struct {
	User     int `json:"user"`
	Opponent int `json:"opponent"`
}

// LogEntry is a minute-stamped narrative line.
type LogEntry struct {
	Minute int    `json:"minute"`
	Text   string `json:"text"`
}

func (l LogEntry) String() string {
	return fmt.Sprintf("%d' - %s", l.Minute, l.Text)
}

// VarEntry records one reviewed goal, or a note when no review ran.
type VarEntry struct {
	Minute  int     `json:"minute"`
	Scorer  string  `json:"scorer,omitempty"`
	Team    string  `json:"team,omitempty"`
	Outcome Outcome `json:"outcome"`
	Note    string  `json:"note,omitempty"`
}

func (v VarEntry) String() string {
	switch v.Outcome {
	case OutcomeConfirmed:
		return fmt.Sprintf("%d' - Goal by %s (%s) confirmed by VAR", v.Minute, v.Scorer, v.Team)
	case OutcomeAnnulled:
		return fmt.Sprintf("%d' - Goal by %s (%s) ruled out by VAR", v.Minute, v.Scorer, v.Team)
	default:
		return v.Note
	}
}

// NoteEntry builds a note-only VAR log line.
func NoteEntry(note string) VarEntry {
	return VarEntry{Outcome: OutcomeNone, Note: note}
}

// State is an immutable match snapshot. Transition functions return a
// new State and never modify their argument.
type State struct {
	Phase    Phase      `json:"phase"`
	Minute   int        `json:"minute"`
	Score    Score      `json:"score"`
	Log      []LogEntry `json:"log"`
	VarLog   []VarEntry `json:"varLog"`
	User     Lineup     `json:"user"`
	Opponent Lineup     `json:"opponent"`
}

func (s State) clone() State {
	out := s
	out.Log = make([]LogEntry, len(s.Log), len(s.Log)+1)
	copy(out.Log, s.Log)
	out.VarLog = make([]VarEntry, len(s.VarLog), len(s.VarLog)+1)
	copy(out.VarLog, s.VarLog)
	return out
}

func (s State) lineup(side Side) Lineup {
	if side == SideUser {
		return s.User
	}
	return s.Opponent
}

// RecentLog returns up to n log entries, newest first.
func (s State) RecentLog(n int) []LogEntry {
	if n > len(s.Log) {
		n = len(s.Log)
	}
	out := make([]LogEntry, 0, n)
	for i := len(s.Log) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.Log[i])
	}
	return out
}

// Result is what a finished match hands to the season aggregator.
type Result struct {
	OpponentID    string     `json:"opponentId"`
	UserGoals     int        `json:"userGoals"`
	OpponentGoals int        `json:"opponentGoals"`
	VarLog        []VarEntry `json:"varLog"`
	Walkover      bool       `json:"walkover"`
}

// Result returns the final result once the phase is done.
func (s State) Result() (Result, bool) {
	if !s.Phase.Done() {
		return Result{}, false
	}
	return Result{
		OpponentID:    s.Opponent.TeamID,
		UserGoals:     s.Score.User,
		OpponentGoals: s.Score.Opponent,
		VarLog:        append([]VarEntry(nil), s.VarLog...),
		Walkover:      s.Phase == PhaseWalkover,
	}, true
}

// EventKind classifies an Event for presentation.
type EventKind string

const (
	EventPhaseStart      EventKind = "phase_start"
	EventFlavour         EventKind = "flavour"
	EventShotOffTarget   EventKind = "shot_off_target"
	EventGoal            EventKind = "goal"
	EventReviewStarted   EventKind = "review_started"
	EventReviewConfirmed EventKind = "review_confirmed"
	EventReviewAnnulled  EventKind = "review_annulled"
	EventHalftime        EventKind = "halftime"
	EventFullTime        EventKind = "full_time"
	EventWalkover        EventKind = "walkover"
)

// Pace names the presentation pause that precedes an event.
type Pace string

const (
	PaceNone   Pace = ""
	PaceSlot   Pace = "slot"
	PaceReview Pace = "review"
)

// Event is one observable step of a simulation. Applying events in order
// to the previous snapshot yields the State the simulation returned.
type Event struct {
	Kind   EventKind `json:"kind"`
	Pace   Pace      `json:"pace,omitempty"`
	Phase  Phase     `json:"phase"`
	Minute int       `json:"minute"`
	Score  Score     `json:"score"`
	Log    *LogEntry `json:"log,omitempty"`
	Var    *VarEntry `json:"var,omitempty"`
}

// Apply folds ev into s. It is used by presenters that reveal events one
// at a time.
func (s State) Apply(ev Event) State {
	out := s.clone()
	out.Phase = ev.Phase
	out.Minute = ev.Minute
	out.Score = ev.Score
	if ev.Log != nil {
		out.Log = append(out.Log, *ev.Log)
	}
	if ev.Var != nil {
		out.VarLog = append(out.VarLog, *ev.Var)
	}
	return out
}
