package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/platform/random"
)

// Rules holds the engine's tuning constants.
//
// A slot is significant when its event roll exceeds SignificantThreshold;
// the stronger side then scores when its chance roll exceeds
// ChanceThreshold. A goal is reviewed with ReviewProbability and stands
// when the decision roll exceeds AnnulThreshold. RecentLogSize bounds the
// log excerpt handed to commentary.
type Rules struct {
	EventsPerHalf        int
	HalfLength           int
	MinuteJitter         float64
	LuckRange            float64
	DefaultStrength      float64
	SignificantThreshold float64
	ChanceThreshold      float64
	ReviewProbability    float64
	AnnulThreshold       float64
	RecentLogSize        int
}

func DefaultRules() Rules {
	return Rules{
		EventsPerHalf:        5,
		HalfLength:           45,
		MinuteJitter:         5,
		LuckRange:            10,
		DefaultStrength:      50,
		SignificantThreshold: 0.6,
		ChanceThreshold:      0.45,
		ReviewProbability:    0.25,
		AnnulThreshold:       0.2,
		RecentLogSize:        10,
	}
}

var flavourTexts = [...]string{
	"Neat passing move in midfield.",
	"The crowd is singing loudly in the stands!",
	"Scrappy game, plenty of fouls.",
	"The manager calls for calm from the touchline.",
}

const (
	textShotOffTarget  = "Dangerous shot goes wide!"
	textFirstHalfEnd   = "--- END OF FIRST HALF ---"
	textReviewStarted  = "The referee puts a hand to the earpiece. VAR check in progress..."
	textReviewStands   = "VAR: the goal stands! Play on."
	textReviewAnnulled = "VAR: GOAL DISALLOWED! Offside."
	textWalkover       = "Match cancelled: opponent data unavailable. Walkover recorded as 0-0."
	noteWalkover       = "Match cancelled because of a data error"
)

// Strength is the mean rating of players, or fallback when empty.
func Strength(players []player.Player, fallback float64) float64 {
	return player.AverageRating(players, fallback)
}

// New prepares a match between the user's lineup and the opponent. When
// the opponent's roster is missing the match resolves immediately to a
// 0-0 walkover and the returned events describe that resolution.
func New(user, opponent Lineup) (State, []Event) {
	s := State{
		Phase:    PhasePre,
		User:     user,
		Opponent: opponent,
		Log:      []LogEntry{},
		VarLog:   []VarEntry{},
	}
	if !opponent.Missing() {
		return s, nil
	}

	var b builder
	b.state = s
	b.state.Phase = PhaseWalkover
	b.log(EventWalkover, PaceNone, textWalkover)
	note := NoteEntry(noteWalkover)
	b.state.VarLog = append(b.state.VarLog, note)
	b.events[len(b.events)-1].Var = &note
	return b.state, b.events
}

// Kickoff plays the first half. It requires PhasePre.
func Kickoff(s State, rules Rules, rng random.Source) (State, []Event, error) {
	if s.Phase != PhasePre {
		return s, nil, fmt.Errorf("%w: kickoff from %s", ErrInvalidTransition, s.Phase)
	}
	next := s.clone()
	next.Score = Score{}
	next.VarLog = []VarEntry{}
	next, events := playHalf(next, 1, rules, rng)
	return next, events, nil
}

// StartSecondHalf plays the second half. It requires PhaseHalftime.
func StartSecondHalf(s State, rules Rules, rng random.Source) (State, []Event, error) {
	if s.Phase != PhaseHalftime {
		return s, nil, fmt.Errorf("%w: second half from %s", ErrInvalidTransition, s.Phase)
	}
	next, events := playHalf(s.clone(), 2, rules, rng)
	return next, events, nil
}

// builder accumulates events while mutating a private State copy.
type builder struct {
	state  State
	events []Event
}

func (b *builder) emit(kind EventKind, pace Pace, entry *LogEntry, v *VarEntry) {
	b.events = append(b.events, Event{
		Kind:   kind,
		Pace:   pace,
		Phase:  b.state.Phase,
		Minute: b.state.Minute,
		Score:  b.state.Score,
		Log:    entry,
		Var:    v,
	})
}

func (b *builder) log(kind EventKind, pace Pace, text string) {
	entry := LogEntry{Minute: b.state.Minute, Text: text}
	b.state.Log = append(b.state.Log, entry)
	b.emit(kind, pace, &entry, nil)
}

func playHalf(s State, half int, rules Rules, rng random.Source) (State, []Event) {
	b := builder{state: s}

	start := (half - 1) * rules.HalfLength
	end := half * rules.HalfLength
	if half == 1 {
		b.state.Phase = PhaseFirstHalf
	} else {
		b.state.Phase = PhaseSecondHalf
	}
	b.state.Minute = start
	b.emit(EventPhaseStart, PaceNone, nil, nil)

	userBase := Strength(s.User.Players, rules.DefaultStrength)
	opponentBase := Strength(s.Opponent.Players, rules.DefaultStrength)
	interval := float64(end-start) / float64(rules.EventsPerHalf)

	for i := 1; i <= rules.EventsPerHalf; i++ {
		minute := int(math.Floor(float64(start) + float64(i)*interval - rng.Float64()*rules.MinuteJitter))
		if minute < start {
			minute = start
		}
		b.state.Minute = minute

		userEff := userBase + rng.Float64()*rules.LuckRange
		opponentEff := opponentBase + rng.Float64()*rules.LuckRange

		if rng.Float64() > rules.SignificantThreshold {
			chance := rng.Float64()
			switch {
			case userEff > opponentEff && chance > rules.ChanceThreshold:
				b.goal(SideUser, rules, rng)
			case opponentEff > userEff && chance > rules.ChanceThreshold:
				b.goal(SideOpponent, rules, rng)
			default:
				b.log(EventShotOffTarget, PaceSlot, textShotOffTarget)
			}
			continue
		}
		b.log(EventFlavour, PaceSlot, flavourTexts[rng.Intn(len(flavourTexts))])
	}

	b.state.Minute = end
	if half == 1 {
		b.state.Phase = PhaseHalftime
		b.log(EventHalftime, PaceNone, textFirstHalfEnd)
	} else {
		b.state.Phase = PhaseFinished
		b.emit(EventFullTime, PaceNone, nil, nil)
	}

	return b.state, b.events
}

func (b *builder) goal(side Side, rules Rules, rng random.Source) {
	lineup := b.state.lineup(side)
	scorer := UnknownScorer
	if n := len(lineup.Players); n > 0 {
		if name := strings.TrimSpace(lineup.Players[rng.Intn(n)].Name); name != "" {
			scorer = name
		}
	}
	teamName := lineup.TeamName
	if teamName == "" {
		teamName = lineup.TeamID
	}

	announce := fmt.Sprintf("GOAL FOR %s! %s finds the net!", strings.ToUpper(teamName), scorer)
	if rng.Float64() >= rules.ReviewProbability {
		b.score(side)
		b.log(EventGoal, PaceSlot, announce)
		return
	}

	b.log(EventGoal, PaceSlot, announce)
	b.log(EventReviewStarted, PaceNone, textReviewStarted)

	entry := VarEntry{Minute: b.state.Minute, Scorer: scorer, Team: teamName}
	if rng.Float64() > rules.AnnulThreshold {
		entry.Outcome = OutcomeConfirmed
		b.score(side)
		b.state.VarLog = append(b.state.VarLog, entry)
		b.log(EventReviewConfirmed, PaceReview, textReviewStands)
	} else {
		entry.Outcome = OutcomeAnnulled
		b.state.VarLog = append(b.state.VarLog, entry)
		b.log(EventReviewAnnulled, PaceReview, textReviewAnnulled)
	}
	b.events[len(b.events)-1].Var = &entry
}

func (b *builder) score(side Side) {
	if side == SideUser {
		b.state.Score.User++
		return
	}
	b.state.Score.Opponent++
}
