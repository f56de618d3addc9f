package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/season-engine/internal/domain/commentary"
	"github.com/riskibarqy/season-engine/internal/domain/match"
	"github.com/riskibarqy/season-engine/internal/domain/season"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"github.com/riskibarqy/season-engine/internal/platform/random"
	"github.com/sourcegraph/conc/panics"
)

// Pacer suspends between revealed events. A cancelled context must make
// Pause return promptly with the context error.
type Pacer interface {
	Pause(ctx context.Context, d time.Duration) error
}

type timerPacer struct{}

func NewTimerPacer() Pacer {
	return timerPacer{}
}

func (timerPacer) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// EventSink observes every event as it is revealed.
type EventSink func(ctx context.Context, seasonID string, ev match.Event)

type MatchConfig struct {
	Rules       match.Rules
	EventDelay  time.Duration
	ReviewDelay time.Duration
}

// MatchSnapshot is the live view of the current match.
type MatchSnapshot struct {
	SeasonID         string           `json:"seasonId"`
	Week             int              `json:"week"`
	HomeTeamID       string           `json:"homeTeamId"`
	UserTeam         string           `json:"userTeam"`
	OpponentTeam     string           `json:"opponentTeam"`
	Phase            match.Phase      `json:"phase"`
	Minute           int              `json:"minute"`
	Score            match.Score      `json:"score"`
	Log              []match.LogEntry `json:"log"`
	VarLog           []match.VarEntry `json:"varLog"`
	Revealing        bool             `json:"revealing"`
	Abandoned        bool             `json:"abandoned"`
	Commentary       string           `json:"commentary,omitempty"`
	CommentaryStatus CommentaryStatus `json:"commentaryStatus"`
}

type matchSession struct {
	mu sync.Mutex

	setup     MatchSetup
	core      match.State
	visible   match.State
	revealing bool
	abandoned bool
	revealed  chan struct{}

	commentary       string
	commentaryStatus CommentaryStatus
	commentaryDone   chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// MatchService drives one live match per season and hands the final
// result to the SeasonService on exit. Sessions live in memory only.
type MatchService struct {
	seasons    *SeasonService
	commentary *CommentaryService
	rng        random.Source
	cfg        MatchConfig
	pacer      Pacer
	sink       EventSink
	logger     *logging.Logger

	mu       sync.Mutex
	sessions map[string]*matchSession
}

func NewMatchService(
	seasons *SeasonService,
	commentarySvc *CommentaryService,
	rng random.Source,
	cfg MatchConfig,
	pacer Pacer,
	sink EventSink,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if pacer == nil {
		pacer = NewTimerPacer()
	}
	if sink == nil {
		sink = func(context.Context, string, match.Event) {}
	}
	if cfg.Rules.EventsPerHalf <= 0 {
		cfg.Rules = match.DefaultRules()
	}

	return &MatchService{
		seasons:    seasons,
		commentary: commentarySvc,
		rng:        random.NewLocked(rng),
		cfg:        cfg,
		pacer:      pacer,
		sink:       sink,
		logger:     logger,
		sessions:   make(map[string]*matchSession),
	}
}

// Prepare opens a match for the current week, replacing any earlier
// session of the season without committing it.
func (s *MatchService) Prepare(ctx context.Context, seasonID string) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Prepare")
	defer span.End()

	setup, err := s.seasons.PrepareMatch(ctx, seasonID)
	if err != nil {
		return MatchSnapshot{}, err
	}

	state, events := match.New(setup.User, setup.Opponent)
	sessCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess := &matchSession{
		setup:            setup,
		core:             state,
		visible:          state,
		revealed:         closedChan(),
		commentaryStatus: CommentaryNone,
		commentaryDone:   closedChan(),
		ctx:              sessCtx,
		cancel:           cancel,
	}

	s.mu.Lock()
	if prev, ok := s.sessions[setup.SeasonID]; ok {
		prev.abandon()
		s.logger.InfoContext(ctx, "match session replaced", "season_id", setup.SeasonID)
	}
	s.sessions[setup.SeasonID] = sess
	s.mu.Unlock()

	if state.Phase == match.PhaseWalkover {
		s.logger.WarnContext(ctx, "opponent data missing, match resolved as walkover",
			"season_id", setup.SeasonID,
			"week", setup.Week,
			"opponent_id", setup.Opponent.TeamID,
		)
		for _, ev := range events {
			s.sink(ctx, setup.SeasonID, ev)
		}
	}

	return sess.snapshot(), nil
}

// Kickoff starts the first half. Events are revealed in the background;
// use Await to wait for the half to finish.
func (s *MatchService) Kickoff(ctx context.Context, seasonID string) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Kickoff")
	defer span.End()

	return s.advance(ctx, seasonID, match.Kickoff)
}

// StartSecondHalf starts the second half once the halftime break has
// been revealed.
func (s *MatchService) StartSecondHalf(ctx context.Context, seasonID string) (MatchSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.StartSecondHalf")
	defer span.End()

	return s.advance(ctx, seasonID, match.StartSecondHalf)
}

type transition func(match.State, match.Rules, random.Source) (match.State, []match.Event, error)

func (s *MatchService) advance(ctx context.Context, seasonID string, step transition) (MatchSnapshot, error) {
	sess, err := s.session(seasonID)
	if err != nil {
		return MatchSnapshot{}, err
	}

	sess.mu.Lock()
	if sess.abandoned {
		sess.mu.Unlock()
		return MatchSnapshot{}, fmt.Errorf("%w: match was abandoned", ErrMatchState)
	}
	if sess.revealing {
		sess.mu.Unlock()
		return MatchSnapshot{}, fmt.Errorf("%w: half still in progress", ErrMatchState)
	}
	next, events, err := step(sess.core, s.cfg.Rules, s.rng)
	if err != nil {
		sess.mu.Unlock()
		return MatchSnapshot{}, fmt.Errorf("%w: %v", ErrMatchState, err)
	}
	sess.core = next
	sess.revealing = true
	done := make(chan struct{})
	sess.revealed = done
	sess.mu.Unlock()

	s.logger.InfoContext(ctx, "match half started",
		"season_id", sess.setup.SeasonID,
		"week", sess.setup.Week,
		"phase", next.Phase,
		"events", len(events),
	)

	go s.reveal(sess, events, done)
	return sess.snapshot(), nil
}

func (s *MatchService) reveal(sess *matchSession, events []match.Event, done chan struct{}) {
	defer close(done)

	for _, ev := range events {
		if d := s.delay(ev.Pace); d > 0 {
			if ev.Pace == match.PaceSlot {
				sess.mu.Lock()
				sess.visible.Minute = ev.Minute
				sess.mu.Unlock()
			}
			if err := s.pacer.Pause(sess.ctx, d); err != nil {
				sess.mu.Lock()
				sess.revealing = false
				sess.abandoned = true
				sess.mu.Unlock()
				s.logger.InfoContext(sess.ctx, "match abandoned mid-half", "season_id", sess.setup.SeasonID, "error", err)
				return
			}
		}

		sess.mu.Lock()
		sess.visible = sess.visible.Apply(ev)
		sess.mu.Unlock()
		s.sink(sess.ctx, sess.setup.SeasonID, ev)
	}

	sess.mu.Lock()
	sess.revealing = false
	finished := sess.visible.Phase == match.PhaseFinished
	sess.mu.Unlock()

	if finished {
		s.requestCommentary(sess)
	}
}

func (s *MatchService) delay(p match.Pace) time.Duration {
	switch p {
	case match.PaceSlot:
		return s.cfg.EventDelay
	case match.PaceReview:
		return s.cfg.ReviewDelay
	default:
		return 0
	}
}

// requestCommentary asks for a recap without blocking the caller. The
// final score is already visible; commentary arrives whenever it does.
func (s *MatchService) requestCommentary(sess *matchSession) {
	if s.commentary == nil {
		return
	}

	sess.mu.Lock()
	summary := sess.summary(s.cfg.Rules.RecentLogSize)
	sess.commentaryStatus = CommentaryPending
	done := make(chan struct{})
	sess.commentaryDone = done
	sess.mu.Unlock()

	go func() {
		defer close(done)

		text, status := commentary.FallbackMatch, CommentaryFallback
		recovered := panics.Try(func() {
			text, status = s.commentary.MatchRecap(context.WithoutCancel(sess.ctx), summary)
		})
		if recovered != nil {
			s.logger.Error("match commentary panicked", "season_id", sess.setup.SeasonID, "error", recovered.AsError())
			text, status = commentary.FallbackMatch, CommentaryFallback
		}

		sess.mu.Lock()
		sess.commentary = text
		sess.commentaryStatus = status
		sess.mu.Unlock()
	}()
}

// Await blocks until the half in progress has been fully revealed.
func (s *MatchService) Await(ctx context.Context, seasonID string) (MatchSnapshot, error) {
	sess, err := s.session(seasonID)
	if err != nil {
		return MatchSnapshot{}, err
	}
	sess.mu.Lock()
	done := sess.revealed
	sess.mu.Unlock()

	select {
	case <-ctx.Done():
		return MatchSnapshot{}, ctx.Err()
	case <-done:
		return sess.snapshot(), nil
	}
}

// AwaitCommentary blocks until the post-match recap is settled.
func (s *MatchService) AwaitCommentary(ctx context.Context, seasonID string) (MatchSnapshot, error) {
	sess, err := s.session(seasonID)
	if err != nil {
		return MatchSnapshot{}, err
	}
	sess.mu.Lock()
	revealed := sess.revealed
	sess.mu.Unlock()

	select {
	case <-ctx.Done():
		return MatchSnapshot{}, ctx.Err()
	case <-revealed:
	}

	sess.mu.Lock()
	done := sess.commentaryDone
	sess.mu.Unlock()

	select {
	case <-ctx.Done():
		return MatchSnapshot{}, ctx.Err()
	case <-done:
		return sess.snapshot(), nil
	}
}

// Snapshot returns the live view of the season's match.
func (s *MatchService) Snapshot(_ context.Context, seasonID string) (MatchSnapshot, error) {
	sess, err := s.session(seasonID)
	if err != nil {
		return MatchSnapshot{}, err
	}
	return sess.snapshot(), nil
}

// Exit commits a finished match to the season table and closes the
// session. Unfinished matches cannot be exited.
func (s *MatchService) Exit(ctx context.Context, seasonID string) (season.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Exit")
	defer span.End()

	sess, err := s.session(seasonID)
	if err != nil {
		return season.State{}, err
	}

	sess.mu.Lock()
	if sess.revealing || !sess.visible.Phase.Done() {
		phase := sess.visible.Phase
		sess.mu.Unlock()
		return season.State{}, fmt.Errorf("%w: match is not finished (phase=%s)", ErrMatchState, phase)
	}
	result, _ := sess.core.Result()
	week := sess.setup.Week
	sess.mu.Unlock()

	state, err := s.seasons.CommitMatch(ctx, sess.setup.SeasonID, week, result)
	if err != nil {
		return season.State{}, err
	}

	s.mu.Lock()
	if s.sessions[sess.setup.SeasonID] == sess {
		delete(s.sessions, sess.setup.SeasonID)
	}
	s.mu.Unlock()
	sess.cancel()

	s.logger.InfoContext(ctx, "match committed",
		"season_id", state.ID,
		"week", week,
		"score", fmt.Sprintf("%d-%d", result.UserGoals, result.OpponentGoals),
		"walkover", result.Walkover,
	)
	return state, nil
}

// Abandon drops the season's match without committing it.
func (s *MatchService) Abandon(_ context.Context, seasonID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[strings.TrimSpace(seasonID)]
	if ok {
		delete(s.sessions, sess.setup.SeasonID)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: no match in progress for season=%s", ErrNotFound, seasonID)
	}
	sess.abandon()
	return nil
}

func (s *MatchService) session(seasonID string) (*matchSession, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	s.mu.Lock()
	sess, ok := s.sessions[seasonID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: no match in progress for season=%s", ErrNotFound, seasonID)
	}
	return sess, nil
}

func (m *matchSession) abandon() {
	m.mu.Lock()
	if !m.visible.Phase.Done() {
		m.abandoned = true
	}
	m.mu.Unlock()
	m.cancel()
}

// summary keeps the last recent log entries in chronological order.
func (m *matchSession) summary(recent int) commentary.MatchSummary {
	entries := m.visible.Log[max(0, len(m.visible.Log)-max(recent, 0)):]
	moments := make([]string, 0, len(entries))
	for _, entry := range entries {
		moments = append(moments, entry.String())
	}

	out := commentary.MatchSummary{
		HomeTeam:   m.setup.User.TeamName,
		AwayTeam:   m.setup.Opponent.TeamName,
		HomeGoals:  m.visible.Score.User,
		AwayGoals:  m.visible.Score.Opponent,
		KeyMoments: moments,
	}
	if m.setup.HomeID == m.setup.Opponent.TeamID {
		out.HomeTeam, out.AwayTeam = out.AwayTeam, out.HomeTeam
		out.HomeGoals, out.AwayGoals = out.AwayGoals, out.HomeGoals
	}
	return out
}

func (m *matchSession) snapshot() MatchSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	varLog := append(make([]match.VarEntry, 0, len(m.visible.VarLog)), m.visible.VarLog...)
	return MatchSnapshot{
		SeasonID:         m.setup.SeasonID,
		Week:             m.setup.Week,
		HomeTeamID:       m.setup.HomeID,
		UserTeam:         m.setup.User.TeamName,
		OpponentTeam:     m.setup.Opponent.TeamName,
		Phase:            m.visible.Phase,
		Minute:           m.visible.Minute,
		Score:            m.visible.Score,
		Log:              m.visible.RecentLog(len(m.visible.Log)),
		VarLog:           varLog,
		Revealing:        m.revealing,
		Abandoned:        m.abandoned,
		Commentary:       m.commentary,
		CommentaryStatus: m.commentaryStatus,
	}
}
