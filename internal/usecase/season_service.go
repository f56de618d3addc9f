package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/season-engine/internal/domain/match"
	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/season"
	"github.com/riskibarqy/season-engine/internal/domain/team"
	"github.com/riskibarqy/season-engine/internal/platform/id"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"github.com/riskibarqy/season-engine/internal/platform/random"
	"go.opentelemetry.io/otel/attribute"
)

type SeasonConfig struct {
	LeagueName     string
	StartingBudget int64
}

// MatchSetup is everything a match session needs for the current week.
type MatchSetup struct {
	SeasonID string
	Week     int
	HomeID   string
	User     match.Lineup
	Opponent match.Lineup
}

// SeasonService owns every mutation of a season. Mutations of one season
// are serialized and each one ends in a single repository write.
type SeasonService struct {
	teamRepo   team.Repository
	marketRepo player.MarketRepository
	seasonRepo season.Repository
	idGen      id.Generator
	rng        random.Source
	cfg        SeasonConfig
	logger     *logging.Logger
	now        func() time.Time

	locksMu sync.Mutex
	locks   map[string]*seasonLock
}

// seasonLock is dropped from the map once no caller holds or waits on it.
type seasonLock struct {
	mu   sync.Mutex
	refs int
}

func NewSeasonService(
	teamRepo team.Repository,
	marketRepo player.MarketRepository,
	seasonRepo season.Repository,
	idGen id.Generator,
	rng random.Source,
	cfg SeasonConfig,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.LeagueName) == "" {
		cfg.LeagueName = "Championship"
	}
	if cfg.StartingBudget < 0 {
		cfg.StartingBudget = 0
	}

	return &SeasonService{
		teamRepo:   teamRepo,
		marketRepo: marketRepo,
		seasonRepo: seasonRepo,
		idGen:      idGen,
		rng:        random.NewLocked(rng),
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SeasonService) lock(seasonID string) func() {
	s.locksMu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*seasonLock)
	}
	l, ok := s.locks[seasonID]
	if !ok {
		l = &seasonLock{}
		s.locks[seasonID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, seasonID)
		}
		s.locksMu.Unlock()
	}
}

func (s *SeasonService) heldLocks() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}

// Start creates a season controlled by userTeamID.
func (s *SeasonService) Start(ctx context.Context, userTeamID string) (season.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Start", attribute.String("team.id", userTeamID))
	defer span.End()

	userTeamID = strings.TrimSpace(userTeamID)
	if userTeamID == "" {
		return season.State{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return season.State{}, fmt.Errorf("list teams: %w", err)
	}
	var userTeam *team.Team
	for i := range teams {
		if teams[i].ID == userTeamID {
			userTeam = &teams[i]
			break
		}
	}
	if userTeam == nil {
		return season.State{}, fmt.Errorf("%w: team=%s", ErrNotFound, userTeamID)
	}

	market, err := s.marketRepo.ListFreeAgents(ctx)
	if err != nil {
		return season.State{}, fmt.Errorf("list free agents: %w", err)
	}

	seasonID, err := s.idGen.NewID()
	if err != nil {
		return season.State{}, fmt.Errorf("generate season id: %w", err)
	}

	now := s.now().UTC()
	state, err := season.New(season.Params{
		ID:         seasonID,
		UserTeamID: userTeamID,
		LeagueName: s.cfg.LeagueName,
		Year:       now.Year(),
		TeamIDs:    team.IDs(teams),
		MyPlayers:  userTeam.Roster,
		Market:     market,
		Budget:     s.cfg.StartingBudget,
		Now:        now,
	})
	if err != nil {
		return season.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Save(ctx, state); err != nil {
		return season.State{}, fmt.Errorf("save season: %w", err)
	}

	s.logger.InfoContext(ctx, "season started",
		"season_id", state.ID,
		"team_id", userTeamID,
		"teams", len(teams),
		"weeks", state.LastWeek(),
	)
	return state, nil
}

// Get loads a season snapshot.
func (s *SeasonService) Get(ctx context.Context, seasonID string) (season.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Get")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.State{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	return s.load(ctx, seasonID)
}

// SkipWeek records a 0-0 draw for the user and simulates the rest of the
// week. When the user has no fixture the week advances untouched.
func (s *SeasonService) SkipWeek(ctx context.Context, seasonID string) (season.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SkipWeek")
	defer span.End()

	return s.mutate(ctx, seasonID, func(state season.State) (season.State, error) {
		f, ok := state.UserFixture()
		if !ok {
			s.logger.WarnContext(ctx, "no fixture for user this week, advancing", "season_id", state.ID, "week", state.Week)
			return season.AdvanceWithoutFixture(state, s.now().UTC())
		}
		return season.ApplyWeek(state, season.SkipResult(f.Opponent(state.UserTeamID)), s.rng, s.now().UTC())
	})
}

// CommitMatch folds a finished match into the table. week must still be
// the season's current week, otherwise the result is stale and rejected.
func (s *SeasonService) CommitMatch(ctx context.Context, seasonID string, week int, result match.Result) (season.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CommitMatch")
	defer span.End()

	return s.mutate(ctx, seasonID, func(state season.State) (season.State, error) {
		if state.Complete() {
			return state, ErrSeasonComplete
		}
		if state.Week != week {
			return state, fmt.Errorf("%w: match was prepared for week %d, season is at week %d", ErrMatchState, week, state.Week)
		}
		if result.Walkover {
			s.logger.WarnContext(ctx, "committing walkover", "season_id", state.ID, "week", week, "opponent_id", result.OpponentID)
		}
		return season.ApplyWeek(state, season.FromMatch(result), s.rng, s.now().UTC())
	})
}

// PrepareMatch resolves the user's fixture for the current week. When no
// fixture exists the week is advanced and season.ErrNoFixture returned.
func (s *SeasonService) PrepareMatch(ctx context.Context, seasonID string) (MatchSetup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.PrepareMatch")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return MatchSetup{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	unlock := s.lock(seasonID)
	defer unlock()

	state, err := s.load(ctx, seasonID)
	if err != nil {
		return MatchSetup{}, err
	}
	if state.Complete() {
		return MatchSetup{}, ErrSeasonComplete
	}

	f, ok := state.UserFixture()
	if !ok {
		s.logger.WarnContext(ctx, "no fixture for user this week, advancing", "season_id", state.ID, "week", state.Week)
		next, err := season.AdvanceWithoutFixture(state, s.now().UTC())
		if err != nil {
			return MatchSetup{}, err
		}
		if err := s.seasonRepo.Save(ctx, next); err != nil {
			return MatchSetup{}, fmt.Errorf("save season: %w", err)
		}
		return MatchSetup{}, fmt.Errorf("%w: week=%d", season.ErrNoFixture, state.Week)
	}

	userLineup, err := s.lineup(ctx, state.UserTeamID)
	if err != nil {
		return MatchSetup{}, err
	}
	userLineup.Players = append(make([]player.Player, 0, len(state.MyPlayers)), state.MyPlayers...)

	opponentLineup, err := s.lineup(ctx, f.Opponent(state.UserTeamID))
	if err != nil {
		return MatchSetup{}, err
	}

	return MatchSetup{
		SeasonID: state.ID,
		Week:     state.Week,
		HomeID:   f.HomeTeamID,
		User:     userLineup,
		Opponent: opponentLineup,
	}, nil
}

// lineup loads a club. A club that cannot be found yields a lineup with a
// missing roster, which the match engine resolves as a walkover.
func (s *SeasonService) lineup(ctx context.Context, teamID string) (match.Lineup, error) {
	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return match.Lineup{}, fmt.Errorf("get team %s: %w", teamID, err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "team data missing", "team_id", teamID)
		return match.Lineup{TeamID: teamID, TeamName: teamID}, nil
	}
	return match.Lineup{TeamID: t.ID, TeamName: t.Name, Players: t.Roster}, nil
}

func (s *SeasonService) load(ctx context.Context, seasonID string) (season.State, error) {
	state, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.State{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.State{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return state, nil
}

// mutate runs fn under the season lock and saves its result in one write.
func (s *SeasonService) mutate(ctx context.Context, seasonID string, fn func(season.State) (season.State, error)) (season.State, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.State{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	unlock := s.lock(seasonID)
	defer unlock()

	state, err := s.load(ctx, seasonID)
	if err != nil {
		return season.State{}, err
	}

	next, err := fn(state)
	if err != nil {
		return state, err
	}

	if err := s.seasonRepo.Save(ctx, next); err != nil {
		return state, fmt.Errorf("save season: %w", err)
	}

	s.logger.InfoContext(ctx, "season updated",
		"season_id", next.ID,
		"week", next.Week,
		"leader", leaderID(next),
	)
	return next, nil
}

func leaderID(s season.State) string {
	if len(s.Table) == 0 {
		return ""
	}
	return s.Table[0].TeamID
}
