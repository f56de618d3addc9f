package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/season-engine/internal/domain/fixture"
	"github.com/riskibarqy/season-engine/internal/domain/season"
	"github.com/riskibarqy/season-engine/internal/domain/standing"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"github.com/riskibarqy/season-engine/internal/platform/random"
)

type ProjectionConfig struct {
	Runs    int
	Workers int
}

// TitleOdds is one team's share of simulated championships.
type TitleOdds struct {
	TeamID  string  `json:"teamId"`
	Titles  int     `json:"titles"`
	Percent float64 `json:"percent"`
}

type TitleProjection struct {
	SeasonID string      `json:"seasonId"`
	Week     int         `json:"week"`
	Runs     int         `json:"runs"`
	Odds     []TitleOdds `json:"odds"`
}

// ProjectionService estimates title odds by completing the remaining
// weeks many times with the peer-match score model.
type ProjectionService struct {
	seasons *SeasonService
	rng     random.Source
	cfg     ProjectionConfig
	logger  *logging.Logger
}

func NewProjectionService(seasons *SeasonService, rng random.Source, cfg ProjectionConfig, logger *logging.Logger) *ProjectionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Runs <= 0 {
		cfg.Runs = 1000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &ProjectionService{
		seasons: seasons,
		rng:     random.NewLocked(rng),
		cfg:     cfg,
		logger:  logger,
	}
}

// TitleOdds runs the projection. runs <= 0 uses the configured count.
func (s *ProjectionService) TitleOdds(ctx context.Context, seasonID string, runs int) (TitleProjection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProjectionService.TitleOdds")
	defer span.End()

	if runs <= 0 {
		runs = s.cfg.Runs
	}
	if runs > 100_000 {
		return TitleProjection{}, fmt.Errorf("%w: runs must be <= 100000", ErrInvalidInput)
	}

	state, err := s.seasons.Get(ctx, seasonID)
	if err != nil {
		return TitleProjection{}, err
	}

	titles := make(map[string]*atomic.Int64, len(state.Table))
	for _, e := range state.Table {
		titles[e.TeamID] = &atomic.Int64{}
	}

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return TitleProjection{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	baseSeed := int64(s.rng.Intn(math.MaxInt32))

	var workers sync.WaitGroup
	for run := 0; run < runs; run++ {
		if err := ctx.Err(); err != nil {
			workers.Wait()
			return TitleProjection{}, err
		}
		seed := baseSeed + int64(run)
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if champion := simulateRemaining(state, random.NewSeeded(seed)); champion != "" {
				titles[champion].Add(1)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return TitleProjection{}, fmt.Errorf("submit projection run: %w", err)
		}
	}
	workers.Wait()

	out := TitleProjection{
		SeasonID: state.ID,
		Week:     state.Week,
		Runs:     runs,
		Odds:     make([]TitleOdds, 0, len(titles)),
	}
	for teamID, count := range titles {
		n := int(count.Load())
		out.Odds = append(out.Odds, TitleOdds{
			TeamID:  teamID,
			Titles:  n,
			Percent: math.Round(float64(n)*10000/float64(runs)) / 100,
		})
	}
	sort.SliceStable(out.Odds, func(i, j int) bool {
		if out.Odds[i].Titles != out.Odds[j].Titles {
			return out.Odds[i].Titles > out.Odds[j].Titles
		}
		return out.Odds[i].TeamID < out.Odds[j].TeamID
	})

	s.logger.InfoContext(ctx, "title odds projected", "season_id", state.ID, "runs", runs, "workers", s.cfg.Workers)
	return out, nil
}

// simulateRemaining plays every unplayed week, including the user's
// fixtures, with random peer scores and returns the champion.
func simulateRemaining(state season.State, rng random.Source) string {
	table := standing.Clone(state.Table)
	for week := state.Week; week <= state.LastWeek(); week++ {
		for _, f := range fixture.ForWeek(state.Fixtures, week) {
			homeGoals := rng.Intn(season.MaxPeerGoals + 1)
			awayGoals := rng.Intn(season.MaxPeerGoals + 1)
			standing.ApplyResult(table, f.HomeTeamID, f.AwayTeamID, homeGoals, awayGoals)
		}
	}
	standing.Sort(table)
	if len(table) == 0 {
		return ""
	}
	return table[0].TeamID
}
