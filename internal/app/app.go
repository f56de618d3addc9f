package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/season-engine/external/gemini"
	"github.com/riskibarqy/season-engine/internal/config"
	"github.com/riskibarqy/season-engine/internal/domain/match"
	"github.com/riskibarqy/season-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/season-engine/internal/interfaces/httpapi"
	"github.com/riskibarqy/season-engine/internal/platform/cache"
	idgen "github.com/riskibarqy/season-engine/internal/platform/id"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"github.com/riskibarqy/season-engine/internal/platform/random"
	"github.com/riskibarqy/season-engine/internal/platform/resilience"
	"github.com/riskibarqy/season-engine/internal/usecase"
)

// NewHTTPServer wires storage, services and the router. The returned
// close function releases storage and must run after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	seed, err := random.ResolveSeed(cfg.SeasonSeed)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve season seed: %w", err)
	}
	logger.InfoContext(ctx, "season seed resolved", "seed", seed, "fixed", cfg.SeasonSeed != 0)

	store, err := openStorage(ctx, cfg, memory.SeedTeams(random.NewSeeded(seed)), memory.SeedMarket(), logger)
	if err != nil {
		return nil, nil, err
	}

	rules := match.DefaultRules()

	generator := gemini.NewClient(gemini.ClientConfig{
		BaseURL:    cfg.GeminiBaseURL,
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		Timeout:    cfg.GeminiTimeout,
		MaxRetries: cfg.GeminiMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GeminiCircuitEnabled,
			FailureThreshold: cfg.GeminiCircuitFailureCount,
			OpenTimeout:      cfg.GeminiCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GeminiCircuitHalfOpenMaxReq,
		},
	})
	commentarySvc := usecase.NewCommentaryService(generator, usecase.CommentaryConfig{
		Enabled: cfg.CommentaryEnabled,
		Timeout: cfg.CommentaryTimeout,
	}, logger.Named("commentary"))

	teamSvc := usecase.NewTeamService(store.teams, rules.DefaultStrength)
	seasonSvc := usecase.NewSeasonService(
		store.teams,
		store.market,
		store.seasons,
		idgen.NewPrefixedGenerator("season", 8),
		random.NewSeeded(seed),
		usecase.SeasonConfig{
			LeagueName:     cfg.SeasonLeagueName,
			StartingBudget: cfg.SeasonStartingBudget,
		},
		logger.Named("season"),
	)
	matchSvc := usecase.NewMatchService(
		seasonSvc,
		commentarySvc,
		random.NewSeeded(seed+1),
		usecase.MatchConfig{
			Rules:       rules,
			EventDelay:  cfg.MatchEventDelay,
			ReviewDelay: cfg.MatchReviewDelay,
		},
		usecase.NewTimerPacer(),
		matchEventLogger(logger.Named("match.events")),
		logger.Named("match"),
	)
	transferSvc := usecase.NewTransferService(seasonSvc)
	scoutSvc := usecase.NewScoutService(seasonSvc, commentarySvc, cache.NewStore(cfg.ScoutCacheTTL))
	projectionSvc := usecase.NewProjectionService(
		seasonSvc,
		random.NewSeeded(seed+2),
		usecase.ProjectionConfig{Runs: cfg.ProjectionRuns, Workers: cfg.ProjectionWorkers},
		logger.Named("projection"),
	)

	handler := httpapi.NewHandler(teamSvc, seasonSvc, matchSvc, transferSvc, scoutSvc, projectionSvc, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	closeFn := func() error {
		if err := store.close(); err != nil {
			return fmt.Errorf("close storage: %w", err)
		}
		return nil
	}
	return server, closeFn, nil
}

func matchEventLogger(logger *logging.Logger) usecase.EventSink {
	return func(ctx context.Context, seasonID string, ev match.Event) {
		args := []any{
			"season_id", seasonID,
			"kind", ev.Kind,
			"phase", ev.Phase,
			"minute", ev.Minute,
			"score", fmt.Sprintf("%d-%d", ev.Score.User, ev.Score.Opponent),
		}
		if ev.Log != nil {
			args = append(args, "text", ev.Log.Text)
		}
		logger.DebugContext(ctx, "match event", args...)
	}
}
