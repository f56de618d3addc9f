package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/season-engine/internal/config"
	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/season"
	"github.com/riskibarqy/season-engine/internal/domain/team"
	cacherepo "github.com/riskibarqy/season-engine/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/season-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/season-engine/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/season-engine/internal/platform/cache"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
)

type storage struct {
	teams   team.Repository
	market  player.MarketRepository
	seasons season.Repository
	close   func() error
}

// openStorage builds the repositories for cfg.StorageDriver. teams and
// market seed the catalogue; postgres only uses them on an empty database.
func openStorage(ctx context.Context, cfg config.Config, teams []team.Team, market []player.Player, logger *logging.Logger) (storage, error) {
	if err := team.ValidateCatalogue(teams, market); err != nil {
		return storage{}, fmt.Errorf("invalid catalogue seed: %w", err)
	}
	if cfg.StorageDriver != config.StoragePostgres {
		logger.InfoContext(ctx, "using in-memory storage", "teams", len(teams), "free_agents", len(market))
		return storage{
			teams:   memory.NewTeamRepository(teams),
			market:  memory.NewMarketRepository(market),
			seasons: memory.NewSeasonRepository(),
			close:   func() error { return nil },
		}, nil
	}

	db, err := openDB(ctx, cfg, logger)
	if err != nil {
		return storage{}, err
	}
	if err := postgres.BootstrapSeed(ctx, db, teams, market); err != nil {
		_ = db.Close()
		return storage{}, fmt.Errorf("bootstrap catalogue: %w", err)
	}

	out := storage{
		teams:   postgres.NewTeamRepository(db),
		market:  postgres.NewMarketRepository(db),
		seasons: postgres.NewSeasonRepository(db),
		close:   db.Close,
	}
	if cfg.CatalogueCacheTTL > 0 {
		store := cache.NewStore(cfg.CatalogueCacheTTL)
		out.teams = cacherepo.NewTeamRepository(out.teams, store)
		out.market = cacherepo.NewMarketRepository(out.market, store)
	}
	logger.InfoContext(ctx, "using postgres storage", "catalogue_cache_ttl", cfg.CatalogueCacheTTL)
	return out, nil
}
