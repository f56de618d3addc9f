package cache

import (
	"context"

	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/team"
	basecache "github.com/riskibarqy/season-engine/internal/platform/cache"
)

// TeamRepository caches the club catalogue in front of a slower store.
// Callers get copies, so mutating a result never touches the cache.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return team.CloneAll(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return team.CloneAll(items), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value.Clone(), cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type MarketRepository struct {
	next  player.MarketRepository
	cache *basecache.Store
}

func NewMarketRepository(next player.MarketRepository, cache *basecache.Store) *MarketRepository {
	return &MarketRepository{next: next, cache: cache}
}

func (r *MarketRepository) ListFreeAgents(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "market:free-agents", func(ctx context.Context) (any, error) {
		items, err := r.next.ListFreeAgents(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}
