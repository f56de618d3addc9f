package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/season-engine/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]season.State
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{seasons: make(map[string]season.State)}
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.seasons[seasonID]
	if !ok {
		return season.State{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *SeasonRepository) Save(_ context.Context, state season.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[state.ID] = state.Clone()
	return nil
}
