package memory

import (
	"context"

	"github.com/riskibarqy/season-engine/internal/domain/player"
)

type MarketRepository struct {
	players []player.Player
}

func NewMarketRepository(players []player.Player) *MarketRepository {
	return &MarketRepository{players: append([]player.Player(nil), players...)}
}

func (r *MarketRepository) ListFreeAgents(_ context.Context) ([]player.Player, error) {
	return append(make([]player.Player, 0, len(r.players)), r.players...), nil
}
