package player

import "context"

// MarketRepository lists the free agents a new season starts with.
type MarketRepository interface {
	ListFreeAgents(ctx context.Context) ([]Player, error)
}
