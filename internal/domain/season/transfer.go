package season

import (
	"fmt"
	"time"

	"github.com/riskibarqy/season-engine/internal/domain/player"
)

// SaleRatePercent is the share of market value refunded on a sale.
const SaleRatePercent = 80

// SalePrice is what the club receives for p.
func SalePrice(p player.Player) int64 {
	return p.Value * SaleRatePercent / 100
}

// Buy moves playerID from the market into the user's roster.
func Buy(s State, playerID string, now time.Time) (State, player.Player, error) {
	idx := player.IndexByID(s.Market, playerID)
	if idx < 0 {
		return s, player.Player{}, fmt.Errorf("%w: market player=%s", ErrPlayerNotFound, playerID)
	}
	p := s.Market[idx]
	if s.Budget < p.Value {
		return s, player.Player{}, fmt.Errorf("%w: budget=%d value=%d", ErrInsufficientFunds, s.Budget, p.Value)
	}

	next := s.Clone()
	next.Market = append(next.Market[:idx], next.Market[idx+1:]...)
	next.MyPlayers = append(next.MyPlayers, p)
	next.Budget -= p.Value
	next.TransferExpenses += p.Value
	next.UpdatedAt = now
	return next, p, nil
}

// Sell releases playerID from the user's roster back to the market.
func Sell(s State, playerID string, now time.Time) (State, player.Player, error) {
	idx := player.IndexByID(s.MyPlayers, playerID)
	if idx < 0 {
		return s, player.Player{}, fmt.Errorf("%w: squad player=%s", ErrPlayerNotFound, playerID)
	}
	p := s.MyPlayers[idx]

	next := s.Clone()
	next.MyPlayers = append(next.MyPlayers[:idx], next.MyPlayers[idx+1:]...)
	next.Market = append(next.Market, p)
	next.Budget += SalePrice(p)
	next.UpdatedAt = now
	return next, p, nil
}
