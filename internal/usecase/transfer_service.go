package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/season"
)

// TransferReceipt describes a completed buy or sale.
type TransferReceipt struct {
	Player player.Player `json:"player"`
	Amount int64         `json:"amount"`
	Budget int64         `json:"budget"`
}

// TransferService moves players between the user's roster and the
// season's free-agent market.
type TransferService struct {
	seasons *SeasonService
}

func NewTransferService(seasons *SeasonService) *TransferService {
	return &TransferService{seasons: seasons}
}

func (s *TransferService) Market(ctx context.Context, seasonID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Market")
	defer span.End()

	state, err := s.seasons.Get(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return state.Market, nil
}

func (s *TransferService) Buy(ctx context.Context, seasonID, playerID string) (TransferReceipt, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Buy")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return TransferReceipt{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	var bought player.Player
	state, err := s.seasons.mutate(ctx, seasonID, func(state season.State) (season.State, error) {
		next, p, err := season.Buy(state, playerID, s.seasons.now().UTC())
		bought = p
		return next, err
	})
	if err != nil {
		return TransferReceipt{}, err
	}

	s.seasons.logger.InfoContext(ctx, "player bought", "season_id", state.ID, "player_id", bought.ID, "value", bought.Value)
	return TransferReceipt{Player: bought, Amount: bought.Value, Budget: state.Budget}, nil
}

func (s *TransferService) Sell(ctx context.Context, seasonID, playerID string) (TransferReceipt, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Sell")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return TransferReceipt{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	var sold player.Player
	state, err := s.seasons.mutate(ctx, seasonID, func(state season.State) (season.State, error) {
		next, p, err := season.Sell(state, playerID, s.seasons.now().UTC())
		sold = p
		return next, err
	})
	if err != nil {
		return TransferReceipt{}, err
	}

	s.seasons.logger.InfoContext(ctx, "player sold", "season_id", state.ID, "player_id", sold.ID, "price", season.SalePrice(sold))
	return TransferReceipt{Player: sold, Amount: season.SalePrice(sold), Budget: state.Budget}, nil
}
