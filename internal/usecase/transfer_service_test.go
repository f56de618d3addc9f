package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/season-engine/internal/domain/season"
)

func TestTransferService_BuyAndSell(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, 1)
	id := f.start(t, "team-a")
	svc := NewTransferService(f.service)
	ctx := context.Background()

	receipt, err := svc.Buy(ctx, id, "fa-01")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if receipt.Amount != 1_000_000 || receipt.Budget != 9_000_000 {
		t.Fatalf("unexpected buy receipt: %+v", receipt)
	}

	market, err := svc.Market(ctx, id)
	if err != nil {
		t.Fatalf("market: %v", err)
	}
	if len(market) != 1 || market[0].ID != "fa-02" {
		t.Fatalf("bought player must leave the market: %+v", market)
	}

	receipt, err = svc.Sell(ctx, id, "team-a-p4")
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if receipt.Amount != 1_600_000 || receipt.Budget != 10_600_000 {
		t.Fatalf("unexpected sale receipt: %+v", receipt)
	}

	state, err := f.service.Get(ctx, id)
	if err != nil {
		t.Fatalf("get season: %v", err)
	}
	if len(state.MyPlayers) != 4 || state.TransferExpenses != 1_000_000 {
		t.Fatalf("unexpected squad after transfers: players=%d expenses=%d", len(state.MyPlayers), state.TransferExpenses)
	}
}

func TestTransferService_Errors(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, 1)
	id := f.start(t, "team-a")
	svc := NewTransferService(f.service)
	ctx := context.Background()

	if _, err := svc.Buy(ctx, id, "fa-02"); !errors.Is(err, season.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := svc.Buy(ctx, id, "fa-99"); !errors.Is(err, season.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if _, err := svc.Sell(ctx, id, "fa-01"); !errors.Is(err, season.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound for a player outside the squad, got %v", err)
	}
	if _, err := svc.Sell(ctx, id, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	state, err := f.service.Get(ctx, id)
	if err != nil {
		t.Fatalf("get season: %v", err)
	}
	if state.Budget != 10_000_000 || len(state.Market) != 2 {
		t.Fatalf("failed transfers must not change the season: budget=%d market=%d", state.Budget, len(state.Market))
	}
}
