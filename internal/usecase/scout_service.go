package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/season-engine/internal/domain/commentary"
	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/platform/cache"
)

type ScoutReport struct {
	PlayerID string `json:"playerId"`
	Report   string `json:"report"`
	Fallback bool   `json:"fallback"`
}

// ScoutService produces cached scouting notes for players visible to a
// season, either in the user's roster or on the market.
type ScoutService struct {
	seasons    *SeasonService
	commentary *CommentaryService
	cache      *cache.Store
}

func NewScoutService(seasons *SeasonService, commentarySvc *CommentaryService, store *cache.Store) *ScoutService {
	return &ScoutService{
		seasons:    seasons,
		commentary: commentarySvc,
		cache:      store,
	}
}

func (s *ScoutService) Report(ctx context.Context, seasonID, playerID string) (ScoutReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoutService.Report")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return ScoutReport{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	state, err := s.seasons.Get(ctx, seasonID)
	if err != nil {
		return ScoutReport{}, err
	}

	var target player.Player
	if idx := player.IndexByID(state.Market, playerID); idx >= 0 {
		target = state.Market[idx]
	} else if idx := player.IndexByID(state.MyPlayers, playerID); idx >= 0 {
		target = state.MyPlayers[idx]
	} else {
		return ScoutReport{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	// Fallback texts are returned but never cached.
	value, err := s.cache.GetOrLoad(ctx, "scout:"+target.ID, func(ctx context.Context) (any, error) {
		text, ok := s.commentary.ScoutReport(ctx, target.Describe())
		if !ok {
			return nil, errScoutFallback
		}
		return text, nil
	})
	if err != nil {
		return ScoutReport{PlayerID: target.ID, Report: commentary.FallbackScout, Fallback: true}, nil
	}

	text, _ := value.(string)
	return ScoutReport{PlayerID: target.ID, Report: text}, nil
}

var errScoutFallback = errors.New("scout report unavailable")
