package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-engine/internal/domain/player"
	qb "github.com/riskibarqy/season-engine/internal/platform/querybuilder"
)

// MarketRepository reads free agents: players without a club.
type MarketRepository struct {
	db *sqlx.DB
}

func NewMarketRepository(db *sqlx.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

func (r *MarketRepository) ListFreeAgents(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(
			qb.IsNull("team_public_id"),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select free agents query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select free agents: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}
