package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-engine/internal/domain/season"
	qb "github.com/riskibarqy/season-engine/internal/platform/querybuilder"
)

// SeasonRepository stores each season as one JSONB snapshot row, so a
// save replaces the whole table, fixture list and roster atomically.
type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.State, bool, error) {
	query, args, err := qb.Select("payload", "updated_at").
		From("season_snapshots").
		Where(qb.Eq("public_id", seasonID)).
		ToSQL()
	if err != nil {
		return season.State{}, false, fmt.Errorf("build get season snapshot query: %w", err)
	}

	var row seasonSnapshotRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.State{}, false, nil
		}
		return season.State{}, false, fmt.Errorf("get season snapshot: %w", err)
	}

	var state season.State
	if err := sonic.UnmarshalString(row.Payload, &state); err != nil {
		return season.State{}, false, fmt.Errorf("decode season snapshot %s: %w", seasonID, err)
	}
	return state, true, nil
}

func (r *SeasonRepository) Save(ctx context.Context, state season.State) error {
	payload, err := sonic.MarshalString(state)
	if err != nil {
		return fmt.Errorf("encode season snapshot %s: %w", state.ID, err)
	}

	query, args, err := qb.Insert("season_snapshots", seasonSnapshotModel{
		PublicID:         state.ID,
		UserTeamPublicID: state.UserTeamID,
		Week:             state.Week,
		Payload:          payload,
	}).
		OnConflict("public_id").
		UpdateExcluded("week", "payload").
		Touch("updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert season snapshot query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season snapshot %s: %w", state.ID, err)
	}
	return nil
}
