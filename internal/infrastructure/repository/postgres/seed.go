package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/team"
	qb "github.com/riskibarqy/season-engine/internal/platform/querybuilder"
)

// BootstrapSeed fills an empty catalogue with teams and free agents.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, teams []team.Team, market []player.Player) error {
	if err := team.ValidateCatalogue(teams, market); err != nil {
		return fmt.Errorf("validate seed catalogue: %w", err)
	}

	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range teams {
		query, args, err := qb.Insert("teams", teamTableModel{
			PublicID:       t.ID,
			Name:           t.Name,
			PrimaryColor:   nullString(t.PrimaryColor),
			SecondaryColor: nullString(t.SecondaryColor),
		}).OnConflict("public_id").DoNothing().ToSQL()
		if err != nil {
			return fmt.Errorf("build seed team %s query: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
		for _, p := range t.Roster {
			if err := insertSeedPlayer(ctx, tx, p, t.ID); err != nil {
				return err
			}
		}
	}
	for _, p := range market {
		if err := insertSeedPlayer(ctx, tx, p, ""); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func insertSeedPlayer(ctx context.Context, tx *sqlx.Tx, p player.Player, teamID string) error {
	query, args, err := qb.Insert("players", playerTableModel{
		PublicID:     p.ID,
		TeamPublicID: nullString(teamID),
		Name:         p.Name,
		Position:     string(p.Position),
		Rating:       p.Rating,
		MarketValue:  p.Value,
		Age:          p.Age,
	}).OnConflict("public_id").DoNothing().ToSQL()
	if err != nil {
		return fmt.Errorf("build seed player %s query: %w", p.ID, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed player %s: %w", p.ID, err)
	}
	return nil
}
