package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/team"
	qb "github.com/riskibarqy/season-engine/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	rosters, err := r.rosters(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row, rosters[row.PublicID]))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	filter := qb.Eq("team_public_id", teamID)
	rosters, err := r.rosters(ctx, &filter)
	if err != nil {
		return team.Team{}, false, err
	}
	return teamFromRow(row, rosters[row.PublicID]), true, nil
}

func (r *TeamRepository) rosters(ctx context.Context, filter *qb.Condition) (map[string][]player.Player, error) {
	conditions := []qb.Condition{qb.NotNull("team_public_id"), qb.IsNull("deleted_at")}
	if filter != nil {
		conditions = append(conditions, *filter)
	}
	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select rosters query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rosters: %w", err)
	}

	out := make(map[string][]player.Player)
	for _, row := range rows {
		out[row.TeamPublicID.String] = append(out[row.TeamPublicID.String], playerFromRow(row))
	}
	return out, nil
}

// teamFromRow returns an empty, non-nil roster for a club without
// players: an empty squad plays at default strength rather than forfeit.
func teamFromRow(row teamTableModel, roster []player.Player) team.Team {
	if roster == nil {
		roster = []player.Player{}
	}
	return team.Team{
		ID:             row.PublicID,
		Name:           row.Name,
		PrimaryColor:   row.PrimaryColor.String,
		SecondaryColor: row.SecondaryColor.String,
		Roster:         roster,
	}
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.PublicID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		Rating:   row.Rating,
		Value:    row.MarketValue,
		Age:      row.Age,
	}
}
