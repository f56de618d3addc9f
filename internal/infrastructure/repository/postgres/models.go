package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	PrimaryColor   sql.NullString `db:"primary_color"`
	SecondaryColor sql.NullString `db:"secondary_color"`
}

type playerTableModel struct {
	PublicID     string         `db:"public_id"`
	TeamPublicID sql.NullString `db:"team_public_id"`
	Name         string         `db:"name"`
	Position     string         `db:"position"`
	Rating       int            `db:"rating"`
	MarketValue  int64          `db:"market_value"`
	Age          int            `db:"age"`
}

type seasonSnapshotModel struct {
	PublicID         string `db:"public_id"`
	UserTeamPublicID string `db:"user_team_public_id"`
	Week             int    `db:"week"`
	Payload          string `db:"payload"`
}

type seasonSnapshotRow struct {
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}
