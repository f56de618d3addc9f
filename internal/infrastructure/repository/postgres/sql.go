package postgres

import (
	"database/sql"
	"errors"

	qb "github.com/riskibarqy/season-engine/internal/platform/querybuilder"
)

var (
	teamColumns   = mustColumns(teamTableModel{})
	playerColumns = mustColumns(playerTableModel{})
)

func mustColumns(model any) []string {
	cols, err := qb.ModelColumns(model)
	if err != nil {
		panic(err)
	}
	return cols
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
