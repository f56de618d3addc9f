package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/season-engine/internal/config"
	"github.com/riskibarqy/season-engine/internal/platform/dbconn"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const dbPingTimeout = 5 * time.Second

// openDB opens a traced postgres handle and verifies it is reachable.
func openDB(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	dsn := dbconn.Prepare(cfg.DBURL, cfg.DBDisablePreparedBinary)
	dbName := dbconn.Name(dsn)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithAttributes(attribute.String("service.name", cfg.ServiceName)),
		otelsql.WithQueryFormatter(dbconn.TraceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))

	logger.InfoContext(ctx, "postgres connected", "db_name", dbName)
	return db, nil
}
