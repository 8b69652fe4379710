// Package db provides a pgxpool-based connection pool with prepared statement
// registration, schema bootstrap and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-nhl/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// EnsureSchema creates the reference and output tables if they are missing.
func (p *Pool) EnsureSchema(ctx context.Context) error {
	for _, ddl := range schema {
		if _, err := p.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	// Connections opened before the tables existed skipped the catalog
	// statements; drop them so AfterConnect prepares them again.
	p.Reset()
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + config.SeasonsTable + ` (
		season_id     TEXT PRIMARY KEY,
		season_years  TEXT NOT NULL,
		regular_start DATE,
		regular_end   DATE,
		season_end    DATE,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ` + config.TeamsTable + ` (
		team_id           INTEGER PRIMARY KEY,
		team_abbreviation TEXT NOT NULL,
		team_name         TEXT NOT NULL DEFAULT '',
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ` + config.PlayersTable + ` (
		prospect_id INTEGER PRIMARY KEY,
		player_id   INTEGER NOT NULL,
		player_name TEXT,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ` + config.DraftsTable + ` (
		draft_year INTEGER PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS ` + config.IngestRunsTable + ` (
		run_id      UUID PRIMARY KEY,
		kind        TEXT NOT NULL,
		keys        TEXT[] NOT NULL,
		rows        INTEGER NOT NULL DEFAULT 0,
		errors      INTEGER NOT NULL DEFAULT 0,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS ` + config.GamesTable + ` (
		game_id           BIGINT PRIMARY KEY,
		season_id         TEXT,
		season_years      TEXT,
		season_type       TEXT,
		game_datetime     TIMESTAMPTZ,
		game_status       TEXT,
		venue_name        TEXT,
		away_team_id      INTEGER,
		away_abbreviation TEXT,
		away_score        INTEGER,
		home_score        INTEGER,
		home_abbreviation TEXT,
		home_team_id      INTEGER,
		game_nbot         INTEGER,
		game_shootout     BOOLEAN,
		run_id            UUID,
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ` + config.DraftPicksTable + ` (
		draft_year         INTEGER NOT NULL,
		draft_overall_pick INTEGER NOT NULL,
		draft_round        INTEGER,
		draft_round_pick   INTEGER,
		team_id            INTEGER,
		team_abbreviation  TEXT,
		prospect_id        INTEGER,
		prospect_fullname  TEXT,
		player_id          INTEGER,
		run_id             UUID,
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (draft_year, draft_overall_pick)
	)`,
}

// registerPreparedStatements registers the read statements used by the
// catalog loader and health checks. Statements against tables that do not
// exist yet are skipped so a fresh database can still be bootstrapped.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	if _, err := conn.Prepare(ctx, "health_check", "SELECT 1"); err != nil {
		return fmt.Errorf("prepare %q: %w", "health_check", err)
	}

	var ready bool
	err := conn.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL AND to_regclass($2) IS NOT NULL",
		config.SeasonsTable, config.DraftsTable).Scan(&ready)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if !ready {
		return nil
	}

	stmts := map[string]string{
		// Catalog loading
		"catalog_seasons": "SELECT season_id, season_years, regular_start, regular_end, season_end FROM " + config.SeasonsTable + " ORDER BY season_id",
		"catalog_teams":   "SELECT team_id, team_abbreviation, team_name FROM " + config.TeamsTable + " ORDER BY team_id",
		"catalog_players": "SELECT prospect_id, player_id, player_name FROM " + config.PlayersTable + " ORDER BY prospect_id",
		"catalog_drafts":  "SELECT draft_year FROM " + config.DraftsTable + " ORDER BY draft_year",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
