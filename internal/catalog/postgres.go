package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgres builds catalogs from the nhl_seasons, nhl_teams, nhl_players
// and nhl_drafts reference tables. Statement names are registered by
// internal/db on every pooled connection.
func LoadPostgres(ctx context.Context, q Querier) (*Catalogs, error) {
	seasons, err := queryRows(ctx, q, "catalog_seasons", func(rows pgx.Rows) (Season, error) {
		var (
			s                       Season
			regStart, regEnd, ended *time.Time
		)
		err := rows.Scan(&s.ID, &s.Label, &regStart, &regEnd, &ended)
		s.RegularStart, s.RegularEnd, s.SeasonEnd = deref(regStart), deref(regEnd), deref(ended)
		return s, err
	})
	if err != nil {
		return nil, err
	}

	teams, err := queryRows(ctx, q, "catalog_teams", func(rows pgx.Rows) (Team, error) {
		var t Team
		err := rows.Scan(&t.ID, &t.Abbreviation, &t.Name)
		return t, err
	})
	if err != nil {
		return nil, err
	}

	players, err := queryRows(ctx, q, "catalog_players", func(rows pgx.Rows) (Player, error) {
		var (
			p    Player
			name *string
		)
		err := rows.Scan(&p.ProspectID, &p.PlayerID, &name)
		if name != nil {
			p.Name = *name
		}
		return p, err
	})
	if err != nil {
		return nil, err
	}

	years, err := queryRows(ctx, q, "catalog_drafts", func(rows pgx.Rows) (int, error) {
		var y int
		err := rows.Scan(&y)
		return y, err
	})
	if err != nil {
		return nil, err
	}

	return New(seasons, teams, players, years), nil
}

func queryRows[T any](ctx context.Context, q Querier, stmt string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", stmt, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", stmt, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", stmt, err)
	}
	return out, nil
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
