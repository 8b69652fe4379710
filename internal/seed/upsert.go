package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/scoracle-nhl/internal/catalog"
	"github.com/albapepper/scoracle-nhl/internal/config"
	"github.com/albapepper/scoracle-nhl/internal/tidy"
)

// Execer is the subset of *pgxpool.Pool the upserts need.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UpsertGame writes one canonical schedule row keyed by game_id. The row
// must carry identifier columns.
func UpsertGame(ctx context.Context, db Execer, runID uuid.UUID, row map[string]any) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.GamesTable+` (
			game_id, season_id, season_years, season_type, game_datetime,
			game_status, venue_name, away_team_id, away_abbreviation,
			away_score, home_score, home_abbreviation, home_team_id,
			game_nbot, game_shootout, run_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (game_id) DO UPDATE SET
			season_id = EXCLUDED.season_id,
			season_years = EXCLUDED.season_years,
			season_type = EXCLUDED.season_type,
			game_datetime = EXCLUDED.game_datetime,
			game_status = EXCLUDED.game_status,
			venue_name = EXCLUDED.venue_name,
			away_team_id = EXCLUDED.away_team_id,
			away_abbreviation = EXCLUDED.away_abbreviation,
			away_score = EXCLUDED.away_score,
			home_score = EXCLUDED.home_score,
			home_abbreviation = EXCLUDED.home_abbreviation,
			home_team_id = EXCLUDED.home_team_id,
			game_nbot = EXCLUDED.game_nbot,
			game_shootout = EXCLUDED.game_shootout,
			run_id = EXCLUDED.run_id,
			updated_at = NOW()`,
		row[tidy.ColGameID], row[tidy.ColSeasonID], row[tidy.ColSeasonYears],
		row[tidy.ColSeasonType], row[tidy.ColGameDatetime], row[tidy.ColGameStatus],
		row[tidy.ColVenueName], row[tidy.ColAwayTeamID], row[tidy.ColAwayAbbreviation],
		row[tidy.ColAwayScore], row[tidy.ColHomeScore], row[tidy.ColHomeAbbreviation],
		row[tidy.ColHomeTeamID], row[tidy.ColGameNbOT], row[tidy.ColGameShootout], runID,
	)
	return err
}

// UpsertDraftPick writes one canonical draft row keyed by
// (draft_year, draft_overall_pick).
func UpsertDraftPick(ctx context.Context, db Execer, runID uuid.UUID, row map[string]any) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.DraftPicksTable+` (
			draft_year, draft_overall_pick, draft_round, draft_round_pick,
			team_id, team_abbreviation, prospect_id, prospect_fullname,
			player_id, run_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (draft_year, draft_overall_pick) DO UPDATE SET
			draft_round = EXCLUDED.draft_round,
			draft_round_pick = EXCLUDED.draft_round_pick,
			team_id = EXCLUDED.team_id,
			team_abbreviation = EXCLUDED.team_abbreviation,
			prospect_id = EXCLUDED.prospect_id,
			prospect_fullname = EXCLUDED.prospect_fullname,
			player_id = COALESCE(EXCLUDED.player_id, `+config.DraftPicksTable+`.player_id),
			run_id = EXCLUDED.run_id,
			updated_at = NOW()`,
		row[tidy.ColDraftYear], row[tidy.ColDraftOverallPick], row[tidy.ColDraftRound],
		row[tidy.ColDraftRoundPick], row[tidy.ColTeamID], row[tidy.ColTeamAbbreviation],
		row[tidy.ColProspectID], row[tidy.ColProspectFullName], row[tidy.ColPlayerID], runID,
	)
	return err
}

// UpsertSeason writes one season catalog row.
func UpsertSeason(ctx context.Context, db Execer, s catalog.Season) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.SeasonsTable+` (season_id, season_years, regular_start, regular_end, season_end)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (season_id) DO UPDATE SET
			season_years = EXCLUDED.season_years,
			regular_start = COALESCE(EXCLUDED.regular_start, `+config.SeasonsTable+`.regular_start),
			regular_end = COALESCE(EXCLUDED.regular_end, `+config.SeasonsTable+`.regular_end),
			season_end = COALESCE(EXCLUDED.season_end, `+config.SeasonsTable+`.season_end),
			updated_at = NOW()`,
		s.ID, s.Label, nilTime(s.RegularStart), nilTime(s.RegularEnd), nilTime(s.SeasonEnd),
	)
	return err
}

// UpsertTeam writes one team catalog row.
func UpsertTeam(ctx context.Context, db Execer, t catalog.Team) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.TeamsTable+` (team_id, team_abbreviation, team_name)
		VALUES ($1,$2,$3)
		ON CONFLICT (team_id) DO UPDATE SET
			team_abbreviation = EXCLUDED.team_abbreviation,
			team_name = EXCLUDED.team_name,
			updated_at = NOW()`,
		t.ID, t.Abbreviation, t.Name,
	)
	return err
}

// UpsertPlayer writes one prospect-to-player mapping.
func UpsertPlayer(ctx context.Context, db Execer, p catalog.Player) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.PlayersTable+` (prospect_id, player_id, player_name)
		VALUES ($1,$2,$3)
		ON CONFLICT (prospect_id) DO UPDATE SET
			player_id = EXCLUDED.player_id,
			player_name = COALESCE(EXCLUDED.player_name, `+config.PlayersTable+`.player_name),
			updated_at = NOW()`,
		p.ProspectID, p.PlayerID, nilEmpty(p.Name),
	)
	return err
}

// UpsertDraftYear records that a draft was held in year.
func UpsertDraftYear(ctx context.Context, db Execer, year int) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.DraftsTable+` (draft_year) VALUES ($1)
		ON CONFLICT (draft_year) DO NOTHING`,
		year,
	)
	return err
}

// nilEmpty returns nil for empty strings so Postgres stores NULL.
func nilEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nilTime returns nil for zero times so Postgres stores NULL.
func nilTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
