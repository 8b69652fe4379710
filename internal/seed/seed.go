package seed

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/albapepper/scoracle-nhl/internal/catalog"
	"github.com/albapepper/scoracle-nhl/internal/config"
	"github.com/albapepper/scoracle-nhl/internal/table"
	"github.com/albapepper/scoracle-nhl/internal/tidy"
)

// Tidier is the part of *tidy.Service seeding drives.
type Tidier interface {
	Schedule(ctx context.Context, seasons []string, opts tidy.ScheduleOptions) (*table.Table, error)
	Draft(ctx context.Context, years []int, opts tidy.DraftOptions) (*table.Table, error)
}

// SeedSchedule tidies seasons with identifiers kept and upserts every game.
// A fetch or validation failure aborts before anything is written; per-row
// upsert failures are collected and the run continues.
func SeedSchedule(ctx context.Context, db Execer, svc Tidier, seasons []string, opts tidy.ScheduleOptions, logger *slog.Logger) Result {
	result := NewResult()
	started := time.Now()

	opts.KeepIdentifiers = true
	games, err := svc.Schedule(ctx, seasons, opts)
	if err != nil {
		result.AddErrorf("tidy schedule: %v", err)
		return result
	}

	logger.Info("Seeding games...", "run_id", result.RunID, "rows", games.Len())
	for i, row := range games.Records() {
		if err := UpsertGame(ctx, db, result.RunID, row); err != nil {
			result.AddErrorf("upsert game %v: %v", row[tidy.ColGameID], err)
		} else {
			result.GamesUpserted++
		}
		if (i+1)%500 == 0 {
			logger.Info("Game progress", "processed", i+1)
		}
	}

	recordRun(ctx, db, &result, "schedule", seasons, started, logger)
	logger.Info("Schedule seed complete", "summary", result.Summary())
	return result
}

// SeedDraft tidies draft years with identifiers kept and upserts every pick.
func SeedDraft(ctx context.Context, db Execer, svc Tidier, years []int, logger *slog.Logger) Result {
	result := NewResult()
	started := time.Now()

	picks, err := svc.Draft(ctx, years, tidy.DraftOptions{KeepIdentifiers: true})
	if err != nil {
		result.AddErrorf("tidy draft: %v", err)
		return result
	}

	logger.Info("Seeding draft picks...", "run_id", result.RunID, "rows", picks.Len())
	for _, row := range picks.Records() {
		if row[tidy.ColDraftYear] == nil || row[tidy.ColDraftOverallPick] == nil {
			result.AddErrorf("skip pick without year/overall: %v", row[tidy.ColProspectFullName])
			continue
		}
		if err := UpsertDraftPick(ctx, db, result.RunID, row); err != nil {
			result.AddErrorf("upsert pick %v/%v: %v", row[tidy.ColDraftYear], row[tidy.ColDraftOverallPick], err)
		} else {
			result.PicksUpserted++
		}
	}

	keys := make([]string, len(years))
	for i, y := range years {
		keys[i] = strconv.Itoa(y)
	}
	recordRun(ctx, db, &result, "draft", keys, started, logger)
	logger.Info("Draft seed complete", "summary", result.Summary())
	return result
}

// SeedCatalogs writes every reference row of cat into the catalog tables.
func SeedCatalogs(ctx context.Context, db Execer, cat *catalog.Catalogs, logger *slog.Logger) Result {
	result := NewResult()

	logger.Info("Phase 1/4: Seeding seasons...")
	for _, s := range cat.Seasons() {
		if err := UpsertSeason(ctx, db, s); err != nil {
			result.AddErrorf("upsert season %s: %v", s.ID, err)
		} else {
			result.SeasonsUpserted++
		}
	}

	logger.Info("Phase 2/4: Seeding teams...")
	for _, t := range cat.Teams() {
		if err := UpsertTeam(ctx, db, t); err != nil {
			result.AddErrorf("upsert team %d: %v", t.ID, err)
		} else {
			result.TeamsUpserted++
		}
	}

	logger.Info("Phase 3/4: Seeding prospect mappings...")
	for _, p := range cat.Players() {
		if err := UpsertPlayer(ctx, db, p); err != nil {
			result.AddErrorf("upsert prospect %d: %v", p.ProspectID, err)
		} else {
			result.PlayersUpserted++
		}
	}

	logger.Info("Phase 4/4: Seeding draft years...")
	for _, y := range cat.DraftYears() {
		if err := UpsertDraftYear(ctx, db, y); err != nil {
			result.AddErrorf("upsert draft year %d: %v", y, err)
		}
	}

	logger.Info("Catalog seed complete", "summary", result.Summary())
	return result
}

// recordRun writes the ingest run row. Failures are added to result rather
// than returned since the data itself was already written.
func recordRun(ctx context.Context, db Execer, result *Result, kind string, keys []string, started time.Time, logger *slog.Logger) {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.IngestRunsTable+` (run_id, kind, keys, rows, errors, started_at, finished_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())`,
		result.RunID, kind, keys, result.Rows(), len(result.Errors), started,
	)
	if err != nil {
		logger.Warn("Failed to record ingest run", "run_id", result.RunID, "error", err)
		result.AddErrorf("record run: %v", err)
	}
}
