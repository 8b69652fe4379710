// Command ingest is the Scoracle NHL tidy-data CLI.
//
// Usage:
//
//	scoracle-nhl schedule --season 20192020 --season 20202021 --tz America/Toronto
//	scoracle-nhl schedule --season 20182019 --no-regular --format json --out playoffs.json
//	scoracle-nhl draft --year 2019 --keep-id
//	scoracle-nhl seed schedule --season 20192020
//	scoracle-nhl seed draft --year 2018 --year 2019
//	scoracle-nhl seed catalog --refresh
//	scoracle-nhl catalog seasons
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-nhl/internal/catalog"
	"github.com/albapepper/scoracle-nhl/internal/config"
	"github.com/albapepper/scoracle-nhl/internal/db"
	"github.com/albapepper/scoracle-nhl/internal/provider/nhl"
	"github.com/albapepper/scoracle-nhl/internal/seed"
	"github.com/albapepper/scoracle-nhl/internal/table"
	"github.com/albapepper/scoracle-nhl/internal/tidy"
)

// Logs go to stderr so stdout carries only table output.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Global flags overriding CATALOG_SOURCE / CATALOG_DIR.
var (
	catalogSource string
	catalogDir    string
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "scoracle-nhl",
		Short:         "Tidy NHL schedule and draft data",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&catalogSource, "catalog-source", "", "Catalog source: embedded, dir or db (default from CATALOG_SOURCE)")
	root.PersistentFlags().StringVar(&catalogDir, "catalog-dir", "", "Directory of catalog CSV overrides (implies --catalog-source=dir)")

	root.AddCommand(scheduleCmd())
	root.AddCommand(draftCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(catalogCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// schedule / draft commands
// --------------------------------------------------------------------------

type outputFlags struct {
	format string
	out    string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "csv", "Output format: csv or json")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Write to file instead of stdout")
}

func scheduleCmd() *cobra.Command {
	var (
		seasons    []string
		noRegular  bool
		noPlayoffs bool
		tz         string
		keepIDs    bool
		output     outputFlags
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the tidy game schedule for one or more seasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTidy(func(ctx context.Context, env *tidyEnv) error {
				opts := tidy.DefaultScheduleOptions()
				opts.IncludeRegular = !noRegular
				opts.IncludePlayoffs = !noPlayoffs
				opts.KeepIdentifiers = keepIDs
				opts.Location = env.loc
				if tz != "" {
					loc, err := time.LoadLocation(tz)
					if err != nil {
						return fmt.Errorf("--tz %q: %w", tz, err)
					}
					opts.Location = loc
				}

				start := time.Now()
				t, err := env.svc.Schedule(ctx, seasons, opts)
				if err != nil {
					return err
				}
				logger.Info("Schedule tidied", "seasons", len(seasons), "rows", t.Len(),
					"duration", time.Since(start).Round(time.Millisecond))
				return writeTable(t, output)
			})
		},
	}
	cmd.Flags().StringSliceVar(&seasons, "season", nil, "Season ID, e.g. 20192020 (repeatable)")
	cmd.Flags().BoolVar(&noRegular, "no-regular", false, "Exclude regular-season games")
	cmd.Flags().BoolVar(&noPlayoffs, "no-playoffs", false, "Exclude playoff games")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA time zone for game_datetime (default TZ_NAME or local)")
	cmd.Flags().BoolVar(&keepIDs, "keep-id", false, "Keep *_id columns")
	output.register(cmd)
	cmd.MarkFlagRequired("season")
	return cmd
}

func draftCmd() *cobra.Command {
	var (
		keys    []string
		keepIDs bool
		output  outputFlags
	)
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Print the tidy draft picks for one or more draft years",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTidy(func(ctx context.Context, env *tidyEnv) error {
				years, err := env.svc.ParseAndValidateDraftYears(keys)
				if err != nil {
					return err
				}
				env.loadProspects(ctx)
				t, err := env.svc.Draft(ctx, years, tidy.DraftOptions{KeepIdentifiers: keepIDs})
				if err != nil {
					return err
				}
				logger.Info("Draft tidied", "years", len(years), "rows", t.Len())
				return writeTable(t, output)
			})
		},
	}
	cmd.Flags().StringSliceVar(&keys, "year", nil, "Draft year, e.g. 2019 (repeatable)")
	cmd.Flags().BoolVar(&keepIDs, "keep-id", false, "Keep *_id columns")
	output.register(cmd)
	cmd.MarkFlagRequired("year")
	return cmd
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write tidy tables and catalogs into Postgres",
	}
	cmd.AddCommand(seedScheduleCmd())
	cmd.AddCommand(seedDraftCmd())
	cmd.AddCommand(seedCatalogCmd())
	return cmd
}

func seedScheduleCmd() *cobra.Command {
	var seasons []string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Seed nhl_games for one or more seasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, env *tidyEnv, pool *db.Pool) error {
				opts := tidy.DefaultScheduleOptions()
				opts.Location = env.loc
				start := time.Now()
				result := seed.SeedSchedule(ctx, pool, env.svc, seasons, opts, logger)
				return reportSeed("Schedule", result, start)
			})
		},
	}
	cmd.Flags().StringSliceVar(&seasons, "season", nil, "Season ID, e.g. 20192020 (repeatable)")
	cmd.MarkFlagRequired("season")
	return cmd
}

func seedDraftCmd() *cobra.Command {
	var keys []string
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Seed nhl_draft_picks for one or more draft years",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, env *tidyEnv, pool *db.Pool) error {
				years, err := env.svc.ParseAndValidateDraftYears(keys)
				if err != nil {
					return err
				}
				env.loadProspects(ctx)
				start := time.Now()
				result := seed.SeedDraft(ctx, pool, env.svc, years, logger)
				return reportSeed("Draft", result, start)
			})
		},
	}
	cmd.Flags().StringSliceVar(&keys, "year", nil, "Draft year, e.g. 2019 (repeatable)")
	cmd.MarkFlagRequired("year")
	return cmd
}

func seedCatalogCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Seed the reference tables from the loaded catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, env *tidyEnv, pool *db.Pool) error {
				cat := env.catalogs
				if refresh {
					var err error
					if cat, err = refreshCatalogs(ctx, env); err != nil {
						return err
					}
				}
				start := time.Now()
				result := seed.SeedCatalogs(ctx, pool, cat, logger)
				return reportSeed("Catalog", result, start)
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch teams, seasons and prospect mappings from the NHL API before seeding")
	return cmd
}

// refreshCatalogs replaces teams and seasons with the API's current lists and
// merges the API's prospect mappings over the loaded ones. Draft years have no
// upstream listing and are kept.
func refreshCatalogs(ctx context.Context, env *tidyEnv) (*catalog.Catalogs, error) {
	teams, err := env.client.FetchTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh teams: %w", err)
	}
	seasons, err := env.client.FetchSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh seasons: %w", err)
	}
	prospects, err := env.client.FetchProspects(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh prospects: %w", err)
	}
	logger.Info("Catalogs refreshed from NHL API",
		"teams", len(teams),
		"seasons", len(seasons),
		"prospects", len(prospects))
	players := append(env.catalogs.Players(), prospects...)
	return catalog.New(seasons, teams, players, env.catalogs.DraftYears()), nil
}

func reportSeed(kind string, result seed.Result, start time.Time) error {
	logger.Info(kind+" seed finished",
		"run_id", result.RunID,
		"duration", time.Since(start).Round(time.Second),
		"summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error("seed error", "error", e)
	}
	if len(result.Errors) > 0 && result.Rows() == 0 {
		return fmt.Errorf("%s seed wrote nothing: %s", kind, result.Errors[0])
	}
	return nil
}

// --------------------------------------------------------------------------
// catalog command
// --------------------------------------------------------------------------

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the loaded reference catalogs",
	}
	var output outputFlags

	seasons := &cobra.Command{
		Use:   "seasons",
		Short: "List known seasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTidy(func(ctx context.Context, env *tidyEnv) error {
				b := table.NewBuilder(tidy.ColSeasonID, tidy.ColSeasonYears, "regular_start", "regular_end", "season_end")
				for _, s := range env.catalogs.Seasons() {
					b.Add(map[string]any{
						tidy.ColSeasonID:    s.ID,
						tidy.ColSeasonYears: s.Label,
						"regular_start":     zeroNil(s.RegularStart),
						"regular_end":       zeroNil(s.RegularEnd),
						"season_end":        zeroNil(s.SeasonEnd),
					})
				}
				return writeTable(b.Build(), output)
			})
		},
	}
	teams := &cobra.Command{
		Use:   "teams",
		Short: "List known teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTidy(func(ctx context.Context, env *tidyEnv) error {
				b := table.NewBuilder(tidy.ColTeamID, tidy.ColTeamAbbreviation, "team_name")
				for _, t := range env.catalogs.Teams() {
					b.Add(map[string]any{
						tidy.ColTeamID:           t.ID,
						tidy.ColTeamAbbreviation: t.Abbreviation,
						"team_name":              t.Name,
					})
				}
				return writeTable(b.Build(), output)
			})
		},
	}
	drafts := &cobra.Command{
		Use:   "drafts",
		Short: "List known draft years",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTidy(func(ctx context.Context, env *tidyEnv) error {
				b := table.NewBuilder(tidy.ColDraftYear)
				for _, y := range env.catalogs.DraftYears() {
					b.Add(map[string]any{tidy.ColDraftYear: y})
				}
				return writeTable(b.Build(), output)
			})
		},
	}
	for _, c := range []*cobra.Command{seasons, teams, drafts} {
		output.register(c)
		cmd.AddCommand(c)
	}
	return cmd
}

func zeroNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

type tidyEnv struct {
	cfg      *config.Config
	loc      *time.Location
	client   *nhl.Client
	catalogs *catalog.Catalogs
	svc      *tidy.Service
}

// runTidy wires config, catalogs and the NHL client. A database connection
// is opened only when catalogs come from Postgres.
func runTidy(fn func(ctx context.Context, env *tidyEnv) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var q catalog.Querier
	if cfg.CatalogSource == "db" {
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		q = pool
	}

	env, err := newTidyEnv(ctx, cfg, q)
	if err != nil {
		return err
	}
	return fn(ctx, env)
}

// runSeed is runTidy plus a database pool with the schema in place.
func runSeed(fn func(ctx context.Context, env *tidyEnv, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	env, err := newTidyEnv(ctx, cfg, pool)
	if err != nil {
		return err
	}
	return fn(ctx, env, pool)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if catalogDir != "" {
		cfg.CatalogDir = catalogDir
		cfg.CatalogSource = "dir"
	}
	if catalogSource != "" {
		cfg.CatalogSource = catalogSource
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	return cfg, nil
}

func newTidyEnv(ctx context.Context, cfg *config.Config, q catalog.Querier) (*tidyEnv, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if cfg.CatalogSource != "db" {
		q = nil
	}
	catalogs, err := catalog.Open(ctx, cfg.CatalogSource, cfg.CatalogDir, q)
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	client := nhl.NewClient(cfg.NHLBaseURL, cfg.RequestsPerMinute, cfg.HTTPTimeout, logger)
	return &tidyEnv{
		cfg:      cfg,
		loc:      loc,
		client:   client,
		catalogs: catalogs,
		svc:      tidy.NewService(client, catalogs, logger),
	}, nil
}

// loadProspects fills missing prospect mappings from the API so draft rows
// carry player_id. A failure is logged and player_id stays null.
func (e *tidyEnv) loadProspects(ctx context.Context) {
	if !e.cfg.ProspectsFromAPI {
		return
	}
	cat, err := catalog.EnsurePlayers(ctx, e.catalogs, e.client)
	if err != nil {
		logger.Warn("Prospect mappings unavailable", "error", err)
		return
	}
	e.catalogs = cat
	e.svc = tidy.NewService(e.client, cat, logger)
}

func writeTable(t *table.Table, o outputFlags) (err error) {
	var encode func(io.Writer) error
	switch o.format {
	case "csv":
		encode = t.WriteCSV
	case "json":
		encode = func(w io.Writer) error {
			data, err := json.MarshalIndent(t, "", "  ")
			if err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", o.format)
	}

	if o.out == "" {
		return encode(os.Stdout)
	}
	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create %s: %w", o.out, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", o.out, cerr)
		}
	}()
	return encode(f)
}
