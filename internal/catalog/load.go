package catalog

import (
	"context"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

//go:embed data/*.csv
var embedded embed.FS

// Reference file names, shared by the embedded defaults and CATALOG_DIR.
const (
	SeasonsFile = "seasons.csv"
	TeamsFile   = "teams.csv"
	PlayersFile = "players.csv"
	DraftsFile  = "drafts.csv"
)

// Default builds catalogs from the embedded reference files. The embedded
// set carries no prospect mappings; EnsurePlayers fills them from the API.
func Default() (*Catalogs, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded catalogs: %w", err)
	}
	return loadFS(sub, nil)
}

// LoadDir builds catalogs from CSV files in dir. Any file missing from dir
// falls back to the embedded default.
func LoadDir(dir string) (*Catalogs, error) {
	base, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded catalogs: %w", err)
	}
	return loadFS(os.DirFS(filepath.Clean(dir)), base)
}

func loadFS(primary, fallback fs.FS) (*Catalogs, error) {
	read := func(name string) ([]map[string]string, error) {
		f, err := primary.Open(name)
		if errors.Is(err, fs.ErrNotExist) && fallback != nil {
			f, err = fallback.Open(name)
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer f.Close()

		rows, err := readCSV(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return rows, nil
	}

	rows, err := read(SeasonsFile)
	if err != nil {
		return nil, err
	}
	seasons, err := parseSeasons(rows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", SeasonsFile, err)
	}

	if rows, err = read(TeamsFile); err != nil {
		return nil, err
	}
	teams, err := parseTeams(rows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", TeamsFile, err)
	}

	if rows, err = read(PlayersFile); err != nil {
		return nil, err
	}
	players, err := parsePlayers(rows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", PlayersFile, err)
	}

	if rows, err = read(DraftsFile); err != nil {
		return nil, err
	}
	years, err := parseDraftYears(rows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", DraftsFile, err)
	}

	return New(seasons, teams, players, years), nil
}

// readCSV returns each data row keyed by lowercased header name.
func readCSV(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseSeasons(rows []map[string]string) ([]Season, error) {
	out := make([]Season, 0, len(rows))
	for i, row := range rows {
		id := row["season_id"]
		if id == "" {
			return nil, fmt.Errorf("row %d: missing season_id", i+1)
		}
		s := Season{ID: id, Label: row["season_years"]}
		var err error
		if s.RegularStart, err = parseDate(row["regular_start"]); err != nil {
			return nil, fmt.Errorf("row %d: regular_start: %w", i+1, err)
		}
		if s.RegularEnd, err = parseDate(row["regular_end"]); err != nil {
			return nil, fmt.Errorf("row %d: regular_end: %w", i+1, err)
		}
		if s.SeasonEnd, err = parseDate(row["season_end"]); err != nil {
			return nil, fmt.Errorf("row %d: season_end: %w", i+1, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseTeams(rows []map[string]string) ([]Team, error) {
	out := make([]Team, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row["team_id"])
		if err != nil {
			return nil, fmt.Errorf("row %d: team_id: %w", i+1, err)
		}
		out = append(out, Team{
			ID:           id,
			Abbreviation: row["team_abbreviation"],
			Name:         row["team_name"],
		})
	}
	return out, nil
}

func parsePlayers(rows []map[string]string) ([]Player, error) {
	out := make([]Player, 0, len(rows))
	for i, row := range rows {
		prospectID, err := strconv.Atoi(row["prospect_id"])
		if err != nil {
			return nil, fmt.Errorf("row %d: prospect_id: %w", i+1, err)
		}
		playerID, err := strconv.Atoi(row["player_id"])
		if err != nil {
			return nil, fmt.Errorf("row %d: player_id: %w", i+1, err)
		}
		out = append(out, Player{ProspectID: prospectID, PlayerID: playerID, Name: row["player_name"]})
	}
	return out, nil
}

func parseDraftYears(rows []map[string]string) ([]int, error) {
	out := make([]int, 0, len(rows))
	for i, row := range rows {
		y, err := strconv.Atoi(row["draft_year"])
		if err != nil {
			return nil, fmt.Errorf("row %d: draft_year: %w", i+1, err)
		}
		out = append(out, y)
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

// PlayerSource lists prospect to player mappings. *nhl.Client satisfies it.
type PlayerSource interface {
	FetchProspects(ctx context.Context) ([]Player, error)
}

// EnsurePlayers returns c unchanged when it already holds prospect mappings.
// Otherwise it fetches them from src and returns a copy of c that includes
// them.
func EnsurePlayers(ctx context.Context, c *Catalogs, src PlayerSource) (*Catalogs, error) {
	if len(c.players) > 0 {
		return c, nil
	}
	players, err := src.FetchProspects(ctx)
	if err != nil {
		return c, fmt.Errorf("load prospect mappings: %w", err)
	}
	return c.WithPlayers(players), nil
}

// Open loads catalogs from the named source: "embedded", "dir" (CSV files in
// dir, falling back to embedded ones) or "db" (q must be non-nil).
func Open(ctx context.Context, source, dir string, q Querier) (*Catalogs, error) {
	switch source {
	case "", "embedded":
		return Default()
	case "dir":
		if dir == "" {
			return nil, fmt.Errorf("catalog source dir: no directory given")
		}
		return LoadDir(dir)
	case "db":
		if q == nil {
			return nil, fmt.Errorf("catalog source db: no database connection")
		}
		return LoadPostgres(ctx, q)
	}
	return nil, fmt.Errorf("unknown catalog source %q", source)
}
