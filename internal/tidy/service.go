package tidy

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-nhl/internal/provider"
	"github.com/albapepper/scoracle-nhl/internal/table"
)

const maxSuggestions = 3

// Fetcher retrieves the raw records for one season or draft year. An empty
// slice means the API had nothing for that key.
type Fetcher interface {
	FetchSchedule(ctx context.Context, seasonID string) ([]provider.Record, error)
	FetchDraft(ctx context.Context, year int) ([]provider.Record, error)
}

// Catalog is the read-only reference data a Service validates and joins
// against. *catalog.Catalogs satisfies it.
type Catalog interface {
	GameCatalog
	DraftCatalog
	HasSeason(id string) bool
	HasDraftYear(year int) bool
	SuggestSeasons(key string, max int) []string
	SuggestDraftYears(key string, max int) []string
}

// Service runs the fetch -> normalize -> derive -> join -> aggregate
// pipeline over a list of keys. Keys are processed one at a time; pacing
// between requests is the Fetcher's job.
type Service struct {
	fetcher  Fetcher
	catalogs Catalog
	logger   *slog.Logger
}

// NewService creates a Service.
func NewService(fetcher Fetcher, catalogs Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, catalogs: catalogs, logger: logger}
}

// Schedule returns the canonical schedule table for seasons, in the order
// given. Unknown seasons are rejected before anything is fetched. A failed
// fetch aborts the call and no partial table is returned.
func (s *Service) Schedule(ctx context.Context, seasons []string, opts ScheduleOptions) (*table.Table, error) {
	if err := s.ValidateSeasons(seasons); err != nil {
		return nil, err
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	batches := make([]*table.Table, 0, len(seasons))
	for _, season := range seasons {
		records, err := s.fetcher.FetchSchedule(ctx, season)
		if err != nil {
			return nil, fmt.Errorf("fetch schedule %s: %w", season, err)
		}
		batch := TidyGames(records, s.catalogs, loc, s.logger)
		s.logger.Info("Schedule batch tidied", "season", season, "records", len(records), "rows", batch.Len())
		batches = append(batches, batch)
	}

	out := AggregateGames(batches, opts)
	s.logger.Info("Schedule complete", "seasons", len(seasons), "rows", out.Len())
	return out, nil
}

// Draft returns the canonical draft table for years, sorted by year and
// overall pick. Unknown years are rejected before anything is fetched.
func (s *Service) Draft(ctx context.Context, years []int, opts DraftOptions) (*table.Table, error) {
	if err := s.ValidateDraftYears(years); err != nil {
		return nil, err
	}

	batches := make([]*table.Table, 0, len(years))
	for _, year := range years {
		records, err := s.fetcher.FetchDraft(ctx, year)
		if err != nil {
			return nil, fmt.Errorf("fetch draft %d: %w", year, err)
		}
		batch := TidyDraft(records, s.catalogs, s.logger)
		s.logger.Info("Draft batch tidied", "year", year, "records", len(records), "rows", batch.Len())
		batches = append(batches, batch)
	}

	out := AggregateDraft(batches, opts)
	s.logger.Info("Draft complete", "years", len(years), "rows", out.Len())
	return out, nil
}

// ValidateSeasons returns an *InvalidKeyError naming every unknown season.
func (s *Service) ValidateSeasons(seasons []string) error {
	var bad []string
	suggestions := make(map[string][]string)
	for _, id := range seasons {
		if s.catalogs.HasSeason(id) {
			continue
		}
		bad = append(bad, id)
		if hint := s.catalogs.SuggestSeasons(id, maxSuggestions); len(hint) > 0 {
			suggestions[id] = hint
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return &InvalidKeyError{Kind: "season", Keys: bad, Suggestions: suggestions}
}

// ValidateDraftYears returns an *InvalidKeyError naming every unknown year.
func (s *Service) ValidateDraftYears(years []int) error {
	var bad []string
	suggestions := make(map[string][]string)
	for _, y := range years {
		if s.catalogs.HasDraftYear(y) {
			continue
		}
		key := strconv.Itoa(y)
		bad = append(bad, key)
		if hint := s.catalogs.SuggestDraftYears(key, maxSuggestions); len(hint) > 0 {
			suggestions[key] = hint
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return &InvalidKeyError{Kind: "draft year", Keys: bad, Suggestions: suggestions}
}

// ParseAndValidateDraftYears converts textual draft years and checks them
// against the catalog in one pass. Keys that are not integers and years the
// catalog does not know are reported together, in input order, in a single
// *InvalidKeyError.
func (s *Service) ParseAndValidateDraftYears(keys []string) ([]int, error) {
	years := make([]int, 0, len(keys))
	var bad []string
	suggestions := make(map[string][]string)
	for _, k := range keys {
		y, err := strconv.Atoi(strings.TrimSpace(k))
		if err == nil && s.catalogs.HasDraftYear(y) {
			years = append(years, y)
			continue
		}
		bad = append(bad, k)
		if hint := s.catalogs.SuggestDraftYears(strings.TrimSpace(k), maxSuggestions); len(hint) > 0 {
			suggestions[k] = hint
		}
	}
	if len(bad) > 0 {
		return nil, &InvalidKeyError{Kind: "draft year", Keys: bad, Suggestions: suggestions}
	}
	return years, nil
}

// ParseDraftYears converts textual draft years. Every entry that is not an
// integer is reported in one *InvalidKeyError.
func ParseDraftYears(keys []string) ([]int, error) {
	years := make([]int, 0, len(keys))
	var bad []string
	for _, k := range keys {
		y, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			bad = append(bad, k)
			continue
		}
		years = append(years, y)
	}
	if len(bad) > 0 {
		return nil, &InvalidKeyError{Kind: "draft year", Keys: bad}
	}
	return years, nil
}
