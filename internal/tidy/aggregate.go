package tidy

import (
	"time"

	"github.com/albapepper/scoracle-nhl/internal/table"
)

// ScheduleOptions controls schedule aggregation.
type ScheduleOptions struct {
	IncludeRegular  bool
	IncludePlayoffs bool
	// Location is the zone game_datetime is converted to. Nil means time.Local.
	Location        *time.Location
	KeepIdentifiers bool
}

// DefaultScheduleOptions keeps both season types, converts to the local
// zone and drops identifier columns.
func DefaultScheduleOptions() ScheduleOptions {
	return ScheduleOptions{
		IncludeRegular:  true,
		IncludePlayoffs: true,
		Location:        time.Local,
	}
}

// DraftOptions controls draft aggregation.
type DraftOptions struct {
	KeepIdentifiers bool
}

// AggregateGames stacks per-season batches in the order given, applies the
// season type filters, fixes the column order and optionally strips
// identifier columns. Rows with a null season type are only removed by an
// explicit match, so they survive both filters.
func AggregateGames(batches []*table.Table, opts ScheduleOptions) *table.Table {
	out := table.Concat(GameColumns, batches...)

	if !opts.IncludeRegular {
		out = out.Filter(func(r table.Row) bool { return r.Get(ColSeasonType) != SeasonTypeRegular })
	}
	if !opts.IncludePlayoffs {
		out = out.Filter(func(r table.Row) bool { return r.Get(ColSeasonType) != SeasonTypePlayoffs })
	}

	out = out.Select(GameColumns...)
	if !opts.KeepIdentifiers {
		out = out.DropSuffix(IdentifierSuffix)
	}
	return out
}

// AggregateDraft stacks per-year batches, orders them by draft year then
// overall pick (nulls last, ties in fetch order), fixes the column order and
// optionally strips identifier columns.
func AggregateDraft(batches []*table.Table, opts DraftOptions) *table.Table {
	out := table.Concat(DraftColumns, batches...)

	out = out.SortStable(func(a, b table.Row) bool {
		if c := compareNullableInt(a.Get(ColDraftYear), b.Get(ColDraftYear)); c != 0 {
			return c < 0
		}
		return compareNullableInt(a.Get(ColDraftOverallPick), b.Get(ColDraftOverallPick)) < 0
	})

	out = out.Select(DraftColumns...)
	if !opts.KeepIdentifiers {
		out = out.DropSuffix(IdentifierSuffix)
	}
	return out
}

// compareNullableInt orders ints ascending with nulls after every value.
func compareNullableInt(a, b any) int {
	x, aok := a.(int)
	y, bok := b.(int)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
