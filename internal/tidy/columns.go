// Package tidy turns raw NHL schedule and draft records into canonical
// tables: it normalizes each fetched batch against a required-field schema,
// derives the computed columns, joins reference catalogs, and aggregates the
// per-key batches into one table with a fixed column order.
package tidy

// IdentifierSuffix marks a column as an identifier rather than a
// human-readable attribute.
const IdentifierSuffix = "_id"

// Game columns.
const (
	ColSeasonID         = "season_id"
	ColSeasonYears      = "season_years"
	ColSeasonType       = "season_type"
	ColGameID           = "game_id"
	ColGameDatetime     = "game_datetime"
	ColGameStatus       = "game_status"
	ColVenueName        = "venue_name"
	ColAwayTeamID       = "away_team_id"
	ColAwayAbbreviation = "away_abbreviation"
	ColAwayScore        = "away_score"
	ColHomeScore        = "home_score"
	ColHomeAbbreviation = "home_abbreviation"
	ColHomeTeamID       = "home_team_id"
	ColGameNbOT         = "game_nbot"
	ColGameShootout     = "game_shootout"
)

// Draft columns.
const (
	ColDraftYear        = "draft_year"
	ColDraftRound       = "draft_round"
	ColDraftRoundPick   = "draft_round_pick"
	ColDraftOverallPick = "draft_overall_pick"
	ColTeamID           = "team_id"
	ColTeamAbbreviation = "team_abbreviation"
	ColProspectID       = "prospect_id"
	ColProspectFullName = "prospect_fullname"
	ColPlayerID         = "player_id"
)

// GameColumns is the canonical schedule column order.
var GameColumns = []string{
	ColSeasonID,
	ColSeasonYears,
	ColSeasonType,
	ColGameID,
	ColGameDatetime,
	ColGameStatus,
	ColVenueName,
	ColAwayTeamID,
	ColAwayAbbreviation,
	ColAwayScore,
	ColHomeScore,
	ColHomeAbbreviation,
	ColHomeTeamID,
	ColGameNbOT,
	ColGameShootout,
}

// DraftColumns is the canonical draft column order.
var DraftColumns = []string{
	ColDraftYear,
	ColDraftRound,
	ColDraftRoundPick,
	ColDraftOverallPick,
	ColTeamID,
	ColTeamAbbreviation,
	ColProspectID,
	ColProspectFullName,
	ColPlayerID,
}

// Season type values.
const (
	SeasonTypeRegular  = "regular"
	SeasonTypePlayoffs = "playoffs"
)

// StatusFinal is the only game status whose scores are reported.
const StatusFinal = "final"

func cell[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptr[T any](v T) *T {
	return &v
}
