package tidy

import (
	"log/slog"
	"strings"
	"time"

	"github.com/albapepper/scoracle-nhl/internal/provider"
	"github.com/albapepper/scoracle-nhl/internal/table"
)

const (
	// regulationPeriods is subtracted from the final period to count overtimes.
	regulationPeriods = 3

	// gameTypeCodeOffset locates the two-digit game type code inside a game
	// ID: 2019020001 -> "02".
	gameTypeCodeOffset  = 4
	gameTypeCodeRegular = "02"
)

// Raw gameType tags kept in schedule tables. Preseason ("PR"), all-star
// ("A") and other exhibition tags are dropped before derivation.
const (
	rawGameTypeRegular  = "R"
	rawGameTypePlayoffs = "P"
)

// Game is one canonical schedule row. Nil fields are nulls.
type Game struct {
	SeasonID         *string
	SeasonYears      *string
	SeasonType       *string
	GameID           *int
	GameDatetime     *time.Time
	GameStatus       *string
	VenueName        *string
	AwayTeamID       *int
	AwayAbbreviation *string
	AwayScore        *int
	HomeScore        *int
	HomeAbbreviation *string
	HomeTeamID       *int
	GameNbOT         *int
	GameShootout     *bool
}

// SeasonLabeler resolves season IDs to "YYYY-YYYY" labels.
type SeasonLabeler interface {
	SeasonLabel(id *string) *string
}

// TeamResolver resolves team IDs to abbreviations.
type TeamResolver interface {
	TeamAbbreviation(id *int) *string
}

// KeepGameType reports whether a raw schedule record is a regular season or
// playoff game. Only those reach derivation.
func KeepGameType(r provider.Record) bool {
	t := r.ExtractString(provider.FieldGameType)
	return t != nil && (*t == rawGameTypeRegular || *t == rawGameTypePlayoffs)
}

// DeriveGame computes the canonical fields of one normalized schedule record.
// Team abbreviations are left nil; ResolveGames fills them.
func DeriveGame(r provider.Record, seasons SeasonLabeler, loc *time.Location) Game {
	g := Game{
		SeasonID:     r.ExtractString(provider.FieldSeason),
		GameID:       r.ExtractInt(provider.FieldGamePk),
		GameDatetime: parseGameDate(r.ExtractString(provider.FieldGameDate), loc),
		VenueName:    r.ExtractString(provider.FieldVenueName),
		AwayTeamID:   r.ExtractInt(provider.FieldAwayTeamID),
		AwayScore:    r.ExtractInt(provider.FieldAwayScore),
		HomeScore:    r.ExtractInt(provider.FieldHomeScore),
		HomeTeamID:   r.ExtractInt(provider.FieldHomeTeamID),
		GameShootout: r.ExtractBool(provider.FieldHasShootout),
	}
	g.SeasonYears = seasons.SeasonLabel(g.SeasonID)
	g.SeasonType = seasonTypeFromGameID(r.ExtractString(provider.FieldGamePk))

	if state := r.ExtractString(provider.FieldDetailedState); state != nil {
		g.GameStatus = ptr(strings.ToLower(*state))
	}

	if period := r.ExtractInt(provider.FieldCurrentPeriod); period != nil && g.GameShootout != nil {
		shootout := 0
		if *g.GameShootout {
			shootout = 1
		}
		g.GameNbOT = ptr(*period - shootout - regulationPeriods)
	}

	if g.GameStatus == nil || *g.GameStatus != StatusFinal {
		g.AwayScore = nil
		g.HomeScore = nil
		g.GameNbOT = nil
		g.GameShootout = nil
	}
	return g
}

// seasonTypeFromGameID reads the game type code embedded in a game ID.
// IDs too short to carry a code yield nil.
func seasonTypeFromGameID(id *string) *string {
	if id == nil || len(*id) < gameTypeCodeOffset+2 {
		return nil
	}
	if (*id)[gameTypeCodeOffset:gameTypeCodeOffset+2] == gameTypeCodeRegular {
		return ptr(SeasonTypeRegular)
	}
	return ptr(SeasonTypePlayoffs)
}

// parseGameDate parses the API's UTC timestamp and converts it to loc. The
// API sometimes omits seconds ("2019-10-02T23:00Z").
func parseGameDate(s *string, loc *time.Location) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04Z07:00", *s)
	}
	if err != nil {
		return nil
	}
	if loc != nil {
		t = t.In(loc)
	}
	return &t
}

// ResolveGames returns copies of games with team abbreviations joined from
// teams. Unknown or null team IDs leave the abbreviation nil.
func ResolveGames(games []Game, teams TeamResolver) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		g.AwayAbbreviation = teams.TeamAbbreviation(g.AwayTeamID)
		g.HomeAbbreviation = teams.TeamAbbreviation(g.HomeTeamID)
		out[i] = g
	}
	return out
}

// Values returns the row keyed by canonical column name.
func (g Game) Values() map[string]any {
	return map[string]any{
		ColSeasonID:         cell(g.SeasonID),
		ColSeasonYears:      cell(g.SeasonYears),
		ColSeasonType:       cell(g.SeasonType),
		ColGameID:           cell(g.GameID),
		ColGameDatetime:     cell(g.GameDatetime),
		ColGameStatus:       cell(g.GameStatus),
		ColVenueName:        cell(g.VenueName),
		ColAwayTeamID:       cell(g.AwayTeamID),
		ColAwayAbbreviation: cell(g.AwayAbbreviation),
		ColAwayScore:        cell(g.AwayScore),
		ColHomeScore:        cell(g.HomeScore),
		ColHomeAbbreviation: cell(g.HomeAbbreviation),
		ColHomeTeamID:       cell(g.HomeTeamID),
		ColGameNbOT:         cell(g.GameNbOT),
		ColGameShootout:     cell(g.GameShootout),
	}
}

// GameCatalog is what a schedule batch joins against.
type GameCatalog interface {
	SeasonLabeler
	TeamResolver
}

// TidyGames normalizes, filters, derives and joins one fetched schedule
// batch into a table with GameColumns.
func TidyGames(records []provider.Record, cat GameCatalog, loc *time.Location, logger *slog.Logger) *table.Table {
	if logger == nil {
		logger = slog.Default()
	}
	normalized := provider.Normalize(records, provider.GameSchema)

	games := make([]Game, 0, len(normalized))
	for _, r := range normalized {
		if !KeepGameType(r) {
			logger.Debug("Dropping non-regular, non-playoff game",
				"game_pk", cell(r.ExtractString(provider.FieldGamePk)),
				"game_type", cell(r.ExtractString(provider.FieldGameType)))
			continue
		}
		g := DeriveGame(r, cat, loc)
		if g.GameDatetime == nil && r[provider.FieldGameDate] != nil {
			logger.Debug("Unparseable game date", "game_pk", cell(g.GameID), "raw", r[provider.FieldGameDate])
		}
		games = append(games, g)
	}

	b := table.NewBuilder(GameColumns...)
	for _, g := range ResolveGames(games, cat) {
		b.Add(g.Values())
	}
	return b.Build()
}
