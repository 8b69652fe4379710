package tidy

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/albapepper/scoracle-nhl/internal/provider"
	"github.com/albapepper/scoracle-nhl/internal/table"
)

// DraftPick is one canonical draft row. Nil fields are nulls.
type DraftPick struct {
	DraftYear        *int
	DraftRound       *int
	DraftRoundPick   *int
	DraftOverallPick *int
	TeamID           *int
	TeamAbbreviation *string
	ProspectID       *int
	ProspectFullName *string
	PlayerID         *int
}

// PlayerResolver maps draft prospect IDs to player IDs.
type PlayerResolver interface {
	PlayerForProspect(prospectID *int) *int
}

// DraftCatalog is what a draft batch joins against.
type DraftCatalog interface {
	TeamResolver
	PlayerResolver
}

// DeriveDraftPick types the fields of one normalized draft record. The API
// sends the round as a string ("1").
func DeriveDraftPick(r provider.Record) DraftPick {
	return DraftPick{
		DraftYear:        r.ExtractInt(provider.FieldDraftYear),
		DraftRound:       parseRound(r.ExtractString(provider.FieldDraftRound)),
		DraftRoundPick:   r.ExtractInt(provider.FieldPickInRound),
		DraftOverallPick: r.ExtractInt(provider.FieldPickOverall),
		TeamID:           r.ExtractInt(provider.FieldDraftTeamID),
		ProspectID:       r.ExtractInt(provider.FieldProspectID),
		ProspectFullName: r.ExtractString(provider.FieldProspectFullName),
	}
}

func parseRound(s *string) *int {
	if s == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &n
}

// ResolveDraftPicks returns copies of picks with the team abbreviation and
// the prospect's player ID joined. The two lookups are independent; a miss
// in either leaves only that field nil.
func ResolveDraftPicks(picks []DraftPick, cat DraftCatalog) []DraftPick {
	out := make([]DraftPick, len(picks))
	for i, p := range picks {
		p.TeamAbbreviation = cat.TeamAbbreviation(p.TeamID)
		p.PlayerID = cat.PlayerForProspect(p.ProspectID)
		out[i] = p
	}
	return out
}

// Values returns the row keyed by canonical column name.
func (p DraftPick) Values() map[string]any {
	return map[string]any{
		ColDraftYear:        cell(p.DraftYear),
		ColDraftRound:       cell(p.DraftRound),
		ColDraftRoundPick:   cell(p.DraftRoundPick),
		ColDraftOverallPick: cell(p.DraftOverallPick),
		ColTeamID:           cell(p.TeamID),
		ColTeamAbbreviation: cell(p.TeamAbbreviation),
		ColProspectID:       cell(p.ProspectID),
		ColProspectFullName: cell(p.ProspectFullName),
		ColPlayerID:         cell(p.PlayerID),
	}
}

// TidyDraft normalizes, derives and joins one fetched draft batch into a
// table with DraftColumns.
func TidyDraft(records []provider.Record, cat DraftCatalog, logger *slog.Logger) *table.Table {
	if logger == nil {
		logger = slog.Default()
	}
	normalized := provider.Normalize(records, provider.DraftSchema)

	picks := make([]DraftPick, 0, len(normalized))
	for _, r := range normalized {
		p := DeriveDraftPick(r)
		if p.DraftRound == nil && r[provider.FieldDraftRound] != nil {
			logger.Debug("Unparseable draft round", "overall", cell(p.DraftOverallPick), "raw", r[provider.FieldDraftRound])
		}
		picks = append(picks, p)
	}

	b := table.NewBuilder(DraftColumns...)
	for _, p := range ResolveDraftPicks(picks, cat) {
		b.Add(p.Values())
	}
	return b.Build()
}
