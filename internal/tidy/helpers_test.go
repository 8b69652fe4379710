package tidy_test

import (
	"fmt"

	"github.com/albapepper/scoracle-nhl/internal/catalog"
	"github.com/albapepper/scoracle-nhl/internal/provider"
)

func testCatalog() *catalog.Catalogs {
	return catalog.New(
		[]catalog.Season{
			{ID: "20182019", Label: "2018-2019"},
			{ID: "20192020", Label: "2019-2020"},
		},
		[]catalog.Team{
			{ID: 8, Abbreviation: "MTL", Name: "Montréal Canadiens"},
			{ID: 10, Abbreviation: "TOR", Name: "Toronto Maple Leafs"},
		},
		[]catalog.Player{{ProspectID: 90, PlayerID: 8481559}},
		[]int{2018, 2019},
	)
}

// gameRecord is a flattened final regular-season game: MTL 3 at TOR 2.
func gameRecord(pk int) provider.Record {
	return provider.Record{
		provider.FieldGamePk:        float64(pk),
		provider.FieldGameType:      "R",
		provider.FieldSeason:        "20192020",
		provider.FieldGameDate:      "2019-10-02T23:00:00Z",
		provider.FieldDetailedState: "Final",
		provider.FieldVenueName:     "Scotiabank Arena",
		provider.FieldAwayTeamID:    float64(8),
		provider.FieldAwayScore:     float64(3),
		provider.FieldHomeTeamID:    float64(10),
		provider.FieldHomeScore:     float64(2),
		provider.FieldCurrentPeriod: float64(3),
		provider.FieldHasShootout:   false,
	}
}

func gameRecords(n int) []provider.Record {
	out := make([]provider.Record, n)
	for i := range out {
		out[i] = gameRecord(2019020001 + i)
	}
	return out
}

func pickRecord(year, overall int, prospect interface{}) provider.Record {
	return provider.Record{
		provider.FieldDraftYear:        float64(year),
		provider.FieldDraftRound:       "1",
		provider.FieldPickInRound:      float64(overall),
		provider.FieldPickOverall:      float64(overall),
		provider.FieldDraftTeamID:      float64(10),
		provider.FieldProspectID:       prospect,
		provider.FieldProspectFullName: fmt.Sprintf("Prospect %d", overall),
	}
}
