package nhl

import (
	"context"
	"fmt"
	"time"

	"github.com/albapepper/scoracle-nhl/internal/catalog"
	"github.com/albapepper/scoracle-nhl/internal/provider"
)

// FetchTeams returns every franchise the API lists, active or not.
func (c *Client) FetchTeams(ctx context.Context) ([]catalog.Team, error) {
	resp, err := c.get(ctx, "/teams", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch NHL teams: %w", err)
	}

	var teams []catalog.Team
	for _, raw := range objects(extractArray(resp, "teams")) {
		r := provider.Flatten(raw)
		id := r.ExtractInt("id")
		if id == nil {
			continue
		}
		teams = append(teams, catalog.Team{
			ID:           *id,
			Abbreviation: extractString(raw, "abbreviation"),
			Name:         extractString(raw, "name"),
		})
	}
	return teams, nil
}

// FetchSeasons returns every season with its regular season and season end
// dates.
func (c *Client) FetchSeasons(ctx context.Context) ([]catalog.Season, error) {
	resp, err := c.get(ctx, "/seasons", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch NHL seasons: %w", err)
	}

	var seasons []catalog.Season
	for _, raw := range objects(extractArray(resp, "seasons")) {
		id := extractString(raw, "seasonId")
		if len(id) != 8 {
			continue
		}
		seasons = append(seasons, catalog.Season{
			ID:           id,
			Label:        id[:4] + "-" + id[4:],
			RegularStart: parseDay(extractString(raw, "regularSeasonStartDate")),
			RegularEnd:   parseDay(extractString(raw, "regularSeasonEndDate")),
			SeasonEnd:    parseDay(extractString(raw, "seasonEndDate")),
		})
	}
	return seasons, nil
}

// FetchProspects returns the prospect to player mappings from the draft
// prospect listing. Prospects who never reached the league carry no
// nhlPlayerId and are skipped.
func (c *Client) FetchProspects(ctx context.Context) ([]catalog.Player, error) {
	resp, err := c.get(ctx, "/draft/prospects", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch NHL prospects: %w", err)
	}

	var players []catalog.Player
	for _, raw := range objects(extractArray(resp, "prospects")) {
		r := provider.Flatten(raw)
		prospectID := r.ExtractInt("id")
		playerID := r.ExtractInt("nhlPlayerId")
		if prospectID == nil || playerID == nil {
			continue
		}
		players = append(players, catalog.Player{
			ProspectID: *prospectID,
			PlayerID:   *playerID,
			Name:       extractString(raw, "fullName"),
		})
	}
	c.logger.Debug("Prospects fetched", "mapped", len(players))
	return players, nil
}

func parseDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
