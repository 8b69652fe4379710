// Package catalog holds the read-only reference tables the tidy pipeline
// joins against: seasons, teams, prospect-to-player mappings and draft years.
//
// A *Catalogs is built once at startup and never mutated afterwards, so it can
// be shared by concurrent requests without locking.
package catalog

import (
	"sort"
	"strconv"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Season is one NHL season. Date fields are zero when the source catalog
// does not carry them.
type Season struct {
	ID           string    `json:"season_id"`
	Label        string    `json:"season_years"`
	RegularStart time.Time `json:"regular_start,omitempty"`
	RegularEnd   time.Time `json:"regular_end,omitempty"`
	SeasonEnd    time.Time `json:"season_end,omitempty"`
}

// Team maps an NHL team ID to its abbreviation and full name.
type Team struct {
	ID           int    `json:"team_id"`
	Abbreviation string `json:"team_abbreviation"`
	Name         string `json:"team_name"`
}

// Player maps a draft prospect ID to the player ID the prospect was given
// once they reached the league.
type Player struct {
	ProspectID int    `json:"prospect_id"`
	PlayerID   int    `json:"player_id"`
	Name       string `json:"player_name,omitempty"`
}

// Catalogs is the immutable set of reference tables.
type Catalogs struct {
	seasons     map[string]Season
	seasonOrder []string
	teams       map[int]Team
	players     map[int]Player
	draftYears  map[int]struct{}
}

// New indexes the given reference rows. Later duplicates win.
func New(seasons []Season, teams []Team, players []Player, draftYears []int) *Catalogs {
	c := &Catalogs{
		seasons:    make(map[string]Season, len(seasons)),
		teams:      make(map[int]Team, len(teams)),
		players:    make(map[int]Player, len(players)),
		draftYears: make(map[int]struct{}, len(draftYears)),
	}
	for _, s := range seasons {
		if _, dup := c.seasons[s.ID]; !dup {
			c.seasonOrder = append(c.seasonOrder, s.ID)
		}
		c.seasons[s.ID] = s
	}
	sort.Strings(c.seasonOrder)
	for _, t := range teams {
		c.teams[t.ID] = t
	}
	for _, p := range players {
		c.players[p.ProspectID] = p
	}
	for _, y := range draftYears {
		c.draftYears[y] = struct{}{}
	}
	return c
}

// HasSeason reports whether id is a known season identifier ("20192020").
func (c *Catalogs) HasSeason(id string) bool {
	_, ok := c.seasons[id]
	return ok
}

// HasDraftYear reports whether a draft was held in year.
func (c *Catalogs) HasDraftYear(year int) bool {
	_, ok := c.draftYears[year]
	return ok
}

// SeasonLabel returns the "YYYY-YYYY" label for a season, or nil.
func (c *Catalogs) SeasonLabel(id *string) *string {
	if id == nil {
		return nil
	}
	s, ok := c.seasons[*id]
	if !ok || s.Label == "" {
		return nil
	}
	label := s.Label
	return &label
}

// TeamAbbreviation returns the abbreviation for a team ID, or nil.
func (c *Catalogs) TeamAbbreviation(id *int) *string {
	if id == nil {
		return nil
	}
	t, ok := c.teams[*id]
	if !ok || t.Abbreviation == "" {
		return nil
	}
	abbr := t.Abbreviation
	return &abbr
}

// PlayerForProspect returns the player ID a prospect maps to, or nil.
func (c *Catalogs) PlayerForProspect(prospectID *int) *int {
	if prospectID == nil {
		return nil
	}
	p, ok := c.players[*prospectID]
	if !ok {
		return nil
	}
	id := p.PlayerID
	return &id
}

// Seasons returns all seasons ordered by ID.
func (c *Catalogs) Seasons() []Season {
	out := make([]Season, 0, len(c.seasonOrder))
	for _, id := range c.seasonOrder {
		out = append(out, c.seasons[id])
	}
	return out
}

// Teams returns all teams ordered by ID.
func (c *Catalogs) Teams() []Team {
	out := make([]Team, 0, len(c.teams))
	for _, t := range c.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Players returns all prospect mappings ordered by prospect ID.
func (c *Catalogs) Players() []Player {
	out := make([]Player, 0, len(c.players))
	for _, p := range c.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProspectID < out[j].ProspectID })
	return out
}

// WithPlayers returns a copy of c with players merged into its prospect
// mappings. A mapping for an already known prospect replaces the old one.
func (c *Catalogs) WithPlayers(players []Player) *Catalogs {
	merged := append(c.Players(), players...)
	return New(c.Seasons(), c.Teams(), merged, c.DraftYears())
}

// DraftYears returns all draft years in ascending order.
func (c *Catalogs) DraftYears() []int {
	out := make([]int, 0, len(c.draftYears))
	for y := range c.draftYears {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// SuggestSeasons returns up to max known season IDs that fuzzily match key.
// Both IDs and labels are searched, so "2019-20" finds "20192020".
func (c *Catalogs) SuggestSeasons(key string, max int) []string {
	targets := make([]string, 0, 2*len(c.seasonOrder))
	ids := make([]string, 0, 2*len(c.seasonOrder))
	for _, id := range c.seasonOrder {
		targets = append(targets, id, c.seasons[id].Label)
		ids = append(ids, id, id)
	}
	return suggest(key, targets, ids, max)
}

// SuggestDraftYears returns up to max known draft years that fuzzily match key.
func (c *Catalogs) SuggestDraftYears(key string, max int) []string {
	years := c.DraftYears()
	targets := make([]string, len(years))
	for i, y := range years {
		targets[i] = strconv.Itoa(y)
	}
	return suggest(key, targets, targets, max)
}

func suggest(key string, targets, values []string, max int) []string {
	if key == "" || max <= 0 {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(key, targets)
	sort.Stable(ranks)

	seen := make(map[string]struct{})
	var out []string
	for _, r := range ranks {
		v := values[r.OriginalIndex]
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out
}
