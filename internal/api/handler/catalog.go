package handler

import (
	"net/http"
	"time"

	"github.com/albapepper/scoracle-nhl/internal/api/respond"
	"github.com/albapepper/scoracle-nhl/internal/catalog"
)

type seasonView struct {
	ID           string  `json:"season_id"`
	Label        string  `json:"season_years"`
	RegularStart *string `json:"regular_start"`
	RegularEnd   *string `json:"regular_end"`
	SeasonEnd    *string `json:"season_end"`
}

// GetSeasons lists the seasons the schedule endpoint accepts.
// @Summary List known seasons
// @Description Returns the season catalog in ascending order.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/catalog/seasons [get]
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons := h.catalogs.Seasons()
	out := make([]seasonView, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, seasonView{
			ID:           s.ID,
			Label:        s.Label,
			RegularStart: day(s.RegularStart),
			RegularEnd:   day(s.RegularEnd),
			SeasonEnd:    day(s.SeasonEnd),
		})
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count": len(out),
		"data":  out,
	})
}

// GetTeams lists the team catalog used for abbreviation joins.
// @Summary List known teams
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/catalog/teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams := h.catalogs.Teams()
	if teams == nil {
		teams = []catalog.Team{}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count": len(teams),
		"data":  teams,
	})
}

// GetDraftYears lists the draft years the draft endpoint accepts.
// @Summary List known draft years
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/catalog/drafts [get]
func (h *Handler) GetDraftYears(w http.ResponseWriter, r *http.Request) {
	years := h.catalogs.DraftYears()
	if years == nil {
		years = []int{}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count": len(years),
		"data":  years,
	})
}

func day(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
