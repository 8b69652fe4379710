package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-nhl/internal/api/respond"
	"github.com/albapepper/scoracle-nhl/internal/tidy"
)

// GetSchedule returns the canonical schedule table for one or more seasons.
// @Summary Get tidy schedule
// @Description Fetches each season from the NHL stats API and returns one row per regular-season or playoff game. Scores, overtime count and shootout flag are null unless the game is final.
// @Tags tidy
// @Produce json
// @Produce text/csv
// @Param season query []string true "Season ID, e.g. 20192020. Repeat or comma-separate for several." collectionFormat(multi)
// @Param regular query bool false "Include regular-season games" default(true)
// @Param playoffs query bool false "Include playoff games" default(true)
// @Param tz query string false "IANA time zone for game_datetime (defaults to TZ_NAME)"
// @Param keep_id query bool false "Keep *_id columns" default(false)
// @Param format query string false "Response format" Enums(json, csv) default(json)
// @Success 200 {object} respond.TableResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/schedule [get]
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	seasons := splitKeys(q["season"])
	if len(seasons) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_SEASON", "season query parameter is required")
		return
	}
	format, ok := parseFormat(w, q.Get("format"))
	if !ok {
		return
	}

	opts := tidy.DefaultScheduleOptions()
	opts.Location = h.loc
	var err error
	if opts.IncludeRegular, err = boolParam(q.Get("regular"), true); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "regular must be a boolean")
		return
	}
	if opts.IncludePlayoffs, err = boolParam(q.Get("playoffs"), true); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "playoffs must be a boolean")
		return
	}
	if opts.KeepIdentifiers, err = boolParam(q.Get("keep_id"), false); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "keep_id must be a boolean")
		return
	}
	if tz := q.Get("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_TZ", "Unknown time zone", tz)
			return
		}
		opts.Location = loc
	}

	t, err := h.svc.Schedule(r.Context(), seasons, opts)
	if err != nil {
		h.writeTidyError(w, err)
		return
	}
	respond.WriteTable(w, t, format)
}

// GetDraft returns the canonical draft table for one or more draft years.
// @Summary Get tidy draft
// @Description Fetches each draft year and returns one row per pick sorted by year then overall pick.
// @Tags tidy
// @Produce json
// @Produce text/csv
// @Param year query []string true "Draft year, e.g. 2019. Repeat or comma-separate for several." collectionFormat(multi)
// @Param keep_id query bool false "Keep *_id columns" default(false)
// @Param format query string false "Response format" Enums(json, csv) default(json)
// @Success 200 {object} respond.TableResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/draft [get]
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keys := splitKeys(q["year"])
	if len(keys) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_YEAR", "year query parameter is required")
		return
	}
	format, ok := parseFormat(w, q.Get("format"))
	if !ok {
		return
	}
	keep, err := boolParam(q.Get("keep_id"), false)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "keep_id must be a boolean")
		return
	}

	years, err := h.svc.ParseAndValidateDraftYears(keys)
	if err != nil {
		h.writeTidyError(w, err)
		return
	}
	t, err := h.svc.Draft(r.Context(), years, tidy.DraftOptions{KeepIdentifiers: keep})
	if err != nil {
		h.writeTidyError(w, err)
		return
	}
	respond.WriteTable(w, t, format)
}

func (h *Handler) writeTidyError(w http.ResponseWriter, err error) {
	var invalid *tidy.InvalidKeyError
	if errors.As(err, &invalid) {
		respond.WriteErrorKeys(w, http.StatusBadRequest, "INVALID_KEY", invalid.Error(), invalid.Keys)
		return
	}
	h.logger.Error("tidy request failed", "error", err)
	respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "NHL stats API request failed", err.Error())
}

// splitKeys accepts both repeated parameters and comma-separated lists.
func splitKeys(values []string) []string {
	var keys []string
	for _, v := range values {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func boolParam(v string, fallback bool) (bool, error) {
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseBool(v)
}

func parseFormat(w http.ResponseWriter, v string) (string, bool) {
	switch v {
	case "", "json":
		return "json", true
	case "csv":
		return "csv", true
	}
	respond.WriteError(w, http.StatusBadRequest, "INVALID_FORMAT", "format must be 'json' or 'csv'")
	return "", false
}
