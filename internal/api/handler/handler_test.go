package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-nhl/internal/api/handler"
	"github.com/albapepper/scoracle-nhl/internal/api/respond"
	"github.com/albapepper/scoracle-nhl/internal/catalog"
	"github.com/albapepper/scoracle-nhl/internal/config"
	"github.com/albapepper/scoracle-nhl/internal/table"
	"github.com/albapepper/scoracle-nhl/internal/tidy"
)

// MockTidier records the last request and returns canned tables. Draft
// keys are checked against validator when set.
type MockTidier struct {
	seasons   []string
	years     []int
	schedule  tidy.ScheduleOptions
	draft     tidy.DraftOptions
	err       error
	validator *tidy.Service
}

func (m *MockTidier) Schedule(ctx context.Context, seasons []string, opts tidy.ScheduleOptions) (*table.Table, error) {
	m.seasons, m.schedule = seasons, opts
	if m.err != nil {
		return nil, m.err
	}
	b := table.NewBuilder(tidy.ColGameStatus, tidy.ColHomeScore)
	b.Add(map[string]any{tidy.ColGameStatus: "final", tidy.ColHomeScore: 5})
	return b.Build(), nil
}

func (m *MockTidier) Draft(ctx context.Context, years []int, opts tidy.DraftOptions) (*table.Table, error) {
	m.years, m.draft = years, opts
	if m.err != nil {
		return nil, m.err
	}
	return table.New(tidy.ColDraftYear), nil
}

func (m *MockTidier) ParseAndValidateDraftYears(keys []string) ([]int, error) {
	if m.validator != nil {
		return m.validator.ParseAndValidateDraftYears(keys)
	}
	return tidy.ParseDraftYears(keys)
}

type MockPinger struct{ err error }

func (m MockPinger) HealthCheck(ctx context.Context) error { return m.err }

func setup(svc handler.Tidier, pinger handler.Pinger) *chi.Mux {
	cfg := &config.Config{TimezoneName: "UTC"}
	cat := catalog.New(
		[]catalog.Season{{ID: "20192020", Label: "2019-2020", RegularStart: time.Date(2019, 10, 2, 0, 0, 0, 0, time.UTC)}},
		[]catalog.Team{{ID: 10, Abbreviation: "TOR"}},
		nil,
		[]int{2019},
	)
	h := handler.New(svc, cat, pinger, cfg, nil)

	r := chi.NewRouter()
	r.Get("/health/db", h.HealthCheckDB)
	r.Get("/api/v1/schedule", h.GetSchedule)
	r.Get("/api/v1/draft", h.GetDraft)
	r.Get("/api/v1/catalog/seasons", h.GetSeasons)
	r.Get("/api/v1/catalog/teams", h.GetTeams)
	return r
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetSchedule(t *testing.T) {
	svc := &MockTidier{}
	r := setup(svc, nil)

	w := get(r, "/api/v1/schedule?season=20182019,20192020&playoffs=false&keep_id=true&tz=America/Toronto")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !reflect.DeepEqual(svc.seasons, []string{"20182019", "20192020"}) {
		t.Errorf("seasons = %v", svc.seasons)
	}
	if !svc.schedule.IncludeRegular || svc.schedule.IncludePlayoffs || !svc.schedule.KeepIdentifiers {
		t.Errorf("options = %+v", svc.schedule)
	}
	if svc.schedule.Location.String() != "America/Toronto" {
		t.Errorf("location = %v, want America/Toronto", svc.schedule.Location)
	}

	var body struct {
		Columns []string         `json:"columns"`
		Count   int              `json:"count"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || body.Data[0][tidy.ColGameStatus] != "final" {
		t.Errorf("body = %+v", body)
	}
	if !reflect.DeepEqual(body.Columns, []string{tidy.ColGameStatus, tidy.ColHomeScore}) {
		t.Errorf("columns = %v", body.Columns)
	}
}

func TestGetScheduleDefaultsToConfigZone(t *testing.T) {
	svc := &MockTidier{}
	get(setup(svc, nil), "/api/v1/schedule?season=20192020")
	if svc.schedule.Location.String() != "UTC" {
		t.Errorf("location = %v, want UTC from config", svc.schedule.Location)
	}
	if svc.schedule.KeepIdentifiers {
		t.Error("identifiers kept by default")
	}
}

func TestGetScheduleCSV(t *testing.T) {
	w := get(setup(&MockTidier{}, nil), "/api/v1/schedule?season=20192020&format=csv")

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if want := "game_status,home_score\nfinal,5\n"; w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestGetScheduleBadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
		code string
	}{
		{"missing season", "/api/v1/schedule", "MISSING_SEASON"},
		{"bad bool", "/api/v1/schedule?season=20192020&regular=maybe", "INVALID_PARAM"},
		{"bad tz", "/api/v1/schedule?season=20192020&tz=Mars/Olympus", "INVALID_TZ"},
		{"bad format", "/api/v1/schedule?season=20192020&format=xml", "INVALID_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTidier{}
			w := get(setup(svc, nil), tt.url)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.code) {
				t.Errorf("body = %s, want code %s", w.Body.String(), tt.code)
			}
			if svc.seasons != nil {
				t.Error("service called for a bad request")
			}
		})
	}
}

func TestGetScheduleErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid key", &tidy.InvalidKeyError{Kind: "season", Keys: []string{"bogus"}}, http.StatusBadRequest, "INVALID_KEY"},
		{"upstream", errors.New("fetch schedule 20192020: NHL /schedule returned 503"), http.StatusBadGateway, "UPSTREAM_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(setup(&MockTidier{err: tt.err}, nil), "/api/v1/schedule?season=bogus")
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			var body struct {
				Error struct {
					Code string   `json:"code"`
					Keys []string `json:"keys"`
				} `json:"error"`
			}
			json.Unmarshal(w.Body.Bytes(), &body)
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
		})
	}
}

func TestGetDraft(t *testing.T) {
	svc := &MockTidier{}
	r := setup(svc, nil)

	w := get(r, "/api/v1/draft?year=2019&year=2018")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !reflect.DeepEqual(svc.years, []int{2019, 2018}) {
		t.Errorf("years = %v", svc.years)
	}

	w = get(r, "/api/v1/draft?year=twenty")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "twenty") {
		t.Errorf("non-numeric year: status %d body %s", w.Code, w.Body.String())
	}
}

func TestGetDraftReportsEveryInvalidYear(t *testing.T) {
	cat := catalog.New(nil, nil, nil, []int{2019})
	svc := &MockTidier{validator: tidy.NewService(nil, cat, nil)}

	w := get(setup(svc, nil), "/api/v1/draft?year=abc,1800,2019")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body respond.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "INVALID_KEY" || !reflect.DeepEqual(body.Error.Keys, []string{"abc", "1800"}) {
		t.Errorf("error = %+v, want INVALID_KEY for [abc 1800]", body.Error)
	}
	if svc.years != nil {
		t.Errorf("Draft called with %v after invalid keys", svc.years)
	}
}

func TestGetSeasons(t *testing.T) {
	w := get(setup(&MockTidier{}, nil), "/api/v1/catalog/seasons")

	var body struct {
		Count int              `json:"count"`
		Data  []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 {
		t.Fatalf("count = %d, want 1", body.Count)
	}
	s := body.Data[0]
	if s["season_years"] != "2019-2020" || s["regular_start"] != "2019-10-02" || s["season_end"] != nil {
		t.Errorf("season = %v", s)
	}
}

func TestHealthCheckDB(t *testing.T) {
	tests := []struct {
		name   string
		pinger handler.Pinger
		status int
		state  string
	}{
		{"no database", nil, http.StatusOK, "disabled"},
		{"connected", MockPinger{}, http.StatusOK, "connected"},
		{"down", MockPinger{err: errors.New("refused")}, http.StatusServiceUnavailable, "disconnected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(setup(&MockTidier{}, tt.pinger), "/health/db")
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if !strings.Contains(w.Body.String(), tt.state) {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.state)
			}
		})
	}
}
