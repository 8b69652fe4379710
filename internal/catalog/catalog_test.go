package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/albapepper/scoracle-nhl/internal/catalog"
)

func TestDefaultCatalogs(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	if !c.HasSeason("20192020") {
		t.Error("HasSeason(20192020) = false, want true")
	}
	if c.HasSeason("20042005") {
		t.Error("HasSeason(20042005) = true, want false (lockout)")
	}
	if !c.HasDraftYear(2019) {
		t.Error("HasDraftYear(2019) = false, want true")
	}
	if c.HasDraftYear(1900) {
		t.Error("HasDraftYear(1900) = true, want false")
	}
	if len(c.Players()) != 0 {
		t.Errorf("Players() = %d rows, want 0 for embedded catalogs", len(c.Players()))
	}

	seasons := c.Seasons()
	for i := 1; i < len(seasons); i++ {
		if seasons[i-1].ID >= seasons[i].ID {
			t.Fatalf("Seasons() not ascending at %d: %s >= %s", i, seasons[i-1].ID, seasons[i].ID)
		}
	}
}

func TestLookups(t *testing.T) {
	c := catalog.New(
		[]catalog.Season{{ID: "20192020", Label: "2019-2020"}, {ID: "20202021"}},
		[]catalog.Team{{ID: 10, Abbreviation: "TOR", Name: "Toronto Maple Leafs"}},
		[]catalog.Player{{ProspectID: 90, PlayerID: 8480000}},
		[]int{2019},
	)

	t.Run("season label", func(t *testing.T) {
		if got := c.SeasonLabel(str("20192020")); got == nil || *got != "2019-2020" {
			t.Errorf("SeasonLabel(20192020) = %v, want 2019-2020", got)
		}
		if got := c.SeasonLabel(str("20202021")); got != nil {
			t.Errorf("SeasonLabel(unlabelled) = %q, want nil", *got)
		}
		if got := c.SeasonLabel(str("19001901")); got != nil {
			t.Errorf("SeasonLabel(unknown) = %q, want nil", *got)
		}
		if got := c.SeasonLabel(nil); got != nil {
			t.Errorf("SeasonLabel(nil) = %q, want nil", *got)
		}
	})

	t.Run("team abbreviation", func(t *testing.T) {
		if got := c.TeamAbbreviation(num(10)); got == nil || *got != "TOR" {
			t.Errorf("TeamAbbreviation(10) = %v, want TOR", got)
		}
		if got := c.TeamAbbreviation(num(99)); got != nil {
			t.Errorf("TeamAbbreviation(99) = %q, want nil", *got)
		}
		if got := c.TeamAbbreviation(nil); got != nil {
			t.Errorf("TeamAbbreviation(nil) = %q, want nil", *got)
		}
	})

	t.Run("player for prospect", func(t *testing.T) {
		if got := c.PlayerForProspect(num(90)); got == nil || *got != 8480000 {
			t.Errorf("PlayerForProspect(90) = %v, want 8480000", got)
		}
		if got := c.PlayerForProspect(num(91)); got != nil {
			t.Errorf("PlayerForProspect(91) = %d, want nil", *got)
		}
	})
}

func TestSuggestions(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	got := c.SuggestSeasons("2019-20", 3)
	if len(got) == 0 || got[0] != "20192020" {
		t.Errorf("SuggestSeasons(2019-20) = %v, want 20192020 first", got)
	}
	if len(got) > 3 {
		t.Errorf("SuggestSeasons returned %d suggestions, want at most 3", len(got))
	}

	if got := c.SuggestDraftYears("019", 3); !reflect.DeepEqual(got, []string{"2019"}) {
		t.Errorf("SuggestDraftYears(019) = %v, want [2019]", got)
	}
	if got := c.SuggestSeasons("", 3); got != nil {
		t.Errorf("SuggestSeasons(\"\") = %v, want nil", got)
	}
}

func TestLoadDirFallsBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, catalog.PlayersFile, "prospect_id,player_id,player_name\n90,8480000,Jack Hughes\n")
	writeFile(t, dir, catalog.TeamsFile, "team_id,team_abbreviation,team_name\n1,NJD,New Jersey Devils\n")

	c, err := catalog.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}

	if got := c.PlayerForProspect(num(90)); got == nil || *got != 8480000 {
		t.Errorf("PlayerForProspect(90) = %v, want 8480000", got)
	}
	if n := len(c.Teams()); n != 1 {
		t.Errorf("Teams() = %d rows, want 1 from override", n)
	}
	if !c.HasSeason("20192020") {
		t.Error("seasons did not fall back to embedded catalog")
	}
}

func TestLoadDirRejectsBadRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, catalog.DraftsFile, "draft_year\nnineteen\n")

	if _, err := catalog.LoadDir(dir); err == nil {
		t.Error("LoadDir() with non-numeric draft_year: expected error")
	}
}

func TestLoadDirParsesSeasonDates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, catalog.SeasonsFile,
		"season_id,season_years,regular_start,regular_end,season_end\n20192020,2019-2020,2019-10-02,2020-03-11,2020-09-28\n")

	c, err := catalog.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	s := c.Seasons()
	if len(s) != 1 {
		t.Fatalf("Seasons() = %d rows, want 1", len(s))
	}
	if got := s[0].RegularStart.Format("2006-01-02"); got != "2019-10-02" {
		t.Errorf("RegularStart = %s, want 2019-10-02", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		source  string
		dir     string
		wantErr bool
	}{
		{"embedded", "embedded", "", false},
		{"empty means embedded", "", "", false},
		{"dir without path", "dir", "", true},
		{"dir", "dir", t.TempDir(), false},
		{"db without connection", "db", "", true},
		{"unknown", "s3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Open(ctx, tt.source, tt.dir, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Open(%q) error = %v, wantErr %v", tt.source, err, tt.wantErr)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

type fakePlayerSource struct {
	players []catalog.Player
	err     error
	calls   int
}

func (f *fakePlayerSource) FetchProspects(ctx context.Context) ([]catalog.Player, error) {
	f.calls++
	return f.players, f.err
}

func TestEnsurePlayersFillsDefaultCatalogs(t *testing.T) {
	base, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	src := &fakePlayerSource{players: []catalog.Player{{ProspectID: 12345, PlayerID: 8481528}}}

	got, err := catalog.EnsurePlayers(context.Background(), base, src)
	if err != nil {
		t.Fatalf("EnsurePlayers() error: %v", err)
	}
	if id := got.PlayerForProspect(num(12345)); id == nil || *id != 8481528 {
		t.Errorf("PlayerForProspect(12345) = %v, want 8481528", id)
	}
	if base.PlayerForProspect(num(12345)) != nil {
		t.Error("EnsurePlayers() modified the input catalogs")
	}
	if !reflect.DeepEqual(got.Seasons(), base.Seasons()) || !reflect.DeepEqual(got.DraftYears(), base.DraftYears()) {
		t.Error("EnsurePlayers() changed seasons or draft years")
	}
}

func TestEnsurePlayersKeepsExistingMappings(t *testing.T) {
	base := catalog.New(nil, nil, []catalog.Player{{ProspectID: 90, PlayerID: 8480000}}, []int{2019})
	src := &fakePlayerSource{}

	got, err := catalog.EnsurePlayers(context.Background(), base, src)
	if err != nil || got != base {
		t.Errorf("EnsurePlayers() = %p, %v; want the input catalogs", got, err)
	}
	if src.calls != 0 {
		t.Errorf("FetchProspects called %d times, want 0", src.calls)
	}
}

func TestEnsurePlayersError(t *testing.T) {
	base := catalog.New(nil, nil, nil, []int{2019})
	src := &fakePlayerSource{err: errors.New("upstream down")}

	got, err := catalog.EnsurePlayers(context.Background(), base, src)
	if err == nil {
		t.Fatal("EnsurePlayers() error = nil, want fetch error")
	}
	if got != base {
		t.Error("EnsurePlayers() on error should return the input catalogs")
	}
}

func TestWithPlayersReplacesMapping(t *testing.T) {
	base := catalog.New(nil, nil, []catalog.Player{{ProspectID: 90, PlayerID: 1}, {ProspectID: 91, PlayerID: 2}}, nil)

	got := base.WithPlayers([]catalog.Player{{ProspectID: 90, PlayerID: 3}})

	if id := got.PlayerForProspect(num(90)); id == nil || *id != 3 {
		t.Errorf("PlayerForProspect(90) = %v, want 3", id)
	}
	if id := got.PlayerForProspect(num(91)); id == nil || *id != 2 {
		t.Errorf("PlayerForProspect(91) = %v, want 2", id)
	}
	if id := base.PlayerForProspect(num(90)); *id != 1 {
		t.Errorf("base PlayerForProspect(90) = %d, want 1", *id)
	}
}
