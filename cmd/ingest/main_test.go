package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/albapepper/scoracle-nhl/internal/table"
)

func sampleTable() *table.Table {
	b := table.NewBuilder("draft_year", "draft_overall_pick")
	b.Add(map[string]any{"draft_year": 2019, "draft_overall_pick": 1})
	return b.Build()
}

func TestWriteTableRejectsFormatBeforeTouchingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.csv")
	if err := os.WriteFile(path, []byte("keep me\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := writeTable(sampleTable(), outputFlags{format: "xml", out: path})
	if err == nil || !strings.Contains(err.Error(), `unknown format "xml"`) {
		t.Fatalf("writeTable(xml) error = %v, want unknown format", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "keep me\n" {
		t.Errorf("existing file = %q, want it left untouched", got)
	}
}

func TestWriteTableToFile(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"csv", "draft_year,draft_overall_pick\n2019,1\n"},
		{"json", "[\n  {\n    \"draft_year\": 2019,\n    \"draft_overall_pick\": 1\n  }\n]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+tt.format)

			if err := writeTable(sampleTable(), outputFlags{format: tt.format, out: path}); err != nil {
				t.Fatalf("writeTable() error: %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("file = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteTableCreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")

	err := writeTable(sampleTable(), outputFlags{format: "csv", out: path})
	if err == nil || !strings.HasPrefix(err.Error(), "create ") {
		t.Errorf("writeTable() error = %v, want create error", err)
	}
}
