package provider_test

import (
	"reflect"
	"testing"

	"github.com/albapepper/scoracle-nhl/internal/provider"
)

func TestFlatten(t *testing.T) {
	in := map[string]interface{}{
		"gamePk": float64(2019020001),
		"status": map[string]interface{}{"detailedState": "Final"},
		"teams": map[string]interface{}{
			"away": map[string]interface{}{
				"score": float64(2),
				"team":  map[string]interface{}{"id": float64(8)},
			},
		},
		"empty": map[string]interface{}{},
		"tags":  []interface{}{"a", "b"},
		"note":  nil,
	}

	got := provider.Flatten(in)
	want := provider.Record{
		"gamePk":               float64(2019020001),
		"status.detailedState": "Final",
		"teams.away.score":     float64(2),
		"teams.away.team.id":   float64(8),
		"empty":                map[string]interface{}{},
		"tags":                 []interface{}{"a", "b"},
		"note":                 nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
	if !got.Has("note") {
		t.Error("Has(note) = false, want true for explicit null")
	}
	if got.Has("status") {
		t.Error("Has(status) = true, want false after flattening")
	}
}

func TestRecordCloneIsIndependent(t *testing.T) {
	r := provider.Record{"a": 1}
	c := r.Clone()
	c["a"] = 2
	c["b"] = 3
	if r["a"] != 1 || r.Has("b") {
		t.Errorf("Clone() mutated original: %v", r)
	}
}

func TestExtractInt(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  *int
	}{
		{"float", float64(3), intPtr(3)},
		{"int", 4, intPtr(4)},
		{"string", " 2 ", intPtr(2)},
		{"fractional", 2.5, nil},
		{"non-numeric string", "abc", nil},
		{"null", nil, nil},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := provider.Record{"k": tt.value}
			got := r.ExtractInt("k")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractInt(%v) = %v, want %v", tt.value, deref(got), deref(tt.want))
			}
		})
	}

	if got := (provider.Record{}).ExtractInt("missing"); got != nil {
		t.Errorf("ExtractInt(missing) = %d, want nil", *got)
	}
}

func TestExtractString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  *string
	}{
		{"string", "Final", strPtr("Final")},
		{"large float keeps digits", float64(2019020001), strPtr("2019020001")},
		{"int", 20192020, strPtr("20192020")},
		{"null", nil, nil},
		{"bool", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := provider.Record{"k": tt.value}.ExtractString("k")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractString(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestExtractBool(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  *bool
	}{
		{"true", true, boolPtr(true)},
		{"false", false, boolPtr(false)},
		{"string", "true", boolPtr(true)},
		{"garbage string", "maybe", nil},
		{"number", float64(1), nil},
		{"null", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := provider.Record{"k": tt.value}.ExtractBool("k")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractBool(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func deref(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
