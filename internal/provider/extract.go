package provider

import (
	"math"
	"strconv"
	"strings"
)

// ExtractValue normalizes a numeric value from the shapes the NHL API uses:
// JSON numbers decode as float64, some counters arrive as strings ("1").
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ExtractInt returns the field as an int. Missing, null, non-numeric and
// fractional values yield nil.
func (r Record) ExtractInt(key string) *int {
	return toInt(r[key])
}

// ExtractString returns the field as a string. Numbers are formatted without
// an exponent so identifiers like gamePk survive ("2019020001").
func (r Record) ExtractString(key string) *string {
	return toString(r[key])
}

// ExtractBool returns the field as a bool. "true"/"false" strings are accepted.
func (r Record) ExtractBool(key string) *bool {
	return toBool(r[key])
}

func toInt(val interface{}) *int {
	f, ok := ExtractValue(val)
	if !ok || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

func toString(val interface{}) *string {
	switch v := val.(type) {
	case string:
		return &v
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(v)
		return &s
	case int64:
		s := strconv.FormatInt(v, 10)
		return &s
	default:
		return nil
	}
}

func toBool(val interface{}) *bool {
	switch v := val.(type) {
	case bool:
		return &v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil
		}
		return &b
	default:
		return nil
	}
}
