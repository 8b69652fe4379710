// Package provider defines the raw record shape every upstream payload is
// flattened into, the required-field schemas per entity kind, and the
// normalizer that makes a raw batch conform to a schema.
//
// Handlers in provider/nhl emit []Record; the tidy package never sees the
// original JSON nesting.
package provider

// Record is one flattened upstream entity. Keys are dotted paths into the
// original JSON object ("teams.away.team.id"); values are string, float64,
// int, bool, nil, or []interface{} for arrays that were not expanded.
type Record map[string]interface{}

// Flatten collapses nested JSON objects into a single Record using dotted
// keys. Arrays are kept as leaf values.
func Flatten(obj map[string]interface{}) Record {
	out := make(Record, len(obj))
	flattenInto(out, "", obj)
	return out
}

func flattenInto(out Record, prefix string, obj map[string]interface{}) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok && len(nested) > 0 {
			flattenInto(out, key, nested)
			continue
		}
		out[key] = v
	}
}

// Has reports whether key is present, even when its value is nil.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
