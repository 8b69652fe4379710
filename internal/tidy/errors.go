package tidy

import (
	"fmt"
	"strings"
)

// InvalidKeyError reports every requested season or draft year the reference
// catalog does not know. It is returned before any fetch happens.
type InvalidKeyError struct {
	Kind        string
	Keys        []string
	Suggestions map[string][]string
}

func (e *InvalidKeyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unrecognized %s: %s", e.Kind, strings.Join(e.Keys, ", "))

	var hints []string
	for _, k := range e.Keys {
		if s := e.Suggestions[k]; len(s) > 0 {
			hints = append(hints, fmt.Sprintf("%s -> %s", k, strings.Join(s, "/")))
		}
	}
	if len(hints) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(hints, "; "))
	}
	return b.String()
}
