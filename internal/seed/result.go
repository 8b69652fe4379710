// Package seed writes canonical schedule and draft tables, and the reference
// catalogs they were joined against, into Postgres.
package seed

import (
	"fmt"

	"github.com/google/uuid"
)

// Result tracks counts and errors from a seeding operation.
type Result struct {
	RunID           uuid.UUID
	GamesUpserted   int
	PicksUpserted   int
	SeasonsUpserted int
	TeamsUpserted   int
	PlayersUpserted int
	Errors          []string
}

// NewResult starts a result with a fresh run ID.
func NewResult() Result {
	return Result{RunID: uuid.New()}
}

// AddError records an error message.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Rows is the number of output rows written.
func (r *Result) Rows() int {
	return r.GamesUpserted + r.PicksUpserted
}

// Summary returns a human-readable summary of the seed operation.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"run=%s games=%d picks=%d seasons=%d teams=%d players=%d errors=%d",
		r.RunID, r.GamesUpserted, r.PicksUpserted,
		r.SeasonsUpserted, r.TeamsUpserted, r.PlayersUpserted,
		len(r.Errors),
	)
}
