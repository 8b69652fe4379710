package nhl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/albapepper/scoracle-nhl/internal/provider"
)

// FetchDraft returns one flattened record per pick of a draft year.
func (c *Client) FetchDraft(ctx context.Context, year int) ([]provider.Record, error) {
	resp, err := c.get(ctx, "/draft/"+strconv.Itoa(year), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch NHL draft: %w", err)
	}
	records := DraftRecords(resp)
	c.logger.Debug("Fetched NHL draft", "year", year, "picks", len(records))
	return records, nil
}

// DraftRecords walks drafts[].rounds[].picks[] of a decoded draft payload.
func DraftRecords(payload map[string]interface{}) []provider.Record {
	var records []provider.Record
	for _, draft := range objects(extractArray(payload, "drafts")) {
		for _, round := range objects(extractArray(draft, "rounds")) {
			for _, pick := range objects(extractArray(round, "picks")) {
				records = append(records, provider.Flatten(pick))
			}
		}
	}
	return records
}
