package nhl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/albapepper/scoracle-nhl/internal/provider"
)

// FetchSchedule returns one flattened record per game of a season
// ("20192020"), linescore included. A season with no games yields an empty
// slice.
func (c *Client) FetchSchedule(ctx context.Context, seasonID string) ([]provider.Record, error) {
	params := url.Values{
		"season": {seasonID},
		"expand": {"schedule.linescore"},
	}
	resp, err := c.get(ctx, "/schedule", params)
	if err != nil {
		return nil, fmt.Errorf("fetch NHL schedule: %w", err)
	}
	records := ScheduleRecords(resp)
	c.logger.Debug("Fetched NHL schedule", "season", seasonID, "games", len(records))
	return records, nil
}

// ScheduleRecords walks dates[].games[] of a decoded schedule payload.
func ScheduleRecords(payload map[string]interface{}) []provider.Record {
	var records []provider.Record
	for _, date := range objects(extractArray(payload, "dates")) {
		for _, game := range objects(extractArray(date, "games")) {
			records = append(records, provider.Flatten(game))
		}
	}
	return records
}
