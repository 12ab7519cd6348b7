package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"seance-finder-cli/model"
	"seance-finder-cli/schedule"
)

// SessionsByDate fetches the programme for one date key and folds the
// mixed payload into a per-event schedule. Any failure is logged and
// yields an empty schedule for the date, so the programme view always
// has something to render.
func (c *Client) SessionsByDate(ctx context.Context, dateKey string) model.DaySchedule {
	empty := model.DaySchedule{Date: dateKey}
	if _, ok := schedule.ParseDateKey(dateKey); !ok {
		log.Printf("invalid programme date %q", dateKey)
		return empty
	}
	endpoint := fmt.Sprintf("%s/sessions/by-date?date=%s", c.baseURL, url.QueryEscape(dateKey))

	var payload model.ByDatePayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		log.Printf("programme for %s unavailable: %v", dateKey, err)
		return empty
	}

	acc := schedule.NewAccumulator(dateKey)
	for _, entry := range payload.Entries() {
		acc.Consume(entry)
	}
	if diag := acc.Diagnostics(); diag.DroppedEvents+diag.DroppedSessions+diag.SkippedEntries > 0 {
		log.Printf("programme for %s: dropped %d events, %d sessions, skipped %d entries",
			dateKey, diag.DroppedEvents, diag.DroppedSessions, diag.SkippedEntries)
	}
	return model.DaySchedule{Date: dateKey, Events: acc.Events()}
}
