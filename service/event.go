package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"seance-finder-cli/model"
	"seance-finder-cli/schedule"
)

// EventSessions fetches one event with its full session list. A missing
// or unreachable event is logged and reported as not found; the caller
// falls back to its empty state.
func (c *Client) EventSessions(ctx context.Context, eventID string) (model.Event, []model.Session, bool) {
	if eventID == "" {
		return model.Event{}, nil, false
	}
	endpoint := fmt.Sprintf("%s/sessions/home/%s", c.baseURL, url.PathEscape(eventID))

	var payload model.EventSessionsPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		if IsNotFound(err) {
			log.Printf("event %s not found", eventID)
		} else {
			log.Printf("event %s unavailable: %v", eventID, err)
		}
		return model.Event{}, nil, false
	}
	if payload.Event == nil {
		return model.Event{}, nil, false
	}
	event, ok := schedule.NormalizeEvent(*payload.Event)
	if !ok {
		return model.Event{}, nil, false
	}

	sessions := make([]model.Session, 0, len(payload.Sessions))
	for _, raw := range payload.Sessions {
		session, ok := schedule.NormalizeSession(raw, event.ID)
		if !ok {
			continue
		}
		sessions = append(sessions, session)
	}
	return event, sessions, true
}
