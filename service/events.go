package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"seance-finder-cli/model"
	"seance-finder-cli/schedule"
)

// MovieGenres is the fixed genre filter list offered on the events page.
var MovieGenres = []string{
	"Action",
	"Animation",
	"Aventure",
	"Comédie",
	"Documentaire",
	"Drame",
	"Fantastique",
	"Guerre",
	"Horreur",
	"Policier",
	"Romance",
	"Science-Fiction",
	"Thriller",
	"Western",
}

// EventsQuery narrows the events listing by show type and genre. Empty
// fields are omitted from the request.
type EventsQuery struct {
	Type  string
	Genre string
}

// EventsWithALaffiche fetches the events listing with its curated
// à-l'affiche strip. Failures are logged and yield an empty listing.
func (c *Client) EventsWithALaffiche(ctx context.Context, query EventsQuery) model.Listing {
	endpoint := fmt.Sprintf("%s/events/with-a-laffiche", c.baseURL)
	params := url.Values{}
	if query.Type != "" {
		params.Set("type", query.Type)
	}
	if query.Genre != "" {
		params.Set("genre", query.Genre)
	}
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	var payload model.EventsPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		log.Printf("events listing unavailable: %v", err)
		return model.Listing{}
	}
	return normalizeListing(payload)
}

func normalizeListing(payload model.EventsPayload) model.Listing {
	listing := model.Listing{}
	for _, raw := range payload.Events {
		event, ok := schedule.NormalizeEvent(raw)
		if !ok {
			continue
		}
		listing.Events = append(listing.Events, event)
	}
	for _, raw := range payload.ALaffiche {
		entry := model.AfficheEntry{
			Poster:       raw.Poster,
			Title:        raw.Title,
			Subtitle:     raw.Subtitle,
			EventAffiche: raw.EventAffiche,
		}
		if rawEvent, ok := raw.EmbeddedEvent(); ok {
			if event, ok := schedule.NormalizeEvent(rawEvent); ok {
				entry.Event = &event
				entry.EventID = event.ID
				entry.EventPoster = event.Poster
				if entry.Title == "" {
					entry.Title = event.Title
				}
			}
		}
		if entry.Poster == "" {
			entry.Poster = entry.EventPoster
		}
		if entry.Poster == "" {
			entry.Poster = schedule.FallbackPoster
		}
		listing.ALaffiche = append(listing.ALaffiche, entry)
	}
	for _, raw := range payload.Prochainement {
		event, ok := schedule.NormalizeEvent(raw)
		if !ok {
			continue
		}
		listing.Prochainement = append(listing.Prochainement, event)
	}
	for _, entry := range payload.ShowTypes {
		if entry.Name == "" {
			continue
		}
		listing.ShowTypes = append(listing.ShowTypes, entry.Name)
	}
	return listing
}
