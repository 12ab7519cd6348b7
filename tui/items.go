package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"seance-finder-cli/model"
	"seance-finder-cli/service"
	"seance-finder-cli/store"
)

type eventItem struct {
	event  model.Event
	recent bool
}

func (e eventItem) Title() string {
	if e.event.Badge == "Spectacle" {
		return fmt.Sprintf("%s [%s]", e.event.Title, e.event.Badge)
	}
	return e.event.Title
}

func (e eventItem) Description() string {
	parts := []string{}
	if e.recent {
		parts = append(parts, "Récent")
	}
	if e.event.DurationLabel != "" {
		parts = append(parts, e.event.DurationLabel)
	}
	if e.event.GenresLabel != "" {
		parts = append(parts, e.event.GenresLabel)
	}
	if e.event.AgeRestriction != "" {
		parts = append(parts, e.event.AgeRestriction)
	}
	return strings.Join(parts, " • ")
}

func (e eventItem) FilterValue() string {
	return strings.ToLower(strings.Join(append([]string{e.event.Title, e.event.DirectedBy}, e.event.Genres...), " "))
}

type genreItem struct {
	genre string
}

func (g genreItem) Title() string {
	if g.genre == "" {
		return "Tous les genres"
	}
	return g.genre
}

func (g genreItem) Description() string { return "" }

func (g genreItem) FilterValue() string { return strings.ToLower(g.genre) }

type programmeItem struct {
	entry model.EventSchedule
}

func (p programmeItem) Title() string {
	return p.entry.Event.Title
}

func (p programmeItem) Description() string {
	labels := make([]string, 0, len(p.entry.Sessions))
	for _, session := range p.entry.Sessions {
		label := session.Time
		if session.Premium {
			label += "*"
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, "  ")
}

func (p programmeItem) FilterValue() string {
	return strings.ToLower(p.entry.Event.Title)
}

type dateItem struct {
	option model.DateOption
}

func (d dateItem) Title() string {
	return fmt.Sprintf("%s • %s %s", d.option.Label, d.option.Day, d.option.Month)
}

func (d dateItem) Description() string {
	return d.option.Value
}

func (d dateItem) FilterValue() string {
	return strings.ToLower(d.Title())
}

func buildEventItems(listing model.Listing) []list.Item {
	recents, _ := store.LoadRecentEvents()
	recentIDs := map[string]bool{}
	for _, recent := range recents {
		recentIDs[recent.ID] = true
	}

	items := make([]list.Item, 0, len(listing.Events))
	for _, event := range listing.Events {
		items = append(items, eventItem{event: event, recent: recentIDs[event.ID]})
	}
	return items
}

func buildGenreItems() []list.Item {
	items := make([]list.Item, 0, len(service.MovieGenres)+1)
	items = append(items, genreItem{})
	for _, genre := range service.MovieGenres {
		items = append(items, genreItem{genre: genre})
	}
	return items
}

func buildProgrammeItems(day model.DaySchedule) []list.Item {
	items := make([]list.Item, 0, len(day.Events))
	for _, entry := range day.Events {
		items = append(items, programmeItem{entry: entry})
	}
	return items
}

func buildDateItems(options []model.DateOption) []list.Item {
	items := make([]list.Item, 0, len(options))
	for _, option := range options {
		items = append(items, dateItem{option: option})
	}
	return items
}
