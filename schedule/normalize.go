package schedule

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"seance-finder-cli/model"
)

const (
	// FallbackPoster is used when an event carries no artwork.
	FallbackPoster = "/images/logo.png"

	fallbackTitle       = "Événement"
	fallbackDescription = "Découvrez cette expérience cinéma prochainement."
	fallbackGenresLabel = "Cinéma"
	fallbackAge         = "TP"
	fallbackVersion     = "Séance"
)

var premiumPattern = regexp.MustCompile(`(?i)imax|4dx|dolby|atmos`)

// NormalizeEvent converts a raw upstream event into the domain shape,
// filling every missing display field with its French default. Events
// without a resolvable id cannot be keyed and are rejected.
func NormalizeEvent(raw model.RawEvent) (model.Event, bool) {
	id := raw.Identifier()
	if id == "" {
		return model.Event{}, false
	}
	title := raw.Name
	if title == "" {
		title = raw.Title
	}
	if title == "" {
		title = fallbackTitle
	}
	description := raw.Description
	if description == "" {
		description = fallbackDescription
	}
	poster := raw.Poster
	if poster == "" {
		poster = FallbackPoster
	}
	trailer := raw.TrailerLink
	if trailer == "" {
		trailer = raw.Trailer
	}
	age := string(raw.AgeRestriction)
	if age == "" {
		age = fallbackAge
	}
	duration := 0
	if raw.Duration != nil {
		duration = int(*raw.Duration)
	}
	badge := "Film"
	if strings.EqualFold(raw.Type, "show") {
		badge = "Spectacle"
	}
	return model.Event{
		ID:             id,
		Type:           raw.Type,
		Title:          title,
		Description:    description,
		Poster:         poster,
		TrailerLink:    trailer,
		Genres:         raw.Genres,
		GenresLabel:    GenresLabel(raw.Genres),
		DurationMin:    duration,
		DurationLabel:  FormatDuration(duration),
		AgeRestriction: age,
		DirectedBy:     raw.DirectedBy,
		Cast:           raw.Cast,
		Badge:          badge,
	}, true
}

// GenresLabel joins the first two genres with a slash; no genres at all
// falls back to the generic label.
func GenresLabel(genres []string) string {
	kept := make([]string, 0, 2)
	for _, genre := range genres {
		if genre == "" {
			continue
		}
		kept = append(kept, genre)
		if len(kept) == 2 {
			break
		}
	}
	if len(kept) == 0 {
		return fallbackGenresLabel
	}
	return strings.Join(kept, " / ")
}

// NormalizeSession converts a raw session for the given event. Sessions
// without any time label are unusable and are rejected.
func NormalizeSession(raw model.RawSession, eventID string) (model.Session, bool) {
	label := raw.TimeLabel()
	if label == "" {
		return model.Session{}, false
	}
	version := raw.VersionLabel()
	if version == "" {
		version = fallbackVersion
	}
	id := raw.Identifier()
	if id == "" {
		id = label + "-" + version
	}
	seats := 0
	if raw.AvailableSeats != nil {
		seats = int(*raw.AvailableSeats)
	}
	return model.Session{
		ID:             id,
		EventID:        eventID,
		Date:           datePrefix(raw.Date),
		Time:           label,
		Version:        version,
		AvailableSeats: seats,
		Premium:        premiumPattern.MatchString(version),
	}, true
}

// Diagnostics counts what the accumulator discarded while consuming a
// payload. It is informational; consumption itself never fails.
type Diagnostics struct {
	DroppedEvents   int
	DroppedSessions int
	SkippedEntries  int
}

// Accumulator folds a stream of mixed payload entries into a per-event
// session index. Entries may arrive as bare events, event+session groups,
// or single sessions with an embedded event reference, in any order.
type Accumulator struct {
	dateKey  string
	events   map[string]model.Event
	sessions map[string][]model.Session
	order    []string
	diag     Diagnostics
}

// NewAccumulator returns an accumulator that keeps only sessions whose
// date matches dateKey. An empty dateKey keeps every session.
func NewAccumulator(dateKey string) *Accumulator {
	return &Accumulator{
		dateKey:  dateKey,
		events:   make(map[string]model.Event),
		sessions: make(map[string][]model.Session),
	}
}

// Consume classifies one entry and folds it in. Malformed entries are
// counted and skipped; Consume never fails.
func (a *Accumulator) Consume(entry model.RawEntry) {
	switch entry.Kind() {
	case model.GroupEntry:
		raw, ok := entry.EmbeddedEvent()
		if !ok {
			raw = entry.InlineEvent()
		}
		id, ok := a.register(raw)
		if !ok {
			a.diag.DroppedEvents++
			return
		}
		for _, rawSession := range entry.GroupSessions() {
			a.attach(rawSession, id)
		}
	case model.SessionEntry:
		raw, ok := entry.EmbeddedEvent()
		if !ok {
			a.diag.SkippedEntries++
			return
		}
		id, ok := a.register(raw)
		if !ok {
			a.diag.DroppedEvents++
			return
		}
		a.attach(entry.InlineSession(), id)
	default:
		if _, ok := a.register(entry.InlineEvent()); !ok {
			a.diag.DroppedEvents++
		}
	}
}

// register records the event if its id is new. Re-registrations keep the
// first-seen attributes and only return the existing id, so sessions from
// later entries still land on the same event.
func (a *Accumulator) register(raw model.RawEvent) (string, bool) {
	id := raw.Identifier()
	if id == "" {
		return "", false
	}
	if _, seen := a.events[id]; seen {
		return id, true
	}
	event, ok := NormalizeEvent(raw)
	if !ok {
		return "", false
	}
	a.events[id] = event
	a.order = append(a.order, id)
	return id, true
}

func (a *Accumulator) attach(raw model.RawSession, eventID string) {
	session, ok := NormalizeSession(raw, eventID)
	if !ok {
		a.diag.DroppedSessions++
		return
	}
	if a.dateKey != "" && session.Date != "" && session.Date != a.dateKey {
		a.diag.DroppedSessions++
		return
	}
	a.sessions[eventID] = append(a.sessions[eventID], session)
}

// Diagnostics returns the discard counters accumulated so far.
func (a *Accumulator) Diagnostics() Diagnostics { return a.diag }

// Events returns every event that kept at least one session, each with
// its sessions ascending by time of day. Events are ordered by earliest
// session; ties fall back to a French accent-insensitive title compare.
func (a *Accumulator) Events() []model.EventSchedule {
	schedules := make([]model.EventSchedule, 0, len(a.order))
	for _, id := range a.order {
		sessions := a.sessions[id]
		if len(sessions) == 0 {
			continue
		}
		sort.SliceStable(sessions, func(i, j int) bool {
			return MinutesOfDay(sessions[i].Time) < MinutesOfDay(sessions[j].Time)
		})
		schedules = append(schedules, model.EventSchedule{Event: a.events[id], Sessions: sessions})
	}
	collator := collate.New(language.French, collate.Loose)
	sort.SliceStable(schedules, func(i, j int) bool {
		left := MinutesOfDay(schedules[i].Sessions[0].Time)
		right := MinutesOfDay(schedules[j].Sessions[0].Time)
		if left != right {
			return left < right
		}
		return collator.CompareString(schedules[i].Event.Title, schedules[j].Event.Title) < 0
	})
	return schedules
}
