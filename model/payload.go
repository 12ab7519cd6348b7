package model

import (
	"bytes"
	"encoding/json"
)

// FlexString decodes upstream fields that arrive either as JSON strings or
// as numbers (age restrictions do both). Anything else is treated as absent.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*f = FlexString(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		*f = ""
		return nil
	}
	*f = FlexString(number.String())
	return nil
}

// ShowTypeEntry decodes showTypes entries that are either bare strings or
// objects with a name field.
type ShowTypeEntry struct {
	Name string
}

func (s *ShowTypeEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		s.Name = value
		return nil
	}
	var object struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		s.Name = ""
		return nil
	}
	s.Name = object.Name
	return nil
}

// RawEvent carries the upstream event attributes. Every field is optional;
// the normalizer supplies defaults.
type RawEvent struct {
	MongoID           string     `json:"_id"`
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Poster            string     `json:"poster"`
	TrailerLink       string     `json:"trailerLink"`
	Trailer           string     `json:"trailer"`
	Genres            []string   `json:"genres"`
	Duration          *float64   `json:"duration"`
	AgeRestriction    FlexString `json:"ageRestriction"`
	DirectedBy        string     `json:"directedBy"`
	Cast              []string   `json:"cast"`
	Type              string     `json:"type"`
	AvailableVersions []string   `json:"availableVersions"`
	CreatedAt         string     `json:"createdAt"`
	ReleaseDate       string     `json:"releaseDate"`
	AvailableFrom     string     `json:"availableFrom"`
	AvailableTo       string     `json:"availableTo"`
}

// Identifier returns the upstream id, preferring the Mongo-style _id.
func (e RawEvent) Identifier() string {
	if e.MongoID != "" {
		return e.MongoID
	}
	return e.ID
}

// RawSession carries the upstream session attributes under their several
// historical field names.
type RawSession struct {
	MongoID        string   `json:"_id"`
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	SessionTime    string   `json:"sessionTime"`
	Time           string   `json:"time"`
	StartTime      string   `json:"startTime"`
	Hour           string   `json:"hour"`
	Version        string   `json:"version"`
	Format         string   `json:"format"`
	Language       string   `json:"language"`
	AvailableSeats *float64 `json:"availableSeats"`
}

// Identifier returns the upstream id, preferring the Mongo-style _id.
func (s RawSession) Identifier() string {
	if s.MongoID != "" {
		return s.MongoID
	}
	return s.ID
}

// TimeLabel returns the first populated time field.
func (s RawSession) TimeLabel() string {
	for _, candidate := range []string{s.SessionTime, s.Time, s.StartTime, s.Hour} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// VersionLabel returns the first populated version/format field.
func (s RawSession) VersionLabel() string {
	for _, candidate := range []string{s.Version, s.Format, s.Language} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// EntryKind classifies a by-date payload entry after a single pass.
type EntryKind int

const (
	// EventEntry is a bare event with no session data.
	EventEntry EntryKind = iota
	// GroupEntry carries an event plus a nested session list.
	GroupEntry
	// SessionEntry is a single session with an embedded event reference.
	SessionEntry
)

// RawEntry is one element of a by-date payload. Entries mix three shapes in
// the same arrays; Kind decides which one this is, and the Inline/Embedded
// accessors expose the matching view of the fields.
type RawEntry struct {
	EventRef  json.RawMessage `json:"eventId"`
	Event     *RawEvent       `json:"event"`
	EventData *RawEvent       `json:"eventData"`
	Sessions  []RawSession    `json:"sessions"`
	Showtimes []RawSession    `json:"showtimes"`

	MongoID        string     `json:"_id"`
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Poster         string     `json:"poster"`
	TrailerLink    string     `json:"trailerLink"`
	Trailer        string     `json:"trailer"`
	Genres         []string   `json:"genres"`
	Duration       *float64   `json:"duration"`
	AgeRestriction FlexString `json:"ageRestriction"`
	DirectedBy     string     `json:"directedBy"`
	Cast           []string   `json:"cast"`
	Type           string     `json:"type"`

	Date           string   `json:"date"`
	SessionTime    string   `json:"sessionTime"`
	Time           string   `json:"time"`
	StartTime      string   `json:"startTime"`
	Hour           string   `json:"hour"`
	Version        string   `json:"version"`
	Format         string   `json:"format"`
	Language       string   `json:"language"`
	AvailableSeats *float64 `json:"availableSeats"`
}

// Kind classifies the entry. A sessions/showtimes list (even an empty one)
// makes it a group; otherwise a populated time field makes it a session.
func (e RawEntry) Kind() EntryKind {
	if e.Sessions != nil || e.Showtimes != nil {
		return GroupEntry
	}
	if e.SessionTime != "" || e.Time != "" || e.StartTime != "" {
		return SessionEntry
	}
	return EventEntry
}

// GroupSessions returns the nested session list of a group entry.
func (e RawEntry) GroupSessions() []RawSession {
	if e.Sessions != nil {
		return e.Sessions
	}
	return e.Showtimes
}

// EmbeddedEvent resolves the event reference carried next to the entry:
// eventId (an id string or a full object), then event, then eventData.
func (e RawEntry) EmbeddedEvent() (RawEvent, bool) {
	if event, ok := decodeEventRef(e.EventRef); ok {
		return event, true
	}
	if e.Event != nil {
		return *e.Event, true
	}
	if e.EventData != nil {
		return *e.EventData, true
	}
	return RawEvent{}, false
}

// InlineEvent views the entry's own fields as an event.
func (e RawEntry) InlineEvent() RawEvent {
	return RawEvent{
		MongoID:        e.MongoID,
		ID:             e.ID,
		Name:           e.Name,
		Title:          e.Title,
		Description:    e.Description,
		Poster:         e.Poster,
		TrailerLink:    e.TrailerLink,
		Trailer:        e.Trailer,
		Genres:         e.Genres,
		Duration:       e.Duration,
		AgeRestriction: e.AgeRestriction,
		DirectedBy:     e.DirectedBy,
		Cast:           e.Cast,
		Type:           e.Type,
	}
}

// InlineSession views the entry's own fields as a session.
func (e RawEntry) InlineSession() RawSession {
	return RawSession{
		MongoID:        e.MongoID,
		ID:             e.ID,
		Date:           e.Date,
		SessionTime:    e.SessionTime,
		Time:           e.Time,
		StartTime:      e.StartTime,
		Hour:           e.Hour,
		Version:        e.Version,
		Format:         e.Format,
		Language:       e.Language,
		AvailableSeats: e.AvailableSeats,
	}
}

func decodeEventRef(ref json.RawMessage) (RawEvent, bool) {
	ref = bytes.TrimSpace(ref)
	if len(ref) == 0 || bytes.Equal(ref, []byte("null")) {
		return RawEvent{}, false
	}
	if ref[0] == '"' {
		var id string
		if err := json.Unmarshal(ref, &id); err != nil || id == "" {
			return RawEvent{}, false
		}
		return RawEvent{MongoID: id}, true
	}
	var event RawEvent
	if err := json.Unmarshal(ref, &event); err != nil {
		return RawEvent{}, false
	}
	return event, true
}

// ByDatePayload accepts the several by-date response shapes: any combination
// of groups/events/sessions/data arrays, or a bare top-level array.
type ByDatePayload struct {
	Groups   []RawEntry
	Events   []RawEntry
	Sessions []RawEntry
	Data     []RawEntry
	Items    []RawEntry
}

func (p *ByDatePayload) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &p.Items)
	}
	var object struct {
		Groups   []RawEntry `json:"groups"`
		Events   []RawEntry `json:"events"`
		Sessions []RawEntry `json:"sessions"`
		Data     []RawEntry `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &object); err != nil {
		return err
	}
	p.Groups = object.Groups
	p.Events = object.Events
	p.Sessions = object.Sessions
	p.Data = object.Data
	return nil
}

// Entries concatenates all entry arrays in their upstream precedence order.
func (p ByDatePayload) Entries() []RawEntry {
	entries := make([]RawEntry, 0, len(p.Groups)+len(p.Events)+len(p.Sessions)+len(p.Data)+len(p.Items))
	entries = append(entries, p.Groups...)
	entries = append(entries, p.Events...)
	entries = append(entries, p.Sessions...)
	entries = append(entries, p.Data...)
	entries = append(entries, p.Items...)
	return entries
}

// RawAfficheEntry is one curated à-l'affiche entry of the listing payload.
type RawAfficheEntry struct {
	EventRef     json.RawMessage `json:"eventId"`
	Event        *RawEvent       `json:"event"`
	Poster       string          `json:"poster"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle"`
	EventAffiche bool            `json:"eventAffiche"`
}

// EmbeddedEvent resolves the entry's event reference.
func (e RawAfficheEntry) EmbeddedEvent() (RawEvent, bool) {
	if event, ok := decodeEventRef(e.EventRef); ok {
		return event, true
	}
	if e.Event != nil {
		return *e.Event, true
	}
	return RawEvent{}, false
}

// EventsPayload is the raw events-listing response.
type EventsPayload struct {
	Events        []RawEvent        `json:"events"`
	ALaffiche     []RawAfficheEntry `json:"aLaffiche"`
	Prochainement []RawEvent        `json:"prochainement"`
	ShowTypes     []ShowTypeEntry   `json:"showTypes"`
}

// EventSessionsPayload is the raw by-event response.
type EventSessionsPayload struct {
	Event    *RawEvent    `json:"event"`
	Sessions []RawSession `json:"sessions"`
}

// RawSlide is one raw home-carousel slide.
type RawSlide struct {
	MongoID  string `json:"_id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Poster   string `json:"poster"`
	EventID  string `json:"eventId"`
	Active   *bool  `json:"active"`
	Order    *int   `json:"order"`
}

// HomePayload is the raw home response.
type HomePayload struct {
	HomeSlider    []RawSlide `json:"homeSlider"`
	ALaffiche     []RawEvent `json:"aLaffiche"`
	Spectacles    []RawEvent `json:"spectacles"`
	Prochainement []RawEvent `json:"prochainement"`
}
