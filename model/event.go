package model

// Event is a bookable film or show, independent of any specific showtime.
type Event struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Poster         string   `json:"poster"`
	TrailerLink    string   `json:"trailerLink"`
	Genres         []string `json:"genres"`
	GenresLabel    string   `json:"genresLabel"`
	DurationMin    int      `json:"durationMin"`
	DurationLabel  string   `json:"durationLabel"`
	AgeRestriction string   `json:"ageRestriction"`
	DirectedBy     string   `json:"directedBy"`
	Cast           []string `json:"cast"`
	Badge          string   `json:"badge"`
}

// Session is one scheduled showtime of an Event. EventID is a back-reference;
// the session does not own the event.
type Session struct {
	ID             string `json:"id"`
	EventID        string `json:"eventId"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Version        string `json:"version"`
	AvailableSeats int    `json:"availableSeats"`
	Premium        bool   `json:"premium"`
}

// SoldOut reports whether no seats remain for direct selection.
func (s Session) SoldOut() bool { return s.AvailableSeats <= 0 }

// EventSchedule pairs an event with its sessions, ascending by time of day.
type EventSchedule struct {
	Event    Event     `json:"event"`
	Sessions []Session `json:"sessions"`
}

// DaySchedule is the by-date view: every event that still has at least one
// session on the given date.
type DaySchedule struct {
	Date   string          `json:"date"`
	Events []EventSchedule `json:"events"`
}

// DateOption is one selectable day chip in the programme view.
type DateOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Day    string `json:"day"`
	Month  string `json:"month"`
	Active bool   `json:"active"`
}

// AfficheEntry is one curated now-playing entry: an event reference plus
// optional poster/title overrides supplied by the editorial payload.
type AfficheEntry struct {
	Event        *Event `json:"event"`
	EventID      string `json:"eventId"`
	Poster       string `json:"poster"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	EventPoster  string `json:"eventPoster"`
	EventAffiche bool   `json:"eventAffiche"`
}

// Listing is the normalized events-listing view.
type Listing struct {
	Events        []Event        `json:"events"`
	ALaffiche     []AfficheEntry `json:"aLaffiche"`
	Prochainement []Event        `json:"prochainement"`
	ShowTypes     []string       `json:"showTypes"`
}
