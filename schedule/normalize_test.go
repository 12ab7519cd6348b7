package schedule

import (
	"encoding/json"
	"testing"

	"seance-finder-cli/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeEvent_Defaults(t *testing.T) {
	event, ok := NormalizeEvent(model.RawEvent{MongoID: "ev1"})
	if !ok {
		t.Fatal("expected event to normalize")
	}
	if event.Title != "Événement" {
		t.Fatalf("expected fallback title, got %q", event.Title)
	}
	if event.Poster != FallbackPoster {
		t.Fatalf("expected fallback poster, got %q", event.Poster)
	}
	if event.GenresLabel != "Cinéma" {
		t.Fatalf("expected fallback genres label, got %q", event.GenresLabel)
	}
	if event.AgeRestriction != "TP" {
		t.Fatalf("expected fallback age, got %q", event.AgeRestriction)
	}
	if event.Badge != "Film" {
		t.Fatalf("expected Film badge, got %q", event.Badge)
	}
}

func TestNormalizeEvent_RequiresID(t *testing.T) {
	if _, ok := NormalizeEvent(model.RawEvent{Name: "Sans identifiant"}); ok {
		t.Fatal("expected event without id to be rejected")
	}
}

func TestNormalizeEvent_ShowBadgeAndLabels(t *testing.T) {
	event, ok := NormalizeEvent(model.RawEvent{
		MongoID:  "ev2",
		Name:     "Le Lac des Cygnes",
		Type:     "show",
		Genres:   []string{"Ballet", "Danse", "Classique"},
		Duration: floatPtr(125),
	})
	if !ok {
		t.Fatal("expected event to normalize")
	}
	if event.Badge != "Spectacle" {
		t.Fatalf("expected Spectacle badge, got %q", event.Badge)
	}
	if event.GenresLabel != "Ballet / Danse" {
		t.Fatalf("expected first two genres, got %q", event.GenresLabel)
	}
	if event.DurationLabel != "2h 05m" {
		t.Fatalf("expected 2h 05m, got %q", event.DurationLabel)
	}
}

func TestNormalizeSession(t *testing.T) {
	session, ok := NormalizeSession(model.RawSession{
		MongoID:        "s1",
		Date:           "2026-09-03T00:00:00.000Z",
		SessionTime:    "20:30",
		Format:         "IMAX 3D",
		AvailableSeats: floatPtr(42),
	}, "ev1")
	if !ok {
		t.Fatal("expected session to normalize")
	}
	if session.Date != "2026-09-03" {
		t.Fatalf("expected date prefix, got %q", session.Date)
	}
	if session.Version != "IMAX 3D" {
		t.Fatalf("expected format as version, got %q", session.Version)
	}
	if !session.Premium {
		t.Fatal("expected IMAX session to be premium")
	}
	if session.AvailableSeats != 42 {
		t.Fatalf("expected 42 seats, got %d", session.AvailableSeats)
	}
	if session.EventID != "ev1" {
		t.Fatalf("expected event back-reference, got %q", session.EventID)
	}
}

func TestNormalizeSession_DropsWithoutTime(t *testing.T) {
	if _, ok := NormalizeSession(model.RawSession{MongoID: "s1", Date: "2026-09-03"}, "ev1"); ok {
		t.Fatal("expected session without time to be dropped")
	}
}

func TestNormalizeSession_Fallbacks(t *testing.T) {
	session, ok := NormalizeSession(model.RawSession{Time: "18:00"}, "ev1")
	if !ok {
		t.Fatal("expected session to normalize")
	}
	if session.Version != "Séance" {
		t.Fatalf("expected fallback version, got %q", session.Version)
	}
	if session.ID != "18:00-Séance" {
		t.Fatalf("expected synthetic id, got %q", session.ID)
	}
	if session.Premium {
		t.Fatal("expected standard session")
	}
}

func consumeJSON(t *testing.T, acc *Accumulator, raw string) {
	t.Helper()
	var entry model.RawEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	acc.Consume(entry)
}

func TestAccumulator_MixedShapes(t *testing.T) {
	acc := NewAccumulator("2026-09-03")

	// Group entry: embedded event plus a session list.
	consumeJSON(t, acc, `{
		"eventId": {"_id": "ev1", "name": "Dune"},
		"sessions": [
			{"_id": "s2", "date": "2026-09-03", "sessionTime": "21:00", "version": "VOSTFR"},
			{"_id": "s1", "date": "2026-09-03", "sessionTime": "14:00", "version": "VF"}
		]
	}`)
	// Single session with a string event reference.
	consumeJSON(t, acc, `{"_id": "s3", "eventId": "ev1", "date": "2026-09-03", "time": "18:00"}`)
	// Bare event with no sessions yet.
	consumeJSON(t, acc, `{"_id": "ev2", "name": "Annie Hall"}`)

	events := acc.Events()
	if len(events) != 1 {
		t.Fatalf("expected only events with sessions, got %d", len(events))
	}
	got := events[0]
	if got.Event.ID != "ev1" || got.Event.Title != "Dune" {
		t.Fatalf("unexpected event %+v", got.Event)
	}
	times := []string{}
	for _, session := range got.Sessions {
		times = append(times, session.Time)
	}
	if times[0] != "14:00" || times[1] != "18:00" || times[2] != "21:00" {
		t.Fatalf("expected sessions sorted by time, got %v", times)
	}
}

func TestAccumulator_FirstRegistrationWins(t *testing.T) {
	acc := NewAccumulator("")

	consumeJSON(t, acc, `{
		"eventId": {"_id": "ev1", "name": "Premier Titre"},
		"sessions": [{"sessionTime": "10:00"}]
	}`)
	consumeJSON(t, acc, `{
		"eventId": {"_id": "ev1", "name": "Titre Concurrent"},
		"sessions": [{"sessionTime": "12:00"}]
	}`)

	events := acc.Events()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Event.Title != "Premier Titre" {
		t.Fatalf("expected first registration to win, got %q", events[0].Event.Title)
	}
	if len(events[0].Sessions) != 2 {
		t.Fatalf("expected sessions from both entries, got %d", len(events[0].Sessions))
	}
}

func TestAccumulator_EmptySessionListIsStillGroup(t *testing.T) {
	acc := NewAccumulator("")
	consumeJSON(t, acc, `{"_id": "ev1", "name": "Sans Séances", "sessions": []}`)

	if len(acc.Events()) != 0 {
		t.Fatal("expected event without sessions to be excluded from output")
	}
	if acc.Diagnostics().DroppedEvents != 0 {
		t.Fatal("empty group is registered, not dropped")
	}
}

func TestAccumulator_DateFilter(t *testing.T) {
	acc := NewAccumulator("2026-09-03")
	consumeJSON(t, acc, `{
		"eventId": {"_id": "ev1", "name": "Dune"},
		"sessions": [
			{"date": "2026-09-03T10:00:00Z", "sessionTime": "10:00"},
			{"date": "2026-09-04", "sessionTime": "11:00"}
		]
	}`)

	events := acc.Events()
	if len(events) != 1 || len(events[0].Sessions) != 1 {
		t.Fatalf("expected a single session on the requested date, got %+v", events)
	}
	if acc.Diagnostics().DroppedSessions != 1 {
		t.Fatalf("expected one dropped session, got %d", acc.Diagnostics().DroppedSessions)
	}
}

func TestAccumulator_MalformedEntries(t *testing.T) {
	acc := NewAccumulator("")

	// Session with no event reference at all.
	consumeJSON(t, acc, `{"sessionTime": "10:00"}`)
	// Event without any id.
	consumeJSON(t, acc, `{"name": "Anonyme"}`)

	if len(acc.Events()) != 0 {
		t.Fatal("expected no events")
	}
	diag := acc.Diagnostics()
	if diag.SkippedEntries != 1 {
		t.Fatalf("expected one skipped entry, got %d", diag.SkippedEntries)
	}
	if diag.DroppedEvents != 1 {
		t.Fatalf("expected one dropped event, got %d", diag.DroppedEvents)
	}
}

func TestAccumulator_OrdersByEarliestSessionThenTitle(t *testing.T) {
	acc := NewAccumulator("")

	consumeJSON(t, acc, `{
		"eventId": {"_id": "ev1", "name": "Zèbre"},
		"sessions": [{"sessionTime": "16:00"}]
	}`)
	consumeJSON(t, acc, `{
		"eventId": {"_id": "ev2", "name": "Évasion"},
		"sessions": [{"sessionTime": "14:00"}, {"sessionTime": "22:00"}]
	}`)
	consumeJSON(t, acc, `{
		"eventId": {"_id": "ev3", "name": "Etoile"},
		"sessions": [{"sessionTime": "16:00"}]
	}`)

	events := acc.Events()
	if len(events) != 3 {
		t.Fatalf("expected three events, got %d", len(events))
	}
	if events[0].Event.ID != "ev2" {
		t.Fatalf("expected earliest session first, got %s", events[0].Event.ID)
	}
	// 16:00 tie: Etoile before Zèbre under accent-insensitive French order.
	if events[1].Event.ID != "ev3" || events[2].Event.ID != "ev1" {
		t.Fatalf("unexpected tiebreak order: %s then %s", events[1].Event.ID, events[2].Event.ID)
	}
}

func TestGenresLabel(t *testing.T) {
	if got := GenresLabel([]string{"", "Drame", "Romance", "Guerre"}); got != "Drame / Romance" {
		t.Fatalf("expected first two non-empty genres, got %q", got)
	}
	if got := GenresLabel(nil); got != "Cinéma" {
		t.Fatalf("expected fallback label, got %q", got)
	}
}
