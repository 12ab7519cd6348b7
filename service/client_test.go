package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetJSON_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/fail", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSON_SingleAttempt(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/flaky", &out); err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestGetJSON_EmptyBodyIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/empty", &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/missing", &out)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestResolveBaseURL(t *testing.T) {
	if got := ResolveBaseURL(""); got != defaultBaseURL {
		t.Fatalf("expected default base url, got %q", got)
	}
	if got := ResolveBaseURL("https://api.example.fr/"); got != "https://api.example.fr" {
		t.Fatalf("expected trailing slash trimmed, got %q", got)
	}
}

func TestSessionsByDate_NormalizesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions/by-date" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2026-09-03" {
			t.Fatalf("unexpected date param %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"groups": [
				{
					"eventId": {"_id": "ev1", "name": "Dune", "duration": 166},
					"sessions": [
						{"_id": "s2", "date": "2026-09-03", "sessionTime": "21:00", "version": "IMAX", "availableSeats": 12},
						{"_id": "s1", "date": "2026-09-03", "sessionTime": "14:00", "version": "VF", "availableSeats": 0}
					]
				}
			],
			"sessions": [
				{"_id": "s3", "eventId": "ev1", "date": "2026-09-03", "time": "18:00"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	day := client.SessionsByDate(context.Background(), "2026-09-03")

	if day.Date != "2026-09-03" {
		t.Fatalf("unexpected date %q", day.Date)
	}
	if len(day.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(day.Events))
	}
	entry := day.Events[0]
	if entry.Event.Title != "Dune" || entry.Event.DurationLabel != "2h 46m" {
		t.Fatalf("unexpected event %+v", entry.Event)
	}
	if len(entry.Sessions) != 3 {
		t.Fatalf("expected three sessions, got %d", len(entry.Sessions))
	}
	if entry.Sessions[0].Time != "14:00" || entry.Sessions[2].Time != "21:00" {
		t.Fatalf("expected sessions ascending by time, got %+v", entry.Sessions)
	}
	if !entry.Sessions[2].Premium {
		t.Fatal("expected IMAX session flagged premium")
	}
}

func TestSessionsByDate_FailureYieldsEmptySchedule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	day := client.SessionsByDate(context.Background(), "2026-09-03")

	if day.Date != "2026-09-03" {
		t.Fatalf("expected requested date kept, got %q", day.Date)
	}
	if day.Events != nil {
		t.Fatalf("expected no events, got %+v", day.Events)
	}
}

func TestSessionsByDate_RejectsInvalidDate(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	day := client.SessionsByDate(context.Background(), "03/09/2026")

	if len(day.Events) != 0 {
		t.Fatalf("expected empty schedule, got %+v", day.Events)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("expected no request for an invalid date")
	}
}

func TestEventsWithALaffiche(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/with-a-laffiche" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("type") != "movie" || r.URL.Query().Get("genre") != "Drame" {
			t.Fatalf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"events": [
				{"_id": "ev1", "name": "Anatomie d'une chute", "genres": ["Drame", "Procès"], "duration": 151},
				{"name": "Sans identifiant"}
			],
			"aLaffiche": [
				{"eventId": {"_id": "ev1", "name": "Anatomie d'une chute"}, "eventAffiche": true}
			],
			"prochainement": [{"_id": "ev9", "name": "Bientôt"}],
			"showTypes": ["movie", {"name": "show"}, {"name": ""}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	listing := client.EventsWithALaffiche(context.Background(), EventsQuery{Type: "movie", Genre: "Drame"})

	if len(listing.Events) != 1 {
		t.Fatalf("expected events without id dropped, got %d", len(listing.Events))
	}
	if listing.Events[0].GenresLabel != "Drame / Procès" {
		t.Fatalf("unexpected genres label %q", listing.Events[0].GenresLabel)
	}
	if len(listing.ALaffiche) != 1 || listing.ALaffiche[0].EventID != "ev1" {
		t.Fatalf("unexpected affiche %+v", listing.ALaffiche)
	}
	if len(listing.Prochainement) != 1 {
		t.Fatalf("expected one upcoming event, got %d", len(listing.Prochainement))
	}
	if len(listing.ShowTypes) != 2 || listing.ShowTypes[0] != "movie" || listing.ShowTypes[1] != "show" {
		t.Fatalf("unexpected show types %v", listing.ShowTypes)
	}
}

func TestEventsWithALaffiche_FailureYieldsEmptyListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	listing := client.EventsWithALaffiche(context.Background(), EventsQuery{})

	if len(listing.Events) != 0 || len(listing.ALaffiche) != 0 {
		t.Fatalf("expected empty listing, got %+v", listing)
	}
}

func TestEventSessions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions/home/ev1" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"event": {"_id": "ev1", "name": "Dune"},
			"sessions": [
				{"_id": "s1", "date": "2026-09-03", "sessionTime": "14:00"},
				{"_id": "s2", "date": "2026-09-03"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	event, sessions, found := client.EventSessions(context.Background(), "ev1")
	if !found {
		t.Fatal("expected event to be found")
	}
	if event.Title != "Dune" {
		t.Fatalf("unexpected event %+v", event)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected session without time dropped, got %d", len(sessions))
	}

	if _, _, found := client.EventSessions(context.Background(), "inconnu"); found {
		t.Fatal("expected missing event to be reported not found")
	}
	if _, _, found := client.EventSessions(context.Background(), ""); found {
		t.Fatal("expected empty id to be rejected")
	}
}

func TestHome(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/home" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"homeSlider": [
				{"_id": "sl2", "title": "Festival du film", "order": 2},
				{"_id": "sl1", "title": "Nuit des avant-premières", "order": 1},
				{"_id": "sl3", "title": "Inactif", "active": false}
			],
			"aLaffiche": [
				{"_id": "ev1", "name": "Nouveauté", "createdAt": "2026-08-30T08:00:00Z", "duration": 100, "genres": ["Drame"]},
				{"_id": "ev2", "name": "Classique", "createdAt": "2026-01-10T08:00:00Z"},
				{"_id": "ev3", "name": "Trois"},
				{"_id": "ev4", "name": "Quatre"},
				{"_id": "ev5", "name": "Cinq"},
				{"_id": "ev6", "name": "Six"}
			],
			"spectacles": [{"_id": "sp1", "name": "Le Lac des Cygnes", "type": "show", "genres": ["Ballet"]}],
			"prochainement": [
				{"_id": "up1", "name": "Premier", "availableFrom": "2026-09-10"},
				{"_id": "up2", "name": "Deuxième"},
				{"_id": "up3", "name": "Troisième"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.Local)
	home := client.Home(context.Background(), now)

	if len(home.HeroSlides) != 2 {
		t.Fatalf("expected inactive slide dropped, got %d", len(home.HeroSlides))
	}
	if home.HeroSlides[0].ID != "sl1" {
		t.Fatalf("expected slides sorted by order, got %q first", home.HeroSlides[0].ID)
	}
	if len(home.NowShowing) != 5 {
		t.Fatalf("expected now-showing capped at 5, got %d", len(home.NowShowing))
	}
	if home.NowShowing[0].Badge != "Nouveau" {
		t.Fatalf("expected recent event badged Nouveau, got %q", home.NowShowing[0].Badge)
	}
	if home.NowShowing[1].Badge != "" {
		t.Fatalf("expected old event unbadged, got %q", home.NowShowing[1].Badge)
	}
	if len(home.Upcoming) != 2 {
		t.Fatalf("expected upcoming capped at 2, got %d", len(home.Upcoming))
	}
	if home.Upcoming[0].Date != "Le 10 Septembre" {
		t.Fatalf("unexpected upcoming date label %q", home.Upcoming[0].Date)
	}
	if home.Upcoming[1].Date != "Prochainement" {
		t.Fatalf("expected generic teaser, got %q", home.Upcoming[1].Date)
	}
	if len(home.Spectacles) != 1 || home.Spectacles[0].Genre != "Ballet" {
		t.Fatalf("unexpected spectacles %+v", home.Spectacles)
	}
}

func TestHome_FailureYieldsFallbackHero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	home := client.Home(context.Background(), time.Now())

	if len(home.HeroSlides) != 1 || home.HeroSlides[0].ID != fallbackSlideID {
		t.Fatalf("expected fallback hero slide, got %+v", home.HeroSlides)
	}
	if len(home.NowShowing) != 0 {
		t.Fatalf("expected empty strips, got %+v", home.NowShowing)
	}
}
