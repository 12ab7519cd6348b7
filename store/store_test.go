package store

import (
	"testing"

	"seance-finder-cli/model"
)

func setTestDirs(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
}

func TestRememberEvent_DedupesAndCaps(t *testing.T) {
	setTestDirs(t)

	for _, id := range []string{"ev1", "ev2", "ev3", "ev1"} {
		if err := RememberEvent(model.Event{ID: id, Title: "Titre " + id}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	recents, err := LoadRecentEvents()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recents) != 3 {
		t.Fatalf("expected deduplicated history, got %d entries", len(recents))
	}
	if recents[0].ID != "ev1" || recents[1].ID != "ev3" || recents[2].ID != "ev2" {
		t.Fatalf("unexpected order: %+v", recents)
	}

	for i := 0; i < 12; i++ {
		if err := RememberEvent(model.Event{ID: string(rune('a' + i)), Title: "x"}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	recents, err = LoadRecentEvents()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recents) != maxRecentEvents {
		t.Fatalf("expected history capped at %d, got %d", maxRecentEvents, len(recents))
	}
}

func TestRememberEvent_RequiresID(t *testing.T) {
	setTestDirs(t)

	if err := RememberEvent(model.Event{Title: "Sans identifiant"}); err == nil {
		t.Fatal("expected error for empty event id")
	}
}

func TestScheduleCache_RoundTrip(t *testing.T) {
	setTestDirs(t)

	day := model.DaySchedule{
		Date: "2026-09-03",
		Events: []model.EventSchedule{
			{
				Event:    model.Event{ID: "ev1", Title: "Dune"},
				Sessions: []model.Session{{ID: "s1", EventID: "ev1", Date: "2026-09-03", Time: "14:00"}},
			},
		},
	}
	if err := SaveScheduleCache(day.Date, day); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	loaded, fresh, err := LoadScheduleCache(day.Date)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh {
		t.Fatal("expected fresh cache right after save")
	}
	if loaded.Date != day.Date || len(loaded.Events) != 1 || loaded.Events[0].Event.Title != "Dune" {
		t.Fatalf("unexpected cache contents %+v", loaded)
	}
}

func TestLoadScheduleCache_MissingIsNotFresh(t *testing.T) {
	setTestDirs(t)

	day, fresh, err := LoadScheduleCache("2026-01-01")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fresh {
		t.Fatal("expected missing cache to be stale")
	}
	if len(day.Events) != 0 {
		t.Fatalf("expected empty schedule, got %+v", day)
	}
}

func TestListingCache_KeyedByFilters(t *testing.T) {
	setTestDirs(t)

	movies := model.Listing{Events: []model.Event{{ID: "ev1", Title: "Film"}}}
	shows := model.Listing{Events: []model.Event{{ID: "ev2", Title: "Spectacle"}}}

	if err := SaveListingCache("movie", "", movies); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := SaveListingCache("show", "Comédie", shows); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	loaded, fresh, err := LoadListingCache("movie", "")
	if err != nil || !fresh {
		t.Fatalf("expected fresh movie cache, got fresh=%v err=%v", fresh, err)
	}
	if loaded.Events[0].ID != "ev1" {
		t.Fatalf("unexpected listing %+v", loaded)
	}

	loaded, fresh, err = LoadListingCache("show", "Comédie")
	if err != nil || !fresh {
		t.Fatalf("expected fresh show cache, got fresh=%v err=%v", fresh, err)
	}
	if loaded.Events[0].ID != "ev2" {
		t.Fatalf("unexpected listing %+v", loaded)
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := map[string]string{
		"":           "all",
		"Comédie":    "com_die",
		"movie":      "movie",
		"2026-09-03": "2026-09-03",
		"a b/c":      "a_b_c",
	}
	for input, want := range cases {
		if got := sanitizeKey(input); got != want {
			t.Fatalf("sanitizeKey(%q) = %q, want %q", input, got, want)
		}
	}
}
