package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seance-finder-cli/model"
)

const (
	listingCacheTTL  = time.Minute
	scheduleCacheTTL = time.Minute
	homeCacheTTL     = time.Minute
	maxRecentEvents  = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// RecentEvent is one entry of the recently-viewed history.
type RecentEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Badge string `json:"badge"`
}

type eventHistory struct {
	Events []RecentEvent `json:"events"`
}

// LoadListingCache returns the cached events listing for a type/genre
// pair and whether it is still fresh.
func LoadListingCache(showType string, genre string) (model.Listing, bool, error) {
	path, err := cachePath(listingCacheName(showType, genre))
	if err != nil {
		return model.Listing{}, false, err
	}
	cache, err := loadCache[model.Listing](path)
	if err != nil {
		return model.Listing{}, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= listingCacheTTL, nil
}

func SaveListingCache(showType string, genre string, listing model.Listing) error {
	path, err := cachePath(listingCacheName(showType, genre))
	if err != nil {
		return err
	}
	return saveCache(path, listing)
}

// LoadScheduleCache returns the cached programme for one date key and
// whether it is still fresh.
func LoadScheduleCache(dateKey string) (model.DaySchedule, bool, error) {
	path, err := cachePath(fmt.Sprintf("schedule_%s.json", sanitizeKey(dateKey)))
	if err != nil {
		return model.DaySchedule{}, false, err
	}
	cache, err := loadCache[model.DaySchedule](path)
	if err != nil {
		return model.DaySchedule{}, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= scheduleCacheTTL, nil
}

func SaveScheduleCache(dateKey string, schedule model.DaySchedule) error {
	path, err := cachePath(fmt.Sprintf("schedule_%s.json", sanitizeKey(dateKey)))
	if err != nil {
		return err
	}
	return saveCache(path, schedule)
}

// LoadHomeCache returns the cached home payload and whether it is still
// fresh.
func LoadHomeCache() (model.HomeData, bool, error) {
	path, err := cachePath("home.json")
	if err != nil {
		return model.HomeData{}, false, err
	}
	cache, err := loadCache[model.HomeData](path)
	if err != nil {
		return model.HomeData{}, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= homeCacheTTL, nil
}

func SaveHomeCache(data model.HomeData) error {
	path, err := cachePath("home.json")
	if err != nil {
		return err
	}
	return saveCache(path, data)
}

// LoadRecentEvents returns the recently-viewed events, most recent first.
func LoadRecentEvents() ([]RecentEvent, error) {
	path, err := configPath("history.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history eventHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid event history format")
	}
	return history.Events, nil
}

// RememberEvent moves the event to the front of the history, deduplicated
// by id and capped.
func RememberEvent(event model.Event) error {
	if event.ID == "" {
		return errors.New("event id is required")
	}
	history, _ := LoadRecentEvents()
	next := []RecentEvent{{ID: event.ID, Title: event.Title, Badge: event.Badge}}

	for _, existing := range history {
		if existing.ID == event.ID {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentEvents {
			break
		}
	}

	return saveRecentEvents(next)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func saveRecentEvents(events []RecentEvent) error {
	path, err := configPath("history.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	history := eventHistory{Events: events}
	payload, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func listingCacheName(showType string, genre string) string {
	return fmt.Sprintf("events_%s_%s.json", sanitizeKey(showType), sanitizeKey(genre))
}

// sanitizeKey keeps cache file names flat and portable.
func sanitizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "all"
	}
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "seance-finder-cli", name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "seance-finder-cli", name), nil
}
