package schedule

import (
	"sort"
	"time"

	"seance-finder-cli/model"
)

// GroupSessionsByDate buckets sessions by date key, dropping any session
// whose start is strictly before now. A session whose date and time cannot
// be combined into a timestamp has no position on the timeline and is
// excluded too. Keys come back sorted, and each bucket ascends by time of
// day.
func GroupSessionsByDate(sessions []model.Session, now time.Time) (map[string][]model.Session, []string) {
	buckets := make(map[string][]model.Session)
	for _, session := range sessions {
		if session.Date == "" {
			continue
		}
		when, ok := CombineDateAndTime(session.Date, session.Time)
		if !ok || when.Before(now) {
			continue
		}
		buckets[session.Date] = append(buckets[session.Date], session)
	}
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		buckets[key] = SortedByTime(buckets[key])
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return buckets, keys
}

// SortedByTime returns the sessions ascending by time of day. The input
// slice is sorted in place and returned.
func SortedByTime(sessions []model.Session) []model.Session {
	sort.SliceStable(sessions, func(i, j int) bool {
		return MinutesOfDay(sessions[i].Time) < MinutesOfDay(sessions[j].Time)
	})
	return sessions
}
