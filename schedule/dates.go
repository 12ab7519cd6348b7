package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"seance-finder-cli/model"
)

var dateKeyPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Short and long French labels, indexed by time.Weekday / time.Month-1.
var (
	frWeekdaysShort = [...]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}
	frMonthsShort   = [...]string{"Janv", "Févr", "Mars", "Avr", "Mai", "Juin", "Juil", "Août", "Sept", "Oct", "Nov", "Déc"}
	frMonthsLong    = [...]string{"Janvier", "Février", "Mars", "Avril", "Mai", "Juin", "Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre"}
)

// DateKey formats a calendar date as a zero-padded YYYY-MM-DD key using its
// local calendar fields.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey strictly validates a YYYY-MM-DD key. The parsed fields are
// round-tripped through date construction, so overflowed dates such as
// 2024-02-30 are rejected.
func ParseDateKey(value string) (time.Time, bool) {
	match := dateKeyPattern.FindStringSubmatch(value)
	if match == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

// MinutesOfDay converts an HH:MM label to a minute offset. Unparseable
// labels yield 0, which callers treat as "sorts first".
func MinutesOfDay(label string) int {
	hours, minutes, ok := splitTime(label)
	if !ok {
		return 0
	}
	return hours*60 + minutes
}

// CombineDateAndTime builds a local timestamp from a date key and an HH:MM
// label. Either part failing to parse yields false.
func CombineDateAndTime(dateKey string, timeLabel string) (time.Time, bool) {
	date, ok := ParseDateKey(dateKey)
	if !ok {
		return time.Time{}, false
	}
	hours, minutes, ok := splitTime(timeLabel)
	if !ok {
		return time.Time{}, false
	}
	return date.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute), true
}

func splitTime(label string) (int, int, bool) {
	parts := strings.Split(label, ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return hours, minutes, true
}

// Truncate drops the time-of-day component.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekdayShort returns the short French weekday label.
func WeekdayShort(t time.Time) string {
	return frWeekdaysShort[int(t.Weekday())]
}

// MonthShort returns the short French month label.
func MonthShort(t time.Time) string {
	return frMonthsShort[int(t.Month())-1]
}

// DateParts splits a date key into display parts: zero-padded day, short
// month and short weekday. An invalid key yields empty parts.
func DateParts(dateKey string) (day string, month string, weekday string) {
	date, ok := ParseDateKey(dateKey)
	if !ok {
		return "", "", ""
	}
	return fmt.Sprintf("%02d", date.Day()), MonthShort(date), WeekdayShort(date)
}

// FormatShortDate renders a date key as "03 Sept".
func FormatShortDate(dateKey string) string {
	day, month, _ := DateParts(dateKey)
	parts := make([]string, 0, 2)
	if day != "" {
		parts = append(parts, day)
	}
	if month != "" {
		parts = append(parts, month)
	}
	return strings.Join(parts, " ")
}

// FormatLongDate renders a timestamp as "03 Septembre".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%02d %s", t.Day(), frMonthsLong[int(t.Month())-1])
}

// BuildDateOptions renders the programme date window: days consecutive days
// starting at start, labelled AUJ / DEM / short weekday, with exactly the
// option matching selectedKey marked active.
func BuildDateOptions(start time.Time, days int, selectedKey string) []model.DateOption {
	base := Truncate(start)
	options := make([]model.DateOption, 0, days)
	for i := 0; i < days; i++ {
		date := base.AddDate(0, 0, i)
		value := DateKey(date)
		label := strings.ToUpper(WeekdayShort(date))
		switch i {
		case 0:
			label = "AUJ"
		case 1:
			label = "DEM"
		}
		options = append(options, model.DateOption{
			Value:  value,
			Label:  label,
			Day:    strconv.Itoa(date.Day()),
			Month:  strings.ToUpper(MonthShort(date)),
			Active: value == selectedKey,
		})
	}
	return options
}

// FormatDuration renders a minute count as "2h 05m", "2h" or "45m".
// Non-positive counts render empty.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	hours := minutes / 60
	remaining := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	if remaining == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %02dm", hours, remaining)
}

// datePrefix reduces an upstream date string to its YYYY-MM-DD prefix.
func datePrefix(value string) string {
	if len(value) > 10 {
		return value[:10]
	}
	return value
}
