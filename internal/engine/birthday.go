package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-wishlist/internal/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const hoursPerDay = 24

// Birthday is the structured form of a "<day> de <month>" birthday text.
// It carries no year: birthdays recur annually.
type Birthday struct {
	Day   int
	Month time.Month
}

// String renders the birthday the way it is stored, e.g. "15 de Mayo".
func (b Birthday) String() string {
	return FormatBirthday(b.Day, b.Month)
}

// FormatBirthday builds the display text for a day and month.
func FormatBirthday(day int, month time.Month) string {
	return fmt.Sprintf(config.FormatBirthday, day, MonthName(month))
}

// MonthName returns the localized month name, or an empty string for an invalid month.
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return config.MonthNames[month-1]
}

// MaxDay is the largest day accepted for a month. February allows 29 so that
// leaplings can be entered; the date rolls over to March 1 in non-leap years.
func MaxDay(month time.Month) int {
	switch month {
	case time.February:
		return config.MaxFebruaryDay
	case time.April, time.June, time.September, time.November:
		return 30
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	default:
		return 0
	}
}

// ParseBirthday reads a free-text birthday such as "15 de Mayo".
// Case and commas are ignored. It reports false on any malformed input,
// including days outside the month range, and never panics.
func ParseBirthday(s string) (Birthday, bool) {
	if strings.TrimSpace(s) == "" {
		return Birthday{}, false
	}

	normalized := strings.ReplaceAll(lower(s), ",", "")
	parts := strings.Split(normalized, config.BirthdaySeparator)
	if len(parts) != 2 {
		return Birthday{}, false
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Birthday{}, false
	}

	month, ok := lookupMonth(strings.TrimSpace(parts[1]))
	if !ok {
		return Birthday{}, false
	}

	if day < 1 || day > MaxDay(month) {
		return Birthday{}, false
	}

	return Birthday{Day: day, Month: month}, true
}

// lookupMonth matches an already lower-cased month name against the month table.
func lookupMonth(name string) (time.Month, bool) {
	for i, m := range config.MonthNames {
		if lower(m) == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// lower uses a fresh Caser on every call: a Caser is stateful and must not be shared.
func lower(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

// NextOccurrence returns the midnight of the next birthday on or after today,
// in the location of now.
func NextOccurrence(b Birthday, now time.Time) time.Time {
	loc := now.Location()
	today := startOfDay(now)

	// time.Date normalizes Feb 29 to March 1 in non-leap years.
	candidate := time.Date(today.Year(), b.Month, b.Day, 0, 0, 0, 0, loc)
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, b.Month, b.Day, 0, 0, 0, 0, loc)
	}
	return candidate
}

// DaysUntil counts whole days from today to the next occurrence of b.
// The result is never negative and is 0 when the birthday is today.
func DaysUntil(b Birthday, now time.Time) int {
	return daysBetween(startOfDay(now), NextOccurrence(b, now))
}

// DaysUntilBirthday parses a birthday text and counts the days until it.
// It reports false when the text cannot be parsed.
func DaysUntilBirthday(s string, now time.Time) (int, bool) {
	b, ok := ParseBirthday(s)
	if !ok {
		return 0, false
	}
	return DaysUntil(b, now), true
}

// IsUpcoming reports whether a day count falls in the highlight window.
func IsUpcoming(days int) bool {
	return days >= 0 && days <= config.UpcomingWindowDays
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween compares calendar dates in UTC so DST transitions cannot skew the count.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / hoursPerDay)
}
