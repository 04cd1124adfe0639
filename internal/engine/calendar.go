package engine

import "time"

// MonthLayout describes the cells of a Sunday-first month grid.
type MonthLayout struct {
	Year        int
	Month       time.Month
	LeadingDays int // Blank cells before the 1st
	Days        int // Number of days in the month
}

// MonthGrid computes the grid layout for a month.
func MonthGrid(year int, month time.Month) MonthLayout {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return MonthLayout{
		Year:        first.Year(),
		Month:       first.Month(),
		LeadingDays: int(first.Weekday()),
		Days:        last.Day(),
	}
}

// BirthdaysInMonth groups people by the day their birthday falls on in the
// given month of year. A 29 de Febrero birthday lands on March 1 in non-leap
// years, like NextOccurrence. People with unparseable birthdays are left out.
func BirthdaysInMonth(people []Person, year int, month time.Month) map[int][]Person {
	out := make(map[int][]Person)
	for _, p := range people {
		b, ok := ParseBirthday(p.Birthday)
		if !ok {
			continue
		}
		date := time.Date(year, b.Month, b.Day, 0, 0, 0, 0, time.UTC)
		if date.Month() != month {
			continue
		}
		out[date.Day()] = append(out[date.Day()], p)
	}
	return out
}
