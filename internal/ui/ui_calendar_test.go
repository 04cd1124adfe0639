package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

func TestCalendarWindow_CurrentMonth(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.ShowCalendarWindow()
	require.NotNil(t, app.calendarWindow)
	require.NotNil(t, app.calendar)

	v := app.calendar
	assert.Equal(t, "Mayo 2025", v.title.Text)
	assert.Equal(t, map[int][]string{15: {"Mamá"}}, v.days)
	// 7 weekday headers, 4 blanks (May 1st 2025 is a Thursday), 31 days.
	assert.Len(t, v.grid.Objects, 42)
}

func TestCalendarWindow_Navigation(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.ShowCalendarWindow()
	v := app.calendar

	for i := 0; i < 6; i++ {
		test.Tap(v.next)
	}
	assert.Equal(t, "Noviembre 2025", v.title.Text)
	assert.Equal(t, []string{"Juan"}, v.days[22])

	for i := 0; i < 11; i++ {
		test.Tap(v.prev)
	}
	assert.Equal(t, "Diciembre 2024", v.title.Text)
	assert.Empty(t, v.days)
	assert.Len(t, v.grid.Objects, 7+31, "December 2024 starts on a Sunday")
}

// dayLabel returns the number label of a day cell in the open calendar.
func dayLabel(t *testing.T, app *WishlistApp, day int) *widget.Label {
	t.Helper()
	layout := engine.MonthGrid(app.calendar.year, app.calendar.month)
	cell, ok := app.calendar.grid.Objects[len(config.WeekdayInitials)+layout.LeadingDays+day-1].(*fyne.Container)
	require.True(t, ok)
	label, ok := cell.Objects[0].(*widget.Label)
	require.True(t, ok)
	return label
}

func TestCalendarWindow_HighlightsToday(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.ShowCalendarWindow()

	assert.Equal(t, widget.HighImportance, dayLabel(t, app, 1).Importance)
	assert.Equal(t, widget.MediumImportance, dayLabel(t, app, 15).Importance)

	test.Tap(app.calendar.next)
	assert.Equal(t, widget.MediumImportance, dayLabel(t, app, 1).Importance, "Other months have no today marker")
}

func TestCalendarWindow_Singleton(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.ShowCalendarWindow()
	first := app.calendarWindow
	app.ShowCalendarWindow()
	assert.Same(t, first, app.calendarWindow, "A second call focuses the open window")

	first.Close()
	assert.Nil(t, app.calendarWindow)
	assert.Nil(t, app.calendar)

	// Store changes while closed are ignored.
	app.Store.ToggleFavorite("person-1")

	app.ShowCalendarWindow()
	assert.NotSame(t, first, app.calendarWindow)
}

func TestCalendarWindow_FollowsStore(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.ShowCalendarWindow()

	app.Store.AddPerson("Lucía", "15 de Mayo", engine.ColorViolet)
	assert.ElementsMatch(t, []string{"Mamá", "Lucía"}, app.calendar.days[15])

	app.Store.DeletePerson("person-1")
	assert.Equal(t, []string{"Lucía"}, app.calendar.days[15])
}

// TestCalendarWindow_DayRollover re-renders the today marker after midnight.
func TestCalendarWindow_DayRollover(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.ShowCalendarWindow()

	setClock(app, time.Date(2025, 5, 2, 0, 0, 1, 0, time.UTC))
	app.midnightRefresh()

	assert.Equal(t, widget.MediumImportance, dayLabel(t, app, 1).Importance)
	assert.Equal(t, widget.HighImportance, dayLabel(t, app, 2).Importance)
}

// TestCalendarWindow_LeapDayBirthday shows a 29 de Febrero birthday on March 1st in 2025.
func TestCalendarWindow_LeapDayBirthday(t *testing.T) {
	app, _, _ := setupTestAppAt(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	app.Store.AddPerson("Bisiesto", "29 de Febrero", engine.ColorAmber)
	app.ShowCalendarWindow()

	assert.Equal(t, []string{"Bisiesto"}, app.calendar.days[1])

	test.Tap(app.calendar.prev)
	assert.Equal(t, "Febrero 2025", app.calendar.title.Text)
	assert.Empty(t, app.calendar.days)
}
