package ui

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

// calendarView is the month grid of birthdays shown in the calendar window.
type calendarView struct {
	year  int
	month time.Month

	title *widget.Label
	grid  *fyne.Container
	prev  *widget.Button
	next  *widget.Button
	root  fyne.CanvasObject

	// days maps a day of the month to the names shown in its cell.
	days map[int][]string
}

// ShowCalendarWindow displays the birthdays of the current month.
// It implements a singleton pattern: if the window is already open, it requests focus.
func (app *WishlistApp) ShowCalendarWindow() {
	app.calendarWindow = app.showWindow(app.calendarWindow, config.TKeyWinCalendar, func() fyne.Window {
		w := app.App.NewWindow(app.GetMsg(config.TKeyWinCalendar))
		w.Resize(fyne.NewSize(config.CalendarWinWidth, config.CalendarWinHeight))

		now := app.Clock.Now()
		app.calendar = app.newCalendarView(now.Year(), now.Month())
		app.renderCalendar()

		w.SetContent(app.calendar.root)
		w.SetOnClosed(func() {
			app.calendarWindow = nil
			app.calendar = nil
		})
		return w
	})
}

func (app *WishlistApp) newCalendarView(year int, month time.Month) *calendarView {
	v := &calendarView{
		year:  year,
		month: month,
		title: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		grid:  container.NewGridWithColumns(config.LayoutColumnsWeek),
	}
	v.prev = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { app.shiftCalendar(-1) })
	v.next = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { app.shiftCalendar(1) })

	nav := container.NewBorder(nil, nil, v.prev, v.next, v.title)
	v.root = container.NewBorder(nav, nil, nil, nil, container.NewVScroll(v.grid))
	return v
}

// shiftCalendar moves the grid by delta months.
func (app *WishlistApp) shiftCalendar(delta int) {
	if app.calendar == nil {
		return
	}
	first := time.Date(app.calendar.year, app.calendar.month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	app.calendar.year, app.calendar.month = first.Year(), first.Month()
	app.renderCalendar()
}

// renderCalendar redraws the open grid from the store. It is a no-op when the
// calendar window is closed.
func (app *WishlistApp) renderCalendar() {
	v := app.calendar
	if v == nil {
		return
	}

	layout := engine.MonthGrid(v.year, v.month)
	byDay := engine.BirthdaysInMonth(app.Store.People(), v.year, v.month)
	now := app.Clock.Now()

	slog.Debug(config.MsgCalendarRender,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyMonth, int(v.month),
		config.LogKeyFound, len(byDay))

	v.title.SetText(fmt.Sprintf(config.FormatMonthTitle, engine.MonthName(v.month), v.year))
	v.days = make(map[int][]string, len(byDay))

	cells := make([]fyne.CanvasObject, 0, config.LayoutColumnsWeek+layout.LeadingDays+layout.Days)
	for _, initial := range config.WeekdayInitials {
		cells = append(cells, widget.NewLabelWithStyle(initial, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	}
	for i := 0; i < layout.LeadingDays; i++ {
		cells = append(cells, widget.NewLabel(""))
	}
	for day := 1; day <= layout.Days; day++ {
		dayLabel := widget.NewLabelWithStyle(fmt.Sprint(day), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		if now.Year() == v.year && now.Month() == v.month && now.Day() == day {
			dayLabel.Importance = widget.HighImportance
		}
		cell := container.NewVBox(dayLabel)
		for _, p := range byDay[day] {
			v.days[day] = append(v.days[day], p.Name)
			name := widget.NewLabel(p.Name)
			name.Importance = widget.WarningImportance
			name.Truncation = fyne.TextTruncateEllipsis
			cell.Add(name)
		}
		cells = append(cells, cell)
	}

	v.grid.Objects = cells
	v.grid.Refresh()
}
