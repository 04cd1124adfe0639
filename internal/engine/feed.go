package engine

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/teambition/rrule-go"
)

// FeedStats summarizes a feed build.
type FeedStats struct {
	People int // People in the input
	Events int // People with a schedulable birthday
	Today  int // Birthdays falling today
}

// FeedBuilder renders the people collection as an iCalendar subscription feed.
type FeedBuilder struct {
	Clock Clock

	// ReminderTrigger is an ISO8601 duration (e.g. "-P1D"). Empty disables alarms.
	ReminderTrigger string
}

// Build returns one all-day, yearly recurring event per person whose birthday
// can be parsed. People with unparseable birthdays are skipped.
func (f *FeedBuilder) Build(people []Person) ([]byte, FeedStats, error) {
	stats := FeedStats{People: len(people)}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: countdowns change daily, so clients should poll at least once a day.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Local time drives the date logic; DTSTAMP is stamped in UTC.
	now := f.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, p := range people {
		b, ok := ParseBirthday(p.Birthday)
		if !ok {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyPersonID, p.ID,
				config.LogKeyValue, p.Birthday)
			continue
		}
		stats.Events++

		if DaysUntil(b, now) == 0 {
			stats.Today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, p.Name)
		}

		event := f.birthdayEvent(p, b)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		// Clients flag an empty VCALENDAR without events as invalid, so send the stub.
		return []byte(config.StubVCalendar), stats, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, stats, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyPeople, stats.People),
			slog.Int(config.LogKeyEvents, stats.Events),
			slog.Int(config.LogKeyToday, stats.Today),
		),
	)
	return buf.Bytes(), stats, nil
}

// birthdayEvent creates the recurring VEVENT for one person.
func (f *FeedBuilder) birthdayEvent(p Person, b Birthday) *ical.Event {
	summary := fmt.Sprintf(config.CalendarTitle, p.Name)

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, p.ID, config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)
	event.Props.SetText(config.PropTransp, config.ValueTransp)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(NextOccurrence(b, f.Clock.Now()))
	event.Props.Set(dtStartProp)
	event.Props.SetRecurrenceRule(&rrule.ROption{Freq: rrule.YEARLY})

	if ideas := giftIdeas(p); ideas != "" {
		event.Props.SetText(config.PropDescription, ideas)
	}

	if f.ReminderTrigger != "" {
		addAlarm(event, f.ReminderTrigger, summary)
	}
	return event
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the raw value: SetText would add a VALUE=TEXT parameter.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// ReminderTrigger builds the ISO8601 alarm trigger for "days before".
// Zero or negative values disable the alarm.
func ReminderTrigger(daysBefore int) string {
	if daysBefore <= 0 {
		return ""
	}
	return fmt.Sprintf("%s%d%s", config.ISONegativePrefix, daysBefore, config.ISODay)
}
