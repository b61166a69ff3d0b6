package schedule

import (
	"fmt"
	"time"
)

// DefaultClock is the time proposed before any hour or minute is picked.
var DefaultClock = Clock{Hour: 9, Minute: 0}

// Clock is a time of day at minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// ClockOf returns the hour and minute of t in t's location.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// Valid reports whether the clock is within 00:00..23:59.
func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

// String formats c as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses HH:MM.
func ParseClock(s string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return Clock{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	if !c.Valid() {
		return Clock{}, fmt.Errorf("parse time %q: out of range", s)
	}
	return c, nil
}

// Pick is the pending date and time selection of an open scheduler.
type Pick struct {
	Cursor Month
	date   *Date
	clock  *Clock
}

// NewPick opens a picker on the month containing now.
func NewPick(now time.Time) Pick {
	return Pick{Cursor: MonthOf(now)}
}

// PickFrom pre-populates a picker from an existing point in time, using
// its calendar fields in loc.
func PickFrom(at time.Time, loc *time.Location) Pick {
	local := at.In(loc)
	d := DateOf(local)
	c := ClockOf(local)
	return Pick{Cursor: MonthOf(local), date: &d, clock: &c}
}

// Date returns the picked date, if any.
func (p Pick) Date() (Date, bool) {
	if p.date == nil {
		return Date{}, false
	}
	return *p.date, true
}

// Clock returns the picked time, if any.
func (p Pick) Clock() (Clock, bool) {
	if p.clock == nil {
		return Clock{}, false
	}
	return *p.clock, true
}

// WithDate picks d and moves the cursor onto its month.
func (p Pick) WithDate(d Date) Pick {
	p.date = &d
	p.Cursor = Month{Year: d.Year, Month: d.Month}
	return p
}

// WithHour picks hour, keeping the minute already chosen.
func (p Pick) WithHour(hour int) Pick {
	c := p.current()
	c.Hour = ((hour % 24) + 24) % 24
	p.clock = &c
	return p
}

// WithMinute picks minute, keeping the hour already chosen.
func (p Pick) WithMinute(minute int) Pick {
	c := p.current()
	c.Minute = ((minute % 60) + 60) % 60
	p.clock = &c
	return p
}

// current returns the picked clock or DefaultClock.
func (p Pick) current() Clock {
	if p.clock != nil {
		return *p.clock
	}
	return DefaultClock
}

// Display returns the clock the picker should show.
func (p Pick) Display() Clock { return p.current() }

// Complete reports whether both a date and a time have been picked.
func (p Pick) Complete() bool {
	return p.date != nil && p.clock != nil
}

// At combines the picks into one point in time in loc. ok is false until
// both a date and a time are picked.
func (p Pick) At(loc *time.Location) (time.Time, bool) {
	if !p.Complete() {
		return time.Time{}, false
	}
	d, c := *p.date, *p.clock
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, loc), true
}
