package service

import (
	"time"

	"github.com/JonnyWalker81/lifedash/internal/insight"
)

// Clock supplies "now" and the user's timezone. Dates like "today" are
// computed in Location, never in UTC.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// SystemClock reads the wall clock in loc
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today is the current calendar date in the clock's location
func (c Clock) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return insight.Civil(c.now().In(loc))
}

// ParseDay parses a YYYY-MM-DD date. Empty means today.
func (c Clock) ParseDay(s string) (time.Time, error) {
	if s == "" {
		return c.Today(), nil
	}
	day, err := insight.ParseDate(s)
	if err != nil {
		return time.Time{}, &DateError{Field: "date", Value: s}
	}
	return day, nil
}

// checkDate validates an optional date field
func checkDate(field, s string) error {
	if s == "" {
		return nil
	}
	if _, err := insight.ParseDate(s); err != nil {
		return &DateError{Field: field, Value: s}
	}
	return nil
}

// inRange reports whether date falls in [from, to]; empty bounds are open
func inRange(date, from, to string) bool {
	return (from == "" || date >= from) && (to == "" || date <= to)
}
