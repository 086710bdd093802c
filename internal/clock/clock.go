// Package clock centralizes time handling in the bot timezone. All
// attendance days and reminder windows derive from it, never from the
// server's local time.
package clock

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

type Clock struct {
	loc *time.Location
}

// New loads the named IANA timezone, e.g. "Asia/Tashkent".
func New(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc}, nil
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the current day key (YYYY-MM-DD) in the bot timezone.
func (c *Clock) Today() string {
	return c.Now().Format(DayLayout)
}

// DayOf converts an instant to its day key in the bot timezone.
func (c *Clock) DayOf(t time.Time) string {
	return t.In(c.loc).Format(DayLayout)
}

// StartOfDay parses a day key back into midnight in the bot timezone.
func (c *Clock) StartOfDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, day, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse day %q: %w", day, err)
	}
	return t, nil
}

// At combines a day key with an hour and minute in the bot timezone.
func (c *Clock) At(day string, hour, minute int) (time.Time, error) {
	start, err := c.StartOfDay(day)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}
