// Package studyday maps instants to study days, whose boundary is a fixed cutoff hour
// in a fixed UTC offset instead of midnight in the host's locale.
package studyday

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultUTCOffset  = "+09:00"
	DefaultCutoffHour = 3
)

type Clock struct {
	location   *time.Location
	cutoffHour int
	now        func() time.Time
}

type Option func(*Clock)

// WithNow replaces the wall clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// NewClock creates a clock for a UTC offset such as "+09:00" and a cutoff hour in [0, 23].
func NewClock(utcOffset string, cutoffHour int, opts ...Option) (*Clock, error) {
	location, err := ParseUTCOffset(utcOffset)
	if err != nil {
		return nil, err
	}
	if cutoffHour < 0 || cutoffHour > 23 {
		return nil, fmt.Errorf("cutoff hour must be between 0 and 23: %d", cutoffHour)
	}

	c := &Clock{
		location:   location,
		cutoffHour: cutoffHour,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ParseUTCOffset parses "+09:00", "-05:30" or "Z" into a fixed zone.
func ParseUTCOffset(value string) (*time.Location, error) {
	if value == "" || value == "Z" || value == "UTC" {
		return time.UTC, nil
	}
	if len(value) != 6 || (value[0] != '+' && value[0] != '-') || value[3] != ':' {
		return nil, fmt.Errorf("invalid UTC offset %q: expected format +HH:MM", value)
	}
	hours, err := strconv.Atoi(value[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid UTC offset %q: %w", value, err)
	}
	minutes, err := strconv.Atoi(value[4:6])
	if err != nil {
		return nil, fmt.Errorf("invalid UTC offset %q: %w", value, err)
	}
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("invalid UTC offset %q: out of range", value)
	}

	seconds := hours*3600 + minutes*60
	if strings.HasPrefix(value, "-") {
		seconds = -seconds
	}
	return time.FixedZone("UTC"+value, seconds), nil
}

func (c *Clock) Location() *time.Location {
	return c.location
}

func (c *Clock) CutoffHour() int {
	return c.cutoffHour
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.location)
}

// StudyDay returns the study day t belongs to. An instant before the cutoff hour
// belongs to the previous civil day.
func (c *Clock) StudyDay(t time.Time) DayKey {
	shifted := t.In(c.location).Add(-time.Duration(c.cutoffHour) * time.Hour)
	return NewDayKey(shifted.Date())
}

// Instant returns the boundary instant that starts study day k.
func (c *Clock) Instant(k DayKey) time.Time {
	return c.At(k, c.cutoffHour)
}

// At returns hour:00 on the civil date of k.
func (c *Clock) At(k DayKey, hour int) time.Time {
	year, month, day := k.Date()
	return time.Date(year, month, day, hour, 0, 0, 0, c.location)
}

func (c *Clock) Today() DayKey {
	return c.StudyDay(c.now())
}

// StartOfWeek returns the Monday of the current week, offset weeks back.
func (c *Clock) StartOfWeek(offset int) DayKey {
	today := c.Today()
	sinceMonday := (int(today.Weekday()) + 6) % 7
	return today - DayKey(sinceMonday) - DayKey(7*offset)
}

// StartOfMonth returns the first day of the current month, offset months back.
func (c *Clock) StartOfMonth(offset int) DayKey {
	year, month, _ := c.Today().Date()
	first := time.Date(year, month-time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	return NewDayKey(first.Date())
}
