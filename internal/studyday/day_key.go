package studyday

import (
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey is a civil date counted in days since 1970-01-01.
// Adding n to a DayKey moves it n study days forward.
type DayKey int

// NewDayKey returns the DayKey of a civil date.
func NewDayKey(year int, month time.Month, day int) DayKey {
	return DayKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// ParseDayKey parses a YYYY-MM-DD string.
func ParseDayKey(value string) (DayKey, error) {
	return ParseDayKeyLayout(dayKeyLayout, value)
}

// ParseDayKeyLayout parses a date written in a time package layout.
func ParseDayKeyLayout(layout, value string) (DayKey, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return 0, fmt.Errorf("time.Parse(%s) > %w", value, err)
	}
	return NewDayKey(t.Date()), nil
}

// MustParseDayKey is ParseDayKey for literals known to be valid.
func MustParseDayKey(value string) DayKey {
	k, err := ParseDayKey(value)
	if err != nil {
		panic(err)
	}
	return k
}

// Date returns the civil date of the key.
func (k DayKey) Date() (year int, month time.Month, day int) {
	return k.utc().Date()
}

// Weekday returns the day of the week of the civil date.
func (k DayKey) Weekday() time.Weekday {
	return k.utc().Weekday()
}

func (k DayKey) String() string {
	return k.utc().Format(dayKeyLayout)
}

func (k DayKey) utc() time.Time {
	return time.Unix(int64(k)*secondsPerDay, 0).UTC()
}

const secondsPerDay = 24 * 60 * 60
