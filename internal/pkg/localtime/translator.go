// Package localtime owns every conversion between absolute instants and the
// fixed-offset local wall clock that attendance and payroll rules are written in.
package localtime

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// DefaultOffsetHours is the operating region's offset from UTC.
	DefaultOffsetHours = 7
)

// Translator converts between absolute time and local time using a single
// constant offset. There is no daylight-saving support.
type Translator struct {
	loc *time.Location
}

func NewTranslator(offsetHours int) *Translator {
	offset := time.Duration(offsetHours) * time.Hour
	return &Translator{
		loc: time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), int(offset.Seconds())),
	}
}

// ToLocal shifts an absolute instant onto the local wall clock.
func (t *Translator) ToLocal(at time.Time) time.Time {
	return at.In(t.loc)
}

// ToAbsolute returns the UTC representation of a local instant.
func (t *Translator) ToAbsolute(at time.Time) time.Time {
	return at.UTC()
}

// ParseInstant parses an RFC 3339 timestamp. Timestamps without an offset are
// taken to be local.
func (t *Translator) ParseInstant(value string) (time.Time, error) {
	if at, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return at.In(t.loc), nil
	}
	at, err := time.ParseInLocation("2006-01-02T15:04:05", value, t.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return at, nil
}

// LocalDate returns the local calendar date of an instant as YYYY-MM-DD.
func (t *Translator) LocalDate(at time.Time) string {
	return t.ToLocal(at).Format(DateLayout)
}

// Midnight returns 00:00 local on the given calendar date.
func (t *Translator) Midnight(date string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, t.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d, nil
}

// At returns the local instant at hh:mm on the given calendar date.
func (t *Translator) At(date string, hour, minute int) (time.Time, error) {
	midnight, err := t.Midnight(date)
	if err != nil {
		return time.Time{}, err
	}
	return midnight.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}

// MinutesSinceMidnight returns the local time-of-day of an instant in minutes.
func (t *Translator) MinutesSinceMidnight(at time.Time) int {
	local := t.ToLocal(at)
	return local.Hour()*60 + local.Minute()
}

// MonthRange returns the first and last local calendar dates of the month
// containing the instant.
func (t *Translator) MonthRange(at time.Time) (string, string) {
	local := t.ToLocal(at)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, t.loc)
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}
