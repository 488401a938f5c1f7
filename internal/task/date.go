package task

import (
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// DateLayout is the wire format of due dates.
	DateLayout = "2006-01-02"
	// DisplayLayout is long month, 2-digit day, 4-digit year.
	DisplayLayout = "January 02, 2006"
	// DateLayoutHint is DateLayout as shown to users.
	DateLayoutHint = "YYYY-MM-DD"
)

// Date is a calendar date in YYYY-MM-DD form.
type Date string

// DateOf returns the calendar date of t in UTC.
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(DateLayout))
}

// Time parses the date as midnight UTC.
func (d Date) Time() (time.Time, error) {
	return time.ParseInLocation(DateLayout, string(d), time.UTC)
}

// Valid reports whether the date parses.
func (d Date) Valid() bool {
	_, err := d.Time()
	return err == nil
}

// Display renders the date in UTC regardless of the local zone.
func (d Date) Display() string {
	t, err := d.Time()
	if err != nil {
		return "Invalid Date"
	}
	return t.UTC().Format(DisplayLayout)
}

// Relative renders the distance from now, e.g. "3 days from now".
func (d Date) Relative(now time.Time) string {
	t, err := d.Time()
	if err != nil {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
