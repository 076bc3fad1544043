// Package temporal parses and formats the date and date-time tokens used by
// deadline and event tasks.
package temporal

import (
	"fmt"
	"time"
)

// Granularity tells whether a Value carries a time-of-day.
type Granularity int

const (
	DateOnly Granularity = iota
	DateTime
)

func (g Granularity) String() string {
	if g == DateTime {
		return "datetime"
	}
	return "date"
}

// Input and display layouts.
const (
	DateLayout            = "2006-01-02"
	DateTimeLayout        = "2006-01-02 15:04"
	DateDisplayLayout     = "Jan 02 2006"
	DateTimeDisplayLayout = "Jan 02 2006 15:04"
)

// Accepted input patterns, as shown to users in error messages.
const (
	DatePattern     = "yyyy-MM-dd"
	DateTimePattern = "yyyy-MM-dd HH:mm"
)

// FormatError reports a token that is not a valid date or date-time.
type FormatError struct {
	Token   string
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// Value is an immutable, zone-less date or date-time. Instants are kept in
// UTC so wall-clock values never shift. The zero Value is not valid;
// obtain one through Parse.
type Value struct {
	instant     time.Time
	granularity Granularity
}

// Parse reads a token of the form yyyy-MM-dd or yyyy-MM-dd HH:mm.
// Validation is strict: formatting the result with the same layout must
// give back the exact token, so impossible dates are never clamped.
func Parse(token string) (Value, error) {
	var (
		layout string
		g      Granularity
	)
	switch len(token) {
	case len(DateLayout):
		layout, g = DateLayout, DateOnly
	case len(DateTimeLayout):
		layout, g = DateTimeLayout, DateTime
	default:
		return Value{}, &FormatError{
			Token:   token,
			Message: fmt.Sprintf("Oops! Invalid date format.\n Use `%s` or `%s`", DatePattern, DateTimePattern),
		}
	}

	t, err := time.Parse(layout, token)
	if err != nil || t.Format(layout) != token {
		return Value{}, &FormatError{Token: token, Message: "Oops! This is an invalid date"}
	}
	return Value{instant: t, granularity: g}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// constants.
func MustParse(token string) Value {
	v, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return v
}

// Granularity returns whether the value is date-only or carries a time.
func (v Value) Granularity() Granularity { return v.granularity }

// Time returns the instant; midnight for date-only values.
func (v Value) Time() time.Time { return v.instant }

// IsZero reports whether v was never parsed.
func (v Value) IsZero() bool { return v.instant.IsZero() }

// Display renders the value for humans, e.g. "Jan 22 2026" or
// "Jan 22 2026 14:00".
func (v Value) Display() string {
	if v.granularity == DateTime {
		return v.instant.Format(DateTimeDisplayLayout)
	}
	return v.instant.Format(DateDisplayLayout)
}

// StorageToken renders the value back to its input form. Parse(v.StorageToken())
// yields an equal value.
func (v Value) StorageToken() string {
	if v.granularity == DateTime {
		return v.instant.Format(DateTimeLayout)
	}
	return v.instant.Format(DateLayout)
}

// String implements fmt.Stringer using the display form.
func (v Value) String() string { return v.Display() }

// Date returns the calendar date, ignoring any time-of-day.
func (v Value) Date() (year int, month time.Month, day int) {
	return v.instant.Date()
}

// SameDate reports whether v and other fall on the same calendar day.
func (v Value) SameDate(other Value) bool {
	y1, m1, d1 := v.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Before reports whether v is strictly earlier than other.
func (v Value) Before(other Value) bool {
	return v.instant.Before(other.instant)
}

// Equal reports whether both values have the same instant and granularity.
func (v Value) Equal(other Value) bool {
	return v.granularity == other.granularity && v.instant.Equal(other.instant)
}
