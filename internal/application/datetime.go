package application

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeLayout is the wire format for booking intervals: local date-time
// without a zone offset.
const dateTimeLayout = "2006-01-02T15:04:05"

// DateTime is a time.Time that marshals using dateTimeLayout instead of
// RFC 3339. Booking start and end travel in this format on every boundary.
type DateTime time.Time

// NewDateTime wraps a time.Time for boundary serialization.
func NewDateTime(t time.Time) DateTime {
	return DateTime(t)
}

// Time returns the underlying time.Time.
func (d DateTime) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the value is the zero time.
func (d DateTime) IsZero() bool {
	return time.Time(d).IsZero()
}

// MarshalJSON renders the value in the wire layout.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(dateTimeLayout) + `"`), nil
}

// UnmarshalJSON parses the wire layout; null leaves the value untouched.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date-time %q: %w", s, err)
	}
	*d = DateTime(t)
	return nil
}
