package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// DateLayout is the registry date format: four-digit year, zero-padded month and
// unpadded day ("yyyy-MM-d"), so 2024-03-05 is written as "2024-03-5".
const DateLayout = "2006-01-2"

// Date is a calendar date without time of day or zone. The zero Date encodes
// as JSON null.
type Date struct {
	time.Time
}

// NewDate returns the date for year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses s using DateLayout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected yyyy-MM-d: %w", s, err)
	}
	return Date{t}, nil
}

// String formats the date with DateLayout.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. null leaves the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
