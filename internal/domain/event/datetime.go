package event

import (
	"bytes"
	"fmt"
	"time"
)

// LocalDateTimeLayout is the zone-less wire format, e.g. 2020-04-20T17:00:00.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// fractional seconds are accepted by time.Parse without being in the layout;
// ParseDateTime drops them so stored values match what is written back.
var inputLayouts = []string{
	LocalDateTimeLayout,
	time.RFC3339Nano,
}

// DateTime is a timestamp that reads and writes the zone-less local form.
// RFC 3339 input is accepted as well.
type DateTime struct {
	t time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{t: t}
}

func (d *DateTime) Time() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.t
}

func (d DateTime) String() string {
	return d.t.Format(LocalDateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return &DateTimeError{Value: string(b)}
	}

	t, err := ParseDateTime(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}

	d.t = t
	return nil
}

// ParseDateTime normalises to UTC so zoned and zone-less input order the same
// way, and truncates to whole seconds, the precision of the wire format.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}

	return time.Time{}, &DateTimeError{Value: s}
}

type DateTimeError struct {
	Value string
}

func (e *DateTimeError) Error() string {
	return fmt.Sprintf("invalid date-time %q, expected %s", e.Value, LocalDateTimeLayout)
}
