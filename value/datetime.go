package value

import (
	"fmt"
	"time"
)

// isoLayout is used for both parsing and rendering. Unlike time.RFC3339 it
// never substitutes "Z" for a zero offset -- REXS always wants an explicit
// "+00:00".
const isoLayout = "2006-01-02T15:04:05-07:00"

// Timestamp represents the REXS date_time value: a UTC instant plus the
// offset it was originally expressed in. Rendering reconstructs the
// original offset rather than normalizing to "Z".
type Timestamp struct {
	instant time.Time // always UTC
	offset  time.Duration
}

// NewTimestamp constructs a Timestamp from an instant and an originating
// offset (east of UTC).
func NewTimestamp(instant time.Time, offset time.Duration) Timestamp {
	return Timestamp{instant: instant.UTC(), offset: offset}
}

// ParseTimestamp parses an ISO-8601 string with an explicit offset, e.g.
// "2024-03-01T10:15:00+02:00" or "2024-03-01T10:15:00+00:00".
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		// time.Parse also accepts "Z" for the offset; allow it for
		// leniency on input, even though we never emit it.
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return Timestamp{}, fmt.Errorf("%w: date_time %q: %w", ErrParse, s, err)
		}
	}

	_, offsetSec := t.Zone()

	return Timestamp{instant: t.UTC(), offset: time.Duration(offsetSec) * time.Second}, nil
}

// UTC returns the instant in UTC.
func (d Timestamp) UTC() time.Time {
	return d.instant
}

// Offset returns the originating offset east of UTC.
func (d Timestamp) Offset() time.Duration {
	return d.offset
}

// String renders the Timestamp in ISO-8601 form using its originating
// offset; a zero offset renders as "+00:00".
func (d Timestamp) String() string {
	loc := time.FixedZone("", int(d.offset.Seconds()))

	return d.instant.In(loc).Format(isoLayout)
}

// Equal reports whether two Timestamps represent the same instant,
// regardless of originating offset.
func (d Timestamp) Equal(o Timestamp) bool {
	return d.instant.Equal(o.instant)
}
