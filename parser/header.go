package parser

import (
	"time"

	"go.rexsapi.dev/rexsapi/value"
)

// parseHeaderDate parses the document header's date attribute, which
// follows the same ISO-8601-with-offset convention as a date_time value.
func parseHeaderDate(s string) (time.Time, error) {
	dt, err := value.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.UTC(), nil
}
