// Package keys provides identifier and date helpers shared by the content
// store and the messaging gateway.
package keys

import (
	"time"

	"github.com/google/uuid"
)

// dateKeyLayout is the calendar-day key used for entry dates and the
// messaging quota window.
const dateKeyLayout = "2006-01-02"

// displayLayout is the human-readable timestamp used in history records and
// relay template parameters.
const displayLayout = "January 2, 2006 3:04 PM"

// NewID returns a new UUID v7 string. UUID v7 sorts by creation time, which
// keeps insertion order recoverable from IDs alone.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4
		// rather than surface an error nothing can act on.
		return uuid.NewString()
	}
	return id.String()
}

// DateKey formats t as a YYYY-MM-DD calendar key in local time.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// Today returns the current day's DateKey.
func Today() string {
	return DateKey(time.Now())
}

// DisplayDate formats t for human-facing output.
func DisplayDate(t time.Time) string {
	return t.Format(displayLayout)
}
