// Package recurrence evaluates the end of a recurring event series from
// its rule string ("FREQ=DAILY;INTERVAL=2;UNTIL=20211023T000000Z").
package recurrence

import (
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"
)

// DateTimeLayout is the layout every stored date-time attribute uses.
// Keeping a single sortable text layout means the store's lexicographic
// comparisons are chronological comparisons.
const DateTimeLayout = "2006-01-02 15:04"

// SeriesEnd parses an event's recurrence rule and reports the end of the
// series. ok is false when the rule has no UNTIL part (unbounded series).
// Only the date portion of UNTIL is significant; the returned time is
// midnight UTC of that day.
func SeriesEnd(rule string) (time.Time, bool) {
	if rule == "" {
		return time.Time{}, false
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		// An unparseable rule is treated as unbounded rather than
		// failing the whole operation.
		slog.Warn("recurrence: unparseable rule", "rule", rule, "error", err)
		return time.Time{}, false
	}

	if opt.Until.IsZero() {
		return time.Time{}, false
	}

	y, m, d := opt.Until.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

// SeriesEndString returns the series end formatted in DateTimeLayout, or
// "" for an unbounded series. This is the value persisted on the
// series_end_date attribute whenever a mutation sets the recurring rule.
func SeriesEndString(rule string) string {
	end, ok := SeriesEnd(rule)
	if !ok {
		return ""
	}
	return end.Format(DateTimeLayout)
}
