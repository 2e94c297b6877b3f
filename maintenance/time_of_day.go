package maintenance

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeOfDay is returned for job times that are not in 24h "HH:MM" form.
var ErrInvalidTimeOfDay = errors.New("time of day must be in HH:MM format")

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" with a 24h clock, e.g. "00:00" or "23:30".
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return TimeOfDay{}, errors.Join(ErrInvalidTimeOfDay, fmt.Errorf("%q: %w", value, err))
	}

	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// String renders the time of day as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// NextRun returns the first occurrence of t in loc that is strictly after now.
func (t TimeOfDay) NextRun(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), t.Hour, t.Minute, 0, 0, loc)

	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, t.Hour, t.Minute, 0, 0, loc)
	}

	return next
}
