package circulation

import "time"

// Clock is the injectable source of "now" for all deadline and overdue logic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time normalized with ToTimestamp.
func (SystemClock) Now() time.Time {
	return ToTimestamp(time.Now())
}

// ToTimestamp normalizes a time to UTC with second precision, which is what every store dialect persists.
func ToTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
