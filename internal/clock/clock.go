package clock

import "time"

// Clock supplies the current time. Card expiry checks depend on the calendar
// date, so the time source is injected rather than read from the wall clock.
type Clock interface {
	Now() time.Time
}

// System reads the system clock in UTC.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant. Useful for tests.
type Fixed struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return f.Instant
}
