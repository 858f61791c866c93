package clock

import "time"

// Clock abstracts the wall clock so issuance and expiry can be tested at fixed instants.
type Clock interface {
	Now() time.Time
}

// System reads the real time.
type System struct{}

// New returns the system clock.
func New() System {
	return System{}
}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// FromMillis builds a Fixed clock at the given Unix millisecond timestamp.
func FromMillis(ms int64) Fixed {
	return Fixed(time.UnixMilli(ms))
}

// NowMillis returns the clock's current time as Unix milliseconds.
func NowMillis(c Clock) int64 {
	return c.Now().UnixMilli()
}
