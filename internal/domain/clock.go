package domain

import "time"

// Clock provides wall-clock time for display dates.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// MonoClock provides readings for measuring session durations.
// Readings are seconds and never decrease within a process.
type MonoClock interface {
	Reading() float64
}

// SystemMonoClock anchors to the wall clock once and then advances with
// the runtime's monotonic clock, so wall clock steps never affect deltas
// taken within the same process.
type SystemMonoClock struct {
	anchor     time.Time
	anchorUnix float64
}

// NewSystemMonoClock creates a SystemMonoClock anchored at the current time.
func NewSystemMonoClock() *SystemMonoClock {
	now := time.Now()
	return &SystemMonoClock{
		anchor:     now,
		anchorUnix: float64(now.UnixNano()) / float64(time.Second),
	}
}

// Reading returns seconds since the Unix epoch as measured from the anchor.
func (c *SystemMonoClock) Reading() float64 {
	return c.anchorUnix + time.Since(c.anchor).Seconds()
}
