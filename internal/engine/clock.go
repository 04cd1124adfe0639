package engine

import "time"

// Clock abstracts time.Now() so "today" can be pinned in tests.
// Every days-until computation and export goes through it.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the local wall clock.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the pinned time.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
