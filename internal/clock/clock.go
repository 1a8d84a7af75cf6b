package clock

import "time"

// TimeProvider supplies wall-clock time; periods are resolved against it
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system clock
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// FixedTimeProvider always returns the same instant. Set moves it.
type FixedTimeProvider struct {
	At time.Time
}

func (f *FixedTimeProvider) Now() time.Time {
	return f.At
}

// Set moves the fixed clock
func (f *FixedTimeProvider) Set(t time.Time) {
	f.At = t
}
