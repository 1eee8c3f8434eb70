package clock

import "time"

// Clock abstracts the time source so retention sweeps can be driven by a
// fixed or advancing clock in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System returns the wall clock.
func System() Clock {
	return systemClock{}
}
