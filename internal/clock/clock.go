package clock

import "time"

// Clock abstracts wall-clock reads. Every freshness-window comparison in
// the repositories goes through a Clock so tests can simulate time
// passage instead of sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the real wall clock.
func System() Clock { return systemClock{} }
