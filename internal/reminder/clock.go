package reminder

import "time"

// Clock abstracts time for the scanner so tests can pin the scan window.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewClock returns a Clock backed by the system time.
func NewClock() Clock {
	return realClock{}
}
