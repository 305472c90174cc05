package persist

import "time"

// Clock abstracts wall-clock time and timer scheduling so debounce
// behavior is testable without real delays.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending-save token. Stop prevents a timer that has not fired
// yet from firing; it reports whether the fire was prevented.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }
