package clock

import "time"

// Clock provides time to the application.
type Clock interface {
	Now() time.Time
}

// System returns the current wall-clock time.
type System struct{}

func New() Clock { return System{} }

func (System) Now() time.Time { return time.Now().UTC() }
