package localtime

import "time"

// Clock supplies the current absolute instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// SystemClock reads the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant. Set replaces it.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.At
}

func (c *FixedClock) Set(at time.Time) {
	c.At = at
}
