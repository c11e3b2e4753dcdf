package store

import (
	"fmt"
	"time"
)

// fakeClock is a settable clock for the stores.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// sequentialIDs returns an id generator yielding "1", "2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%d", n)
	}
}

func testOptions(clock *fakeClock) Options {
	return Options{Now: clock.Now, NewID: sequentialIDs()}
}

func quantity(v float64) *float64 { return &v }
