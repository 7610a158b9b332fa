package wfigs

import "github.com/jonboulle/clockwork"

// clock is the time source for the rolling max-age cutoff so tests can freeze
// time. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the package time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
