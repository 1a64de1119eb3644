package sim

import "time"

// DtCap bounds how much simulation time a single frame may advance, in
// seconds. A suspended terminal or a debugger pause would otherwise
// deliver one huge delta and let obstacles tunnel through the ship.
const DtCap = 0.05

// Clock converts wall-clock frame timestamps into bounded simulation
// steps. It holds no simulation semantics, only the previous timestamp.
type Clock struct {
	last    time.Time
	started bool
}

// Reset forgets the previous timestamp; the next Tick returns 0.
func (c *Clock) Reset() {
	c.started = false
}

// Tick returns the capped delta in seconds between now and the previous
// call. The first call after a Reset, and a non-monotonic timestamp,
// both yield 0 rather than an error.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	if dt > DtCap {
		return DtCap
	}
	return dt
}
