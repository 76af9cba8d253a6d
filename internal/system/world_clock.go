package system

import (
	"fmt"
	"math"
	"time"

	"github.com/Garsondee/token-canvas/internal/config"
)

const secondsPerDay = 24 * 60 * 60

// Dawn and dusk ramps, in seconds after midnight. Darkness falls from 1 to 0
// across dawn and rises from 0 to 1 across dusk.
const (
	dawnStart = 5 * 3600
	dawnEnd   = 7 * 3600
	duskStart = 18 * 3600
	duskEnd   = 20 * 3600
)

// WorldClock tracks in-world time. Day 1 starts at midnight.
type WorldClock struct {
	elapsed float64 // world seconds since midnight of day 1
	rate    float64
}

// NewWorldClock starts a clock at the configured time of day.
func NewWorldClock(cc config.ClockConfig) (*WorldClock, error) {
	start, err := cc.StartSeconds()
	if err != nil {
		return nil, err
	}
	rate := cc.Rate
	if rate <= 0 {
		rate = 1
	}
	return &WorldClock{elapsed: start, rate: rate}, nil
}

// Tick advances the clock by real time scaled by the clock rate.
func (c *WorldClock) Tick(real time.Duration) {
	c.elapsed += real.Seconds() * c.rate
}

// Advance moves the clock forward by d of world time. Negative durations
// are ignored.
func (c *WorldClock) Advance(d time.Duration) {
	if d > 0 {
		c.elapsed += d.Seconds()
	}
}

// Now returns the day number (from 1) and the seconds since midnight.
func (c *WorldClock) Now() (day int, secondOfDay float64) {
	day = int(c.elapsed/secondsPerDay) + 1
	return day, math.Mod(c.elapsed, secondsPerDay)
}

func (c *WorldClock) String() string {
	day, sec := c.Now()
	s := int(sec)
	return fmt.Sprintf("day %d %02d:%02d", day, s/3600, s%3600/60)
}

// Darkness is the scene darkness for the time of day: 1 at night, 0 by day.
func (c *WorldClock) Darkness() float64 {
	_, t := c.Now()
	switch {
	case t < dawnStart || t >= duskEnd:
		return 1
	case t < dawnEnd:
		return 1 - (t-dawnStart)/(dawnEnd-dawnStart)
	case t < duskStart:
		return 0
	}
	return (t - duskStart) / (duskEnd - duskStart)
}
