// Package sim holds the deterministic building blocks the scene runs on:
// a tick-driven clock with one-shot timers, exclusive timer slots, simple
// vector math and motion bodies, and an injectable random source.
package sim

import "time"

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint64

type timer struct {
	id  Handle
	due time.Duration
	fn  func()
}

// Clock is a simulation clock advanced explicitly by the tick loop. Timers
// fire in due-time order; timers due at the same instant fire in the order
// they were scheduled. Clock is not safe for concurrent use.
type Clock struct {
	now    time.Duration
	seq    Handle
	timers map[Handle]*timer
}

func NewClock() *Clock {
	return &Clock{timers: make(map[Handle]*timer)}
}

// Now returns the elapsed simulation time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// After schedules fn to run once, d after the current time.
func (c *Clock) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	c.seq++
	c.timers[c.seq] = &timer{id: c.seq, due: c.now + d, fn: fn}
	return c.seq
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (c *Clock) Cancel(h Handle) bool {
	if _, ok := c.timers[h]; !ok {
		return false
	}
	delete(c.timers, h)
	return true
}

// Pending reports whether h is scheduled and has not fired.
func (c *Clock) Pending(h Handle) bool {
	_, ok := c.timers[h]
	return ok
}

// Len returns the number of pending timers.
func (c *Clock) Len() int {
	return len(c.timers)
}

// Advance moves the clock forward by d, firing every timer that falls due.
// Callbacks may schedule or cancel timers; new timers due within the window
// fire during the same call.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		delete(c.timers, next.id)
		c.now = next.due
		next.fn()
	}
	c.now = target
}

func (c *Clock) nextDue(limit time.Duration) *timer {
	var next *timer
	for _, t := range c.timers {
		if t.due > limit {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.id < next.id) {
			next = t
		}
	}
	return next
}
