package sim

import "time"

// Slot owns at most one pending timer. Arming a slot always cancels the
// timer it already holds, so two callbacks from the same slot can never be
// pending at once.
type Slot struct {
	clock  *Clock
	handle Handle
}

func NewSlot(c *Clock) *Slot {
	return &Slot{clock: c}
}

// Arm cancels any held timer and schedules fn after d.
func (s *Slot) Arm(d time.Duration, fn func()) {
	s.Cancel()
	var h Handle
	h = s.clock.After(d, func() {
		if s.handle == h {
			s.handle = 0
		}
		fn()
	})
	s.handle = h
}

// Cancel drops the held timer, if any.
func (s *Slot) Cancel() {
	if s.handle != 0 {
		s.clock.Cancel(s.handle)
		s.handle = 0
	}
}

// Held reports whether the slot has a timer that has not fired yet.
func (s *Slot) Held() bool {
	return s.handle != 0 && s.clock.Pending(s.handle)
}
