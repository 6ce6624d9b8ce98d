package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_FiresInDueOrder(t *testing.T) {
	c := NewClock()
	var fired []string

	c.After(300*time.Millisecond, func() { fired = append(fired, "c") })
	c.After(100*time.Millisecond, func() { fired = append(fired, "a") })
	c.After(100*time.Millisecond, func() { fired = append(fired, "b") })

	c.Advance(50 * time.Millisecond)
	assert.Empty(t, fired)

	c.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 300*time.Millisecond, c.Now())
	assert.Zero(t, c.Len())
}

func TestClock_CancelAndPending(t *testing.T) {
	c := NewClock()
	called := false
	h := c.After(time.Second, func() { called = true })

	assert.True(t, c.Pending(h))
	assert.True(t, c.Cancel(h))
	assert.False(t, c.Pending(h))
	assert.False(t, c.Cancel(h))

	c.Advance(2 * time.Second)
	assert.False(t, called)
}

func TestClock_CallbackSchedulesWithinWindow(t *testing.T) {
	c := NewClock()
	var at []time.Duration
	c.After(100*time.Millisecond, func() {
		at = append(at, c.Now())
		c.After(100*time.Millisecond, func() { at = append(at, c.Now()) })
	})

	c.Advance(time.Second)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, at)
	assert.Equal(t, time.Second, c.Now())
}

func TestSlot_ArmCancelsPrevious(t *testing.T) {
	c := NewClock()
	s := NewSlot(c)
	var fired []int

	s.Arm(100*time.Millisecond, func() { fired = append(fired, 1) })
	s.Arm(200*time.Millisecond, func() { fired = append(fired, 2) })

	assert.Equal(t, 1, c.Len(), "slot must hold a single timer")
	assert.True(t, s.Held())

	c.Advance(time.Second)
	assert.Equal(t, []int{2}, fired)
	assert.False(t, s.Held())
}

func TestSlot_RearmFromCallback(t *testing.T) {
	c := NewClock()
	s := NewSlot(c)
	count := 0

	var tick func()
	tick = func() {
		count++
		if count < 3 {
			s.Arm(100*time.Millisecond, tick)
		}
	}
	s.Arm(100*time.Millisecond, tick)

	c.Advance(time.Second)
	assert.Equal(t, 3, count)
	assert.False(t, s.Held())
	assert.Zero(t, c.Len())
}

func TestBetween(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 1000; i++ {
		v := Between(r, 500, 1000)
		assert.GreaterOrEqual(t, v, 500)
		assert.LessOrEqual(t, v, 1000)
	}

	m := NewMockRand().PushInt(0, 500)
	assert.Equal(t, 500, Between(m, 500, 1000))
	assert.Equal(t, 1000, Between(m, 500, 1000))
	assert.Equal(t, []int{501, 501}, m.IntnCalls)
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{Min: Vec{X: 0, Y: 0}, Max: Vec{X: 100, Y: 50}}

	p, moved := b.Clamp(Vec{X: 10, Y: 10})
	assert.False(t, moved)
	assert.Equal(t, Vec{X: 10, Y: 10}, p)

	p, moved = b.Clamp(Vec{X: -5, Y: 80})
	assert.True(t, moved)
	assert.Equal(t, Vec{X: 0, Y: 50}, p)
}

func TestBodyIntegrate(t *testing.T) {
	b := Body{Pos: Vec{X: 1, Y: 1}}
	b.SetVelocity(10, -20)
	b.Integrate(0.5)
	assert.InDelta(t, 6, b.Pos.X, 1e-9)
	assert.InDelta(t, -9, b.Pos.Y, 1e-9)

	b.Stop()
	assert.True(t, b.Vel.IsZero())
}
