package character

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/footagents/pkg/direction"
	"github.com/jwebster45206/footagents/pkg/sim"
)

const tick = 100 * time.Millisecond

var farAway = sim.Vec{X: 10000, Y: 10000}

func testLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestCharacter(t *testing.T, cfg Config, clock *sim.Clock, r sim.Rand) *Character {
	t.Helper()
	c, err := New(cfg, Deps{Clock: clock, Rand: r, Logger: testLogger(nil)})
	require.NoError(t, err)
	return c
}

func kakaConfig() Config {
	return Config{
		ID:         "kaka",
		Name:       "KAKA",
		SpawnPoint: sim.Vec{X: 600, Y: 150},
		RoamRadius: 150,
		MoveSpeed:  40,
	}
}

// step runs one scene tick for a lone character: behavior, physics, timers.
func step(c *Character, clock *sim.Clock, player sim.Vec, pinned bool) {
	c.Update(player, false)
	if !pinned {
		c.Body().Integrate(tick.Seconds())
	}
	clock.Advance(tick)
}

func TestNew_InvalidID(t *testing.T) {
	for _, id := range []string{"", "   "} {
		_, err := New(Config{ID: id, Name: "Nobody"}, Deps{Logger: testLogger(nil)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidID)
	}
}

func TestNew_Defaults(t *testing.T) {
	clock := sim.NewClock()
	c := newTestCharacter(t, Config{ID: "neymar", Name: "Neymar"}, clock, sim.NewMockRand().PushFloat(0.9))

	cfg := c.Config()
	assert.Equal(t, DefaultMoveSpeed, cfg.MoveSpeed)
	assert.Equal(t, DefaultRoamRadius, cfg.RoamRadius)
	assert.Equal(t, DefaultPauseChance, cfg.PauseChance)
	assert.Equal(t, DefaultDirectionChangeChance, cfg.DirectionChangeChance)
	assert.Equal(t, "neymar", cfg.AtlasKey)
	assert.True(t, cfg.Roams())
	assert.Equal(t, "Neymar", c.Label().Text)
	assert.Equal(t, sim.Vec{X: 0, Y: -LabelOffset}, c.Label().Pos)
}

func TestDecide_Roam(t *testing.T) {
	clock := sim.NewClock()
	r := sim.NewMockRand().PushFloat(0.1).PushInt(2, 250)
	c := newTestCharacter(t, kakaConfig(), clock, r)

	assert.Equal(t, StateRoaming, c.State())
	assert.Equal(t, direction.Up, c.Direction())
	assert.Equal(t, Pose{Frame: "kaka-back-walk-0000", Anim: "kaka-back-walk"}, c.Pose())
	assert.Equal(t, []int{4, 501}, r.IntnCalls)
	assert.Equal(t, 1, clock.Len())

	// roam timer is 750ms
	clock.Advance(749 * time.Millisecond)
	assert.Equal(t, 1, r.FloatCalls)
	clock.Advance(time.Millisecond)
	assert.Equal(t, 2, r.FloatCalls)
}

func TestDecide_Pause(t *testing.T) {
	clock := sim.NewClock()
	r := sim.NewMockRand().PushFloat(0.4).PushInt(1, 0)
	c := newTestCharacter(t, kakaConfig(), clock, r)

	assert.Equal(t, StatePaused, c.State())
	assert.Equal(t, direction.None, c.Direction())
	assert.Equal(t, Pose{Frame: "kaka-back"}, c.Pose())
	assert.Equal(t, []int{4, 4001}, r.IntnCalls)

	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, 1, r.FloatCalls)
	clock.Advance(time.Millisecond)
	assert.Equal(t, 2, r.FloatCalls)
}

func TestDecide_IgnoresConfiguredChances(t *testing.T) {
	cfg := kakaConfig()
	cfg.PauseChance = 0.99
	cfg.DirectionChangeChance = 0.99

	c := newTestCharacter(t, cfg, sim.NewClock(), sim.NewMockRand().PushFloat(0.39))
	assert.Equal(t, StateRoaming, c.State())
}

func TestDecide_Deterministic(t *testing.T) {
	run := func() []string {
		clock := sim.NewClock()
		c := newTestCharacter(t, kakaConfig(), clock, sim.NewRand(7))
		var trace []string
		for i := 0; i < 400; i++ {
			step(c, clock, farAway, false)
			trace = append(trace, c.State().String()+":"+c.Direction().String())
		}
		return trace
	}

	assert.Equal(t, run(), run())
}

func TestCharacter_NotRoaming(t *testing.T) {
	clock := sim.NewClock()
	cfg := kakaConfig()
	cfg.CanRoam = Bool(false)
	c := newTestCharacter(t, cfg, clock, sim.NewMockRand())

	for i := 0; i < 50; i++ {
		step(c, clock, farAway, false)
	}
	assert.Equal(t, StateIdle, c.State())
	assert.Zero(t, clock.Len())
	assert.Equal(t, cfg.SpawnPoint, c.Position())
	assert.Equal(t, Pose{Frame: "kaka-front"}, c.Pose())
}

func TestCharacter_Invariants(t *testing.T) {
	clock := sim.NewClock()
	cfg := kakaConfig()
	c := newTestCharacter(t, cfg, clock, sim.NewRand(1))
	maxReach := cfg.RoamRadius + cfg.MoveSpeed*MaxRoamDuration.Seconds()

	for i := 0; i < 20000; i++ {
		step(c, clock, farAway, false)

		assert.Equal(t, c.Direction() == direction.None, !c.Moving(), "tick %d state %s", i, c.State())
		assert.LessOrEqual(t, clock.Len(), 2, "tick %d: more than one movement and one stuck timer", i)
		assert.True(t, c.HasMovementTimer(), "tick %d: roaming character without a movement timer", i)
		assert.LessOrEqual(t, sim.Distance(c.Position(), cfg.SpawnPoint), maxReach, "tick %d", i)
	}
}

func TestCharacter_ReturnsToSpawn(t *testing.T) {
	clock := sim.NewClock()
	r := sim.NewMockRand().PushFloat(0.1, 0.9).PushInt(2, 0, 0, 0)
	c := newTestCharacter(t, kakaConfig(), clock, r)
	c.Body().Pos = sim.Vec{X: 600 + 250, Y: 150 + 10}

	c.Update(farAway, false)
	assert.Equal(t, StateReturning, c.State())
	assert.Equal(t, direction.Left, c.Direction())
	assert.Equal(t, sim.Vec{X: -40, Y: 0}, c.Velocity())
	assert.Equal(t, "kaka-left-walk", c.Pose().Anim)
	assert.Equal(t, 1, clock.Len(), "the stuck check of the abandoned segment is dropped")

	clock.Advance(ReturnDuration - time.Millisecond)
	assert.Equal(t, StateReturning, c.State())
	clock.Advance(time.Millisecond)
	assert.Equal(t, StatePaused, c.State())
}

func TestCharacter_ReturnTieGoesVertical(t *testing.T) {
	clock := sim.NewClock()
	c := newTestCharacter(t, kakaConfig(), clock, sim.NewMockRand().PushFloat(0.1).PushInt(0, 0))
	c.Body().Pos = sim.Vec{X: 600 - 200, Y: 150 - 200}

	c.Update(farAway, false)
	assert.Equal(t, StateReturning, c.State())
	assert.Equal(t, direction.Down, c.Direction())
}

func TestCharacter_StuckRecovery(t *testing.T) {
	clock := sim.NewClock()
	r := sim.NewMockRand().PushFloat(0.1, 0.9).PushInt(1, 500, 0, 0)
	c := newTestCharacter(t, kakaConfig(), clock, r)
	require.Equal(t, direction.Right, c.Direction())

	for i := 0; i < 5; i++ {
		step(c, clock, farAway, true)
	}
	assert.Equal(t, StatePaused, c.State(), "pinned character must re-decide after the stuck window")
	assert.Equal(t, 2, r.FloatCalls)
}

func TestCharacter_NotStuckWhenMoving(t *testing.T) {
	clock := sim.NewClock()
	r := sim.NewMockRand().PushFloat(0.1, 0.9).PushInt(1, 500, 0, 0)
	c := newTestCharacter(t, kakaConfig(), clock, r)

	for i := 0; i < 9; i++ {
		step(c, clock, farAway, false)
	}
	assert.Equal(t, StateRoaming, c.State())
	assert.Equal(t, 1, r.FloatCalls)
	assert.InDelta(t, 600+9*4, c.Position().X, 1e-9)
}

func TestCharacter_FacesPlayer(t *testing.T) {
	tests := []struct {
		name   string
		offset sim.Vec
		frame  string
	}{
		{"above", sim.Vec{X: 0, Y: -10}, "kaka-back"},
		{"right", sim.Vec{X: 10, Y: 0}, "kaka-right"},
		{"left", sim.Vec{X: -10, Y: 0}, "kaka-left"},
		{"tie resolves vertical", sim.Vec{X: -10, Y: 10}, "kaka-front"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := sim.NewClock()
			c := newTestCharacter(t, kakaConfig(), clock, sim.NewMockRand().PushFloat(0.1).PushInt(0, 0))

			c.Update(c.Position().Add(tt.offset), false)
			assert.Equal(t, StateFacing, c.State())
			assert.Equal(t, Pose{Frame: tt.frame}, c.Pose())
			assert.True(t, c.Velocity().IsZero())
			assert.False(t, c.HasMovementTimer())
			assert.Equal(t, direction.Left, c.Direction())
		})
	}
}

func TestCharacter_FacingKeepsDecidedDirection(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want direction.Direction
	}{
		{"interrupting a roam", 0.1, direction.Up},
		{"interrupting a pause", 0.9, direction.None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := sim.NewClock()
			c := newTestCharacter(t, kakaConfig(), clock, sim.NewMockRand().PushFloat(tt.roll).PushInt(2, 0))
			require.Equal(t, tt.want, c.Direction())

			for i := 0; i < 10; i++ {
				step(c, clock, c.Position().Add(sim.Vec{X: 20}), false)
				assert.Equal(t, StateFacing, c.State())
				assert.Equal(t, tt.want, c.Direction())
				assert.True(t, c.Velocity().IsZero())
			}
			assert.Zero(t, clock.Len(), "facing holds no timers")
		})
	}
}

func TestCharacter_ResumesAfterPlayerLeaves(t *testing.T) {
	clock := sim.NewClock()
	r := sim.NewMockRand().PushFloat(0.1, 0.9).PushInt(0, 0, 0, 0)
	c := newTestCharacter(t, kakaConfig(), clock, r)

	near := c.Position().Add(sim.Vec{X: 20})
	for i := 0; i < 30; i++ {
		step(c, clock, near, false)
	}
	assert.Equal(t, StateFacing, c.State())
	assert.Equal(t, 1, r.FloatCalls, "no decisions while facing")

	c.Update(farAway, false)
	assert.Equal(t, StatePaused, c.State())
	assert.True(t, c.HasMovementTimer())
}

func TestCharacter_SpeakingKeepsFacing(t *testing.T) {
	clock := sim.NewClock()
	c := newTestCharacter(t, kakaConfig(), clock, sim.NewMockRand().PushFloat(0.1).PushInt(0, 0))

	c.Update(farAway, true)
	assert.Equal(t, StateFacing, c.State())
	assert.False(t, c.HasMovementTimer())
}

func TestCharacter_IsPlayerNearby(t *testing.T) {
	c := newTestCharacter(t, kakaConfig(), sim.NewClock(), sim.NewMockRand().PushFloat(0.9))
	p := c.Position()

	assert.True(t, c.IsPlayerNearby(p.Add(sim.Vec{X: 54.9}), InteractionRadius))
	assert.False(t, c.IsPlayerNearby(p.Add(sim.Vec{X: 55}), InteractionRadius))
	assert.True(t, c.IsPlayerNearby(p.Add(sim.Vec{X: 80}), 100))
}

func TestCharacter_Destroy(t *testing.T) {
	clock := sim.NewClock()
	c := newTestCharacter(t, kakaConfig(), clock, sim.NewRand(3))
	for i := 0; i < 3; i++ {
		step(c, clock, farAway, false)
	}

	c.Destroy()
	assert.True(t, c.Destroyed())
	assert.Zero(t, clock.Len())
	assert.Empty(t, c.Label().Text)

	pos := c.Position()
	c.Update(farAway, false)
	clock.Advance(10 * time.Second)
	assert.Equal(t, pos, c.Position())
	assert.Zero(t, clock.Len())
}

func TestCharacter_MissingWalkFrames(t *testing.T) {
	var buf bytes.Buffer
	atlas := NewFrameSet(WalkFrames("kaka", direction.FacingFront)...)
	r := sim.NewMockRand().PushFloat(0.1).PushInt(0, 0)

	c, err := New(kakaConfig(), Deps{Clock: sim.NewClock(), Rand: r, Atlas: atlas, Logger: testLogger(&buf)})
	require.NoError(t, err)

	assert.Equal(t, direction.Left, c.Direction())
	assert.Equal(t, Pose{Frame: "kaka-left"}, c.Pose(), "missing frames fall back to the static pose")
	assert.Contains(t, buf.String(), "Missing walk animation frames")
	assert.Contains(t, buf.String(), "kaka-back-walk-0000")
	assert.NotContains(t, buf.String(), "kaka-front-walk-0000")
}
