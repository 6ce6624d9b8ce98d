package character

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jwebster45206/footagents/pkg/direction"
	"github.com/jwebster45206/footagents/pkg/sim"
)

const (
	RoamProbability = 0.4

	MinRoamDuration  = 500 * time.Millisecond
	MaxRoamDuration  = 1000 * time.Millisecond
	MinPauseDuration = 2000 * time.Millisecond
	MaxPauseDuration = 6000 * time.Millisecond
	ReturnDuration   = 1500 * time.Millisecond

	StuckCheckDelay = 500 * time.Millisecond
	StuckThreshold  = 5.0

	// InteractionRadius is the default distance under which the player is nearby.
	InteractionRadius = 55.0

	// LabelOffset is how far above the body the name label sits.
	LabelOffset = 40.0
)

// State is the behavior a character is currently in.
type State int

const (
	StateIdle State = iota
	StateRoaming
	StatePaused
	StateReturning
	StateFacing
)

func (s State) String() string {
	switch s {
	case StateRoaming:
		return "roaming"
	case StatePaused:
		return "paused"
	case StateReturning:
		return "returning"
	case StateFacing:
		return "facing"
	default:
		return "idle"
	}
}

// Pose is what the character is displaying. Anim is set while a walk
// animation plays; otherwise Frame is a static pose.
type Pose struct {
	Frame string
	Anim  string
}

// Label is the name tag drawn above a character.
type Label struct {
	Text    string
	Pos     sim.Vec
	Visible bool
}

// Deps are the scene services a character is wired to.
type Deps struct {
	Clock  *sim.Clock
	Rand   sim.Rand
	Assets *Assets
	Atlas  Atlas // nil means every frame is available
	Logger *slog.Logger
}

// Character is a single NPC: its motion body, name label and the
// roam/pause/return/facing state machine that drives them.
type Character struct {
	cfg    Config
	prefix string

	rng    sim.Rand
	logger *slog.Logger

	body  sim.Body
	label Label
	pose  Pose
	walk  map[direction.Facing]bool

	state State
	dir   direction.Direction

	movement *sim.Slot
	stuck    *sim.Slot

	// segment counts direction segments; the stuck check runs once per segment.
	segment      uint64
	stuckSegment uint64

	destroyed bool
}

// New creates a character at its spawn point and, if it roams, makes its
// first roam decision.
func New(cfg Config, deps Deps) (*Character, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	if deps.Clock == nil {
		deps.Clock = sim.NewClock()
	}
	if deps.Rand == nil {
		deps.Rand = sim.NewRand(time.Now().UnixNano())
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Assets == nil {
		deps.Assets = NewAssets(nil, deps.Logger)
	}

	prefix, err := deps.Assets.FramePrefix(cfg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	c := &Character{
		cfg:      cfg,
		prefix:   prefix,
		rng:      deps.Rand,
		logger:   deps.Logger.With("character_id", cfg.ID),
		body:     sim.Body{Pos: cfg.SpawnPoint},
		pose:     Pose{Frame: StaticFrame(prefix, cfg.DefaultDirection)},
		walk:     make(map[direction.Facing]bool),
		movement: sim.NewSlot(deps.Clock),
		stuck:    sim.NewSlot(deps.Clock),
		label:    Label{Text: cfg.Name, Visible: true},
	}
	c.createAnimations(deps.Atlas)
	c.syncLabel()

	if cfg.Roams() {
		c.decide()
	}
	return c, nil
}

func (c *Character) createAnimations(atlas Atlas) {
	for _, f := range []direction.Facing{direction.FacingLeft, direction.FacingRight, direction.FacingFront, direction.FacingBack} {
		first := WalkFrames(c.prefix, f)[0]
		if atlas != nil && !atlas.Has(first) {
			c.logger.Warn("Missing walk animation frames, using static pose",
				"prefix", c.prefix,
				"facing", f.String(),
				"frame", first)
			continue
		}
		c.walk[f] = true
	}
}

func (c *Character) ID() string             { return c.cfg.ID }
func (c *Character) Name() string           { return c.cfg.Name }
func (c *Character) DefaultMessage() string { return c.cfg.DefaultMessage }
func (c *Character) Config() Config         { return c.cfg }
func (c *Character) FramePrefix() string    { return c.prefix }
func (c *Character) Position() sim.Vec      { return c.body.Pos }
func (c *Character) Velocity() sim.Vec      { return c.body.Vel }
func (c *Character) State() State           { return c.state }
func (c *Character) Pose() Pose             { return c.pose }
func (c *Character) Label() Label           { return c.label }
func (c *Character) Destroyed() bool        { return c.destroyed }

// Direction is the last decided motion direction. It is None exactly when
// the latest decision was a pause, and for characters that never roam.
func (c *Character) Direction() direction.Direction { return c.dir }

// Moving reports whether the character is translating on its own.
func (c *Character) Moving() bool {
	return c.state == StateRoaming || c.state == StateReturning
}

// HasMovementTimer reports whether a roam, pause or return timer is pending.
func (c *Character) HasMovementTimer() bool { return c.movement.Held() }

// Body exposes the motion body to the physics step.
func (c *Character) Body() *sim.Body { return &c.body }

func (c *Character) SetLabelVisible(v bool) { c.label.Visible = v }

func (c *Character) DistanceToPlayer(player sim.Vec) float64 {
	return sim.Distance(player, c.body.Pos)
}

// IsPlayerNearby reports whether player is strictly closer than radius.
func (c *Character) IsPlayerNearby(player sim.Vec, radius float64) bool {
	return c.DistanceToPlayer(player) < radius
}

// Update runs one tick of behavior. speaking is true while an open dialogue
// has this character as its speaker.
func (c *Character) Update(player sim.Vec, speaking bool) {
	if c.destroyed {
		return
	}

	switch {
	case speaking || c.IsPlayerNearby(player, InteractionRadius):
		c.FacePlayer(player)
	case c.cfg.Roams():
		if !c.movement.Held() {
			c.decide()
		}
		c.move()
	default:
		c.state = StateIdle
		c.body.Stop()
	}
	c.syncLabel()
}

// FacePlayer stops the character, drops its movement timer and turns it
// toward player. The last decided direction is kept, so a character that
// was pausing still reports None. It resumes roaming on the first Update
// after the player leaves.
func (c *Character) FacePlayer(player sim.Vec) {
	if c.destroyed {
		return
	}
	c.movement.Cancel()
	c.stuck.Cancel()
	c.body.Stop()
	c.state = StateFacing

	d := player.Sub(c.body.Pos)
	c.pose = Pose{Frame: StaticFrame(c.prefix, direction.Toward(d.X, d.Y))}
}

// decide re-chooses between roaming and pausing and arms the timer that
// calls it again.
func (c *Character) decide() {
	c.movement.Cancel()
	c.stuck.Cancel()
	c.segment++

	if c.rng.Float64() < RoamProbability {
		c.state = StateRoaming
		c.dir = direction.Cardinals[c.rng.Intn(len(direction.Cardinals))]
		c.showWalk()

		d := randomDuration(c.rng, MinRoamDuration, MaxRoamDuration)
		c.movement.Arm(d, func() {
			c.body.Stop()
			c.decide()
		})
		return
	}

	c.state = StatePaused
	c.dir = direction.None
	c.body.Stop()
	f := direction.StaticFacings[c.rng.Intn(len(direction.StaticFacings))]
	c.pose = Pose{Frame: StaticFrame(c.prefix, f)}

	d := randomDuration(c.rng, MinPauseDuration, MaxPauseDuration)
	c.movement.Arm(d, c.decide)
}

func (c *Character) move() {
	if c.dir == direction.None {
		return
	}

	start := c.body.Pos
	ux, uy := c.dir.Unit()
	c.body.SetVelocity(ux*c.cfg.MoveSpeed, uy*c.cfg.MoveSpeed)

	if !c.stuck.Held() && c.stuckSegment != c.segment {
		c.stuckSegment = c.segment
		c.stuck.Arm(StuckCheckDelay, func() { c.checkStuck(start) })
	}

	if sim.Distance(c.body.Pos, c.cfg.SpawnPoint) > c.cfg.RoamRadius {
		c.returnToSpawn()
	}
}

func (c *Character) checkStuck(start sim.Vec) {
	if !c.Moving() || c.dir == direction.None {
		return
	}
	moved := sim.Distance(start, c.body.Pos)
	if moved < StuckThreshold {
		c.logger.Debug("Character stuck, choosing new direction",
			"direction", c.dir.String(),
			"moved", moved)
		c.decide()
	}
}

// returnToSpawn heads back along the axis with the larger offset to the
// spawn point. Ties go vertical.
func (c *Character) returnToSpawn() {
	d := c.cfg.SpawnPoint.Sub(c.body.Pos)
	var dir direction.Direction
	if math.Abs(d.X) > math.Abs(d.Y) {
		dir = direction.Left
		if d.X > 0 {
			dir = direction.Right
		}
	} else {
		dir = direction.Up
		if d.Y > 0 {
			dir = direction.Down
		}
	}

	if c.state != StateReturning || c.dir != dir {
		c.segment++
		c.stuck.Cancel()
	}
	c.state = StateReturning
	c.dir = dir
	c.showWalk()

	ux, uy := dir.Unit()
	c.body.SetVelocity(ux*c.cfg.MoveSpeed, uy*c.cfg.MoveSpeed)

	c.movement.Arm(ReturnDuration, c.decide)
}

func (c *Character) showWalk() {
	f := c.dir.Facing()
	if c.walk[f] {
		c.pose = Pose{Frame: WalkFrames(c.prefix, f)[0], Anim: WalkAnimKey(c.cfg.ID, f)}
		return
	}
	c.pose = Pose{Frame: StaticFrame(c.prefix, f)}
}

func (c *Character) syncLabel() {
	c.label.Pos = sim.Vec{X: c.body.Pos.X, Y: c.body.Pos.Y - LabelOffset}
}

// Destroy cancels both timers and releases the body and label. The
// character ignores updates afterwards.
func (c *Character) Destroy() {
	if c.destroyed {
		return
	}
	c.movement.Cancel()
	c.stuck.Cancel()
	c.body.Stop()
	c.label = Label{}
	c.destroyed = true
	c.logger.Debug("Character destroyed")
}

func randomDuration(r sim.Rand, lo, hi time.Duration) time.Duration {
	return time.Duration(sim.Between(r, int(lo.Milliseconds()), int(hi.Milliseconds()))) * time.Millisecond
}
