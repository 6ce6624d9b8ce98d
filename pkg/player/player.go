// Package player turns directional input into avatar motion and pose.
package player

import (
	"github.com/jwebster45206/footagents/pkg/character"
	"github.com/jwebster45206/footagents/pkg/direction"
	"github.com/jwebster45206/footagents/pkg/sim"
)

// Speed is the avatar's movement speed in units per second.
const Speed = 175.0

// Input is the state of the four directional keys for one tick.
type Input struct {
	Left, Right, Up, Down bool
}

// Controller owns the avatar body and its displayed pose.
type Controller struct {
	prefix string
	body   sim.Body
	pose   character.Pose
}

// New places the avatar at spawn showing its front pose. prefix is the
// avatar's atlas frame prefix, e.g. "sophia".
func New(prefix string, spawn sim.Vec) *Controller {
	return &Controller{
		prefix: prefix,
		body:   sim.Body{Pos: spawn},
		pose:   character.Pose{Frame: character.StaticFrame(prefix, direction.FacingFront)},
	}
}

func (c *Controller) Position() sim.Vec     { return c.body.Pos }
func (c *Controller) Velocity() sim.Vec     { return c.body.Vel }
func (c *Controller) Pose() character.Pose { return c.pose }
func (c *Controller) Body() *sim.Body       { return &c.body }

// IsMoving reports whether the avatar has a nonzero velocity.
func (c *Controller) IsMoving() bool {
	return !c.body.Vel.IsZero()
}

// Facing is the orientation of the current pose.
func (c *Controller) Facing() direction.Facing {
	if c.pose.Anim != "" {
		return direction.FromFrameName(c.pose.Anim)
	}
	return direction.FromFrameName(c.pose.Frame)
}

// Update applies one tick of input. Left beats right and up beats down on
// each axis; the combined vector is rescaled to Speed.
func (c *Controller) Update(in Input) {
	prev := c.body.Vel

	var v sim.Vec
	if in.Left {
		v.X = -Speed
	} else if in.Right {
		v.X = Speed
	}
	if in.Up {
		v.Y = -Speed
	} else if in.Down {
		v.Y = Speed
	}
	c.body.Vel = v.Normalize().Scale(Speed)

	moving := c.IsMoving()
	switch {
	case in.Left && moving:
		c.play(direction.FacingLeft)
	case in.Right && moving:
		c.play(direction.FacingRight)
	case in.Up && moving:
		c.play(direction.FacingBack)
	case in.Down && moving:
		c.play(direction.FacingFront)
	default:
		c.settle(prev)
	}
}

// Halt stops the avatar and shows the static pose for its last motion.
func (c *Controller) Halt() {
	prev := c.body.Vel
	c.body.Stop()
	c.settle(prev)
}

func (c *Controller) play(f direction.Facing) {
	key := character.WalkAnimKey(c.prefix, f)
	if c.pose.Anim == key {
		return
	}
	c.pose = character.Pose{Frame: character.WalkFrames(c.prefix, f)[0], Anim: key}
}

// settle picks the static pose from the previous velocity, x before y, and
// keeps the current orientation when the avatar was already still.
func (c *Controller) settle(prev sim.Vec) {
	var f direction.Facing
	switch {
	case prev.X < 0:
		f = direction.FacingLeft
	case prev.X > 0:
		f = direction.FacingRight
	case prev.Y < 0:
		f = direction.FacingBack
	case prev.Y > 0:
		f = direction.FacingFront
	default:
		f = direction.FromFrameName(c.pose.Frame)
	}
	c.pose = character.Pose{Frame: character.StaticFrame(c.prefix, f)}
}
