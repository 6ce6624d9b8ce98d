package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/footagents/pkg/character"
	"github.com/jwebster45206/footagents/pkg/direction"
	"github.com/jwebster45206/footagents/pkg/sim"
)

func TestUpdate_Velocity(t *testing.T) {
	diag := Speed / math.Sqrt2

	tests := []struct {
		name string
		in   Input
		want sim.Vec
	}{
		{"idle", Input{}, sim.Vec{}},
		{"left", Input{Left: true}, sim.Vec{X: -Speed}},
		{"right", Input{Right: true}, sim.Vec{X: Speed}},
		{"up", Input{Up: true}, sim.Vec{Y: -Speed}},
		{"down", Input{Down: true}, sim.Vec{Y: Speed}},
		{"left beats right", Input{Left: true, Right: true}, sim.Vec{X: -Speed}},
		{"up beats down", Input{Up: true, Down: true}, sim.Vec{Y: -Speed}},
		{"diagonal is normalized", Input{Right: true, Down: true}, sim.Vec{X: diag, Y: diag}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("sophia", sim.Vec{})
			p.Update(tt.in)
			assert.InDelta(t, tt.want.X, p.Velocity().X, 1e-9)
			assert.InDelta(t, tt.want.Y, p.Velocity().Y, 1e-9)
			assert.Equal(t, !tt.want.IsZero(), p.IsMoving())
		})
	}
}

func TestUpdate_WalkAnimationPrecedence(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		anim string
	}{
		{"horizontal before vertical", Input{Left: true, Down: true}, "sophia-left-walk"},
		{"right with up", Input{Right: true, Up: true}, "sophia-right-walk"},
		{"up", Input{Up: true}, "sophia-back-walk"},
		{"down", Input{Down: true}, "sophia-front-walk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("sophia", sim.Vec{})
			p.Update(tt.in)
			assert.Equal(t, tt.anim, p.Pose().Anim)
		})
	}
}

func TestUpdate_StaticPoseFromPreviousVelocity(t *testing.T) {
	tests := []struct {
		name  string
		last  Input
		frame string
	}{
		{"was moving left", Input{Left: true}, "sophia-left"},
		{"was moving right", Input{Right: true}, "sophia-right"},
		{"was moving up", Input{Up: true}, "sophia-back"},
		{"was moving down", Input{Down: true}, "sophia-front"},
		{"x wins over y", Input{Right: true, Up: true}, "sophia-right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("sophia", sim.Vec{})
			p.Update(tt.last)
			p.Update(Input{})
			assert.Equal(t, character.Pose{Frame: tt.frame}, p.Pose())
			assert.False(t, p.IsMoving())
		})
	}
}

func TestUpdate_StillKeepsCurrentPose(t *testing.T) {
	p := New("sophia", sim.Vec{})
	p.Update(Input{Up: true})
	p.Update(Input{})
	p.Update(Input{})
	p.Update(Input{})
	assert.Equal(t, character.Pose{Frame: "sophia-back"}, p.Pose())
	assert.Equal(t, direction.FacingBack, p.Facing())

	fresh := New("sophia", sim.Vec{})
	fresh.Update(Input{})
	assert.Equal(t, character.Pose{Frame: "sophia-front"}, fresh.Pose())
}

func TestUpdate_OpposingKeysStillWalk(t *testing.T) {
	p := New("sophia", sim.Vec{})
	p.Update(Input{Left: true, Right: true})
	assert.Equal(t, "sophia-left-walk", p.Pose().Anim)
	assert.Equal(t, direction.FacingLeft, p.Facing())
}

func TestHalt(t *testing.T) {
	p := New("sophia", sim.Vec{X: 5, Y: 5})
	p.Update(Input{Down: true})
	p.Body().Integrate(1)
	p.Halt()

	assert.False(t, p.IsMoving())
	assert.Equal(t, character.Pose{Frame: "sophia-front"}, p.Pose())
	assert.Equal(t, sim.Vec{X: 5, Y: 5 + Speed}, p.Position())
}
