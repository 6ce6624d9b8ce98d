package direction

import (
	"fmt"
	"strings"
)

// Direction is the motion direction of a character. None means the
// character is paused and not translating.
type Direction int

const (
	None Direction = iota
	Left
	Right
	Up
	Down
)

// Cardinals lists the roam directions in draw order.
var Cardinals = [4]Direction{Left, Right, Up, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Unit returns the unit vector for d in screen coordinates (y grows downward).
func (d Direction) Unit() (float64, float64) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	default:
		return 0, 0
	}
}

// Facing maps a motion direction to the pose it is displayed with.
func (d Direction) Facing() Facing {
	switch d {
	case Left:
		return FacingLeft
	case Right:
		return FacingRight
	case Up:
		return FacingBack
	default:
		return FacingFront
	}
}

// Facing is the displayed orientation of a sprite.
type Facing int

const (
	FacingFront Facing = iota
	FacingBack
	FacingLeft
	FacingRight
)

// StaticFacings lists the idle poses in draw order.
var StaticFacings = [4]Facing{FacingFront, FacingBack, FacingLeft, FacingRight}

func (f Facing) String() string {
	switch f {
	case FacingBack:
		return "back"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "front"
	}
}

// ParseFacing parses a facing name. Unknown names report false.
func ParseFacing(s string) (Facing, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front", "":
		return FacingFront, true
	case "back":
		return FacingBack, true
	case "left":
		return FacingLeft, true
	case "right":
		return FacingRight, true
	}
	return FacingFront, false
}

// MarshalText encodes the facing by name.
func (f Facing) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText accepts the names produced by String. An empty name is front.
func (f *Facing) UnmarshalText(b []byte) error {
	v, ok := ParseFacing(string(b))
	if !ok {
		return fmt.Errorf("unknown facing %q", b)
	}
	*f = v
	return nil
}

// Toward returns the facing that looks along (dx, dy). The horizontal axis
// wins only when it is strictly larger, so ties face front or back.
func Toward(dx, dy float64) Facing {
	if abs(dx) > abs(dy) {
		if dx < 0 {
			return FacingLeft
		}
		return FacingRight
	}
	if dy < 0 {
		return FacingBack
	}
	return FacingFront
}

// FromFrameName infers a facing from a frame or animation name. Names
// without a direction token default to front.
func FromFrameName(name string) Facing {
	switch {
	case strings.Contains(name, "left"):
		return FacingLeft
	case strings.Contains(name, "right"):
		return FacingRight
	case strings.Contains(name, "back"):
		return FacingBack
	default:
		return FacingFront
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
