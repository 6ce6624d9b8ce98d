package sim

import "math"

// Vec is a 2D vector in world units. Y grows downward.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector along v, or the zero vector.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// Body is a point mass moved by its velocity once per physics step.
type Body struct {
	Pos Vec
	Vel Vec
}

func (b *Body) SetVelocity(x, y float64) {
	b.Vel = Vec{X: x, Y: y}
}

func (b *Body) Stop() {
	b.Vel = Vec{}
}

// Integrate advances the position by dt seconds of the current velocity.
func (b *Body) Integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// Bounds is an axis-aligned rectangle bodies are kept inside.
type Bounds struct {
	Min Vec `json:"min"`
	Max Vec `json:"max"`
}

// Clamp pins p inside the bounds and reports whether it had to move it.
func (r Bounds) Clamp(p Vec) (Vec, bool) {
	out := Vec{
		X: math.Min(math.Max(p.X, r.Min.X), r.Max.X),
		Y: math.Min(math.Max(p.Y, r.Min.Y), r.Max.Y),
	}
	return out, out != p
}
