// Package motion integrates bouncing sprites inside a rectangular viewport.
// It knows nothing about what the sprites represent.
package motion

// MaxSpeed bounds each initial velocity component to [-MaxSpeed/2, MaxSpeed/2).
const MaxSpeed = 3.0

// Vec is a 2D vector in viewport pixels.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the viewport size in pixels.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rand is the random source used to place and launch bodies.
type Rand interface {
	Float64() float64
}

// Body is a sprite with a position, a velocity and a size. A body moves once
// per Step until it is stopped; stopping is permanent.
type Body struct {
	Position Vec
	Velocity Vec
	Size     Vec
	stopped  bool
}

// Launch places a body of the given size uniformly inside bounds with each
// velocity component drawn from [-1.5, 1.5).
func Launch(rng Rand, bounds Bounds, size Vec) Body {
	maxX, maxY := limits(bounds, size)
	return Body{
		Position: Vec{X: rng.Float64() * maxX, Y: rng.Float64() * maxY},
		Velocity: Vec{X: (rng.Float64() - 0.5) * MaxSpeed, Y: (rng.Float64() - 0.5) * MaxSpeed},
		Size:     size,
	}
}

// Step advances the body by one frame, reflecting off the viewport edges.
func (b *Body) Step(bounds Bounds) {
	if b.stopped {
		return
	}
	maxX, maxY := limits(bounds, b.Size)
	b.Position.X, b.Velocity.X = reflect(b.Position.X+b.Velocity.X, b.Velocity.X, maxX)
	b.Position.Y, b.Velocity.Y = reflect(b.Position.Y+b.Velocity.Y, b.Velocity.Y, maxY)
}

// Clamp forces the position back into bounds without touching velocity.
func (b *Body) Clamp(bounds Bounds) {
	maxX, maxY := limits(bounds, b.Size)
	b.Position.X = clamp(b.Position.X, maxX)
	b.Position.Y = clamp(b.Position.Y, maxY)
}

// Stop freezes the body. Later Steps are no-ops.
func (b *Body) Stop() {
	b.stopped = true
}

// Stopped reports whether Stop was called.
func (b *Body) Stopped() bool {
	return b.stopped
}

func reflect(pos, vel, limit float64) (float64, float64) {
	if pos <= 0 || pos >= limit {
		return clamp(pos, limit), -vel
	}
	return pos, vel
}

func clamp(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

// limits is the largest top-left coordinate per axis; a viewport smaller than
// the sprite pins it to the origin.
func limits(bounds Bounds, size Vec) (float64, float64) {
	maxX := bounds.Width - size.X
	maxY := bounds.Height - size.Y
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return maxX, maxY
}
