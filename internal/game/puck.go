package game

import (
	"math"

	"github.com/diegok/puckstop/internal/layout"
)

// PuckState tracks a puck through its lifetime
type PuckState int

const (
	PuckActive  PuckState = iota // Falling, not yet judged
	PuckFading                   // Judged this tick, shown for one more tick
	PuckRemoved                  // Gone from the board
)

func (s PuckState) String() string {
	switch s {
	case PuckActive:
		return "active"
	case PuckFading:
		return "fading"
	case PuckRemoved:
		return "removed"
	}
	return "unknown"
}

// Puck is a falling object travelling in a straight line
type Puck struct {
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Rotation float64 // Cosmetic, fixed at spawn
	State    PuckState

	fadeTick int // Sim tick on which the puck started fading
}

// NewPuck creates a puck at spawn heading toward target at the given speed.
// A zero-length spawn->target vector falls back to straight down.
func NewPuck(spawn, target layout.Point, speed, radius, rotation float64) *Puck {
	dx := target.X - spawn.X
	dy := target.Y - spawn.Y
	dist := math.Hypot(dx, dy)

	dirX, dirY := 0.0, 1.0
	if dist > 0 {
		dirX = dx / dist
		dirY = dy / dist
	}

	return &Puck{
		X:        spawn.X,
		Y:        spawn.Y,
		VX:       dirX * speed,
		VY:       dirY * speed,
		Radius:   radius,
		Rotation: rotation,
		State:    PuckActive,
	}
}

// Move advances an active puck by its velocity over dt seconds
func (p *Puck) Move(dt float64) {
	if p.State != PuckActive {
		return
	}
	p.X += p.VX * dt
	p.Y += p.VY * dt
}

// Fade marks an active puck as judged
func (p *Puck) Fade(tick int) {
	if p.State != PuckActive {
		return
	}
	p.State = PuckFading
	p.fadeTick = tick
}

// Expired reports whether the puck faded on a tick before tick
func (p *Puck) Expired(tick int) bool {
	return p.State == PuckFading && p.fadeTick < tick
}

// Remove takes a fading puck off the board
func (p *Puck) Remove() {
	p.State = PuckRemoved
}

// speed returns current speed
func (p *Puck) speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// Position returns the puck centre
func (p *Puck) Position() layout.Point {
	return layout.Point{X: p.X, Y: p.Y}
}

// rescale keeps the puck at the same relative spot after a layout change
func (p *Puck) rescale(sx, sy, sr float64) {
	p.X *= sx
	p.Y *= sy
	p.VX *= sx
	p.VY *= sy
	p.Radius *= sr
}
