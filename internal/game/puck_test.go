package game

import (
	"math"
	"testing"

	"github.com/diegok/puckstop/internal/layout"
)

func TestNewPuck_VelocityTowardTarget(t *testing.T) {
	p := NewPuck(layout.Point{X: 0, Y: 0}, layout.Point{X: 30, Y: 40}, 10, 2, 0.1)

	if p.VX != 6 || p.VY != 8 {
		t.Errorf("expected velocity (6, 8), got (%f, %f)", p.VX, p.VY)
	}
	if math.Abs(p.speed()-10) > 1e-9 {
		t.Errorf("expected speed 10, got %f", p.speed())
	}
	if p.State != PuckActive {
		t.Errorf("expected new puck to be active, got %v", p.State)
	}
	if p.Radius != 2 || p.Rotation != 0.1 {
		t.Errorf("expected radius 2 and rotation 0.1, got %f and %f", p.Radius, p.Rotation)
	}
}

func TestNewPuck_DegenerateFallsStraightDown(t *testing.T) {
	p := NewPuck(layout.Point{X: 5, Y: 5}, layout.Point{X: 5, Y: 5}, 3, 1, 0)

	if p.VX != 0 {
		t.Errorf("expected VX=0, got %f", p.VX)
	}
	if p.VY != 3 {
		t.Errorf("expected VY=3, got %f", p.VY)
	}
}

func TestPuck_Move(t *testing.T) {
	p := NewPuck(layout.Point{X: 10, Y: 20}, layout.Point{X: 10, Y: 100}, 4, 1, 0)

	p.Move(0.5)

	if p.X != 10 {
		t.Errorf("expected X=10, got %f", p.X)
	}
	if p.Y != 22 {
		t.Errorf("expected Y=22, got %f", p.Y)
	}
}

func TestPuck_FadingDoesNotMove(t *testing.T) {
	p := NewPuck(layout.Point{X: 10, Y: 20}, layout.Point{X: 10, Y: 100}, 4, 1, 0)
	p.Fade(1)

	p.Move(1)

	if p.Y != 20 {
		t.Errorf("fading puck should not move, Y=%f", p.Y)
	}
	vx, vy := p.VX, p.VY
	if vx != 0 || vy != 4 {
		t.Errorf("velocity must stay fixed, got (%f, %f)", vx, vy)
	}
}

func TestPuck_Lifecycle(t *testing.T) {
	p := NewPuck(layout.Point{}, layout.Point{Y: 1}, 1, 1, 0)

	if p.Expired(5) {
		t.Error("active puck should not be expired")
	}

	p.Fade(5)
	if p.State != PuckFading {
		t.Fatalf("expected fading, got %v", p.State)
	}
	if p.Expired(5) {
		t.Error("puck should survive the tick it started fading")
	}
	if !p.Expired(6) {
		t.Error("puck should expire one tick after fading")
	}

	// second fade must not move the fade tick
	p.Fade(9)
	if !p.Expired(6) {
		t.Error("fade tick should not change once fading")
	}

	p.Remove()
	if p.State != PuckRemoved {
		t.Errorf("expected removed, got %v", p.State)
	}
}

func TestPuckState_String(t *testing.T) {
	tests := []struct {
		state PuckState
		want  string
	}{
		{PuckActive, "active"},
		{PuckFading, "fading"},
		{PuckRemoved, "removed"},
		{PuckState(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("PuckState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
