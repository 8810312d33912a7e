// Package layout resolves the relative playfield table against a viewport.
package layout

import (
	"errors"
	"fmt"
)

// Point is a position in viewport units
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in viewport units
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Empty reports whether r has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// RelPoint is a position expressed as fractions of the background
type RelPoint struct {
	X float64 `yaml:"x_rel"`
	Y float64 `yaml:"y_rel"`
}

// Background describes the source image the relative table was authored against
type Background struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Aspect returns width over height
func (b Background) Aspect() float64 {
	return b.Width / b.Height
}

// GoalieSpec places a goalie sprite. SpriteW/SpriteH are in background pixels
// and are multiplied by Scale and the layout scale.
type GoalieSpec struct {
	X       float64 `yaml:"x_rel"`
	Y       float64 `yaml:"y_rel"`
	Scale   float64 `yaml:"scale"`
	SpriteW float64 `yaml:"sprite_w"`
	SpriteH float64 `yaml:"sprite_h"`
}

// Line is the relative height of the save line
type Line struct {
	Y float64 `yaml:"y_rel"`
}

// Table is the static relative-coordinate configuration of the playfield
type Table struct {
	Background Background `yaml:"background"`
	GoalieL    GoalieSpec `yaml:"goalie_left"`
	GoalieR    GoalieSpec `yaml:"goalie_right"`
	Spawns     []RelPoint `yaml:"spawns"`
	Targets    []RelPoint `yaml:"targets"`
	Line       Line       `yaml:"line"`
	Man        RelPoint   `yaml:"man"`   // Cosmetic fan, drawn only
	Woman      RelPoint   `yaml:"woman"` // Cosmetic fan, drawn only
}

var (
	ErrNoLanes        = errors.New("layout: at least one spawn/target lane is required")
	ErrBadBackground  = errors.New("layout: background size must be positive")
	ErrLaneMismatched = errors.New("layout: spawns and targets must pair up")
)

// Validate checks the invariants the simulation relies on
func (t Table) Validate() error {
	if t.Background.Width <= 0 || t.Background.Height <= 0 {
		return ErrBadBackground
	}
	if len(t.Spawns) == 0 {
		return ErrNoLanes
	}
	if len(t.Spawns) != len(t.Targets) {
		return fmt.Errorf("%w: %d spawns, %d targets", ErrLaneMismatched, len(t.Spawns), len(t.Targets))
	}
	return nil
}

// Layout is a Table resolved against a concrete viewport.
// All resolved coordinates are relative to Field's origin.
type Layout struct {
	Table    Table
	Viewport Rect
	Field    Rect
	Scale    float64
}

// Fit letterboxes a rectangle of the given aspect ratio inside viewport
func Fit(viewport Rect, aspect float64) Rect {
	if viewport.Empty() || aspect <= 0 {
		return Rect{X: viewport.X, Y: viewport.Y}
	}

	var field Rect
	if viewport.W/viewport.H > aspect {
		field.H = viewport.H
		field.W = viewport.H * aspect
		field.X = viewport.X + (viewport.W-field.W)/2
		field.Y = viewport.Y
	} else {
		field.W = viewport.W
		field.H = viewport.W / aspect
		field.X = viewport.X
		field.Y = viewport.Y + (viewport.H-field.H)/2
	}
	return field
}

// New resolves table against viewport
func New(viewport Rect, table Table) Layout {
	field := Fit(viewport, table.Background.Aspect())
	scale := 0.0
	if table.Background.Width > 0 {
		scale = field.W / table.Background.Width
	}
	return Layout{
		Table:    table,
		Viewport: viewport,
		Field:    field,
		Scale:    scale,
	}
}

// Resolve converts a relative point into field coordinates
func (l Layout) Resolve(rel RelPoint) Point {
	return Point{X: rel.X * l.Field.W, Y: rel.Y * l.Field.H}
}

// GoalieRect resolves a goalie placement. A zero sprite yields a zero-size hitbox.
func (l Layout) GoalieRect(g GoalieSpec) Rect {
	pos := l.Resolve(RelPoint{X: g.X, Y: g.Y})
	return Rect{
		X: pos.X,
		Y: pos.Y,
		W: g.SpriteW * g.Scale * l.Scale,
		H: g.SpriteH * g.Scale * l.Scale,
	}
}

// LineY returns the save line height in field coordinates
func (l Layout) LineY() float64 {
	return l.Table.Line.Y * l.Field.H
}

// Lanes returns resolved spawn and target points, index-paired
func (l Layout) Lanes() (spawns, targets []Point) {
	n := min(len(l.Table.Spawns), len(l.Table.Targets))
	spawns = make([]Point, n)
	targets = make([]Point, n)
	for i := 0; i < n; i++ {
		spawns[i] = l.Resolve(l.Table.Spawns[i])
		targets[i] = l.Resolve(l.Table.Targets[i])
	}
	return spawns, targets
}

// ToViewport converts a field coordinate into viewport coordinates
func (l Layout) ToViewport(p Point) Point {
	return Point{X: l.Field.X + p.X, Y: l.Field.Y + p.Y}
}
