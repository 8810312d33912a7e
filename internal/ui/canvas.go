package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/puckstop/internal/layout"
)

// Half-block glyphs: the foreground paints the named half
const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// Canvas is a pixel buffer two pixels tall per terminal cell
type Canvas struct {
	w, h int
	px   []tcell.Color
}

// NewCanvas creates a cleared canvas for a cols x rows terminal
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{w: cols, h: rows * 2}
	c.px = make([]tcell.Color, c.w*c.h)
	c.Clear()
	return c
}

func (c *Canvas) Size() (int, int) { return c.w, c.h }

func (c *Canvas) Clear() {
	for i := range c.px {
		c.px[i] = tcell.ColorReset
	}
}

// Set colours one pixel, ignoring points off the canvas
func (c *Canvas) Set(x, y int, color tcell.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.px[y*c.w+x] = color
}

// At returns the colour of a pixel
func (c *Canvas) At(x, y int) tcell.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return tcell.ColorReset
	}
	return c.px[y*c.w+x]
}

// FillRect covers every pixel whose centre lies in r
func (c *Canvas) FillRect(r layout.Rect, color tcell.Color) {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := int(math.Round(r.X + r.W))
	y1 := int(math.Round(r.Y + r.H))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Set(x, y, color)
		}
	}
}

// HLine draws a one pixel horizontal line from x0 to x1 exclusive
func (c *Canvas) HLine(x0, x1, y int, color tcell.Color) {
	for x := x0; x < x1; x++ {
		c.Set(x, y, color)
	}
}

// FillCircle draws a disc. Anything smaller than a pixel still shows as one.
func (c *Canvas) FillCircle(center layout.Point, radius float64, color tcell.Color) {
	cx := int(math.Floor(center.X))
	cy := int(math.Floor(center.Y))
	if radius < 1 {
		c.Set(cx, cy, color)
		return
	}

	r := int(math.Ceil(radius))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				c.Set(cx+dx, cy+dy, color)
			}
		}
	}
}

// Flush writes the canvas to the screen as half-block cells
func (c *Canvas) Flush(s *Screen) {
	for row := 0; row < c.h/2; row++ {
		for x := 0; x < c.w; x++ {
			top := c.px[(row*2)*c.w+x]
			bottom := c.px[(row*2+1)*c.w+x]
			switch {
			case top == tcell.ColorReset && bottom == tcell.ColorReset:
				continue
			case top == tcell.ColorReset:
				s.SetCell(x, row, tcell.StyleDefault.Foreground(bottom), lowerHalf)
			default:
				s.SetCell(x, row, tcell.StyleDefault.Foreground(top).Background(bottom), upperHalf)
			}
		}
	}
}
