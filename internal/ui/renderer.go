package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/puckstop/internal/game"
	"github.com/diegok/puckstop/internal/layout"
	"github.com/diegok/puckstop/internal/protocol"
)

// Glyphs are the text sprites drawn over the pixel canvas
type Glyphs struct {
	Life        rune
	Sound       string
	Muted       string
	ManFrames   [2]string
	WomanFrames [2]string
}

func DefaultGlyphs() Glyphs {
	return Glyphs{
		Life:        '♥',
		Sound:       "♪ on",
		Muted:       "♪ off",
		ManFrames:   [2]string{`\o/`, `|o|`},
		WomanFrames: [2]string{`\o/`, `/o\`},
	}
}

// RenderContext is everything the renderer needs besides the snapshot
type RenderContext struct {
	Layout layout.Layout
	Glyphs Glyphs
}

// GameOverView is the leaderboard side of the game over screen
type GameOverView struct {
	Board   protocol.Board
	Loading bool
	Err     string
	Entry   *NameEntry // Non-nil while the player may submit
	Saved   bool
	SaveErr string
}

// Viewport is the pixel area of the playfield for a cols x rows terminal.
// Row 0 holds the scoreboard and the last row the status bar.
func Viewport(cols, rows int) layout.Rect {
	h := (rows - 2) * 2
	if h < 0 {
		h = 0
	}
	return layout.Rect{X: 0, Y: 2, W: float64(cols), H: float64(h)}
}

// Renderer handles rendering all game screens
type Renderer struct {
	screen *Screen
	canvas *Canvas
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// canvasFor returns a cleared canvas sized to the screen
func (r *Renderer) canvasFor(w, h int) *Canvas {
	if r.canvas == nil || r.canvas.w != w || r.canvas.h != h*2 {
		r.canvas = NewCanvas(w, h)
	} else {
		r.canvas.Clear()
	}
	return r.canvas
}

// RenderLoading displays the asset loading screen
func (r *Renderer) RenderLoading(progress float64) {
	r.screen.Clear()
	_, screenH := r.screen.Size()

	title := "PUCKSTOP"
	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorTeal)
	r.screen.DrawCentered(screenH/2-3, title, titleStyle)

	pct := int(math.Round(math.Max(0, math.Min(1, progress)) * 100))
	barW := 20
	filled := pct * barW / 100
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat(".", barW-filled) + "]"
	r.screen.DrawCentered(screenH/2, bar, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	r.screen.DrawCentered(screenH/2+1, fmt.Sprintf("Loading... %d%%", pct), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	r.screen.Show()
}

// RenderGame displays the rink for the idle and playing phases
func (r *Renderer) RenderGame(snap game.Snapshot, ctx RenderContext) {
	r.screen.Clear()
	r.drawRink(snap, ctx)
	r.renderScoreboard(snap, ctx)

	if snap.Phase == game.PhaseIdle {
		r.drawBanner([]string{"PUCKSTOP", "", "Press ENTER to start"})
	}

	r.renderStatus(snap, ctx, "SPACE/click: switch goalie | m: mute | q: quit")
	r.screen.Show()
}

// RenderGameOver displays the final score, the leaderboard and name entry
func (r *Renderer) RenderGameOver(snap game.Snapshot, ctx RenderContext, view GameOverView) {
	r.screen.Clear()
	r.drawRink(snap, ctx)
	r.renderScoreboard(snap, ctx)

	lines := []string{"=== GAME OVER ===", "", fmt.Sprintf("Final Score: %d", snap.Score), ""}
	lines = append(lines, leaderboardLines(view)...)

	switch {
	case view.Entry != nil:
		lines = append(lines, "", "New top score! Enter your name:", "> "+view.Entry.String()+"_")
	case view.Saved:
		lines = append(lines, "", "Score saved!")
	case view.SaveErr != "":
		lines = append(lines, "", "Could not save: "+view.SaveErr)
	}
	r.drawBanner(lines)

	hint := "ENTER: play again | q: quit"
	if view.Entry != nil {
		hint = "ENTER: submit | ESC: skip"
	}
	r.renderStatus(snap, ctx, hint)
	r.screen.Show()
}

func leaderboardLines(view GameOverView) []string {
	switch {
	case view.Loading:
		return []string{"Loading leaderboard..."}
	case view.Err != "":
		return []string{"Leaderboard unavailable"}
	case len(view.Board) == 0:
		return []string{"No scores yet"}
	}

	lines := []string{"TOP SCORES"}
	for i, e := range view.Board {
		lines = append(lines, fmt.Sprintf("%2d. %-15s %6d", i+1, e.Name, e.Score))
	}
	return lines
}

// drawRink paints the field, the line, goalies, pucks and fans
func (r *Renderer) drawRink(snap game.Snapshot, ctx RenderContext) {
	screenW, screenH := r.screen.Size()
	c := r.canvasFor(screenW, screenH)
	l := ctx.Layout

	// Boards around the field, ice inside
	c.FillRect(l.Viewport, ColorBoards)
	c.FillRect(l.Field, ColorIce)

	origin := l.ToViewport(layout.Point{})
	line := int(math.Floor(origin.Y + snap.LineY))
	c.HLine(int(l.Field.X), int(l.Field.X+l.Field.W), line, ColorLine)

	for _, g := range snap.Goalies {
		color := ColorGoalieIdle
		if g.Active {
			color = ColorGoalieActive
		}
		rect := g.Rect
		rect.X += origin.X
		rect.Y += origin.Y
		c.FillRect(rect, color)
	}

	for _, p := range snap.Pucks {
		color := ColorPuck
		if p.Fading {
			color = ColorPuckFading
		}
		c.FillCircle(l.ToViewport(layout.Point{X: p.X, Y: p.Y}), p.Radius, color)
	}

	c.Flush(r.screen)

	// Fans are text sprites over the canvas
	fanStyle := tcell.StyleDefault.Foreground(ColorBoards).Background(ColorIce).Bold(true)
	for _, fan := range []struct {
		pos   layout.RelPoint
		frame string
	}{
		{l.Table.Man, ctx.Glyphs.ManFrames[snap.ManFrame&1]},
		{l.Table.Woman, ctx.Glyphs.WomanFrames[snap.WomanFrame&1]},
	} {
		if fan.pos == (layout.RelPoint{}) {
			continue
		}
		p := l.ToViewport(l.Resolve(fan.pos))
		r.screen.DrawText(int(p.X)-runeLen(fan.frame)/2, int(p.Y)/2, fan.frame, fanStyle)
	}
}

// renderScoreboard draws score, lives and difficulty on the top row
func (r *Renderer) renderScoreboard(snap game.Snapshot, ctx RenderContext) {
	screenW, _ := r.screen.Size()
	style := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite).Bold(true)
	r.screen.FillRect(0, 0, screenW, 1, style, ' ')

	lives := strings.Repeat(string(ctx.Glyphs.Life), max(snap.Lives, 0))
	text := fmt.Sprintf("[ SCORE %d ]  %s  x%.1f", snap.Score, lives, snap.SpeedMult)
	r.screen.DrawCentered(0, text, style)
}

// renderStatus draws the sound state and key hints on the bottom row
func (r *Renderer) renderStatus(snap game.Snapshot, ctx RenderContext, hint string) {
	screenW, screenH := r.screen.Size()
	statusY := screenH - 1
	statusStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	r.screen.FillRect(0, statusY, screenW, 1, statusStyle, ' ')

	sound := ctx.Glyphs.Sound
	if snap.Muted {
		sound = ctx.Glyphs.Muted
	}
	r.screen.DrawText(1, statusY, sound+" | "+hint, statusStyle)
}

// drawBanner centres a boxed block of lines on the screen
func (r *Renderer) drawBanner(lines []string) {
	screenW, screenH := r.screen.Size()

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, runeLen(l))
	}
	boxW = min(boxW+4, screenW)
	boxH := len(lines) + 2
	boxX := (screenW - boxW) / 2
	boxY := max((screenH-boxH)/2, 1)

	fill := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	r.screen.FillRect(boxX, boxY, boxW, boxH, fill, ' ')
	r.screen.DrawBox(boxX, boxY, boxW, boxH, fill)

	for i, l := range lines {
		style := fill
		if i == 0 {
			style = style.Bold(true).Foreground(tcell.ColorYellow)
		}
		r.screen.DrawCentered(boxY+1+i, l, style)
	}
}
