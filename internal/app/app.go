package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/diegok/puckstop/internal/audio"
	"github.com/diegok/puckstop/internal/client"
	"github.com/diegok/puckstop/internal/config"
	"github.com/diegok/puckstop/internal/game"
	"github.com/diegok/puckstop/internal/layout"
	"github.com/diegok/puckstop/internal/protocol"
	"github.com/diegok/puckstop/internal/ui"
)

const (
	frameInterval = 16 * time.Millisecond

	// MaxFrameDelta caps the seconds a single tick may simulate
	MaxFrameDelta = 0.1

	requestTimeout = 5 * time.Second
)

type boardResult struct {
	round int
	board protocol.Board
	err   error
}

type submitResult struct {
	round int
	err   error
}

// App is the main application controller that manages the game lifecycle.
type App struct {
	ctx      context.Context
	cfg      *config.Config
	table    layout.Table
	log      *zap.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	sim      *game.Sim
	audio    *audio.Player
	board    *client.Client
	glyphs   ui.Glyphs

	// Loading
	progress     chan float64
	loadProgress float64

	// Input
	muted   bool
	buttons tcell.ButtonMask

	// Game over
	round       int
	final       int
	offered     bool
	view        ui.GameOverView
	watchCancel context.CancelFunc
	boards      chan boardResult
	submits     chan submitResult
}

// NewApp creates a new App instance with the given configuration and game table.
func NewApp(cfg *config.Config, g *config.Game, log *zap.Logger) *App {
	player := audio.New()
	a := &App{
		ctx:      context.Background(),
		cfg:      cfg,
		table:    g.Layout,
		log:      log,
		audio:    player,
		board:    client.New(cfg.LeaderboardURL),
		glyphs:   ui.DefaultGlyphs(),
		progress: make(chan float64, 4),
		boards:   make(chan boardResult, 4),
		submits:  make(chan submitResult, 1),
	}
	a.sim = game.NewSim(layout.New(layout.Rect{}, g.Layout), g.Tuning, nil, player)
	if cfg.Muted {
		a.muted = true
		a.sim.SetMuted(true)
	}
	return a
}

// Run initializes the screen and blocks in the main loop until the player
// quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	screen, err := ui.InitScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)
	defer a.cleanup()

	a.sim.SetLayout(a.layoutFor(screen.Size()))

	go a.loadAssets()

	return a.mainLoop(ctx)
}

// loadAssets prepares audio and reports progress. Failures leave the game silent.
func (a *App) loadAssets() {
	defer close(a.progress)

	a.progress <- 0.25
	if err := a.audio.Init(); err != nil {
		a.log.Warn("audio unavailable, playing silently", zap.Error(err))
	}
	a.progress <- 1
}

// mainLoop is the main event loop that handles all input and state updates.
func (a *App) mainLoop(ctx context.Context) error {
	// Create event channel for screen events
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Ticker for rendering at ~60fps
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if a.handleEvent(ev) {
				return nil
			}

		case p, ok := <-a.progress:
			if !ok {
				a.progress = nil
				a.sim.MarkReady()
				a.log.Info("assets ready")
				continue
			}
			a.loadProgress = p

		case res := <-a.boards:
			a.onBoard(res)

		case res := <-a.submits:
			a.onSubmit(res)

		case now := <-ticker.C:
			a.step(clampDelta(now.Sub(last).Seconds()))
			last = now
			a.render()
		}
	}
}

// clampDelta keeps a frame delta inside [0, MaxFrameDelta]
func clampDelta(dt float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	return min(dt, MaxFrameDelta)
}

// step runs one simulation tick and reacts to phase changes
func (a *App) step(dt float64) {
	prev := a.sim.Phase()
	if err := a.sim.Tick(dt); err != nil {
		a.log.Debug("command rejected", zap.Error(err))
	}

	cur := a.sim.Phase()
	if cur == prev {
		return
	}
	a.log.Info("phase changed",
		zap.Stringer("from", prev),
		zap.Stringer("to", cur),
		zap.Int("score", a.sim.Score()))

	if prev == game.PhaseGameOver {
		a.endRound()
	}
	if cur == game.PhaseGameOver {
		a.beginGameOver(a.sim.Score())
	}
}

// handleEvent processes keyboard, mouse and resize events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		action := ui.MouseToAction(buttons, a.buttons)
		a.buttons = buttons
		return a.apply(action)

	case *tcell.EventResize:
		w, h := ev.Size()
		a.sim.Enqueue(game.Relayout(a.layoutFor(w, h)))
	}
	return false
}

// handleKey routes a key to the name field while it is open, else to the game
func (a *App) handleKey(key tcell.Key, r rune) bool {
	if a.view.Entry != nil {
		switch a.view.Entry.HandleKey(key, r) {
		case ui.EntrySubmit:
			a.submit(a.view.Entry.String())
			a.view.Entry = nil
		case ui.EntryCancel:
			a.view.Entry = nil
		}
		return false
	}
	return a.apply(ui.KeyToAction(key, r))
}

// apply turns an input action into a queued game command
func (a *App) apply(action ui.Action) bool {
	switch action {
	case ui.ActionQuit:
		return true
	case ui.ActionToggle:
		a.sim.Enqueue(game.Toggle())
	case ui.ActionMute:
		a.muted = !a.muted
		a.sim.Enqueue(game.Mute(a.muted))
	case ui.ActionEnter:
		a.sim.Enqueue(game.Start())
	}
	return false
}

func (a *App) layoutFor(cols, rows int) layout.Layout {
	return layout.New(ui.Viewport(cols, rows), a.table)
}

// beginGameOver opens a leaderboard round: the live feed when the service
// offers one, a single fetch otherwise.
func (a *App) beginGameOver(score int) {
	a.round++
	a.final = score
	a.offered = false
	a.view = ui.GameOverView{Loading: true}

	ctx, cancel := context.WithCancel(a.ctx)
	a.watchCancel = cancel
	round := a.round

	go func() {
		feed, err := a.board.Watch(ctx)
		if err != nil {
			a.log.Debug("live leaderboard unavailable, fetching once", zap.Error(err))
			fetchCtx, done := context.WithTimeout(ctx, requestTimeout)
			board, err := a.board.Fetch(fetchCtx)
			done()
			a.sendBoard(ctx, boardResult{round: round, board: board, err: err})
			return
		}
		for board := range feed {
			a.sendBoard(ctx, boardResult{round: round, board: board})
		}
	}()
}

func (a *App) sendBoard(ctx context.Context, res boardResult) {
	select {
	case a.boards <- res:
	case <-ctx.Done():
	}
}

// endRound stops following the leaderboard when a new session starts
func (a *App) endRound() {
	if a.watchCancel != nil {
		a.watchCancel()
		a.watchCancel = nil
	}
	a.view = ui.GameOverView{}
}

// onBoard shows a leaderboard update and offers name entry once per round
func (a *App) onBoard(res boardResult) {
	if res.round != a.round {
		return
	}
	a.view.Loading = false
	if res.err != nil {
		a.log.Warn("leaderboard fetch failed", zap.Error(res.err))
		a.view.Err = res.err.Error()
		return
	}
	a.view.Err = ""
	a.view.Board = res.board

	if !a.offered && protocol.IsTopScore(res.board, a.final) {
		a.offered = true
		a.view.Entry = &ui.NameEntry{}
	}
}

// submit posts the final score without blocking the loop
func (a *App) submit(name string) {
	round, score := a.round, a.final
	a.log.Info("submitting score", zap.String("name", name), zap.Int("score", score))

	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, requestTimeout)
		defer cancel()
		err := a.board.Submit(ctx, name, score)
		select {
		case a.submits <- submitResult{round: round, err: err}:
		case <-a.ctx.Done():
		}
	}()
}

func (a *App) onSubmit(res submitResult) {
	if res.round != a.round {
		return
	}
	if res.err != nil {
		a.log.Warn("score submit failed", zap.Error(res.err))
		a.view.SaveErr = "leaderboard unavailable"
		if errors.Is(res.err, client.ErrRejected) {
			a.view.SaveErr = "rejected"
		}
		return
	}
	a.view.Saved = true
}

// render calls the appropriate renderer method based on the current phase.
func (a *App) render() {
	snap := a.sim.Snapshot()
	ctx := ui.RenderContext{Layout: snap.Layout, Glyphs: a.glyphs}

	switch snap.Phase {
	case game.PhaseLoading:
		a.renderer.RenderLoading(a.loadProgress)
	case game.PhaseGameOver:
		a.renderer.RenderGameOver(snap, ctx, a.view)
	default:
		a.renderer.RenderGame(snap, ctx)
	}
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	a.endRound()
	a.audio.Close()

	if a.screen != nil {
		a.screen.Fini()
	}
}
