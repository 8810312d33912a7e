package game

import (
	"errors"
	"fmt"

	"github.com/diegok/puckstop/internal/layout"
)

// CommandKind identifies a queued input event
type CommandKind int

const (
	CmdToggle CommandKind = iota
	CmdMute
	CmdStart
	CmdLayout
)

func (k CommandKind) String() string {
	switch k {
	case CmdToggle:
		return "toggle"
	case CmdMute:
		return "mute"
	case CmdStart:
		return "start"
	case CmdLayout:
		return "layout"
	}
	return "unknown"
}

// Command is an input event applied at the next tick boundary
type Command struct {
	Kind   CommandKind
	Muted  bool          // CmdMute
	Layout layout.Layout // CmdLayout
}

func Toggle() Command                  { return Command{Kind: CmdToggle} }
func Mute(muted bool) Command          { return Command{Kind: CmdMute, Muted: muted} }
func Start() Command                   { return Command{Kind: CmdStart} }
func Relayout(l layout.Layout) Command { return Command{Kind: CmdLayout, Layout: l} }

// Enqueue records a command for the next Tick
func (s *Sim) Enqueue(cmd Command) {
	s.queue = append(s.queue, cmd)
}

// Tick drains queued commands in order, then advances by dt.
// Command failures are returned after the tick has run.
func (s *Sim) Tick(dt float64) error {
	var errs []error
	for _, cmd := range s.queue {
		if err := s.apply(cmd); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cmd.Kind, err))
		}
	}
	s.queue = s.queue[:0]

	s.Advance(dt)
	return errors.Join(errs...)
}

func (s *Sim) apply(cmd Command) error {
	switch cmd.Kind {
	case CmdToggle:
		s.ToggleActiveGoalie()
	case CmdMute:
		s.SetMuted(cmd.Muted)
	case CmdStart:
		return s.Start()
	case CmdLayout:
		s.SetLayout(cmd.Layout)
	default:
		return fmt.Errorf("unknown command %d", cmd.Kind)
	}
	return nil
}
