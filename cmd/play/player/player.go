package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ResyncInterval is how many frames pass between two reconciliations with the
// timing reference.
const ResyncInterval = 15

var (
	ErrInvalidFrametime = errors.New("frametime must be greater than zero")
	ErrInterrupted      = errors.New("playback interrupted")
)

// State is where the render loop is in a pass.
type State string

const (
	StateIdle      State = "idle"
	StateRendering State = "rendering"
	StateResyncing State = "resyncing"
	StateDone      State = "done"
	StateAborted   State = "aborted"
)

// FrameSource hands out decompressed frames by index.
type FrameSource interface {
	Len() int
	Decode(i int) ([]byte, error)
}

// Screen is the terminal frames are drawn to.
type Screen interface {
	Clear() error
	HideCursor() (restore func(), err error)
	ShowCursor() error
	Draw(frame []byte) error
}

// Player runs playback passes over a fixed set of frames.
type Player struct {
	frames    FrameSource
	screen    Screen
	timing    Timing
	clock     Clock
	frametime time.Duration

	counter int
	state   State
	resyncs int
}

// New returns a Player. timing decides what the render loop resyncs against.
func New(frames FrameSource, screen Screen, timing Timing, frametime time.Duration) *Player {
	return &Player{
		frames:    frames,
		screen:    screen,
		timing:    timing,
		clock:     systemClock{},
		frametime: frametime,
		state:     StateIdle,
	}
}

// WithClock replaces the time source of the render loop.
func (p *Player) WithClock(c Clock) *Player {
	p.clock = c
	return p
}

// Counter returns the index of the frame the loop will show next.
func (p *Player) Counter() int {
	return p.counter
}

// State returns the state the last pass is in.
func (p *Player) State() State {
	return p.state
}

// Resyncs returns how many times the last pass reconciled with its reference.
func (p *Player) Resyncs() int {
	return p.resyncs
}

// Play runs one pass over all frames. Every ResyncInterval frames the position
// is taken from the timing reference, and ctx is checked: a cancelled ctx ends
// the pass with ErrInterrupted. The cursor is visible again when Play returns,
// whatever the outcome.
func (p *Player) Play(ctx context.Context) error {
	p.state = StateIdle
	p.counter = 0
	p.resyncs = 0

	if p.frametime <= 0 {
		return ErrInvalidFrametime
	}

	length := p.frames.Len()
	ref, release, err := p.timing(p.frametime, length)
	if err != nil {
		return err
	}
	defer release()

	if err := p.screen.Clear(); err != nil {
		return fmt.Errorf("cannot clear screen: %w", err)
	}
	restore, err := p.screen.HideCursor()
	if err != nil {
		return fmt.Errorf("cannot hide cursor: %w", err)
	}
	defer restore()

	p.state = StateRendering
	for p.counter < length {
		start := p.clock.Now()

		frame, err := p.frames.Decode(p.counter)
		if err != nil {
			return err
		}
		if err := p.screen.Draw(frame); err != nil {
			return fmt.Errorf("cannot draw frame %d: %w", p.counter, err)
		}

		if p.counter%ResyncInterval != 0 {
			p.counter++
		} else {
			p.state = StateResyncing
			p.counter = ref.Frame()
			p.resyncs++
			if ctx.Err() != nil {
				p.state = StateAborted
				return ErrInterrupted
			}
			p.state = StateRendering
		}

		// late frames are not compensated, the next resync takes care of it
		if remaining := p.frametime - p.clock.Now().Sub(start); remaining > 0 {
			p.clock.Sleep(remaining)
		}
	}

	if err := p.screen.ShowCursor(); err != nil {
		return fmt.Errorf("cannot show cursor: %w", err)
	}
	slog.Debug("pass finished", "frames", length, "resyncs", p.resyncs)
	p.counter = 0
	p.state = StateDone
	return nil
}
