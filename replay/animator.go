// Package replay plays a board sequence frame by frame, numbering stones by
// the step at which they appeared and looping forever.
package replay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"termsuji-replay/score"
	"termsuji-replay/types"
)

// DefaultDelay is the pause between two frames.
const DefaultDelay = 1000 * time.Millisecond

// ErrAlreadyStarted is returned by Start when the animator left Idle.
var ErrAlreadyStarted = errors.New("replay: animator already started")

// ErrInvalidDelay is returned by New when the frame delay is not positive.
var ErrInvalidDelay = errors.New("replay: frame delay must be positive")

// BoardRenderer paints the board surface.
type BoardRenderer interface {
	// DrawBoard repaints the empty board from scratch.
	DrawBoard()
	// DrawStone draws a stone at row, col. label is NoStep for no label.
	DrawStone(row, col, color, label int)
}

// ScoreRenderer repaints the score surface.
type ScoreRenderer interface {
	DisplayScores(p score.Pair)
}

// State is the animator's position in its frame loop.
type State int

const (
	Idle State = iota
	Playing
	Scheduled
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Scheduled:
		return "scheduled"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Frame describes one rendered frame.
type Frame struct {
	Index    int
	Total    int
	Scores   score.Pair
	Steps    [][]int // labels as drawn, NoStep for empty cells
	NextStep int     // step counter after the frame
	NewStone bool
}

// Animator owns the playback state of one board sequence.
type Animator struct {
	seq       types.Sequence
	board     BoardRenderer
	scores    ScoreRenderer
	clock     Scheduler
	delay     time.Duration
	log       *zap.SugaredLogger
	observers []func(Frame)

	mu    sync.Mutex
	state State
	index int
	step  int
	steps *StepMap
	timer Timer
}

// Option configures an Animator.
type Option func(*Animator)

// WithDelay sets the pause between frames.
func WithDelay(d time.Duration) Option {
	return func(a *Animator) { a.delay = d }
}

// WithScheduler replaces the wall clock, e.g. with a ManualClock.
func WithScheduler(s Scheduler) Option {
	return func(a *Animator) { a.clock = s }
}

// WithLogger sets the logger used for frame transitions.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *Animator) { a.log = log }
}

// WithObserver registers f to be called after every frame, outside the
// animator's lock.
func WithObserver(f func(Frame)) Option {
	return func(a *Animator) { a.observers = append(a.observers, f) }
}

// New creates an idle animator for seq. The sequence is validated and never
// modified.
func New(seq types.Sequence, board BoardRenderer, scores ScoreRenderer, opts ...Option) (*Animator, error) {
	if err := seq.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sequence: %w", err)
	}
	a := &Animator{
		seq:    seq,
		board:  board,
		scores: scores,
		clock:  WallClock{},
		delay:  DefaultDelay,
		log:    zap.NewNop().Sugar(),
		state:  Idle,
		step:   1,
		steps:  NewStepMap(seq.Size()),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.delay <= 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidDelay, a.delay)
	}
	return a, nil
}

// Start renders frame 0 and schedules the rest of the loop.
func (a *Animator) Start() error {
	a.mu.Lock()
	if a.state != Idle {
		a.mu.Unlock()
		return ErrAlreadyStarted
	}
	frame := a.playFrame(0)
	a.mu.Unlock()

	a.notify(frame)
	return nil
}

// Run starts the animator and blocks until ctx is done, then stops it.
func (a *Animator) Run(ctx context.Context) error {
	if err := a.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	a.Stop()
	return ctx.Err()
}

// Stop cancels the pending frame. A stopped animator cannot be restarted.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.state = Stopped
}

// Reset restores the step counter to 1 and clears the step map.
func (a *Animator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
}

// State returns the current state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Index returns the index of the last rendered frame.
func (a *Animator) Index() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.index
}

// StepCounter returns the label the next new stone will receive. Once the
// last frame has been rendered it already returns 1, although that board is
// still on screen; Frame.NextStep carries the value before the reset.
func (a *Animator) StepCounter() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.step
}

// Steps returns a copy of the step map. It is empty between the last frame
// and the next tick; Frame.Steps holds the labels the last frame drew.
func (a *Animator) Steps() [][]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.steps.Snapshot()
}

// Len returns the number of frames in the sequence.
func (a *Animator) Len() int {
	return len(a.seq)
}

// Delay returns the pause between frames.
func (a *Animator) Delay() time.Duration {
	return a.delay
}

func (a *Animator) reset() {
	a.step = 1
	a.steps.Reset()
}

// enter is the timer callback for frame i.
func (a *Animator) enter(i int) {
	a.mu.Lock()
	if a.state != Scheduled {
		a.mu.Unlock()
		return
	}
	frame := a.playFrame(i)
	a.mu.Unlock()

	a.notify(frame)
}

// playFrame renders frame i and schedules the next one. Must be called while
// holding the lock.
func (a *Animator) playFrame(i int) Frame {
	a.state = Playing
	a.index = i
	board := a.seq[i]

	pair := score.Calculate(board)
	a.scores.DisplayScores(pair)
	a.board.DrawBoard()

	newStone := false
	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			cell := board.At(row, col)
			if cell == types.Empty {
				// stone captured or never placed
				a.steps.Clear(row, col)
				continue
			}
			if !a.steps.Has(row, col) {
				a.steps.Set(row, col, a.step)
				newStone = true
			}
			a.board.DrawStone(row, col, cell, a.steps.Get(row, col))
		}
	}
	if newStone {
		a.step++
	}

	frame := Frame{
		Index:    i,
		Total:    len(a.seq),
		Scores:   pair,
		Steps:    a.steps.Snapshot(),
		NextStep: a.step,
		NewStone: newStone,
	}
	a.log.Debugw("frame rendered", "index", i, "black", pair.Black, "white", pair.White, "next_step", a.step)

	next := i + 1
	if next == len(a.seq) {
		a.reset()
		next = 0
		a.log.Debugw("sequence restarting", "frames", len(a.seq))
	}
	a.state = Scheduled
	a.timer = a.clock.AfterFunc(a.delay, func() { a.enter(next) })
	return frame
}

func (a *Animator) notify(f Frame) {
	for _, obs := range a.observers {
		obs(f)
	}
}
