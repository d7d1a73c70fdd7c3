// Package runner turns pause, resume and speed intents into Step calls on a
// gridsearch.Stepper.
//
// The Stepper itself has no notion of time. A Controller owns the only
// timer, serializes access to the Stepper, and can be paused or re-timed from
// other goroutines (an HTTP handler, a key binding) while Run is active.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
)

// Speed bounds in steps per second.
const (
	MinStepsPerSecond     = 0.5
	MaxStepsPerSecond     = 1000.0
	DefaultStepsPerSecond = 30.0
)

// ErrInvalidSpeed rejects a SetSpeed outside the speed bounds.
var ErrInvalidSpeed = errors.New("invalid speed")

// Frame is what a renderer draws after each step.
type Frame struct {
	Snapshot       gridsearch.Snapshot `json:"snapshot"`
	Paused         bool                `json:"paused"`
	StepsPerSecond float64             `json:"stepsPerSecond"`
	ElapsedMs      float64             `json:"elapsedMs"`
	PathLength     int                 `json:"pathLength"`
}

// Controller drives one Stepper.
type Controller struct {
	mu             sync.Mutex
	stepper        *gridsearch.Stepper
	stepsPerSecond float64
	paused         bool
	elapsed        time.Duration
	path           []*gridsearch.Cell
	logger         *slog.Logger

	// wake interrupts a waiting Run after a speed change or a resume.
	wake chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithStepsPerSecond sets the initial speed; out-of-range values are clamped.
func WithStepsPerSecond(stepsPerSecond float64) Option {
	return func(c *Controller) { c.stepsPerSecond = clampSpeed(stepsPerSecond) }
}

// StartPaused makes Run wait for Resume before the first step.
func StartPaused() Option {
	return func(c *Controller) { c.paused = true }
}

// WithLogger sets the logger for run outcomes; slog.Default otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// New wraps stepper. The controller assumes exclusive use of it from now on.
func New(stepper *gridsearch.Stepper, options ...Option) *Controller {
	c := &Controller{
		stepper:        stepper,
		stepsPerSecond: DefaultStepsPerSecond,
		logger:         slog.Default(),
		wake:           make(chan struct{}, 1),
	}
	for _, option := range options {
		option(c)
	}
	c.logger = c.logger.With("component", "runner", "algorithm", stepper.Algorithm().String())
	return c
}

func clampSpeed(stepsPerSecond float64) float64 {
	return min(max(stepsPerSecond, MinStepsPerSecond), MaxStepsPerSecond)
}

// SetSpeed changes the stepping rate. An active Run re-arms its timer at once
// instead of waiting out the old interval.
func (c *Controller) SetSpeed(stepsPerSecond float64) error {
	if stepsPerSecond < MinStepsPerSecond || stepsPerSecond > MaxStepsPerSecond {
		return fmt.Errorf("%w: %v steps/s outside [%v, %v]", ErrInvalidSpeed, stepsPerSecond, MinStepsPerSecond, MaxStepsPerSecond)
	}
	c.mu.Lock()
	c.stepsPerSecond = stepsPerSecond
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Controller) notify() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// StepsPerSecond is the current automatic stepping rate.
func (c *Controller) StepsPerSecond() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepsPerSecond
}

// Interval is the wall-clock gap between two automatic steps.
func (c *Controller) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.StepsPerSecond())
}

// Pause stops automatic steps; StepOnce still works.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume re-enables automatic steps.
func (c *Controller) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
	c.notify()
}

// Paused reports the pause flag.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Status is the wrapped stepper's status.
func (c *Controller) Status() gridsearch.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepper.Status()
}

// Tick performs one automatic step unless paused or finished. It reports
// whether the stepper advanced.
func (c *Controller) Tick() (gridsearch.StepResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stepper.Done() || c.paused {
		return gridsearch.StepResult{Continues: !c.stepper.Done(), Status: c.stepper.Status()}, false, nil
	}
	result, err := c.stepLocked()
	return result, err == nil, err
}

// StepOnce advances a single step regardless of the pause flag, for a
// "next" button. It returns gridsearch.ErrIllegalStep once finished.
func (c *Controller) StepOnce() (gridsearch.StepResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked()
}

func (c *Controller) stepLocked() (gridsearch.StepResult, error) {
	began := time.Now()
	result, err := c.stepper.Step()
	c.elapsed += time.Since(began)
	if err != nil {
		return result, err
	}
	if result.Status == gridsearch.Found {
		path, err := c.stepper.ReconstructPath()
		if err != nil {
			return result, err
		}
		c.path = path
	}
	if result.Status.IsTerminal() {
		stats := c.stepper.Stats()
		c.logger.Info("search finished",
			"status", result.Status.String(),
			"visited", stats.Visited,
			"pathLength", len(c.path),
			"elapsed", c.elapsed)
	}
	return result, nil
}

// Run steps at the configured speed until the search finishes, ctx is done,
// or onFrame fails. While paused the loop keeps ticking but does not step.
// SetSpeed and Resume take effect without waiting for the pending tick.
func (c *Controller) Run(ctx context.Context, onFrame func(Frame) error) error {
	logger := ctxlog.From(ctx)
	interval := c.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Debug("run loop started", "interval", interval)

	for {
		if c.Status().IsTerminal() {
			return nil
		}
		select {
		case <-ctx.Done():
			logger.Debug("run loop canceled", "error", ctx.Err())
			return ctx.Err()
		case <-c.wake:
			if next := c.Interval(); next != interval {
				interval = next
				ticker.Reset(interval)
				logger.Debug("run loop re-timed", "interval", interval)
			}
			continue
		case <-ticker.C:
		}

		_, advanced, err := c.Tick()
		if err != nil {
			return err
		}
		if advanced && onFrame != nil {
			if err := onFrame(c.Frame()); err != nil {
				return err
			}
		}
		if next := c.Interval(); next != interval {
			interval = next
			ticker.Reset(interval)
		}
	}
}

// RunToCompletion steps without any delay, ignoring the pause flag.
func (c *Controller) RunToCompletion(ctx context.Context) (gridsearch.Result, error) {
	for !c.Status().IsTerminal() {
		if err := ctx.Err(); err != nil {
			return gridsearch.Result{}, err
		}
		if _, err := c.StepOnce(); err != nil {
			return gridsearch.Result{}, err
		}
	}
	return c.Result()
}

// Result summarizes a finished run; ErrNoPath when nothing was found.
func (c *Controller) Result() (gridsearch.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := c.stepper.Stats()
	result := gridsearch.Result{ExpandedNodes: stats.Visited, Stats: stats}
	if c.stepper.Status() != gridsearch.Found {
		return result, fmt.Errorf("%w: status is %s", gridsearch.ErrNoPath, c.stepper.Status())
	}
	result.Found = true
	result.Path = gridsearch.Coords(c.path)
	result.Length = len(c.path)
	return result, nil
}

// Reset rewinds the stepper to Ready and clears timing. Speed and pause stay.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stepper.Reset()
	c.elapsed = 0
	c.path = nil
}

// Frame captures the current state for rendering.
func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Frame{
		Snapshot:       c.stepper.Snapshot(),
		Paused:         c.paused,
		StepsPerSecond: c.stepsPerSecond,
		ElapsedMs:      float64(c.elapsed) / float64(time.Millisecond),
		PathLength:     len(c.path),
	}
}
