// Package control implements the run, pause and step controls shared by the
// frontends. All cycles go through the history so that they can be undone.
package control

import (
	"fmt"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/history"
	"github.com/mnafees/chopper/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Controller drives a VM for a frontend.
type Controller struct {
	vm      *internal.C8VM
	history *history.History
	logger  *log.Logger

	paused         bool
	cyclesPerFrame int
	stepCount      int
}

// New returns a controller that runs speed/60 cycles per frame and opts.Step
// cycles per step batch.
func New(vm *internal.C8VM, hist *history.History, logger *log.Logger, opts options.Program) *Controller {
	return &Controller{
		vm:             vm,
		history:        hist,
		logger:         logger,
		cyclesPerFrame: max(1, opts.Speed/internal.TimerFrequency),
		stepCount:      max(1, opts.Step),
	}
}

// Frame runs the cycles of one 60 Hz frame and ticks the timers once. A
// paused machine is left untouched.
func (c *Controller) Frame() error {
	if c.paused {
		return nil
	}
	if err := c.run(c.cyclesPerFrame); err != nil {
		return err
	}
	c.vm.DecrementTimers()
	return nil
}

// TogglePause pauses or resumes the frame loop and returns the new state.
func (c *Controller) TogglePause() bool {
	c.paused = !c.paused
	c.logger.Debug("Pause toggled", log.Bool("paused", c.paused))
	return c.paused
}

// Paused returns whether the frame loop is paused.
func (c *Controller) Paused() bool {
	return c.paused
}

// Step pauses the machine and executes a single cycle.
func (c *Controller) Step() error {
	c.paused = true
	return c.run(1)
}

// StepN pauses the machine and executes the configured step batch.
func (c *Controller) StepN() error {
	c.paused = true
	return c.run(c.stepCount)
}

// Undo reverts the most recent recorded cycle.
func (c *Controller) Undo() bool {
	if !c.history.Undo() {
		return false
	}
	c.logger.Debug("Undid cycle", log.Int("remaining", c.history.Len()))
	return true
}

// Reset restarts the loaded program and drops the undo history.
func (c *Controller) Reset() {
	c.vm.Reset()
	c.history.Clear()
	c.logger.Info("Machine reset")
}

// Status returns a one line summary of the program counter, the address
// register and the instruction that executes next.
func (c *Controller) Status() string {
	next, err := c.vm.NextInstruction()
	if err != nil {
		next = "-"
	}
	line := fmt.Sprintf("PC $%04X  I $%04X  next: %s", c.vm.PC(), c.vm.Registers().I, next)
	if c.paused {
		line += "  [paused]"
	}
	return line
}

// run executes up to n cycles and turns a failed cycle into an error.
// Waiting for a key is not a failure.
func (c *Controller) run(n int) error {
	_, status, err := c.history.StepN(n)
	if status.Failed() {
		return fmt.Errorf("emulation halted (%s): %w", status, err)
	}
	return nil
}
