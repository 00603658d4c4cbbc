// Package history records machine snapshots between cycles so that executed
// cycles can be undone.
package history

import (
	"fmt"

	"github.com/mnafees/chopper/internal"
)

// Machine is the part of the VM the history needs.
type Machine interface {
	Step() (internal.Status, error)
	Snapshot() internal.State
	Restore(state internal.State)
}

// History wraps a machine and keeps the state before each of the most recent
// cycles in a ring buffer. The oldest entry is dropped once depth is reached.
type History struct {
	machine Machine

	states []internal.State
	start  int // index of the oldest entry
	count  int
}

// New returns a history of the given depth for machine. A depth of 0 disables
// recording, Step then only forwards to the machine.
func New(machine Machine, depth int) *History {
	if depth < 0 {
		depth = 0
	}
	return &History{
		machine: machine,
		states:  make([]internal.State, depth),
	}
}

// Step executes one cycle and records the state it started from. Cycles that
// do not complete with StatusOK leave the machine unchanged and are not
// recorded.
func (h *History) Step() (internal.Status, error) {
	if len(h.states) == 0 {
		return h.machine.Step()
	}

	before := h.machine.Snapshot()
	status, err := h.machine.Step()
	if status == internal.StatusOK {
		h.push(before)
	}
	return status, err
}

// StepN executes up to n cycles through Step, stopping at the first cycle
// that does not complete with StatusOK.
func (h *History) StepN(n int) (int, internal.Status, error) {
	if n <= 0 {
		return 0, internal.StatusOK, fmt.Errorf("%d cycles: %w", n, internal.ErrInvalidCount)
	}
	for i := range n {
		status, err := h.Step()
		if status != internal.StatusOK {
			return i, status, err
		}
	}
	return n, internal.StatusOK, nil
}

// Undo restores the state before the most recent recorded cycle. It returns
// false if there is nothing to undo.
func (h *History) Undo() bool {
	if h.count == 0 {
		return false
	}
	h.count--
	idx := (h.start + h.count) % len(h.states)
	h.machine.Restore(h.states[idx])
	h.states[idx] = internal.State{}
	return true
}

// Len returns the number of cycles that can be undone.
func (h *History) Len() int {
	return h.count
}

// Depth returns the maximum number of recorded cycles.
func (h *History) Depth() int {
	return len(h.states)
}

// Clear drops all recorded states.
func (h *History) Clear() {
	for i := range h.states {
		h.states[i] = internal.State{}
	}
	h.start = 0
	h.count = 0
}

func (h *History) push(state internal.State) {
	if h.count < len(h.states) {
		h.states[(h.start+h.count)%len(h.states)] = state
		h.count++
		return
	}
	h.states[h.start] = state
	h.start = (h.start + 1) % len(h.states)
}
