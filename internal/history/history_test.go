package history

import (
	"errors"
	"testing"

	"github.com/mnafees/chopper/internal"
	"github.com/retroenv/retrogolib/assert"
)

// counter program: ADD V1, 1; JP 0x200
var counterProgram = []byte{0x71, 0x01, 0x12, 0x00}

func newTestHistory(t *testing.T, depth int, program []byte) (*internal.C8VM, *History) {
	t.Helper()
	vm := internal.NewC8VM()
	assert.NoError(t, vm.LoadProgram(program, internal.PCStartAddr))
	return vm, New(vm, depth)
}

func TestUndo(t *testing.T) {
	vm, h := newTestHistory(t, 10, counterProgram)
	initial := vm.Snapshot()

	executed, status, err := h.StepN(4)
	assert.NoError(t, err)
	assert.Equal(t, 4, executed)
	assert.Equal(t, internal.StatusOK, status)
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, uint8(2), vm.Registers().V[1])

	assert.True(t, h.Undo())
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, uint8(2), vm.Registers().V[1])

	assert.True(t, h.Undo())
	assert.Equal(t, uint16(0x200), vm.PC())
	assert.Equal(t, uint8(1), vm.Registers().V[1])

	assert.True(t, h.Undo())
	assert.True(t, h.Undo())
	assert.Equal(t, initial, vm.Snapshot())
	assert.False(t, h.Undo())
	assert.Equal(t, 0, h.Len())
}

func TestDepthLimit(t *testing.T) {
	vm, h := newTestHistory(t, 3, counterProgram)

	_, _, err := h.StepN(10)
	assert.NoError(t, err)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 3, h.Depth())
	assert.Equal(t, uint8(5), vm.Registers().V[1])

	for h.Undo() {
	}
	// the oldest reachable state is the one before cycle 8
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, uint8(4), vm.Registers().V[1])
}

func TestFailedCyclesAreNotRecorded(t *testing.T) {
	// LD V1, 1; RET with an empty stack
	vm, h := newTestHistory(t, 5, []byte{0x61, 0x01, 0x00, 0xEE})

	executed, status, err := h.StepN(3)
	assert.True(t, errors.Is(err, internal.ErrStackUnderflow))
	assert.Equal(t, 1, executed)
	assert.Equal(t, internal.StatusStackUnderflow, status)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestWaitingCyclesAreNotRecorded(t *testing.T) {
	vm, h := newTestHistory(t, 5, []byte{0xF1, 0x0A})

	status, err := h.Step()
	assert.NoError(t, err)
	assert.Equal(t, internal.StatusWaitingForInput, status)
	assert.Equal(t, 0, h.Len())

	vm.PressKey(0x4)
	status, err = h.Step()
	assert.NoError(t, err)
	assert.Equal(t, internal.StatusOK, status)
	assert.Equal(t, 1, h.Len())
}

func TestDisabled(t *testing.T) {
	vm, h := newTestHistory(t, 0, counterProgram)

	_, _, err := h.StepN(2)
	assert.NoError(t, err)
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.Undo())
	assert.Equal(t, uint8(1), vm.Registers().V[1])
}

func TestClear(t *testing.T) {
	_, h := newTestHistory(t, 4, counterProgram)
	_, _, err := h.StepN(2)
	assert.NoError(t, err)

	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.Undo())
}

func TestStepNInvalidCount(t *testing.T) {
	_, h := newTestHistory(t, 4, counterProgram)
	_, _, err := h.StepN(0)
	assert.True(t, errors.Is(err, internal.ErrInvalidCount))
}
