package control

import (
	"errors"
	"testing"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/history"
	"github.com/mnafees/chopper/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// counter program: ADD V1, 1; JP 0x200
var counterProgram = []byte{0x71, 0x01, 0x12, 0x00}

func newTestController(t *testing.T, program ...byte) (*Controller, *internal.C8VM) {
	t.Helper()
	vm := internal.NewC8VM()
	assert.NoError(t, vm.LoadProgram(program, internal.PCStartAddr))
	opts := options.Program{Speed: 240, Step: 3}
	return New(vm, history.New(vm, 32), log.NewTestLogger(t), opts), vm
}

func TestFrame(t *testing.T) {
	c, vm := newTestController(t, counterProgram...)
	vm.SetDelayTimer(5)

	assert.NoError(t, c.Frame())
	// 4 cycles per frame
	assert.Equal(t, uint8(2), vm.Registers().V[1])
	assert.Equal(t, uint8(4), vm.DelayTimer())
}

func TestFramePaused(t *testing.T) {
	c, vm := newTestController(t, counterProgram...)
	vm.SetDelayTimer(5)

	assert.True(t, c.TogglePause())
	assert.True(t, c.Paused())
	assert.NoError(t, c.Frame())
	assert.Equal(t, uint16(internal.PCStartAddr), vm.PC())
	assert.Equal(t, uint8(5), vm.DelayTimer())

	assert.False(t, c.TogglePause())
	assert.NoError(t, c.Frame())
	assert.Equal(t, uint8(2), vm.Registers().V[1])
}

func TestFrameFailure(t *testing.T) {
	c, _ := newTestController(t, 0x00, 0xEE)
	err := c.Frame()
	assert.True(t, errors.Is(err, internal.ErrStackUnderflow))
}

func TestFrameWaitingForKey(t *testing.T) {
	c, vm := newTestController(t, 0xF1, 0x0A)
	assert.NoError(t, c.Frame())
	assert.Equal(t, uint16(internal.PCStartAddr), vm.PC())
}

func TestStep(t *testing.T) {
	c, vm := newTestController(t, counterProgram...)

	assert.NoError(t, c.Step())
	assert.True(t, c.Paused())
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, uint8(1), vm.Registers().V[1])

	assert.NoError(t, c.StepN())
	// JP, ADD, JP
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, uint8(2), vm.Registers().V[1])
}

func TestUndoAndReset(t *testing.T) {
	c, vm := newTestController(t, counterProgram...)
	assert.False(t, c.Undo())

	assert.NoError(t, c.StepN())
	assert.True(t, c.Undo())
	assert.Equal(t, uint16(0x200), vm.PC())
	assert.Equal(t, uint8(1), vm.Registers().V[1])

	c.Reset()
	assert.Equal(t, uint16(internal.PCStartAddr), vm.PC())
	assert.Equal(t, uint8(0), vm.Registers().V[1])
	assert.False(t, c.Undo())
}

func TestStatus(t *testing.T) {
	c, _ := newTestController(t, counterProgram...)
	assert.Equal(t, "PC $0200  I $0000  next: ADD V1, $01", c.Status())

	assert.NoError(t, c.Step())
	assert.Equal(t, "PC $0202  I $0000  next: JP $200  [paused]", c.Status())
}
