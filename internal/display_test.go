package internal

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestClearScreen(t *testing.T) {
	vm := newTestVM(t, 0x00, 0xE0)
	for i := range vm.state.Display {
		vm.state.Display[i] = true
	}
	vm.UnsetDrawFlag()

	status, err := vm.Step()
	assert.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, Display{}, vm.Pixels())
	assert.Equal(t, uint16(PCStartAddr+2), vm.PC())
	assert.True(t, vm.IsDrawFlagSet())
}

func TestDrawClipsAtEdges(t *testing.T) {
	vm := newTestVM(t, 0xD1, 0x24)
	vm.state.Registers.V[1] = 61
	vm.state.Registers.V[2] = 30
	vm.state.Registers.I = 0x300
	copy(vm.state.Memory[0x300:], []uint8{0xF0, 0x60, 0xF0, 0x60})

	status, err := vm.Step()
	assert.NoError(t, err)
	assert.Equal(t, StatusOK, status)

	pixels := vm.Pixels()
	assert.True(t, pixels.Pixel(61, 30))
	assert.True(t, pixels.Pixel(62, 30))
	assert.True(t, pixels.Pixel(63, 30))
	assert.False(t, pixels.Pixel(61, 31))
	assert.True(t, pixels.Pixel(62, 31))
	assert.True(t, pixels.Pixel(63, 31))
	assert.Equal(t, uint8(0), vm.Registers().V[FlagRegister])

	// nothing wrapped around to the left column or the top row
	for x := range ScreenWidth {
		assert.False(t, pixels.Pixel(x, 0))
	}
	for y := range ScreenHeight {
		assert.False(t, pixels.Pixel(0, y))
	}
	set := 0
	for _, px := range pixels {
		if px {
			set++
		}
	}
	assert.Equal(t, 5, set)
}

func TestDrawXorInvolution(t *testing.T) {
	vm := newTestVM(t, 0xD1, 0x25, 0xD1, 0x25)
	vm.state.Registers.V[1] = 10
	vm.state.Registers.V[2] = 12
	vm.state.Registers.I = FontAddress(0x8)
	vm.state.Display[12*ScreenWidth+40] = true
	before := vm.Pixels()

	_, err := vm.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), vm.Registers().V[FlagRegister])
	assert.True(t, vm.Pixels() != before)

	_, err = vm.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), vm.Registers().V[FlagRegister])
	assert.Equal(t, before, vm.Pixels())
}

func TestDrawWrapsStartCoordinates(t *testing.T) {
	vm := newTestVM(t, 0xD1, 0x21)
	vm.state.Registers.V[1] = ScreenWidth + 3
	vm.state.Registers.V[2] = ScreenHeight*2 + 5
	vm.state.Registers.I = 0x300
	vm.state.Memory[0x300] = 0x80

	_, err := vm.Step()
	assert.NoError(t, err)
	pixels := vm.Pixels()
	assert.True(t, pixels.Pixel(3, 5))
	assert.False(t, pixels.Pixel(ScreenWidth+3, 5))
}

func TestDrawCollisionResetsFlag(t *testing.T) {
	vm := newTestVM(t, 0xD1, 0x21)
	vm.state.Registers.I = 0x300
	vm.state.Memory[0x300] = 0x01
	vm.state.Registers.V[FlagRegister] = 1
	vm.state.Display[0] = true // outside the sprite's set bit

	_, err := vm.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), vm.Registers().V[FlagRegister])
	px := vm.Pixels()
	assert.True(t, px.Pixel(0, 0))
	assert.True(t, px.Pixel(7, 0))
}

func TestDrawZeroRows(t *testing.T) {
	vm := newTestVM(t, 0xD1, 0x20)
	vm.state.Registers.V[FlagRegister] = 1

	_, err := vm.Step()
	assert.NoError(t, err)
	assert.Equal(t, Display{}, vm.Pixels())
	assert.Equal(t, uint8(0), vm.Registers().V[FlagRegister])
}

func TestPixelOutsideScreen(t *testing.T) {
	var d Display
	for i := range d {
		d[i] = true
	}
	assert.False(t, d.Pixel(-1, 0))
	assert.False(t, d.Pixel(0, -1))
	assert.False(t, d.Pixel(ScreenWidth, 0))
	assert.False(t, d.Pixel(0, ScreenHeight))
	assert.True(t, d.Pixel(ScreenWidth-1, ScreenHeight-1))
}
