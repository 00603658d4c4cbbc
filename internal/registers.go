package internal

import "fmt"

// Register file constants
const (
	RegisterCount = 16
	FlagRegister  = 0xF // VF receives carry, borrow, shifted out bit and collision results
)

// Registers holds the general purpose registers, the address register and
// the two countdown timers.
type Registers struct {
	V          [RegisterCount]uint8 // V0 - VF
	I          uint16               // address register, 12 significant bits
	DelayTimer uint8                // decremented by the host clock
	SoundTimer uint8                // decremented by the host clock, tone while non zero
}

// Get returns the value of register x.
func (r *Registers) Get(x uint8) (uint8, error) {
	if x >= RegisterCount {
		return 0, fmt.Errorf("register V%d: %w", x, ErrOutOfBounds)
	}
	return r.V[x], nil
}

// Set stores value in register x.
func (r *Registers) Set(x uint8, value uint8) error {
	if x >= RegisterCount {
		return fmt.Errorf("register V%d: %w", x, ErrOutOfBounds)
	}
	r.V[x] = value
	return nil
}

// setFlag writes VF as 1 or 0.
func (r *Registers) setFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
	} else {
		r.V[FlagRegister] = 0
	}
}
