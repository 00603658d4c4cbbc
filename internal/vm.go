package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mnafees/chopper/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 VM constants
const (
	KeyCount       = 16
	TimerFrequency = 60 // timer decrements per second
)

// errWaitingForKey marks an LD Vx, K that found no key down. It never leaves Step.
var errWaitingForKey = errors.New("waiting for key press")

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	state State // everything a snapshot captures

	keys [KeyCount]bool // keypad state, written by the input device

	entry   uint16 // address the last program was loaded at
	program []byte // last loaded program, reloaded by Reset

	drawFlag bool // the display changed since the frontend last looked

	rnd    *rand.Rand
	logger *log.Logger
}

// Option configures a VM at construction.
type Option func(*C8VM)

// WithLogger enables per instruction debug logging and a warning for every
// failed cycle. Whether a failure is fatal is up to the caller.
func WithLogger(logger *log.Logger) Option {
	return func(vm *C8VM) {
		vm.logger = logger
	}
}

// WithRandSource sets the random source used by RND. Use a fixed seed source
// for reproducible runs.
func WithRandSource(src rand.Source) Option {
	return func(vm *C8VM) {
		vm.rnd = rand.New(src)
	}
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM
func NewC8VM(options ...Option) *C8VM {
	vm := &C8VM{
		entry: PCStartAddr,
	}
	for _, option := range options {
		option(vm)
	}
	if vm.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		vm.rnd = rand.New(rand.NewPCG(seed, seed>>32))
	}
	vm.powerOn()
	return vm
}

// powerOn sets every component to its initial state, with the font loaded.
func (vm *C8VM) powerOn() {
	vm.state = State{
		Memory: newMemory(),
		PC:     vm.entry,
	}
	vm.drawFlag = true
}

// LoadProgram copies a raw program image into memory at entry and points the
// program counter at it.
func (vm *C8VM) LoadProgram(data []byte, entry uint16) error {
	if err := vm.state.Memory.load(data, entry); err != nil {
		return err
	}
	vm.entry = entry
	vm.program = append(vm.program[:0], data...)
	vm.state.PC = entry
	return nil
}

// Reset returns the VM to its power on state and reloads the last program.
func (vm *C8VM) Reset() {
	vm.powerOn()
	// the program fitted when it was first loaded
	_ = vm.state.Memory.load(vm.program, vm.entry)
	vm.keys = [KeyCount]bool{}
}

// Step executes a single fetch, decode and execute cycle. Errors are returned
// together with their status and leave the machine unchanged. While an
// LD Vx, K is waiting for a key the program counter does not advance and
// StatusWaitingForInput is returned with a nil error.
func (vm *C8VM) Step() (Status, error) {
	pc := vm.state.PC
	ins, err := Decode(&vm.state.Memory, pc)
	if err != nil {
		return vm.fail(&InstructionError{PC: pc, Err: err})
	}

	if vm.logger != nil {
		vm.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", ins.Opcode),
			log.String("instruction", disasm.Instruction(ins.Opcode)))
	}

	err = vm.execute(ins)
	switch {
	case err == nil:
		return StatusOK, nil
	case errors.Is(err, errWaitingForKey):
		return StatusWaitingForInput, nil
	default:
		return vm.fail(&InstructionError{PC: pc, Opcode: ins.Opcode, Err: err})
	}
}

// StepN executes up to n cycles. It stops early at the first cycle that does
// not complete with StatusOK and returns the number of completed cycles.
func (vm *C8VM) StepN(n int) (int, Status, error) {
	if n <= 0 {
		return 0, StatusOK, fmt.Errorf("%d cycles: %w", n, ErrInvalidCount)
	}
	for i := range n {
		status, err := vm.Step()
		if status != StatusOK {
			return i, status, err
		}
	}
	return n, StatusOK, nil
}

func (vm *C8VM) fail(err *InstructionError) (Status, error) {
	status := statusFor(err)
	if vm.logger != nil {
		vm.logger.Warn("Instruction failed",
			log.Hex("pc", err.PC),
			log.Hex("opcode", err.Opcode),
			log.String("status", status.String()),
			log.Err(err.Err))
	}
	return status, err
}

// NextInstruction returns the mnemonic of the instruction at the program counter.
func (vm *C8VM) NextInstruction() (string, error) {
	ins, err := Decode(&vm.state.Memory, vm.state.PC)
	if err != nil {
		return "", err
	}
	return disasm.Instruction(ins.Opcode), nil
}

// PC returns the program counter.
func (vm *C8VM) PC() uint16 {
	return vm.state.PC
}

// Registers returns a copy of the register file.
func (vm *C8VM) Registers() Registers {
	return vm.state.Registers
}

// StackPointer returns the number of pending subroutine returns.
func (vm *C8VM) StackPointer() int {
	return vm.state.Stack.Pointer()
}

// Pixels returns a copy of the display, row major.
func (vm *C8VM) Pixels() Display {
	return vm.state.Display
}

// IsDrawFlagSet returns whether the display changed since UnsetDrawFlag
func (vm *C8VM) IsDrawFlagSet() bool {
	return vm.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (vm *C8VM) UnsetDrawFlag() {
	vm.drawFlag = false
}

// PressKey marks a keypad key as held down
func (vm *C8VM) PressKey(key uint8) {
	if key < KeyCount {
		vm.keys[key] = true
	}
}

// ReleaseKey marks a keypad key as released
func (vm *C8VM) ReleaseKey(key uint8) {
	if key < KeyCount {
		vm.keys[key] = false
	}
}

// Keys returns the keypad state indexed by key id
func (vm *C8VM) Keys() [KeyCount]bool {
	return vm.keys
}

func (vm *C8VM) isKeyPressed(key uint8) bool {
	return key < KeyCount && vm.keys[key]
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.state.Registers.DelayTimer
}

// SetDelayTimer sets the value of DT
func (vm *C8VM) SetDelayTimer(value uint8) {
	vm.state.Registers.DelayTimer = value
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.state.Registers.SoundTimer
}

// SetSoundTimer sets the value of ST
func (vm *C8VM) SetSoundTimer(value uint8) {
	vm.state.Registers.SoundTimer = value
}

// DecrementTimers counts both timers down by one tick, stopping at zero.
// The host calls it at TimerFrequency.
func (vm *C8VM) DecrementTimers() {
	regs := &vm.state.Registers
	if regs.DelayTimer > 0 {
		regs.DelayTimer--
	}
	if regs.SoundTimer > 0 {
		regs.SoundTimer--
	}
}

// SoundActive returns whether the tone should currently play
func (vm *C8VM) SoundActive() bool {
	return vm.state.Registers.SoundTimer > 0
}
