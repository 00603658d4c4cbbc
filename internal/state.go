package internal

// State is a complete copy of the machine. It contains only arrays and
// scalars so assigning a State copies it deeply, and a snapshot never aliases
// the live machine.
type State struct {
	Memory    Memory
	Registers Registers
	Stack     Stack
	Display   Display
	PC        uint16
}

// Snapshot returns an independent copy of the machine state. The keypad is
// owned by the input device and is not part of the snapshot.
func (vm *C8VM) Snapshot() State {
	return vm.state
}

// Restore replaces the machine state with a previously captured snapshot.
func (vm *C8VM) Restore(s State) {
	vm.state = s
	vm.drawFlag = true
}
