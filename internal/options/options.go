// Package options contains the program options.
package options

// Defaults for the program options.
const (
	DefaultSpeed   = 700 // instructions per second
	DefaultScale   = 20  // window pixels per CHIP-8 pixel
	DefaultHistory = 600 // undoable cycles
	DefaultStep    = 10  // cycles run by the step batch key
)

// Program options of the emulator frontends.
type Program struct {
	Input string // CHIP-8 program file
	Entry uint16 // load and start address of the program

	Speed   int    // instructions executed per second
	Scale   int    // SDL window pixel size
	History int    // number of undoable cycles, 0 disables undo
	Step    int    // cycles run by the step batch key
	Seed    uint64 // random seed, 0 picks a time based seed

	Debug bool
	Quiet bool
}
