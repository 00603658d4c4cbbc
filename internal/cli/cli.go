// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {} // UsageError.ShowUsage prints the usage
	var opts options.Program
	var entry string
	readOptionFlags(flags, &opts, &entry)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}
	if len(args) > 1 {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s after the program file, options have to be passed before it", args[1]),
		}
	}
	opts.Input = args[0]

	if opts.Entry, err = parseEntry(entry); err != nil {
		return opts, err
	}
	if err := validateOptions(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Println(e.msg)
	}
	fmt.Printf("usage: %s [options] <CHIP-8 program>\n\n", filepath.Base(e.flags.Name()))
	e.flags.PrintDefaults()
	fmt.Println()
}

var errInvalidOption = errors.New("invalid option")

// parseEntry accepts a numeric address in any Go integer notation or the
// name of a known program layout.
func parseEntry(s string) (uint16, error) {
	switch strings.ToLower(s) {
	case "", "standard":
		return internal.PCStartAddr, nil
	case "eti":
		return internal.PCStartAddrETI, nil
	}

	value, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("entry address %q: %w", s, errInvalidOption)
	}
	if value < internal.ReservedEnd || value >= internal.TotalMemory || value%2 != 0 {
		return 0, fmt.Errorf("entry address %#x: %w", value, internal.ErrInvalidEntryAddress)
	}
	return uint16(value), nil
}

// validateOptions checks the ranges of numeric options
func validateOptions(opts options.Program) error {
	switch {
	case opts.Speed <= 0:
		return fmt.Errorf("speed %d must be positive: %w", opts.Speed, errInvalidOption)
	case opts.Scale <= 0:
		return fmt.Errorf("scale %d must be positive: %w", opts.Scale, errInvalidOption)
	case opts.Step <= 0:
		return fmt.Errorf("step %d must be positive: %w", opts.Step, errInvalidOption)
	case opts.History < 0:
		return fmt.Errorf("history %d must not be negative: %w", opts.History, errInvalidOption)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, entry *string) {
	flags.StringVar(entry, "entry", "standard", "program entry address, standard (0x200), eti (0x600) or a number")
	flags.IntVar(&opts.Speed, "speed", options.DefaultSpeed, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window pixels per display pixel (SDL only)")
	flags.IntVar(&opts.History, "history", options.DefaultHistory, "number of cycles that can be undone with backspace, 0 disables undo")
	flags.IntVar(&opts.Step, "step", options.DefaultStep, "cycles executed by the step batch key while paused")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number seed, 0 uses a time based seed")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
