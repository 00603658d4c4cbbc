// Package config handles application configuration and setup
package config

import (
	"fmt"
	"math/rand/v2"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/history"
	"github.com/mnafees/chopper/internal/options"
	"github.com/mnafees/chopper/internal/rom"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// PrintBanner logs the application name and version unless quiet mode is set.
func PrintBanner(logger *log.Logger, name string, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

// NewMachine loads the program named in opts and returns a VM running it,
// wrapped in a history of the configured depth.
func NewMachine(logger *log.Logger, opts options.Program) (*internal.C8VM, *history.History, error) {
	data, err := rom.Load(opts.Input, opts.Entry)
	if err != nil {
		return nil, nil, fmt.Errorf("loading program: %w", err)
	}

	vmOptions := []internal.Option{internal.WithLogger(logger)}
	if opts.Seed != 0 {
		vmOptions = append(vmOptions, internal.WithRandSource(rand.NewPCG(opts.Seed, opts.Seed)))
	}
	vm := internal.NewC8VM(vmOptions...)
	if err := vm.LoadProgram(data, opts.Entry); err != nil {
		return nil, nil, fmt.Errorf("loading program: %w", err)
	}

	logger.Info("Program loaded",
		log.String("file", opts.Input),
		log.Int("size", len(data)),
		log.Hex("entry", opts.Entry))

	return vm, history.New(vm, opts.History), nil
}
