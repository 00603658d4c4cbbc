// Package main implements the SDL frontend of the chopper CHIP-8 emulator
package main

import (
	"errors"
	"os"

	"github.com/mnafees/chopper/internal/cli"
	"github.com/mnafees/chopper/internal/config"
	"github.com/mnafees/chopper/pkg/sdl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const name = "chopper"

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			config.PrintBanner(logger, name, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	config.PrintBanner(logger, name, opts, version, commit, date)

	vm, hist, err := config.NewMachine(logger, opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	io := sdl.NewIO(vm, hist, logger, opts)
	defer io.Destroy()
	if err := io.SetupWindow("Chopper | CHIP-8 Emulator"); err != nil {
		logger.Error("Setting up window failed", log.Err(err))
		return
	}
	if err := io.Loop(ctx); err != nil {
		logger.Error("Emulation failed", log.Err(err))
	}
}
