// Package main implements the main entry point for the CHIP-8 emulator.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/faiface/mainthread"
	"github.com/retroenv/emu8/internal/cli"
	"github.com/retroenv/emu8/internal/config"
	"github.com/retroenv/emu8/internal/fileprocessor"
	"github.com/retroenv/emu8/internal/statsview"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	var exitCode int
	// the SDL front end has to be driven from the main thread
	mainthread.Run(func() {
		exitCode = run()
	})
	os.Exit(exitCode)
}

func run() int {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		return 1
	}

	logger := config.CreateLogger(opts)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if opts.StatsView {
		stop := statsview.Launch(logger, statsview.Address)
		defer stop()
	}

	if err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return 0
		}
		logger.Error("Emulation failed", log.Err(err))
		return 1
	}
	return 0
}
