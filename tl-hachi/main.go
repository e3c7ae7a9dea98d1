/*
	Copyright 2015 Franc[e]sco (lolisamurai@tfwno.gf)
	This file is part of go-hachi.
	go-hachi is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.
	go-hachi is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.
	You should have received a copy of the GNU General Public License
	along with go-hachi. If not, see <http://www.gnu.org/licenses/>.
*/

// Command tl-hachi runs a CHIP-8 program with one of the hachi drivers.
//
//	tl-hachi [options] <program file>
//
// The termloop driver is used by default. When standard output is not a
// terminal the headless driver is used instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hachi-vm/hachi/drivers/sdlplay"
	"github.com/hachi-vm/hachi/drivers/wavrec"
	"github.com/hachi-vm/hachi/hachi"
	"github.com/hachi-vm/hachi/internal/cli"
	"github.com/hachi-vm/hachi/internal/config"
	"github.com/hachi-vm/hachi/internal/diag"
	"github.com/hachi-vm/hachi/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"

	_ "github.com/hachi-vm/hachi/drivers"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(os.Args)
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			config.PrintBanner(os.Stdout, version, commit, date)
			fmt.Fprintf(os.Stderr, "%s\n\n", err)
			usageErr.ShowUsage(os.Stdout)
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	if opts.ListDrivers {
		for _, name := range hachi.Drivers() {
			fmt.Println(name)
		}
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if !opts.Quiet {
		config.PrintBanner(os.Stdout, version, commit, date)
	}

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("Running program failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	if opts.Stats != "" {
		diag.LaunchStats(os.Stdout, opts.Stats)
	}

	settings := opts.Settings(logger)
	m, err := hachi.New(settings)
	if err != nil {
		return fmt.Errorf("initializing machine: %w", err)
	}

	size, err := m.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	program := append([]byte(nil), m.Memory[hachi.ProgramStart:hachi.ProgramStart+int(size)]...)

	drv, closeWav, err := createDriver(logger, opts)
	if err != nil {
		return err
	}
	defer closeWav()

	runner, err := hachi.NewRunner(m, drv, settings)
	if err != nil {
		return fmt.Errorf("initializing runner: %w", err)
	}

	runErr := runner.Run(ctx)
	logger.Info("Program stopped",
		log.Int("frames", runner.Frames()),
		log.String("state", m.String()))

	if opts.Disasm {
		if err := hachi.WriteListing(os.Stdout, hachi.Disassemble(program, hachi.ProgramStart)); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
	}
	if opts.Memviz != "" {
		if err := writeFile(opts.Memviz, func(w io.Writer) { diag.DumpState(w, m) }); err != nil {
			return fmt.Errorf("writing state graph: %w", err)
		}
	}
	return runErr
}

// createDriver creates the driver selected by the options. The returned
// function closes the wav file, if any, after the runner closed the driver.
func createDriver(logger *log.Logger, opts options.Program) (hachi.Driver, func(), error) {
	name := opts.Driver
	if name == options.DefaultDriver && !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Warn("Output is not a terminal, using the headless driver")
		name = "headless"
	}

	drv, err := hachi.NewDriver(name, logger)
	if err != nil {
		return nil, nil, err
	}
	if d, ok := drv.(*sdlplay.Driver); ok {
		d.Scale = opts.Scale
	}

	if opts.Wav == "" {
		return drv, func() {}, nil
	}

	f, err := os.Create(opts.Wav)
	if err != nil {
		return nil, nil, fmt.Errorf("creating wav file: %w", err)
	}
	closeWav := func() {
		if err := f.Close(); err != nil {
			logger.Error("Closing wav file failed", log.Err(err))
		}
	}
	return wavrec.Wrap(drv, f, opts.Rate), closeWav, nil
}

func writeFile(path string, write func(w io.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	write(f)
	return f.Close()
}
