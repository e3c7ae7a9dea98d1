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

// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/hachi-vm/hachi/hachi"
	"github.com/hachi-vm/hachi/internal/options"
)

// ParseFlags parses the command line arguments, args[0] being the program
// name, and returns the program options.
func ParseFlags(args []string) (options.Program, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args[1:]); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if opts.ListDrivers {
		return opts, nil
	}

	rest := flags.Args()
	switch len(rest) {
	case 0:
		return opts, &UsageError{flags: flags, msg: "no program file given"}
	case 1:
		opts.Input = rest[0]
	default:
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s after program file, options must come first", rest[1]),
		}
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

// ShowUsage prints the usage and the flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: tl-hachi [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
	}
	fmt.Fprintln(w)
}

// validateOptions checks the value ranges that the flag package can not.
func validateOptions(opts options.Program) error {
	s := opts.Settings(nil)
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid options: scale must be >= 1, got %v", opts.Scale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	defaults := hachi.DefaultSettings()

	flags.StringVar(&opts.Driver, "driver", options.DefaultDriver, "driver to run the program with, see -list-drivers")
	flags.StringVar(&opts.Wav, "wav", "", "record the sound to the given .wav file")
	flags.StringVar(&opts.Memviz, "memviz", "", "write a Graphviz graph of the final machine state to the given .dot file")
	flags.StringVar(&opts.Stats, "statsview", "", "serve runtime statistics on the given address, for example localhost:12600")
	flags.IntVar(&opts.Speed, "speed", defaults.StepsPerFrame, "instructions executed per frame")
	flags.IntVar(&opts.Rate, "rate", defaults.FrameRate, "frames per second")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after the given number of frames, 0 runs until quit")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window pixels per display pixel for the sdl driver")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 seeds from the clock")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, needs -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the program after running it")
	flags.BoolVar(&opts.ListDrivers, "list-drivers", false, "list the available drivers and exit")
}
