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

// Package options contains the options of the tl-hachi command.
package options

import (
	"github.com/hachi-vm/hachi/hachi"
	"github.com/retroenv/retrogolib/log"
)

// Default values of the command line flags.
const (
	DefaultDriver = "termloop"
	DefaultScale  = 10
)

// Program holds the command line options.
type Program struct {
	Input  string // program file to run
	Driver string // registered driver name
	Wav    string // file to record the tone to
	Memviz string // file to write the final state graph to
	Stats  string // address of the runtime statistics server

	Speed  int // instructions per frame
	Rate   int // frames per second
	Frames int // frame limit, 0 is unlimited
	Scale  int // window scale of the sdl driver
	Seed   int64

	Trace       bool
	Debug       bool
	Quiet       bool
	Disasm      bool
	ListDrivers bool
}

// Settings returns the machine settings described by the options.
func (p Program) Settings(logger *log.Logger) *hachi.Settings {
	s := hachi.DefaultSettings()
	s.Seed = p.Seed
	s.Trace = p.Trace
	s.StepsPerFrame = p.Speed
	s.FrameRate = p.Rate
	s.MaxFrames = p.Frames
	s.Logger = logger
	return s
}
