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

// Package headless implements a driver without input or display, for
// running programs from scripts and pipes. The final screen is written as
// text when the driver is closed.
package headless

import (
	"fmt"
	"io"
	"os"

	"github.com/hachi-vm/hachi/hachi"
	"github.com/retroenv/retrogolib/log"
)

// Runes used for lit and unlit display cells.
const (
	On  = '#'
	Off = '.'
)

// A Driver counts frames and tones and dumps the display on Close.
type Driver struct {
	w      io.Writer
	logger *log.Logger
	m      *hachi.Machine

	Screens int
	Beeps   int
}

// New returns a headless driver that writes the final screen to w.
func New(w io.Writer, logger *log.Logger) *Driver {
	return &Driver{w: w, logger: logger}
}

func (d *Driver) OnInit(m *hachi.Machine) error {
	d.m = m
	d.logger.Info("Headless driver initialized")
	return nil
}

func (d *Driver) OnUpdate(m *hachi.Machine) error { return nil }

func (d *Driver) UpdateScreen(m *hachi.Machine) { d.Screens++ }

func (d *Driver) Tone(on bool) {
	if on {
		d.Beeps++
	}
}

// Close writes the display and a summary line.
func (d *Driver) Close() error {
	if d.m == nil {
		return nil
	}
	if _, err := io.WriteString(d.w, d.m.ASCII(On, Off)); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	_, err := fmt.Fprintf(d.w, "cycles: %v, screen updates: %v, beeps: %v\n",
		d.m.Cycles, d.Screens, d.Beeps)
	return err
}

// -----------------------------------------------------------------------------

func init() {
	err := hachi.RegisterDriver("headless", func(logger *log.Logger) hachi.Driver {
		return New(os.Stdout, logger)
	})
	if err != nil {
		panic(err)
	}
}
