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

// Package diag contains optional diagnostics: a live runtime statistics
// page and a Graphviz graph of the machine state.
package diag

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hachi-vm/hachi/hachi"
)

const statsURL = "/debug/statsview"

// LaunchStats starts a statsview server on addr in a new goroutine and
// reports its URL to output.
func LaunchStats(output io.Writer, addr string) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", addr, statsURL)
}

// A Snapshot is the machine state without memory and display.
type Snapshot struct {
	PC     uint16
	I      uint16
	SP     int
	Stack  []uint16
	V      [hachi.NumRegisters]uint8
	DT     uint8
	ST     uint8
	Opcode uint16
	Op     string
	Keys   []uint8
	Lit    int
	Cycles uint64
}

// Snap captures the state of m. Only the used part of the stack and the
// pressed keys are kept.
func Snap(m *hachi.Machine) *Snapshot {
	s := &Snapshot{
		PC:     m.PC,
		I:      m.I,
		SP:     m.SP,
		Stack:  append([]uint16(nil), m.Stack[:m.SP]...),
		V:      m.V,
		DT:     m.DT,
		ST:     m.ST,
		Opcode: m.Opcode,
		Op:     hachi.Decode(m.Opcode).String(),
		Cycles: m.Cycles,
	}
	for key, down := range m.Keys {
		if down {
			s.Keys = append(s.Keys, uint8(key))
		}
	}
	for _, px := range m.Video {
		if px == hachi.PixelOn {
			s.Lit++
		}
	}
	return s
}

// DumpState writes a Graphviz graph of the state of m to w.
func DumpState(w io.Writer, m *hachi.Machine) {
	memviz.Map(w, Snap(m))
}
