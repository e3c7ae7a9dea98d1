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

// Package hachi implements a CHIP-8 virtual machine, the drivers interface
// used to plug it into a display, keyboard and speaker, and a disassembler.
package hachi

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Memory layout and machine dimensions.
const (
	MemorySize   = 0x1000
	ProgramStart = 0x200
	FontStart    = 0x050
	StackSize    = 16
	NumRegisters = 16
	NumKeys      = 16
	Width        = 64
	Height       = 32

	// PixelOn is the value of a lit display cell. Unlit cells are 0.
	PixelOn uint32 = 0xFFFFFFFF

	// FlagRegister is the index of VF, the carry/borrow/collision flag.
	FlagRegister = 0xF

	addrMask = MemorySize - 1
)

// Fontset is the glyph table for the hexadecimal digits 0-F. Each glyph is
// 5 rows of 4 pixels, stored in the high nibble of each byte.
var Fontset = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// GlyphSize is the number of bytes per glyph in the font table.
const GlyphSize = 5

// Machine holds the state of a CHIP-8 virtual machine.
//
// All fields are mutated only by Step and the load functions. Drivers may
// read them and update Keys between two calls to Step, never during one.
type Machine struct {
	// The memory where programs are loaded and executed.
	// Programs start at 0x200 because the original interpreter occupied
	// the first 512 bytes.
	Memory [MemorySize]byte
	// V[0x0]~V[0xF] are 8-bit registers. V[0xF] doubles as the carry,
	// borrow and collision flag.
	V [NumRegisters]uint8
	// 16-bit address register. Used for memory operations.
	I uint16
	// Program counter. Holds the address of the next instruction.
	PC uint16
	// The call stack, which holds return addresses, and the number of
	// addresses currently pushed.
	Stack [StackSize]uint16
	SP    int
	// Timers. Both count down once per Step while non-zero.
	// DT is intended for timing events in games, while ST makes a beeping
	// sound as long as its value is non-zero.
	DT uint8
	ST uint8
	// Keys is the state of the hex keyboard. 8, 4, 6 and 2 are typically
	// used for directional input.
	Keys [NumKeys]bool
	// Video is the 64x32 display, row major. A cell is either 0 or PixelOn.
	Video [Width * Height]uint32
	// Opcode is the instruction word currently being executed.
	Opcode uint16
	// Drawn is set by CLS and DRW. Consumers clear it after rendering.
	Drawn bool
	// Cycles counts completed steps.
	Cycles uint64

	rng    *rand.Rand
	trace  bool
	logger *log.Logger
}

// New initializes a new Machine with the given settings. If settings is
// nil, DefaultSettings will be used.
func New(s *Settings) (*Machine, error) {
	if s == nil {
		s = DefaultSettings()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Machine{
		rng:    rand.New(rand.NewSource(seed)),
		trace:  s.Trace,
		logger: s.logger(),
	}
	m.Reset()
	return m, nil
}

// Reset puts the machine back into its power-on state: registers, timers,
// stack, keys and display cleared, memory zeroed except for the font
// table, and the program counter at ProgramStart.
func (m *Machine) Reset() {
	m.Memory = [MemorySize]byte{}
	copy(m.Memory[FontStart:], Fontset[:])
	m.V = [NumRegisters]uint8{}
	m.I = 0
	m.PC = ProgramStart
	m.Stack = [StackSize]uint16{}
	m.SP = 0
	m.DT, m.ST = 0, 0
	m.Keys = [NumKeys]bool{}
	m.Video = [Width * Height]uint32{}
	m.Opcode = 0
	m.Drawn = false
	m.Cycles = 0
}

// String returns formatted information about the state of the machine.
func (m *Machine) String() string {
	return fmt.Sprintf("Machine{Registers: [% 02X] I: %04X, "+
		"Stack: % 04X, SP: %v, PC: %04X, DT: %02X, ST: %02X, "+
		"Opcode: %04X, Cycles: %v}",
		m.V, m.I, m.Stack[:m.SP], m.SP, m.PC, m.DT, m.ST, m.Opcode, m.Cycles)
}

// Step fetches, decodes and executes one instruction, then decrements the
// timers. Unknown instructions are skipped without error.
//
// The only errors are stack faults. On a fault the program counter points
// at the faulting instruction and the timers are left untouched.
func (m *Machine) Step() error {
	pc := m.PC
	m.Opcode = uint16(m.Memory[pc&addrMask])<<8 | uint16(m.Memory[(pc+1)&addrMask])
	m.PC += 2

	op := Decode(m.Opcode)
	if m.trace {
		m.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", m.Opcode),
			log.String("op", op.String()))
	}

	if h := handlers[op]; h != nil {
		if err := h(m); err != nil {
			m.PC = pc
			return err
		}
	}

	if m.DT > 0 {
		m.DT--
	}
	if m.ST > 0 {
		m.ST--
	}
	m.Cycles++
	return nil
}

// operand fields of the current instruction word

func (m *Machine) x() uint8    { return uint8(m.Opcode>>8) & 0x0F }
func (m *Machine) y() uint8    { return uint8(m.Opcode>>4) & 0x0F }
func (m *Machine) n() uint8    { return uint8(m.Opcode) & 0x0F }
func (m *Machine) kk() uint8   { return uint8(m.Opcode) }
func (m *Machine) nnn() uint16 { return m.Opcode & 0x0FFF }

// SetKey updates the state of a key. Only the low nibble of key is used.
func (m *Machine) SetKey(key uint8, down bool) {
	m.Keys[key&0x0F] = down
}

// KeyDown reports whether a key is pressed. Only the low nibble of key is
// used.
func (m *Machine) KeyDown(key uint8) bool {
	return m.Keys[key&0x0F]
}

// ReleaseKeys releases every key.
func (m *Machine) ReleaseKeys() {
	m.Keys = [NumKeys]bool{}
}

// SoundOn reports whether the speaker should currently be beeping.
func (m *Machine) SoundOn() bool {
	return m.ST > 0
}
