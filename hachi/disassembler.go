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

package hachi

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var opDescriptions = [opCount]string{
	OpInvalid: "Unknown / Raw Data",
	OpCls:     "00E0: Clears the screen.",
	OpRet:     "00EE: Returns from a subroutine.",
	OpJp:      "1NNN: Jumps to address NNN.",
	OpCall:    "2NNN: Calls subroutine at NNN.",
	OpSeImm:   "3XNN: Skips the next instruction if VX equals NN.",
	OpSneImm:  "4XNN: Skips the next instruction if VX doesn't equal NN.",
	OpSeReg:   "5XY0: Skips the next instruction if VX equals VY.",
	OpLdImm:   "6XNN: Sets VX to NN.",
	OpAddImm:  "7XNN: Adds NN to VX. VF is not affected.",
	OpLdReg:   "8XY0: Sets VX to the value of VY.",
	OpOr:      "8XY1: Sets VX to VX | VY (bit-wise OR).",
	OpAnd:     "8XY2: Sets VX to VX & VY (bit-wise AND).",
	OpXor:     "8XY3: Sets VX to VX ^ VY (bit-wise XOR).",
	OpAddReg:  "8XY4: VX += VY. VF = 1 when there's a carry, 0 when there isn't.",
	OpSub:     "8XY5: VX -= VY. VF = 1 when VX > VY, 0 otherwise.",
	OpShr:     "8XY6: VX >>= 1. VF = least significant bit prior to the shift.",
	OpSubn:    "8XY7: VX = VY - VX. VF = 1 when VY > VX, 0 otherwise.",
	OpShl:     "8XYE: VX <<= 1. VF = most significant bit prior to the shift.",
	OpSneReg:  "9XY0: Skips the next instruction if VX doesn't equal VY.",
	OpLdI:     "ANNN: Sets I to the address NNN.",
	OpJpV0:    "BNNN: Jumps to the address NNN plus V0.",
	OpRnd:     "CXNN: Sets VX to a random number (0-FF) & NN (bit-wise AND).",
	OpDrw:     "DXYN: Draws N rows of sprite pointed by I at VX,VY. VF = collision.",
	OpSkp:     "EX9E: Skips the next instruction if the key stored in VX is pressed.",
	OpSknp:    "EXA1: Skips the next instruction if the key stored in VX isn't pressed.",
	OpLdVxDT:  "FX07: Sets VX to the value of the delay timer.",
	OpLdVxK:   "FX0A: A key press is awaited, and then key number is stored in VX.",
	OpLdDTVx:  "FX15: Sets the delay timer to VX.",
	OpLdSTVx:  "FX18: Sets the sound timer to VX.",
	OpAddI:    "FX1E: Adds VX to I.",
	OpLdF:     "FX29: Sets I to the location of the sprite for the character in VX.",
	OpLdB:     "FX33: Store BCD representation of VX in memory at I, I+1, and I+2.",
	OpLdIVx:   "FX55: Stores V0 to VX in memory starting at address I.",
	OpLdVxI:   "FX65: Fills V0 to VX with values from memory starting at address I.",
}

// An Instruction is a disassembled CHIP-8 instruction, or 1 or 2 bytes of
// data that don't decode to any instruction.
type Instruction struct {
	// Address is where the instruction is located in memory.
	Address uint16
	// Data holds the raw bytes of the instruction.
	Data []byte
	// Op is the decoded operation, OpInvalid for raw data.
	Op Op
}

// Opcode returns the data as a 16-bit integer.
func (i Instruction) Opcode() (res uint16) {
	res = uint16(i.Data[0])
	if len(i.Data) == 2 {
		res <<= 8
		res |= uint16(i.Data[1])
	}
	return
}

// Size returns the size of the instruction in bytes.
func (i Instruction) Size() int { return len(i.Data) }

// Description returns a detailed description of what the instruction does.
func (i Instruction) Description() string { return opDescriptions[i.Op] }

// ASCII returns the ASCII representation of the raw data for this
// instruction, or an empty string if the data is not printable ascii.
func (i Instruction) ASCII() string {
	for _, c := range i.Data {
		if c < 32 || c > 126 {
			return ""
		}
	}
	return string(i.Data)
}

// Canonical reports whether the instruction uses the documented encoding of
// its operation. The interpreter routes some families on a single nibble,
// so for example 0120 executes as CLS although only 00E0 is documented.
func (i Instruction) Canonical() bool {
	if !i.Op.Valid() || len(i.Data) != 2 {
		return false
	}
	word := i.Opcode()
	for _, op := range chip8cpu.Opcodes[int(word>>12)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return strings.EqualFold(op.Instruction.Name, i.Op.String())
		}
	}
	return false
}

// String returns a pseudo-asm representation of the instruction.
func (i Instruction) String() string {
	if !i.Op.Valid() {
		return fmt.Sprintf("DB % 02X", i.Data)
	}
	if params := formatOperands(i.Op, i.Opcode()); params != "" {
		return i.Op.String() + " " + params
	}
	return i.Op.String()
}

func formatOperands(op Op, opcode uint16) string {
	x := (opcode & 0x0F00) >> 8
	y := (opcode & 0x00F0) >> 4
	nnn := opcode & 0x0FFF
	kk := opcode & 0x00FF

	switch op {
	case OpJp, OpCall:
		return fmt.Sprintf("%03X", nnn)
	case OpSeImm, OpSneImm, OpLdImm, OpAddImm, OpRnd:
		return fmt.Sprintf("V%X,%02X", x, kk)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("V%X,V%X", x, y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("V%X", x)
	case OpLdI:
		return fmt.Sprintf("I,%03X", nnn)
	case OpJpV0:
		return fmt.Sprintf("V0,%03X", nnn)
	case OpDrw:
		return fmt.Sprintf("V%X,V%X,%X", x, y, opcode&0x000F)
	case OpLdVxDT:
		return fmt.Sprintf("V%X,DT", x)
	case OpLdVxK:
		return fmt.Sprintf("V%X,K", x)
	case OpLdDTVx:
		return fmt.Sprintf("DT,V%X", x)
	case OpLdSTVx:
		return fmt.Sprintf("ST,V%X", x)
	case OpAddI:
		return fmt.Sprintf("I,V%X", x)
	case OpLdF:
		return fmt.Sprintf("F,V%X", x)
	case OpLdB:
		return fmt.Sprintf("B,V%X", x)
	case OpLdIVx:
		return fmt.Sprintf("[I],V%X", x)
	case OpLdVxI:
		return fmt.Sprintf("V%X,[I]", x)
	}
	return ""
}

// -----------------------------------------------------------------------------

// Disassemble decodes b as a linear sequence of 2-byte instructions located
// at origin. It cannot recognize data regions or odd-aligned code: data
// shows up as whatever it happens to decode to, and a trailing odd byte is
// returned as 1 byte of raw data.
func Disassemble(b []byte, origin uint16) []Instruction {
	res := make([]Instruction, 0, (len(b)+1)/2)
	for i := 0; i < len(b); i += 2 {
		in := Instruction{Address: origin + uint16(i)}
		if i+1 == len(b) {
			in.Data = b[i : i+1]
		} else {
			in.Data = b[i : i+2]
			in.Op = Decode(in.Opcode())
		}
		res = append(res, in)
	}
	return res
}

// WriteListing writes a tab aligned listing of the instructions to w.
func WriteListing(w io.Writer, ins []Instruction) error {
	tw := tabwriter.NewWriter(w, 8, 8, 0, '\t', 0)
	fmt.Fprintln(tw, "addr\topcode\tpseudo-code\tascii\tdescription\t")

	for _, i := range ins {
		asciitext := ""
		if ascii := i.ASCII(); len(ascii) != 0 {
			asciitext = fmt.Sprintf("`%s`", ascii)
		}

		opcodeFormatter := "%04X"
		if i.Size() == 1 {
			opcodeFormatter = "%02X"
		}

		description := i.Description()
		if i.Op.Valid() && !i.Canonical() {
			description += " (non-canonical encoding)"
		}

		fmt.Fprintf(tw, "%04X\t"+opcodeFormatter+"\t%v\t%s\t%s\n",
			i.Address, i.Opcode(), i, asciitext, description)
	}

	return tw.Flush()
}
