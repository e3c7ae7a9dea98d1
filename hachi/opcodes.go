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

// Op identifies one of the 35 CHIP-8 operations.
type Op uint8

// Operations, named after their pseudo-asm mnemonic and operands.
const (
	OpInvalid Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1nnn
	OpCall       // 2nnn
	OpSeImm      // 3xkk
	OpSneImm     // 4xkk
	OpSeReg      // 5xy0
	OpLdImm      // 6xkk
	OpAddImm     // 7xkk
	OpLdReg      // 8xy0
	OpOr         // 8xy1
	OpAnd        // 8xy2
	OpXor        // 8xy3
	OpAddReg     // 8xy4
	OpSub        // 8xy5
	OpShr        // 8xy6
	OpSubn       // 8xy7
	OpShl        // 8xyE
	OpSneReg     // 9xy0
	OpLdI        // Annn
	OpJpV0       // Bnnn
	OpRnd        // Cxkk
	OpDrw        // Dxyn
	OpSkp        // Ex9E
	OpSknp       // ExA1
	OpLdVxDT     // Fx07
	OpLdVxK      // Fx0A
	OpLdDTVx     // Fx15
	OpLdSTVx     // Fx18
	OpAddI       // Fx1E
	OpLdF        // Fx29
	OpLdB        // Fx33
	OpLdIVx      // Fx55
	OpLdVxI      // Fx65

	opCount
)

var opNames = [opCount]string{
	OpInvalid: "???",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP",
	OpCall:    "CALL",
	OpSeImm:   "SE",
	OpSneImm:  "SNE",
	OpSeReg:   "SE",
	OpLdImm:   "LD",
	OpAddImm:  "ADD",
	OpLdReg:   "LD",
	OpOr:      "OR",
	OpAnd:     "AND",
	OpXor:     "XOR",
	OpAddReg:  "ADD",
	OpSub:     "SUB",
	OpShr:     "SHR",
	OpSubn:    "SUBN",
	OpShl:     "SHL",
	OpSneReg:  "SNE",
	OpLdI:     "LD",
	OpJpV0:    "JP",
	OpRnd:     "RND",
	OpDrw:     "DRW",
	OpSkp:     "SKP",
	OpSknp:    "SKNP",
	OpLdVxDT:  "LD",
	OpLdVxK:   "LD",
	OpLdDTVx:  "LD",
	OpLdSTVx:  "LD",
	OpAddI:    "ADD",
	OpLdF:     "LD",
	OpLdB:     "LD",
	OpLdIVx:   "LD",
	OpLdVxI:   "LD",
}

// String returns the mnemonic of the operation.
func (o Op) String() string {
	if o >= opCount {
		return opNames[OpInvalid]
	}
	return opNames[o]
}

// Valid reports whether o is one of the 35 defined operations.
func (o Op) Valid() bool {
	return o > OpInvalid && o < opCount
}

// The instruction encoding overloads the low bits of four families, so
// decoding is two-level: the leading nibble selects either an operation
// or a family table, and the family table is keyed by the low nibble
// (0x0, 0x8, 0xE) or the low byte (0xF). Unlisted entries stay OpInvalid.

var primaryOps = [16]Op{
	0x1: OpJp,
	0x2: OpCall,
	0x3: OpSeImm,
	0x4: OpSneImm,
	0x5: OpSeReg,
	0x6: OpLdImm,
	0x7: OpAddImm,
	0x9: OpSneReg,
	0xA: OpLdI,
	0xB: OpJpV0,
	0xC: OpRnd,
	0xD: OpDrw,
}

var family0Ops = [16]Op{
	0x0: OpCls,
	0xE: OpRet,
}

var family8Ops = [16]Op{
	0x0: OpLdReg,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSub,
	0x6: OpShr,
	0x7: OpSubn,
	0xE: OpShl,
}

var familyEOps = [16]Op{
	0x1: OpSknp,
	0xE: OpSkp,
}

var familyFOps = [256]Op{
	0x07: OpLdVxDT,
	0x0A: OpLdVxK,
	0x15: OpLdDTVx,
	0x18: OpLdSTVx,
	0x1E: OpAddI,
	0x29: OpLdF,
	0x33: OpLdB,
	0x55: OpLdIVx,
	0x65: OpLdVxI,
}

// Decode returns the operation encoded by an instruction word, or
// OpInvalid when no operation is defined for it.
func Decode(opcode uint16) Op {
	switch opcode >> 12 {
	case 0x0:
		return family0Ops[opcode&0x000F]
	case 0x8:
		return family8Ops[opcode&0x000F]
	case 0xE:
		return familyEOps[opcode&0x000F]
	case 0xF:
		return familyFOps[opcode&0x00FF]
	default:
		return primaryOps[opcode>>12]
	}
}

type handler func(m *Machine) error

// handlers maps every operation to its implementation. OpInvalid has no
// handler and executes as a no-op.
var handlers = [opCount]handler{
	OpCls:    (*Machine).cls,
	OpRet:    (*Machine).ret,
	OpJp:     (*Machine).jp,
	OpCall:   (*Machine).call,
	OpSeImm:  (*Machine).seImm,
	OpSneImm: (*Machine).sneImm,
	OpSeReg:  (*Machine).seReg,
	OpLdImm:  (*Machine).ldImm,
	OpAddImm: (*Machine).addImm,
	OpLdReg:  (*Machine).ldReg,
	OpOr:     (*Machine).or,
	OpAnd:    (*Machine).and,
	OpXor:    (*Machine).xor,
	OpAddReg: (*Machine).addReg,
	OpSub:    (*Machine).sub,
	OpShr:    (*Machine).shr,
	OpSubn:   (*Machine).subn,
	OpShl:    (*Machine).shl,
	OpSneReg: (*Machine).sneReg,
	OpLdI:    (*Machine).ldI,
	OpJpV0:   (*Machine).jpV0,
	OpRnd:    (*Machine).rnd,
	OpDrw:    (*Machine).drw,
	OpSkp:    (*Machine).skp,
	OpSknp:   (*Machine).sknp,
	OpLdVxDT: (*Machine).ldVxDT,
	OpLdVxK:  (*Machine).ldVxK,
	OpLdDTVx: (*Machine).ldDTVx,
	OpLdSTVx: (*Machine).ldSTVx,
	OpAddI:   (*Machine).addI,
	OpLdF:    (*Machine).ldF,
	OpLdB:    (*Machine).ldB,
	OpLdIVx:  (*Machine).ldIVx,
	OpLdVxI:  (*Machine).ldVxI,
}
