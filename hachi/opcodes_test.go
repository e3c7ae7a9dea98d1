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
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected Op
	}{
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x1234, OpJp},
		{0x2234, OpCall},
		{0x3A12, OpSeImm},
		{0x4A12, OpSneImm},
		{0x5AB0, OpSeReg},
		{0x6A12, OpLdImm},
		{0x7A12, OpAddImm},
		{0x8AB0, OpLdReg},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAddReg},
		{0x8AB5, OpSub},
		{0x8AB6, OpShr},
		{0x8AB7, OpSubn},
		{0x8ABE, OpShl},
		{0x9AB0, OpSneReg},
		{0xA123, OpLdI},
		{0xB123, OpJpV0},
		{0xCA12, OpRnd},
		{0xDAB5, OpDrw},
		{0xEA9E, OpSkp},
		{0xEAA1, OpSknp},
		{0xFA07, OpLdVxDT},
		{0xFA0A, OpLdVxK},
		{0xFA15, OpLdDTVx},
		{0xFA18, OpLdSTVx},
		{0xFA1E, OpAddI},
		{0xFA29, OpLdF},
		{0xFA33, OpLdB},
		{0xFA55, OpLdIVx},
		{0xFA65, OpLdVxI},
	}

	seen := map[Op]bool{}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Decode(tt.opcode))
		seen[tt.expected] = true
	}
	assert.Equal(t, int(opCount)-1, len(seen))
}

// The family tables only look at the low nibble or byte, so the middle
// nibbles never change the decoded operation.
func TestDecodeIgnoresOperandBits(t *testing.T) {
	assert.Equal(t, OpCls, Decode(0x0000))
	assert.Equal(t, OpCls, Decode(0x0120))
	assert.Equal(t, OpRet, Decode(0x0FFE))
	assert.Equal(t, OpSkp, Decode(0xE09E))
	assert.Equal(t, OpSknp, Decode(0xE0F1))
}

func TestDecodeUnmapped(t *testing.T) {
	for _, opcode := range []uint16{0x0123, 0x8AB8, 0x8ABF, 0xEA00, 0xEA9F, 0xFA00, 0xFAFF} {
		assert.Equal(t, OpInvalid, Decode(opcode))
	}
}

func TestHandlersComplete(t *testing.T) {
	assert.True(t, handlers[OpInvalid] == nil)
	for op := OpInvalid + 1; op < opCount; op++ {
		assert.True(t, handlers[op] != nil)
		assert.NotEmpty(t, opDescriptions[op])
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "CLS", OpCls.String())
	assert.Equal(t, "SUBN", OpSubn.String())
	assert.Equal(t, "???", OpInvalid.String())
	assert.Equal(t, "???", Op(200).String())
	assert.True(t, OpLdVxI.Valid())
	assert.False(t, OpInvalid.Valid())
	assert.False(t, opCount.Valid())
}
