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

// CLS
func (m *Machine) cls() error {
	m.Video = [Width * Height]uint32{}
	m.Drawn = true
	return nil
}

// RET
func (m *Machine) ret() error {
	if m.SP == 0 {
		return &StackUnderflowErr{PC: m.PC - 2}
	}
	m.SP--
	m.PC = m.Stack[m.SP]
	return nil
}

// JP NNN
func (m *Machine) jp() error {
	m.PC = m.nnn()
	return nil
}

// CALL NNN
func (m *Machine) call() error {
	if m.SP >= StackSize {
		return &StackOverflowErr{PC: m.PC - 2}
	}
	// push return address
	m.Stack[m.SP] = m.PC
	m.SP++
	m.PC = m.nnn()
	return nil
}

// SE VX,NN
func (m *Machine) seImm() error {
	if m.V[m.x()] == m.kk() {
		m.PC += 2
	}
	return nil
}

// SNE VX,NN
func (m *Machine) sneImm() error {
	if m.V[m.x()] != m.kk() {
		m.PC += 2
	}
	return nil
}

// SE VX,VY
func (m *Machine) seReg() error {
	if m.V[m.x()] == m.V[m.y()] {
		m.PC += 2
	}
	return nil
}

// LD VX,NN
func (m *Machine) ldImm() error {
	m.V[m.x()] = m.kk()
	return nil
}

// ADD VX,NN
// The carry is discarded and VF is left alone.
func (m *Machine) addImm() error {
	m.V[m.x()] += m.kk()
	return nil
}

// LD VX,VY
func (m *Machine) ldReg() error {
	m.V[m.x()] = m.V[m.y()]
	return nil
}

// OR VX,VY
func (m *Machine) or() error {
	m.V[m.x()] |= m.V[m.y()]
	return nil
}

// AND VX,VY
func (m *Machine) and() error {
	m.V[m.x()] &= m.V[m.y()]
	return nil
}

// XOR VX,VY
func (m *Machine) xor() error {
	m.V[m.x()] ^= m.V[m.y()]
	return nil
}

// ADD VX,VY
// The sum is computed before VF is written, and the result is stored
// last, so ADD VF,VY leaves the truncated sum in VF.
func (m *Machine) addReg() error {
	x := m.x()
	sum := uint16(m.V[x]) + uint16(m.V[m.y()])

	// carry flag
	if sum > 0xFF {
		m.V[FlagRegister] = 1
	} else {
		m.V[FlagRegister] = 0
	}

	// only store the 8 least significant bits
	m.V[x] = uint8(sum)
	return nil
}

// SUB VX,VY
// VF = 1 when VX > VY (no borrow). VF is written before the subtraction.
func (m *Machine) sub() error {
	x, y := m.x(), m.y()
	if m.V[x] > m.V[y] {
		m.V[FlagRegister] = 1
	} else {
		m.V[FlagRegister] = 0
	}
	m.V[x] -= m.V[y]
	return nil
}

// SHR VX
// VF gets the least significant bit of VX, then VX is shifted. VY is
// ignored. When X is F the flag write happens first, so VF ends up as
// (VF&1)>>1, i.e. always 0.
func (m *Machine) shr() error {
	x := m.x()
	m.V[FlagRegister] = m.V[x] & 0x01
	m.V[x] >>= 1
	return nil
}

// SUBN VX,VY
// VF = 1 when VY > VX (no borrow). VF is written before the subtraction.
func (m *Machine) subn() error {
	x, y := m.x(), m.y()
	if m.V[y] > m.V[x] {
		m.V[FlagRegister] = 1
	} else {
		m.V[FlagRegister] = 0
	}
	m.V[x] = m.V[y] - m.V[x]
	return nil
}

// SHL VX
// VF gets the most significant bit of VX, then VX is shifted. VY is
// ignored. When X is F the flag write happens first, so VF ends up as
// ((VF&0x80)>>7)<<1.
func (m *Machine) shl() error {
	x := m.x()
	m.V[FlagRegister] = (m.V[x] & 0x80) >> 7
	m.V[x] <<= 1
	return nil
}

// SNE VX,VY
func (m *Machine) sneReg() error {
	if m.V[m.x()] != m.V[m.y()] {
		m.PC += 2
	}
	return nil
}

// LD I,NNN
func (m *Machine) ldI() error {
	m.I = m.nnn()
	return nil
}

// JP V0,NNN
func (m *Machine) jpV0() error {
	m.PC = uint16(m.V[0]) + m.nnn()
	return nil
}

// RND VX,NN (VX = rand() & NN)
func (m *Machine) rnd() error {
	m.V[m.x()] = uint8(m.rng.Intn(256)) & m.kk()
	return nil
}

// DRW VX,VY,N
//
// The origin wraps around the screen, the sprite itself does not: cells
// are addressed linearly from the origin, so columns past the right edge
// spill into the next row. Cells past the end of the buffer are dropped.
func (m *Machine) drw() error {
	xPos := int(m.V[m.x()] % Width)
	yPos := int(m.V[m.y()] % Height)
	rows := int(m.n())

	m.V[FlagRegister] = 0
	for row := 0; row < rows; row++ {
		sprite := m.Memory[(m.I+uint16(row))&addrMask]

		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			index := (yPos+row)*Width + xPos + col
			if index >= len(m.Video) {
				continue
			}

			// collision
			if m.Video[index] == PixelOn {
				m.V[FlagRegister] = 1
			}
			m.Video[index] ^= PixelOn
		}
	}

	m.Drawn = true
	return nil
}

// SKP VX
func (m *Machine) skp() error {
	if m.KeyDown(m.V[m.x()]) {
		m.PC += 2
	}
	return nil
}

// SKNP VX
func (m *Machine) sknp() error {
	if !m.KeyDown(m.V[m.x()]) {
		m.PC += 2
	}
	return nil
}

// LD VX,DT
func (m *Machine) ldVxDT() error {
	m.V[m.x()] = m.DT
	return nil
}

// LD VX,K
// Stores the lowest pressed key in VX. With no key pressed the program
// counter is moved back so the same instruction runs again on the next
// step.
func (m *Machine) ldVxK() error {
	for key := uint8(0); key < NumKeys; key++ {
		if m.Keys[key] {
			m.V[m.x()] = key
			return nil
		}
	}
	m.PC -= 2
	return nil
}

// LD DT,VX
func (m *Machine) ldDTVx() error {
	m.DT = m.V[m.x()]
	return nil
}

// LD ST,VX
func (m *Machine) ldSTVx() error {
	m.ST = m.V[m.x()]
	return nil
}

// ADD I,VX
func (m *Machine) addI() error {
	m.I += uint16(m.V[m.x()])
	return nil
}

// LD I,CHAR VX
func (m *Machine) ldF() error {
	m.I = FontStart + GlyphSize*uint16(m.V[m.x()])
	return nil
}

// LD [I],BCD VX
func (m *Machine) ldB() error {
	value := m.V[m.x()]
	m.Memory[(m.I+2)&addrMask] = value % 10 // ones
	value /= 10
	m.Memory[(m.I+1)&addrMask] = value % 10 // tens
	m.Memory[m.I&addrMask] = value / 10     // hundreds
	return nil
}

// LD [I],VX
// I is left unchanged.
func (m *Machine) ldIVx() error {
	x := m.x()
	for i := uint8(0); i <= x; i++ {
		m.Memory[(m.I+uint16(i))&addrMask] = m.V[i]
	}
	return nil
}

// LD VX,[I]
// I is left unchanged.
func (m *Machine) ldVxI() error {
	x := m.x()
	for i := uint8(0); i <= x; i++ {
		m.V[i] = m.Memory[(m.I+uint16(i))&addrMask]
	}
	return nil
}
