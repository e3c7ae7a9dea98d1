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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x60, 0x05, 0x12, 0x02}, 0o644))

	m, err := New(testSettings())
	assert.NoError(t, err)
	m.PC = 0x300

	size, err := m.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), size)
	assert.Equal(t, uint16(ProgramStart), m.PC)
	assert.Equal(t, byte(0x60), m.Memory[ProgramStart])
	assert.Equal(t, byte(0x02), m.Memory[ProgramStart+3])
}

func TestLoadMissingFile(t *testing.T) {
	m, err := New(testSettings())
	assert.NoError(t, err)
	_, err = m.Load(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.ch8")
	assert.NoError(t, os.WriteFile(path, make([]byte, maxProgramSize+1), 0o644))

	m, err := New(testSettings())
	assert.NoError(t, err)
	_, err = m.Load(path)

	var oom *OutOfMemoryErr
	assert.True(t, errors.As(err, &oom))
	assert.Equal(t, int64(maxProgramSize+1), oom.ProgramSize)
	assert.Equal(t, maxProgramSize, oom.Free)
}

func TestLoadRawFillsMemory(t *testing.T) {
	m, err := New(testSettings())
	assert.NoError(t, err)

	program := bytes.Repeat([]byte{0xAB}, maxProgramSize)
	assert.NoError(t, m.LoadRaw(program))
	assert.Equal(t, byte(0xAB), m.Memory[MemorySize-1])

	err = m.LoadRaw(make([]byte, maxProgramSize+1))
	var oom *OutOfMemoryErr
	assert.True(t, errors.As(err, &oom))
}

func TestLoadReader(t *testing.T) {
	m, err := New(testSettings())
	assert.NoError(t, err)

	n, err := m.LoadReader(bytes.NewReader([]byte{0x00, 0xE0}))
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, byte(0xE0), m.Memory[ProgramStart+1])

	// an oversized program leaves memory untouched
	_, err = m.LoadReader(bytes.NewReader(make([]byte, maxProgramSize+10)))
	assert.Error(t, err)
	assert.Equal(t, byte(0xE0), m.Memory[ProgramStart+1])
}
