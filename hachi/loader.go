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
	"os"

	"github.com/retroenv/retrogolib/log"
)

const maxProgramSize = MemorySize - ProgramStart

// Load opens a CHIP-8 binary file and loads it into memory.
// Returns the size, in bytes, of the program and an error if any.
func (m *Machine) Load(path string) (size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening program: %w", err)
	}
	defer f.Close()

	// regular files report their size up front, pipes and devices do not
	fi, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("reading program info: %w", err)
	}
	if fi.Mode().IsRegular() && fi.Size() > maxProgramSize {
		return fi.Size(), &OutOfMemoryErr{ProgramSize: fi.Size(), Free: maxProgramSize}
	}

	n, err := m.LoadReader(f)
	if err != nil {
		return int64(n), err
	}
	size = int64(n)
	m.logger.Info("Loaded program",
		log.String("file", path),
		log.Int("bytes", int(size)))
	return size, nil
}

// LoadRaw loads a byte array as a CHIP-8 binary into memory.
func (m *Machine) LoadRaw(program []byte) error {
	if len(program) > maxProgramSize {
		return &OutOfMemoryErr{ProgramSize: int64(len(program)), Free: maxProgramSize}
	}
	copy(m.Memory[ProgramStart:], program)
	m.PC = ProgramStart
	return nil
}

// LoadReader reads a whole CHIP-8 binary from r into memory. Memory is
// only modified when the complete program fits.
func (m *Machine) LoadReader(r io.Reader) (int, error) {
	// one byte more than the capacity to detect oversized programs
	program, err := io.ReadAll(io.LimitReader(r, maxProgramSize+1))
	if err != nil {
		return 0, fmt.Errorf("reading program: %w", err)
	}
	if err := m.LoadRaw(program); err != nil {
		return 0, err
	}
	return len(program), nil
}
