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
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// A FIFO reports a size of 0, the loaded size must come from the data read.
func TestLoadFromPipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.fifo")
	assert.NoError(t, syscall.Mkfifo(path, 0o600))

	program := []byte{0x60, 0x05, 0x70, 0x03, 0x12, 0x04}
	written := make(chan error, 1)
	go func() {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			written <- err
			return
		}
		_, err = f.Write(program)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		written <- err
	}()

	m, err := New(testSettings())
	assert.NoError(t, err)
	size, err := m.Load(path)
	assert.NoError(t, err)
	assert.NoError(t, <-written)

	assert.Equal(t, int64(len(program)), size)
	assert.Equal(t, byte(0x60), m.Memory[ProgramStart])
	assert.Equal(t, byte(0x04), m.Memory[ProgramStart+5])
}
