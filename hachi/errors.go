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
	"errors"
	"fmt"
)

// ErrQuit is returned by drivers and the runner to request an orderly stop.
var ErrQuit = errors.New("quit requested")

// An OutOfMemoryErr is returned upon attempting to load a program that
// exceeds the memory's capacity.
type OutOfMemoryErr struct {
	ProgramSize int64
	Free        int
}

func (e *OutOfMemoryErr) Error() string {
	return fmt.Sprintf("not enough memory (program size: %v, free memory: %v)",
		e.ProgramSize, e.Free)
}

// A StackOverflowErr is returned when a call is made with every stack slot
// already in use. PC is the address of the faulting instruction.
type StackOverflowErr struct {
	PC uint16
}

func (e *StackOverflowErr) Error() string {
	return fmt.Sprintf("stack overflow at %03X (more than %v nested calls)",
		e.PC, StackSize)
}

// A StackUnderflowErr is returned when a return is executed with an empty
// stack. PC is the address of the faulting instruction.
type StackUnderflowErr struct {
	PC uint16
}

func (e *StackUnderflowErr) Error() string {
	return fmt.Sprintf("stack underflow at %03X (return without call)", e.PC)
}
