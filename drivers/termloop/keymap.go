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

package termloop

import (
	"unicode"

	tl "github.com/JoelOtter/termloop"
	"github.com/hachi-vm/hachi/hachi"
)

// runeKeys lays the hex keyboard of the COSMAC VIP over the left side of a
// QWERTY keyboard:
//
//	1 2 3 C    1 2 3 4
//	4 5 6 D    q w e r
//	7 8 9 E    a s d f
//	A 0 B F    z x c v
var runeKeys = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// 8, 4, 6 and 2 are typically used for directional input.
var specialKeys = map[tl.Key]uint8{
	tl.KeyArrowUp:    0x8,
	tl.KeyArrowLeft:  0x4,
	tl.KeyArrowRight: 0x6,
	tl.KeyArrowDown:  0x2,
	tl.KeyEnter:      0x5,
}

// keyFor returns the hex key mapped to a termloop key event.
func keyFor(ev tl.Event) (uint8, bool) {
	if ev.Type != tl.EventKey {
		return 0, false
	}
	if ev.Ch != 0 {
		key, ok := runeKeys[unicode.ToLower(ev.Ch)]
		return key, ok
	}
	key, ok := specialKeys[ev.Key]
	return key, ok
}

// keyNames lists the pressed keys as hex digits.
func keyNames(keys [hachi.NumKeys]bool) string {
	names := make([]byte, 0, hachi.NumKeys)
	for key, down := range keys {
		if down {
			names = append(names, "0123456789ABCDEF"[key])
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return string(names)
}
