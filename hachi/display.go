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

import "strings"

// Pixel reports whether the display cell at x, y is lit. Coordinates wrap
// around the screen.
func (m *Machine) Pixel(x, y int) bool {
	x = ((x % Width) + Width) % Width
	y = ((y % Height) + Height) % Height
	return m.Video[y*Width+x] == PixelOn
}

// ASCII renders the display as Height lines of Width runes.
func (m *Machine) ASCII(on, off rune) string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height * 3)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if m.Video[y*Width+x] == PixelOn {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
