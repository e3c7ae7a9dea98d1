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

package headless

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hachi-vm/hachi/hachi"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ErrorLevel
	return log.NewWithConfig(cfg)
}

func TestHeadlessRun(t *testing.T) {
	s := hachi.DefaultSettings()
	s.Seed = 1
	s.FrameRate = 1000
	s.MaxFrames = 2
	s.Logger = quietLogger()

	m, err := hachi.New(s)
	assert.NoError(t, err)
	// 200: LD I,050 (glyph 0)
	// 202: DRW V0,V0,5
	// 204: LD V1,30
	// 206: LD ST,V1
	// 208: JP 208
	assert.NoError(t, m.LoadRaw([]byte{
		0xA0, 0x50, 0xD0, 0x05, 0x61, 0x30, 0xF1, 0x18, 0x12, 0x08,
	}))

	var buf bytes.Buffer
	drv := New(&buf, quietLogger())
	r, err := hachi.NewRunner(m, drv, s)
	assert.NoError(t, err)
	assert.NoError(t, r.Run(context.Background()))

	assert.Equal(t, 1, drv.Screens)
	assert.Equal(t, 1, drv.Beeps)

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, hachi.Height+2, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "####...."))
	assert.True(t, strings.HasPrefix(lines[1], "#..#...."))
	assert.Equal(t, hachi.Width, len(lines[0]))
	assert.Equal(t, "cycles: 20, screen updates: 1, beeps: 1", lines[hachi.Height])
}

func TestHeadlessRegistered(t *testing.T) {
	drv, err := hachi.NewDriver("headless", quietLogger())
	assert.NoError(t, err)
	_, ok := drv.(*Driver)
	assert.True(t, ok)
}

func TestHeadlessCloseWithoutInit(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, New(&buf, quietLogger()).Close())
	assert.Equal(t, 0, buf.Len())
}
