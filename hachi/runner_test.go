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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

// recordingDriver records the calls made by the runner.
type recordingDriver struct {
	inits   int
	updates int
	screens int
	closed  int
	tones   []bool

	// quitAfter makes OnUpdate return ErrQuit on that call, 0 disables it.
	quitAfter int
	// keyAt presses key 0x5 on that call of OnUpdate.
	keyAt int
}

func (d *recordingDriver) OnInit(m *Machine) error {
	d.inits++
	return nil
}

func (d *recordingDriver) OnUpdate(m *Machine) error {
	d.updates++
	if d.updates == d.quitAfter {
		return ErrQuit
	}
	if d.updates == d.keyAt {
		m.SetKey(0x5, true)
	}
	return nil
}

func (d *recordingDriver) UpdateScreen(m *Machine) { d.screens++ }
func (d *recordingDriver) Tone(on bool)            { d.tones = append(d.tones, on) }

func (d *recordingDriver) Close() error {
	d.closed++
	return nil
}

// loopingDriver owns the main loop and runs frames back to back.
type loopingDriver struct {
	recordingDriver
	loops    int
	interval time.Duration
}

func (d *loopingDriver) Loop(ctx context.Context, interval time.Duration, frame func() error) error {
	d.loops++
	d.interval = interval
	for {
		if err := frame(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func runnerSettings(maxFrames int) *Settings {
	s := testSettings()
	s.FrameRate = 1000
	s.MaxFrames = maxFrames
	return s
}

func newTestRunner(t *testing.T, drv Driver, maxFrames int, program ...byte) (*Runner, *Machine) {
	t.Helper()
	m := newTestMachine(t, program...)
	r, err := NewRunner(m, drv, runnerSettings(maxFrames))
	assert.NoError(t, err)
	return r, m
}

func TestNewRunnerInvalidSettings(t *testing.T) {
	m := newTestMachine(t)
	s := testSettings()
	s.FrameRate = 0
	_, err := NewRunner(m, nil, s)
	assert.ErrorContains(t, err, "FrameRate")
}

func TestRunnerFrame(t *testing.T) {
	drv := &recordingDriver{}
	// 200: CLS
	// 202: JP 202
	r, m := newTestRunner(t, drv, 0, 0x00, 0xE0, 0x12, 0x02)

	assert.NoError(t, r.Frame())
	assert.Equal(t, 1, drv.updates)
	assert.Equal(t, 1, drv.screens)
	assert.Equal(t, uint64(10), m.Cycles)
	assert.False(t, m.Drawn)
	assert.Equal(t, 1, r.Frames())

	// nothing drawn in the second frame
	assert.NoError(t, r.Frame())
	assert.Equal(t, 1, drv.screens)
	assert.Equal(t, 2, r.Frames())
}

func TestRunnerMaxFrames(t *testing.T) {
	drv := &recordingDriver{}
	r, m := newTestRunner(t, drv, 5, 0x12, 0x00)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 5, r.Frames())
	assert.Equal(t, uint64(50), m.Cycles)
	assert.Equal(t, 1, drv.inits)
	assert.Equal(t, 1, drv.closed)
}

func TestRunnerDriverQuit(t *testing.T) {
	drv := &recordingDriver{quitAfter: 3}
	r, _ := newTestRunner(t, drv, 0, 0x12, 0x00)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, r.Frames())
	assert.Equal(t, 1, drv.closed)
}

func TestRunnerFault(t *testing.T) {
	drv := &recordingDriver{}
	r, m := newTestRunner(t, drv, 0, 0x00, 0xEE)

	err := r.Run(context.Background())
	var underflow *StackUnderflowErr
	assert.True(t, errors.As(err, &underflow))
	assert.Equal(t, uint16(ProgramStart), m.PC)
	assert.Equal(t, 0, r.Frames())
	assert.Equal(t, 1, drv.closed)
}

func TestRunnerContextCancel(t *testing.T) {
	drv := &recordingDriver{}
	r, _ := newTestRunner(t, drv, 0, 0x12, 0x00)

	ctx, cancel := context.WithCancel(context.Background())
	stop := time.AfterFunc(20*time.Millisecond, cancel)
	defer stop.Stop()

	assert.NoError(t, r.Run(ctx))
	assert.True(t, r.Frames() > 0)
	assert.Equal(t, 1, drv.closed)
}

func TestRunnerTone(t *testing.T) {
	drv := &recordingDriver{}
	// 200: LD V0,0F
	// 202: LD ST,V0
	// 204: JP 204
	r, _ := newTestRunner(t, drv, 0, 0x60, 0x0F, 0xF0, 0x18, 0x12, 0x04)

	// ST is set to 15 in the first frame, the timer then runs out during
	// the second frame
	assert.NoError(t, r.Frame())
	assert.Equal(t, 1, len(drv.tones))
	assert.True(t, drv.tones[0])
	assert.NoError(t, r.Frame())
	assert.Equal(t, 2, len(drv.tones))
	assert.False(t, drv.tones[1])
	assert.NoError(t, r.Frame())
	assert.Equal(t, 2, len(drv.tones))
}

func TestRunnerToneStoppedOnExit(t *testing.T) {
	drv := &recordingDriver{}
	// LD V0,FF; LD ST,V0; JP 204
	r, _ := newTestRunner(t, drv, 1, 0x60, 0xFF, 0xF0, 0x18, 0x12, 0x04)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, len(drv.tones))
	assert.True(t, drv.tones[0])
	assert.False(t, drv.tones[1])
}

func TestRunnerLooper(t *testing.T) {
	drv := &loopingDriver{}
	r, _ := newTestRunner(t, drv, 3, 0x12, 0x00)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 1, drv.loops)
	assert.Equal(t, time.Millisecond, drv.interval)
	assert.Equal(t, 3, r.Frames())
	assert.Equal(t, 1, drv.closed)
}

func TestRunnerWaitKey(t *testing.T) {
	drv := &recordingDriver{keyAt: 3}
	// 200: LD V1,K
	// 202: JP 202
	r, m := newTestRunner(t, drv, 0, 0xF1, 0x0A, 0x12, 0x02)

	assert.NoError(t, r.Frame())
	assert.NoError(t, r.Frame())
	assert.Equal(t, uint16(ProgramStart), m.PC)

	assert.NoError(t, r.Frame())
	assert.Equal(t, uint16(0x202), m.PC)
	assert.Equal(t, uint8(0x5), m.V[1])
}
