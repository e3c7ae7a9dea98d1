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

// Package sdlplay implements a windowed driver on top of SDL2, with
// keyboard input and a square-wave tone.
//
// SDL wants its window and event queue serviced from the main thread, so
// importing this package locks the main goroutine to its thread and the
// driver runs the frame loop itself. Start the runner from main.
package sdlplay

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hachi-vm/hachi/hachi"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// DefaultScale is the default size of a CHIP-8 pixel in window pixels.
const DefaultScale = 10

const title = "hachi"

// keys lays the hex keyboard over the left side of a QWERTY keyboard, the
// same way as the terminal driver does.
var keys = map[sdl.Keycode]uint8{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xC,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xD,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xE,
	sdl.K_z: 0xA, sdl.K_x: 0x0, sdl.K_c: 0xB, sdl.K_v: 0xF,

	sdl.K_UP:     0x8,
	sdl.K_LEFT:   0x4,
	sdl.K_RIGHT:  0x6,
	sdl.K_DOWN:   0x2,
	sdl.K_RETURN: 0x5,
}

// A Driver shows the display in a window.
type Driver struct {
	// Scale is the size of a CHIP-8 pixel in window pixels. It must be set
	// before OnInit.
	Scale int

	logger   *log.Logger
	window   *sdl.Window
	renderer *sdl.Renderer
	screen   canvas
	tone     *tone
	rects    []sdl.Rect

	// set after the first failed redraw has been reported
	renderFailed bool
}

// canvas is the part of *sdl.Renderer used to draw a frame.
type canvas interface {
	SetDrawColor(r, g, b, a uint8) error
	Clear() error
	FillRects(rects []sdl.Rect) error
	Present()
}

// New returns an SDL driver. SDL is only initialized by OnInit.
func New(logger *log.Logger) *Driver {
	return &Driver{
		Scale:  DefaultScale,
		logger: logger,
		rects:  make([]sdl.Rect, 0, hachi.Width*hachi.Height),
	}
}

func (d *Driver) OnInit(m *hachi.Machine) error {
	if d.Scale < 1 {
		return fmt.Errorf("invalid scale %v", d.Scale)
	}

	if err := sdl.Init(uint32(sdl.INIT_VIDEO) | uint32(sdl.INIT_AUDIO)); err != nil {
		return fmt.Errorf("initializing sdl: %w", err)
	}

	var err error
	d.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(hachi.Width*d.Scale), int32(hachi.Height*d.Scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}

	d.renderer, err = sdl.CreateRenderer(d.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		_ = d.window.Destroy()
		sdl.Quit()
		return fmt.Errorf("creating renderer: %w", err)
	}
	d.screen = d.renderer

	// a missing audio device is not fatal
	d.tone, err = newTone()
	if err != nil {
		d.logger.Warn("Sound disabled", log.Err(err))
	}

	d.UpdateScreen(m)
	d.logger.Info("SDL driver initialized",
		log.Int("width", hachi.Width*d.Scale),
		log.Int("height", hachi.Height*d.Scale))
	return nil
}

// OnUpdate drains the SDL event queue and keeps the tone fed. Escape or
// closing the window stops the runner.
func (d *Driver) OnUpdate(m *hachi.Machine) error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return hachi.ErrQuit

		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				return hachi.ErrQuit
			}
			key, ok := keys[ev.Keysym.Sym]
			if !ok {
				continue
			}
			switch ev.Type {
			case sdl.KEYDOWN:
				m.SetKey(key, true)
			case sdl.KEYUP:
				m.SetKey(key, false)
			}
		}
	}

	if d.tone != nil {
		if err := d.tone.feed(); err != nil {
			return fmt.Errorf("queueing audio: %w", err)
		}
	}
	return nil
}

// UpdateScreen redraws the whole window. Only the first renderer failure
// is logged, later frames keep trying.
func (d *Driver) UpdateScreen(m *hachi.Machine) {
	scale := int32(d.Scale)
	d.rects = d.rects[:0]
	for y := 0; y < hachi.Height; y++ {
		for x := 0; x < hachi.Width; x++ {
			if m.Video[y*hachi.Width+x] != hachi.PixelOn {
				continue
			}
			d.rects = append(d.rects, sdl.Rect{
				X: int32(x) * scale,
				Y: int32(y) * scale,
				W: scale,
				H: scale,
			})
		}
	}

	err := d.draw()
	d.screen.Present()
	if err != nil && !d.renderFailed {
		d.renderFailed = true
		d.logger.Warn("Rendering frame failed", log.Err(err))
	}
}

func (d *Driver) draw() error {
	if err := d.screen.SetDrawColor(0, 0, 0, 255); err != nil {
		return fmt.Errorf("setting background color: %w", err)
	}
	if err := d.screen.Clear(); err != nil {
		return fmt.Errorf("clearing screen: %w", err)
	}
	if len(d.rects) == 0 {
		return nil
	}
	if err := d.screen.SetDrawColor(255, 255, 255, 255); err != nil {
		return fmt.Errorf("setting pixel color: %w", err)
	}
	if err := d.screen.FillRects(d.rects); err != nil {
		return fmt.Errorf("drawing pixels: %w", err)
	}
	return nil
}

func (d *Driver) Tone(on bool) {
	if d.tone != nil {
		d.tone.set(on)
	}
}

// Loop runs frames on the calling thread, correcting the sleep time for
// the time spent in the frame. When a frame overruns the schedule is reset
// instead of running frames back to back.
func (d *Driver) Loop(ctx context.Context, interval time.Duration, frame func() error) error {
	next := time.Now()
	for {
		if err := frame(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		next = next.Add(interval)
		if wait := time.Until(next); wait > 0 {
			time.Sleep(wait)
		} else {
			next = time.Now()
		}
	}
}

func (d *Driver) Close() error {
	if d.tone != nil {
		d.tone.close()
	}
	if d.renderer != nil {
		_ = d.renderer.Destroy()
	}
	if d.window != nil {
		if err := d.window.Destroy(); err != nil {
			return fmt.Errorf("destroying window: %w", err)
		}
	}
	sdl.Quit()

	d.logger.Info("SDL driver closed")
	return nil
}

// -----------------------------------------------------------------------------

func init() {
	runtime.LockOSThread()

	err := hachi.RegisterDriver("sdl", func(logger *log.Logger) hachi.Driver {
		return New(logger)
	})
	if err != nil {
		panic(err)
	}
}
