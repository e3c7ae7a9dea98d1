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

// Package termloop implements a terminal driver on top of the termloop
// library. Next to the display it shows the registers, the call stack and a
// log of display and sound events.
//
// termloop runs its own game loop, so the driver hands data over to it
// through a single panel entity guarded by a mutex. Ctrl+C ends the game
// loop, after which OnUpdate returns hachi.ErrQuit.
package termloop

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/hachi-vm/hachi/hachi"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	// terminals only report key presses, so keys are released after this
	// long without a repeat
	keyTimeout = 100 * time.Millisecond

	eventLines = 10
	screenX    = 20
	screenY    = 5
)

var errNoTerminal = errors.New("stdout is not a terminal")

// isTerminal reports whether termbox can take over the output.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// A Driver is a terminal-based driver that uses the termloop library.
// It shows the current machine state in real time and the screen.
type Driver struct {
	logger *log.Logger
	game   *tl.Game
	done   chan struct{}

	mu      sync.Mutex
	failed  error // set when the game loop could not run
	texts   []*tl.Text
	info    [4]*tl.Text
	stack   [hachi.StackSize]*tl.Text
	events  [eventLines]*tl.Text
	status  *tl.Text
	pixels  [hachi.Width * hachi.Height]*tl.Rectangle
	video   [hachi.Width * hachi.Height]uint32
	pressed map[uint8]time.Time
}

// New returns a termloop driver. The terminal is only taken over by OnInit.
func New(logger *log.Logger) *Driver {
	return &Driver{
		logger:  logger,
		pressed: make(map[uint8]time.Time),
	}
}

// panel is the only entity on the termloop screen. Its methods run on the
// game loop goroutine.
type panel struct{ d *Driver }

func (p panel) Draw(s *tl.Screen) {
	d := p.d
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, text := range d.texts {
		text.Draw(s)
	}
	for i, px := range d.video {
		if px == hachi.PixelOn {
			d.pixels[i].Draw(s)
		}
	}
}

func (p panel) Tick(ev tl.Event) {
	key, ok := keyFor(ev)
	if !ok {
		return
	}
	p.d.mu.Lock()
	p.d.pressed[key] = time.Now()
	p.d.mu.Unlock()
}

func (d *Driver) newText(x, y int, s string) *tl.Text {
	text := tl.NewText(x, y, s, tl.ColorDefault, tl.ColorDefault)
	d.texts = append(d.texts, text)
	return text
}

// OnInit sets up the panes and starts the game loop.
func (d *Driver) OnInit(m *hachi.Machine) error {
	if !isTerminal() {
		return fmt.Errorf("initializing termloop: %w", errNoTerminal)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.game = tl.NewGame()
	d.done = make(chan struct{})

	d.newText(0, 0, "Stack   Events")
	for i := range d.stack {
		d.stack[i] = d.newText(0, i+1, "")
	}
	for i := range d.events {
		d.events[i] = d.newText(8, i+1, "")
	}
	for i := range d.info {
		d.info[i] = d.newText(screenX, i, "")
	}
	d.status = d.newText(screenX, screenY+hachi.Height+1, "Ctrl+C to quit")

	// terminal cells are about twice as tall as wide
	for y := 0; y < hachi.Height; y++ {
		for x := 0; x < hachi.Width; x++ {
			d.pixels[y*hachi.Width+x] = tl.NewRectangle(
				screenX+2*x, screenY+y, 2, 1, tl.ColorWhite)
		}
	}
	d.video = m.Video

	d.game.Screen().AddEntity(panel{d})
	go d.run(d.game.Start)

	d.logger.Info("Termloop driver initialized")
	return nil
}

// run runs the game loop and closes done when it returns. termloop panics
// when the terminal cannot be set up, the panic is kept as the error
// returned by the next OnUpdate.
func (d *Driver) run(start func()) {
	defer close(d.done)
	defer func() {
		if r := recover(); r != nil {
			d.mu.Lock()
			d.failed = fmt.Errorf("running termloop: %v", r)
			d.mu.Unlock()
		}
	}()
	start()
}

// OnUpdate applies the keyboard state and refreshes the state panes.
func (d *Driver) OnUpdate(m *hachi.Machine) error {
	select {
	case <-d.done:
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.failed != nil {
			return d.failed
		}
		return hachi.ErrQuit
	default:
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.applyKeys(m, time.Now())

	d.info[0].SetText(fmt.Sprintf("PC: %04X  I: %04X  SP: %v", m.PC, m.I, m.SP))
	d.info[1].SetText(fmt.Sprintf("V: % 02X", m.V))
	d.info[2].SetText(fmt.Sprintf("DT: %02X  ST: %02X  Cycles: %v", m.DT, m.ST, m.Cycles))
	d.info[3].SetText("Keys: " + keyNames(m.Keys))

	for i, text := range d.stack {
		if i < m.SP {
			text.SetText(fmt.Sprintf("%04X", m.Stack[i]))
		} else {
			text.SetText("")
		}
	}
	return nil
}

// applyKeys forgets presses older than keyTimeout and copies the rest to
// the keypad. Must be called with mu held.
func (d *Driver) applyKeys(m *hachi.Machine, now time.Time) {
	for key, pressed := range d.pressed {
		if now.Sub(pressed) >= keyTimeout {
			delete(d.pressed, key)
		}
	}
	if len(d.pressed) == 0 {
		m.ReleaseKeys()
		return
	}
	for key := uint8(0); key < hachi.NumKeys; key++ {
		_, down := d.pressed[key]
		m.SetKey(key, down)
	}
}

// UpdateScreen hands a copy of the display to the game loop.
func (d *Driver) UpdateScreen(m *hachi.Machine) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.video = m.Video
	d.logEvent("DRW")
}

// Tone logs the sound timer transitions, terminals have no speaker.
func (d *Driver) Tone(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		d.logEvent("BEEP")
	} else {
		d.logEvent("MUTE")
	}
}

// logEvent scrolls the event log. d.mu must be held.
func (d *Driver) logEvent(s string) {
	for i := len(d.events) - 1; i > 0; i-- {
		d.events[i].SetText(d.events[i-1].Text())
	}
	d.events[0].SetText(s)
}

// Close keeps the final state on screen until the game loop is ended with
// Ctrl+C.
func (d *Driver) Close() error {
	if d.game == nil {
		return nil
	}

	select {
	case <-d.done:
	default:
		d.mu.Lock()
		d.status.SetText("Stopped, Ctrl+C to quit")
		d.mu.Unlock()
		<-d.done
	}

	d.logger.Info("Termloop driver closed")
	return nil
}

// -----------------------------------------------------------------------------

func init() {
	err := hachi.RegisterDriver("termloop", func(logger *log.Logger) hachi.Driver {
		return New(logger)
	})
	if err != nil {
		panic(err)
	}
}
