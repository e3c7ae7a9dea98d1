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
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Runner drives a Machine at a fixed pace and keeps a Driver in sync with
// it.
type Runner struct {
	m      *Machine
	drv    Driver
	logger *log.Logger

	stepsPerFrame int
	frameInterval time.Duration
	maxFrames     int

	frames int
	tone   bool
}

// NewRunner creates a runner for m and drv. If settings is nil,
// DefaultSettings will be used.
func NewRunner(m *Machine, drv Driver, s *Settings) (*Runner, error) {
	if s == nil {
		s = DefaultSettings()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if drv == nil {
		drv = NullDriver{}
	}

	return &Runner{
		m:             m,
		drv:           drv,
		logger:        s.logger(),
		stepsPerFrame: s.StepsPerFrame,
		frameInterval: time.Second / time.Duration(s.FrameRate),
		maxFrames:     s.MaxFrames,
	}, nil
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() int { return r.frames }

// Frame runs one frame: input polling, StepsPerFrame instructions, then the
// screen and tone updates. Returns ErrQuit once the frame limit is reached.
func (r *Runner) Frame() error {
	if err := r.drv.OnUpdate(r.m); err != nil {
		return err
	}

	for i := 0; i < r.stepsPerFrame; i++ {
		if err := r.m.Step(); err != nil {
			return err
		}
	}

	if r.m.Drawn {
		r.drv.UpdateScreen(r.m)
		r.m.Drawn = false
	}

	if on := r.m.SoundOn(); on != r.tone {
		r.tone = on
		r.drv.Tone(on)
	}

	r.frames++
	if r.maxFrames > 0 && r.frames >= r.maxFrames {
		return ErrQuit
	}
	return nil
}

// Run runs the machine until the context is cancelled, a driver or the
// frame limit requests a stop, or the machine faults.
// Only a fault or a driver failure is returned as an error.
func (r *Runner) Run(ctx context.Context) (err error) {
	if err = r.drv.OnInit(r.m); err != nil {
		return err
	}
	defer func() {
		if r.tone {
			r.tone = false
			r.drv.Tone(false)
		}
		if cerr := r.drv.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if l, ok := r.drv.(Looper); ok {
		err = l.Loop(ctx, r.frameInterval, r.Frame)
	} else {
		err = r.loop(ctx)
	}

	switch {
	case err == nil, errors.Is(err, ErrQuit), errors.Is(err, context.Canceled):
		r.logger.Debug("Runner stopped", log.Int("frames", r.frames))
		return nil
	default:
		r.logger.Error("Runner stopped", log.Err(err), log.String("state", r.m.String()))
		return err
	}
}

func (r *Runner) loop(ctx context.Context) error {
	ticker := time.NewTicker(r.frameInterval)
	defer ticker.Stop()

	for {
		if err := r.Frame(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
