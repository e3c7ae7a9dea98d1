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

	"github.com/retroenv/retrogolib/log"
)

// Settings holds the configuration parameters for a Machine and the Runner
// that drives it.
type Settings struct {
	// Seed for the random number source used by RND. 0 seeds from the clock.
	Seed int64
	// Trace logs every executed instruction at debug level.
	Trace bool
	// Number of instructions executed per frame by the Runner.
	StepsPerFrame int
	// Frames per second paced by the Runner. The original interpreter
	// refreshed at 60hz.
	FrameRate int
	// MaxFrames stops the Runner after that many frames. 0 runs forever.
	MaxFrames int
	// Logger used by the machine and the runner. nil means a default
	// logger.
	Logger *log.Logger
}

// Validate validates the settings.
// Returns an error when the settings aren't valid.
func (s *Settings) Validate() error {
	if s.StepsPerFrame < 1 {
		return fmt.Errorf("StepsPerFrame must be >= 1, got %v", s.StepsPerFrame)
	}
	if s.FrameRate < 1 || s.FrameRate > 1000 {
		return fmt.Errorf("FrameRate must be within 1..1000, got %v", s.FrameRate)
	}
	if s.MaxFrames < 0 {
		return fmt.Errorf("MaxFrames must be >= 0, got %v", s.MaxFrames)
	}
	return nil
}

// DefaultSettings returns settings that run roughly 600 instructions per
// second, which suits most programs written for the original interpreter.
func DefaultSettings() *Settings {
	return &Settings{
		StepsPerFrame: 10,
		FrameRate:     60,
	}
}

func (s *Settings) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.NewWithConfig(log.DefaultConfig())
}
