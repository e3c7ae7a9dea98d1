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
	"fmt"
	"sort"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// A Driver connects a Machine to the host: it feeds the keyboard, renders
// the display and plays the tone. The runner calls a driver only between
// two steps, never during one.
// Drivers should be registered by the RegisterDriver function in init().
type Driver interface {
	// Called before the runner starts executing the program.
	OnInit(m *Machine) error
	// Called once per frame before the frame's steps, should be used for
	// input polling and similar tasks. Returning ErrQuit stops the runner.
	OnUpdate(m *Machine) error
	// Called after a frame in which the program modified the display.
	UpdateScreen(m *Machine)
	// Called when the sound timer goes from zero to non-zero (true) and
	// back (false).
	Tone(on bool)
	// Called once when the runner stops.
	Close() error
}

// A Looper is a Driver that owns the main loop, usually because its
// toolkit must run on the main thread. Loop must call frame once every
// interval until frame returns an error or ctx is done, and return that
// error.
type Looper interface {
	Driver
	Loop(ctx context.Context, interval time.Duration, frame func() error) error
}

// A DriverFactory creates a new instance of a driver that logs to logger.
type DriverFactory func(logger *log.Logger) Driver

// -----------------------------------------------------------------------------

var drivers = map[string]DriverFactory{
	"null": func(*log.Logger) Driver { return NullDriver{} },
}

// RegisterDriver registers a driver factory to a name. The driver can then
// be created by NewDriver.
// This is not thread-safe, so don't call it concurrently to NewDriver.
func RegisterDriver(name string, factory DriverFactory) error {
	if drivers[name] != nil {
		return fmt.Errorf("driver %s already exists", name)
	}
	drivers[name] = factory
	return nil
}

// UnregisterDriver unloads a previously registered driver.
// This is not thread-safe, so don't call it concurrently to NewDriver.
func UnregisterDriver(name string) error {
	if drivers[name] == nil {
		return fmt.Errorf("driver %s does not exist", name)
	}
	delete(drivers, name)
	return nil
}

// NewDriver creates a new instance of the driver registered to name. If
// logger is nil, a default logger will be used.
func NewDriver(name string, logger *log.Logger) (Driver, error) {
	factory := drivers[name]
	if factory == nil {
		return nil, fmt.Errorf("driver %s not found", name)
	}
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}
	return factory(logger), nil
}

// Drivers returns the sorted names of all registered drivers.
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// A NullDriver is the default driver, which ignores all calls.
type NullDriver struct{}

func (d NullDriver) OnInit(m *Machine) error   { return nil }
func (d NullDriver) OnUpdate(m *Machine) error { return nil }
func (d NullDriver) UpdateScreen(m *Machine)   {}
func (d NullDriver) Tone(on bool)              {}
func (d NullDriver) Close() error              { return nil }
