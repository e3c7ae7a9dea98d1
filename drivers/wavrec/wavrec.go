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

// Package wavrec records the tone of a machine to a WAV file. The recorder
// wraps another driver and forwards every call to it.
//
// Audio data is buffered in memory in its entirety and encoded on Close.
package wavrec

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hachi-vm/hachi/hachi"
)

// Output format: 8-bit unsigned mono PCM.
const (
	SampleRate = 44100
	BitDepth   = 8
	Frequency  = 440

	pcmFormat = 1
	silence   = 0x80
	amplitude = 0x40
)

// A Recorder appends one frame of audio each time a frame starts: a square
// wave while the tone is on, silence otherwise. Like a live speaker, a tone
// started at the end of a frame is heard from the next one on.
type Recorder struct {
	hachi.Driver

	w               io.WriteSeeker
	samplesPerFrame int
	tone            bool
	phase           int
	samples         []int
}

type loopingRecorder struct {
	*Recorder
	looper hachi.Looper
}

func (r loopingRecorder) Loop(ctx context.Context, interval time.Duration, frame func() error) error {
	return r.looper.Loop(ctx, interval, frame)
}

// Wrap returns a driver that records the tone to w and forwards every call
// to inner. frameRate must match the rate the runner calls OnUpdate at.
// The returned driver is a hachi.Looper if inner is one.
func Wrap(inner hachi.Driver, w io.WriteSeeker, frameRate int) hachi.Driver {
	if inner == nil {
		inner = hachi.NullDriver{}
	}
	if frameRate < 1 {
		frameRate = 60
	}

	r := &Recorder{
		Driver:          inner,
		w:               w,
		samplesPerFrame: SampleRate / frameRate,
	}
	if l, ok := inner.(hachi.Looper); ok {
		return loopingRecorder{Recorder: r, looper: l}
	}
	return r
}

// OnUpdate polls the inner driver and records the frame about to run.
func (r *Recorder) OnUpdate(m *hachi.Machine) error {
	if err := r.Driver.OnUpdate(m); err != nil {
		return err
	}
	r.record()
	return nil
}

func (r *Recorder) Tone(on bool) {
	r.tone = on
	r.Driver.Tone(on)
}

func (r *Recorder) record() {
	halfPeriod := SampleRate / Frequency / 2
	for i := 0; i < r.samplesPerFrame; i++ {
		if !r.tone {
			r.samples = append(r.samples, silence)
			r.phase = 0
			continue
		}

		if (r.phase/halfPeriod)%2 == 0 {
			r.samples = append(r.samples, silence+amplitude)
		} else {
			r.samples = append(r.samples, silence-amplitude)
		}
		r.phase++
	}
}

// Samples returns the number of recorded samples.
func (r *Recorder) Samples() int { return len(r.samples) }

// Close encodes the recording, then closes the inner driver.
func (r *Recorder) Close() error {
	enc := wav.NewEncoder(r.w, SampleRate, BitDepth, 1, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           r.samples,
		SourceBitDepth: BitDepth,
	}

	werr := enc.Write(buf)
	if werr == nil {
		werr = enc.Close()
	}
	if err := r.Driver.Close(); err != nil {
		return err
	}
	if werr != nil {
		return fmt.Errorf("encoding wav: %w", werr)
	}
	return nil
}
