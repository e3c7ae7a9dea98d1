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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 44100
	frequency  = 440
	amplitude  = 0x30

	// length of the audio device buffer in samples
	bufferLength = 512

	// number of square wave periods queued at once, about 34ms
	chunkPeriods = 15
)

// tone plays a square wave on an SDL audio device for as long as it is
// switched on. The device queue is refilled once per frame.
type tone struct {
	id    sdl.AudioDeviceID
	spec  sdl.AudioSpec
	chunk []byte
	on    bool
}

func newTone() (*tone, error) {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  bufferLength,
	}

	t := &tone{}
	var err error
	t.id, err = sdl.OpenAudioDevice("", false, spec, &t.spec, 0)
	if err != nil {
		return nil, err
	}

	half := int(t.spec.Freq) / frequency / 2
	t.chunk = make([]byte, 0, 2*half*chunkPeriods)
	for p := 0; p < chunkPeriods; p++ {
		for i := 0; i < half; i++ {
			t.chunk = append(t.chunk, t.spec.Silence+amplitude)
		}
		for i := 0; i < half; i++ {
			t.chunk = append(t.chunk, t.spec.Silence-amplitude)
		}
	}
	return t, nil
}

// set starts or stops the tone. A failed queue is retried by the next feed.
func (t *tone) set(on bool) {
	t.on = on
	if on {
		_ = t.feed()
	} else {
		sdl.ClearQueuedAudio(t.id)
	}
	sdl.PauseAudioDevice(t.id, !on)
}

// feed keeps at least one chunk queued while the tone is on.
func (t *tone) feed() error {
	if !t.on || sdl.GetQueuedAudioSize(t.id) >= uint32(len(t.chunk)) {
		return nil
	}
	return sdl.QueueAudio(t.id, t.chunk)
}

func (t *tone) close() {
	sdl.CloseAudioDevice(t.id)
}
