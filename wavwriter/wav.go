// This file is part of Citrine.
//
// Citrine is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Citrine is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Citrine.  If not, see <https://www.gnu.org/licenses/>.

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirety, and written to disk
// on program end. It is therefore probably only suitable for testing purposes.
package wavwriter

import (
	"os"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/logger"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavWriter implements the dsp.AudioSink interface.
type WavWriter struct {
	filename    string
	sampleRate  int
	numChannels int
	buffer      []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, sampleRate int, numChannels int) (*WavWriter, error) {
	if sampleRate <= 0 || numChannels <= 0 {
		return nil, curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	aw := &WavWriter{
		filename:    filename,
		sampleRate:  sampleRate,
		numChannels: numChannels,
		buffer:      make([]int, 0),
	}

	return aw, nil
}

// WriteSamples implements the dsp.AudioSink interface. Samples are
// interleaved by channel.
func (aw *WavWriter) WriteSamples(samples []int16) error {
	for _, s := range samples {
		aw.buffer = append(aw.buffer, int(s))
	}
	return nil
}

// EndMixing implements the dsp.AudioSink interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, 16, aw.numChannels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: aw.numChannels,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	}

	err = enc.Write(buf)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	err = enc.Close()
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Logf(logger.Allow, "wavwriter", "audio written to %s", aw.filename)

	return nil
}
