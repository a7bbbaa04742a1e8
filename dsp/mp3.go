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

package dsp

import (
	"bytes"
	"io"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/emulation"
	"github.com/citrine-emu/citrine/logger"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder services CodecMP3 decode requests. Output is always two
// channels of 16bit PCM; mono input is duplicated into both channels by
// the backend.
type MP3Decoder struct {
	memory emulation.Memory
	sink   AudioSink
	valid  bool
}

// NewMP3Decoder is the preferred method of initialisation for the
// MP3Decoder type.
func NewMP3Decoder(memory emulation.Memory) *MP3Decoder {
	return &MP3Decoder{
		memory: memory,
		valid:  memory != nil,
	}
}

// SetAudioSink attaches a sink that receives a copy of every decoded
// buffer.
func (dec *MP3Decoder) SetAudioSink(sink AudioSink) {
	dec.sink = sink
}

// IsValid implements the Decoder interface.
func (dec *MP3Decoder) IsValid() bool {
	return dec.valid
}

// ProcessRequest implements the Decoder interface.
func (dec *MP3Decoder) ProcessRequest(request BinaryMessage) (BinaryMessage, error) {
	if request.Header.Codec != CodecMP3 {
		return BinaryMessage{}, curated.Errorf("dsp: unsupported codec: %d", uint16(request.Header.Codec))
	}

	switch request.Header.Command {
	case CommandInit:
		return dec.initialise(request), nil
	case CommandDecode:
		return dec.decode(request)
	case CommandUnknown:
		response := request
		response.Header.Result = 0
		return response, nil
	}

	return BinaryMessage{}, curated.Errorf("dsp: unrecognised command: %d", uint16(request.Header.Command))
}

// initialise answers CommandInit. The backend holds no cross-request state
// to discard so initialisation is only an acknowledgement.
func (dec *MP3Decoder) initialise(request BinaryMessage) BinaryMessage {
	response := request
	response.Header.Result = ResultSuccess

	if dec.valid {
		logger.Log(logger.Allow, "dsp", "decoder initialised")
	} else {
		logger.Log(logger.Allow, "dsp", "decoder not available")
	}

	return response
}

// decode answers CommandDecode.
func (dec *MP3Decoder) decode(request BinaryMessage) (BinaryMessage, error) {
	response := BinaryMessage{}
	response.Header.Codec = request.Header.Codec
	response.Header.Command = request.Header.Command
	response.Response.Size = request.Request.Size

	if !dec.valid {
		// programs not shipping compressed audio still issue decode
		// requests. answer them plausibly so they keep running
		response.Response.NumChannels = stubChannels
		response.Response.NumSamples = stubSamples
		return response, nil
	}

	if !checkRegion(request.Request.SrcAddr, int(request.Request.Size)) {
		return BinaryMessage{}, curated.Errorf("dsp: out of bounds source address: %08x", request.Request.SrcAddr)
	}

	src, err := dec.memory.Region(request.Request.SrcAddr, int(request.Request.Size))
	if err != nil {
		return BinaryMessage{}, curated.Errorf("dsp: %v", err)
	}

	backend, err := mp3.NewDecoder(bytes.NewReader(src))
	if err != nil {
		return BinaryMessage{}, curated.Errorf("dsp: %v", err)
	}

	pcm, err := io.ReadAll(backend)
	if err != nil {
		return BinaryMessage{}, curated.Errorf("dsp: %v", err)
	}

	// backend output is interleaved 16bit stereo, least significant byte
	// first
	numSamples := len(pcm) / 4
	interleaved := make([]int16, 0, numSamples*2)
	channels := [stubChannels][]int16{
		make([]int16, 0, numSamples),
		make([]int16, 0, numSamples),
	}
	for i := 0; i < numSamples*2; i++ {
		v := int16(uint16(pcm[i*2]) | uint16(pcm[i*2+1])<<8)
		interleaved = append(interleaved, v)
		channels[i%2] = append(channels[i%2], v)
	}

	response.Response.SampleRate = EncodeSampleRate(backend.SampleRate())
	response.Response.NumChannels = stubChannels
	response.Response.NumSamples = uint32(numSamples)

	for ch, data := range channels {
		if len(data) == 0 {
			continue
		}

		dst := request.Request.DstAddrCh0
		if ch == 1 {
			dst = request.Request.DstAddrCh1
		}

		byteSize := len(data) * 2
		if !checkRegion(dst, byteSize) {
			return BinaryMessage{}, curated.Errorf("dsp: out of bounds destination address: %08x", dst)
		}

		out, err := dec.memory.Region(dst, byteSize)
		if err != nil {
			return BinaryMessage{}, curated.Errorf("dsp: %v", err)
		}
		for i, v := range data {
			out[i*2] = byte(v)
			out[i*2+1] = byte(uint16(v) >> 8)
		}
	}

	if dec.sink != nil && len(interleaved) > 0 {
		err = dec.sink.WriteSamples(interleaved)
		if err != nil {
			logger.Log(logger.Allow, "dsp", err.Error())
		}
	}

	return response, nil
}
