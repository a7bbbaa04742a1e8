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
	"testing"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/emulation"
	"github.com/citrine-emu/citrine/test"
)

// stubMemory serves a fixed byte slice as the linear memory window.
type stubMemory struct {
	data []byte
}

func (m *stubMemory) Region(address uint32, length int) ([]byte, error) {
	offset := int(address - emulation.LinearMemoryBase)
	if offset < 0 || offset+length > len(m.data) {
		return nil, curated.Errorf("stub memory: out of range")
	}
	return m.data[offset : offset+length], nil
}

func (m *stubMemory) FlushRegion(_ uint32, _ int) {
}

func TestUnsupportedCodec(t *testing.T) {
	dec := NewMP3Decoder(&stubMemory{})

	_, err := dec.ProcessRequest(BinaryMessage{
		Header: Header{Codec: CodecNone, Command: CommandDecode},
	})
	test.ExpectFailure(t, err)
}

func TestUnrecognisedCommand(t *testing.T) {
	dec := NewMP3Decoder(&stubMemory{})

	_, err := dec.ProcessRequest(BinaryMessage{
		Header: Header{Codec: CodecMP3, Command: Command(99)},
	})
	test.ExpectFailure(t, err)
}

func TestInitAcknowledged(t *testing.T) {
	dec := NewMP3Decoder(&stubMemory{})
	test.ExpectEquality(t, dec.IsValid(), true)

	response, err := dec.ProcessRequest(BinaryMessage{
		Header: Header{Codec: CodecMP3, Command: CommandInit},
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, response.Header.Result, ResultSuccess)
	test.ExpectEquality(t, response.Header.Codec, CodecMP3)
}

func TestUnknownCommandAnswered(t *testing.T) {
	dec := NewMP3Decoder(&stubMemory{})

	response, err := dec.ProcessRequest(BinaryMessage{
		Header: Header{Codec: CodecMP3, Command: CommandUnknown, Result: ResultError},
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, response.Header.Result, Result(0))
}

func TestInvalidDecoderStubResponse(t *testing.T) {
	// a nil memory view leaves the decoder invalid
	dec := NewMP3Decoder(nil)
	test.ExpectEquality(t, dec.IsValid(), false)

	response, err := dec.ProcessRequest(BinaryMessage{
		Header:  Header{Codec: CodecMP3, Command: CommandDecode},
		Request: DecodeRequest{SrcAddr: emulation.LinearMemoryBase, Size: 64},
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, response.Response.NumChannels, uint32(2))
	test.ExpectEquality(t, response.Response.NumSamples, uint32(1024))
	test.ExpectEquality(t, response.Response.Size, uint32(64))
}

func TestDecodeSourceBounds(t *testing.T) {
	dec := NewMP3Decoder(&stubMemory{data: make([]byte, 128)})

	// below the linear memory window
	_, err := dec.ProcessRequest(BinaryMessage{
		Header:  Header{Codec: CodecMP3, Command: CommandDecode},
		Request: DecodeRequest{SrcAddr: emulation.LinearMemoryBase - 4, Size: 64},
	})
	test.ExpectFailure(t, err)

	// straddling the end of the window
	_, err = dec.ProcessRequest(BinaryMessage{
		Header: Header{Codec: CodecMP3, Command: CommandDecode},
		Request: DecodeRequest{
			SrcAddr: emulation.LinearMemoryBase + emulation.LinearMemorySize - 4,
			Size:    64,
		},
	})
	test.ExpectFailure(t, err)
}

func TestDecodeBadBitstream(t *testing.T) {
	// a bitstream with no sync word in it cannot be decoded. the request is
	// in bounds so the failure is the backend's
	dec := NewMP3Decoder(&stubMemory{data: make([]byte, 128)})

	_, err := dec.ProcessRequest(BinaryMessage{
		Header:  Header{Codec: CodecMP3, Command: CommandDecode},
		Request: DecodeRequest{SrcAddr: emulation.LinearMemoryBase, Size: 128},
	})
	test.ExpectFailure(t, err)
}

func TestCheckRegion(t *testing.T) {
	test.ExpectEquality(t, checkRegion(emulation.LinearMemoryBase, 16), true)
	test.ExpectEquality(t, checkRegion(emulation.LinearMemoryBase+emulation.LinearMemorySize-16, 16), true)
	test.ExpectEquality(t, checkRegion(emulation.LinearMemoryBase-1, 16), false)
	test.ExpectEquality(t, checkRegion(emulation.LinearMemoryBase+emulation.LinearMemorySize-15, 16), false)
	test.ExpectEquality(t, checkRegion(emulation.LinearMemoryBase, -1), false)
}
