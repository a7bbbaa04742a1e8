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

// Codec identifies the compressed bitstream format of a decode request.
type Codec uint16

// List of valid Codec values.
const (
	CodecNone Codec = iota
	CodecMP3
)

// Command is the operation requested of the decoder.
type Command uint16

// List of valid Command values.
const (
	CommandInit Command = iota
	CommandDecode
	CommandUnknown
)

// Result is the decoder's success indicator, echoed back in the response
// header.
type Result uint32

// List of valid Result values.
const (
	ResultSuccess Result = iota
	ResultError
)

// SampleRate is the encoded sample rate indicator used in decode responses.
type SampleRate uint32

// List of valid SampleRate values.
const (
	SampleRate48000 SampleRate = iota
	SampleRate44100
	SampleRate32000
	SampleRate24000
	SampleRate22050
	SampleRate16000
	SampleRate12000
	SampleRate11025
	SampleRate8000
	SampleRateUnknown
)

// EncodeSampleRate converts a sample rate in Hz to its indicator value.
func EncodeSampleRate(hz int) SampleRate {
	switch hz {
	case 48000:
		return SampleRate48000
	case 44100:
		return SampleRate44100
	case 32000:
		return SampleRate32000
	case 24000:
		return SampleRate24000
	case 22050:
		return SampleRate22050
	case 16000:
		return SampleRate16000
	case 12000:
		return SampleRate12000
	case 11025:
		return SampleRate11025
	case 8000:
		return SampleRate8000
	}
	return SampleRateUnknown
}

// Header is common to every request and response.
type Header struct {
	Codec   Codec
	Command Command
	Result  Result
}

// DecodeRequest locates the compressed bitstream and the two output
// channels in emulated linear memory.
type DecodeRequest struct {
	SrcAddr    uint32
	Size       uint32
	DstAddrCh0 uint32
	DstAddrCh1 uint32
}

// DecodeResponse describes the decoded output.
type DecodeResponse struct {
	SampleRate  SampleRate
	NumChannels uint32
	Size        uint32
	NumSamples  uint32
}

// BinaryMessage is the request/response envelope exchanged with the
// decoder. A request fills Header and Request; the corresponding response
// echoes Header (with Result updated) and fills Response.
type BinaryMessage struct {
	Header   Header
	Request  DecodeRequest
	Response DecodeResponse
}
