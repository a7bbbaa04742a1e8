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

// Package dsp services the binary decode requests the emulated machine
// sends to its audio coprocessor. A request names a codec, a command and
// the location of a compressed bitstream in emulated linear memory; the
// decoder writes de-interleaved PCM back to emulated memory and returns a
// response message describing it.
//
// A decoder whose backend failed to construct still answers requests: the
// decode response then claims two channels of 1024 samples without writing
// any. Programs that never ship compressed audio rely on that answer to
// keep running.
package dsp

import (
	"github.com/citrine-emu/citrine/emulation"
)

// AudioSink receives a copy of every decoded sample buffer. The wavwriter
// package provides the only current implementation.
type AudioSink interface {
	// WriteSamples receives decoded PCM, interleaved by channel.
	WriteSamples(samples []int16) error

	// EndMixing is called once, when the decoder is finished with.
	EndMixing() error
}

// Decoder is the interface to a codec backend.
type Decoder interface {
	// ProcessRequest services one binary message. An error means no
	// response is sent at all; a response with Result set to ResultError is
	// a serviced request that failed.
	ProcessRequest(request BinaryMessage) (BinaryMessage, error)

	// IsValid is false when backend construction failed. An invalid decoder
	// still services requests with stub responses.
	IsValid() bool
}

// the number of channels and samples claimed by the stub response of an
// invalid decoder
const (
	stubChannels = 2
	stubSamples  = 1024
)

// checkRegion validates that a request address range lies wholly inside the
// emulated linear memory window.
func checkRegion(address uint32, length int) bool {
	if length < 0 {
		return false
	}
	if address < emulation.LinearMemoryBase {
		return false
	}
	end := uint64(address) + uint64(length)
	return end <= uint64(emulation.LinearMemoryBase)+uint64(emulation.LinearMemorySize)
}
