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

package emulation

// Physical address and size of the emulated machine's main linear memory.
// Buffers handed to the dsp package and framebuffer addresses handed to the
// software presenter are expressed in this window.
const (
	LinearMemoryBase uint32 = 0x20000000
	LinearMemorySize uint32 = 0x08000000
)

// Memory is the view of emulated physical memory offered to the frontend.
// The software presenter reads framebuffers through it and the dsp package
// reads compressed bitstreams and writes decoded samples through it.
type Memory interface {
	// Region returns a slice aliasing emulated physical memory. An error is
	// returned if any part of the requested range falls outside the linear
	// memory window.
	Region(address uint32, length int) ([]byte, error)

	// FlushRegion gives the rasteriser the chance to write back any cached
	// content covering the address range before the caller reads it.
	FlushRegion(address uint32, length int)
}

// PixelFormat describes the colour encoding of an emulated framebuffer.
type PixelFormat int

// List of valid PixelFormat values.
const (
	PixelFormatRGBA8 PixelFormat = iota
	PixelFormatRGB8
	PixelFormatRGB565
	PixelFormatRGB5A1
	PixelFormatRGBA4
)

// BytesPerPixel returns the storage size of a single pixel in the format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGBA8:
		return 4
	case PixelFormatRGB8:
		return 3
	case PixelFormatRGB565, PixelFormatRGB5A1, PixelFormatRGBA4:
		return 2
	}
	return 0
}

// FramebufferConfig locates one emulated screen's framebuffer in linear
// memory. Note that the framebuffer is stored rotated by ninety degrees:
// Width and Height describe the emulated screen, not the stored image.
type FramebufferConfig struct {
	Address uint32
	Stride  int
	Width   int
	Height  int
	Format  PixelFormat
}

// Screen indices used by VideoSource.Framebuffer().
const (
	TopScreen = iota
	BottomScreen
)

// VideoSource is implemented by cores that expose their framebuffers for
// software presentation.
type VideoSource interface {
	// Framebuffer returns the current configuration for the numbered screen.
	// Screen 0 is the top screen, screen 1 the bottom screen.
	Framebuffer(screen int) FramebufferConfig

	// Memory is the memory view the framebuffers live in.
	Memory() Memory
}
