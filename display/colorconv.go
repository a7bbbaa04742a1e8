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

package display

import (
	"image/color"

	"github.com/citrine-emu/citrine/emulation"
)

// bit-depth expansion. the low bits are filled with the high bits so that
// full intensity maps to 0xff exactly
func convert4to8(v uint8) uint8 {
	return (v << 4) | v
}

func convert5to8(v uint8) uint8 {
	return (v << 3) | (v >> 2)
}

func convert6to8(v uint8) uint8 {
	return (v << 2) | (v >> 4)
}

func convert1to8(v uint8) uint8 {
	if v != 0 {
		return 0xff
	}
	return 0x00
}

// decodePixel converts one framebuffer pixel to 8bit RGBA. The slice must
// hold at least format.BytesPerPixel() bytes. Components are stored in
// reverse order, least significant byte first.
func decodePixel(format emulation.PixelFormat, b []byte) color.RGBA {
	switch format {
	case emulation.PixelFormatRGBA8:
		return color.RGBA{R: b[3], G: b[2], B: b[1], A: b[0]}

	case emulation.PixelFormatRGB8:
		return color.RGBA{R: b[2], G: b[1], B: b[0], A: 0xff}

	case emulation.PixelFormatRGB565:
		px := uint16(b[0]) | uint16(b[1])<<8
		return color.RGBA{
			R: convert5to8(uint8(px >> 11)),
			G: convert6to8(uint8((px >> 5) & 0x3f)),
			B: convert5to8(uint8(px & 0x1f)),
			A: 0xff,
		}

	case emulation.PixelFormatRGB5A1:
		px := uint16(b[0]) | uint16(b[1])<<8
		return color.RGBA{
			R: convert5to8(uint8(px >> 11)),
			G: convert5to8(uint8((px >> 6) & 0x1f)),
			B: convert5to8(uint8((px >> 1) & 0x1f)),
			A: convert1to8(uint8(px & 0x01)),
		}

	case emulation.PixelFormatRGBA4:
		px := uint16(b[0]) | uint16(b[1])<<8
		return color.RGBA{
			R: convert4to8(uint8(px >> 12)),
			G: convert4to8(uint8((px >> 8) & 0x0f)),
			B: convert4to8(uint8((px >> 4) & 0x0f)),
			A: convert4to8(uint8(px & 0x0f)),
		}
	}

	// unrecognised formats decode to opaque black rather than garbage
	return color.RGBA{A: 0xff}
}
