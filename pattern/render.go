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

package pattern

import (
	"encoding/binary"

	"github.com/citrine-emu/citrine/emulation"
)

func packRGB565(r uint8, g uint8, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// mapTouch converts the last touch coordinate from window pixels to a bottom
// screen pixel through the frame layout. Reports false when the touch lies
// outside the bottom screen rectangle. Caller holds crit.
func (core *Core) mapTouch() (int, int, bool) {
	rect := core.layout.BottomScreen
	if rect.Width() <= 0 || rect.Height() <= 0 {
		return 0, 0, false
	}
	if core.touchX < rect.Left || core.touchX >= rect.Right ||
		core.touchY < rect.Top || core.touchY >= rect.Bottom {
		return 0, 0, false
	}
	x := (core.touchX - rect.Left) * core.bottom.Width / rect.Width()
	y := (core.touchY - rect.Top) * core.bottom.Height / rect.Height()
	return x, y, true
}

// plot writes one screen pixel into the rotated framebuffer storage. screen
// column x is a storage row; screen rows run bottom-first within it.
func (core *Core) plot(cfg emulation.FramebufferConfig, x int, y int, v uint16) {
	bpp := cfg.Format.BytesPerPixel()
	o := cfg.Address - core.mem.base
	p := int(o) + x*cfg.Stride + (cfg.Height-1-y)*bpp
	binary.LittleEndian.PutUint16(core.mem.data[p:], v)
}

// render draws the current frame of the test pattern into both framebuffers.
func (core *Core) render() {
	core.crit.Lock()
	tx, ty, onScreen := core.mapTouch()
	touching := core.touching && onScreen
	core.crit.Unlock()

	// top screen. a colour gradient with a scrolling vertical bar
	bar := (core.frame * 2) % core.top.Width
	for x := 0; x < core.top.Width; x++ {
		for y := 0; y < core.top.Height; y++ {
			var v uint16
			if x == bar {
				v = packRGB565(0xff, 0xff, 0xff)
			} else {
				r := uint8(x * 0xff / core.top.Width)
				g := uint8(y * 0xff / core.top.Height)
				b := uint8(0xff - r/2 - g/2)
				v = packRGB565(r, g, b)
			}
			core.plot(core.top, x, y, v)
		}
	}

	// bottom screen. a checkerboard with a crosshair at the last touch
	// coordinate
	for x := 0; x < core.bottom.Width; x++ {
		for y := 0; y < core.bottom.Height; y++ {
			var v uint16
			if (x/16+y/16)%2 == 0 {
				v = packRGB565(0x30, 0x30, 0x38)
			} else {
				v = packRGB565(0x50, 0x50, 0x5c)
			}
			if touching && (x == tx || y == ty) {
				v = packRGB565(0xff, 0x40, 0x40)
			}
			core.plot(core.bottom, x, y, v)
		}
	}
}
