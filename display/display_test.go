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
	"testing"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/emulation"
	"github.com/citrine-emu/citrine/test"
)

func TestDefaultFrameLayoutExactFit(t *testing.T) {
	layout := DefaultFrameLayout(400, 480)

	test.ExpectEquality(t, layout.TopScreen, Rect{Left: 0, Top: 0, Right: 400, Bottom: 240})
	test.ExpectEquality(t, layout.BottomScreen, Rect{Left: 40, Top: 240, Right: 360, Bottom: 480})
}

func TestDefaultFrameLayoutScaled(t *testing.T) {
	layout := DefaultFrameLayout(800, 960)

	test.ExpectEquality(t, layout.TopScreen, Rect{Left: 0, Top: 0, Right: 800, Bottom: 480})
	test.ExpectEquality(t, layout.BottomScreen, Rect{Left: 80, Top: 480, Right: 720, Bottom: 960})
}

func TestDefaultFrameLayoutWideWindow(t *testing.T) {
	// height is the limiting axis so scale stays at 1.0 and the arrangement
	// is centred horizontally
	layout := DefaultFrameLayout(1000, 480)

	test.ExpectEquality(t, layout.TopScreen, Rect{Left: 300, Top: 0, Right: 700, Bottom: 240})
	test.ExpectEquality(t, layout.BottomScreen, Rect{Left: 340, Top: 240, Right: 660, Bottom: 480})
}

func TestDefaultFrameLayoutDegenerate(t *testing.T) {
	layout := DefaultFrameLayout(0, 0)
	test.ExpectEquality(t, layout.TopScreen.Width(), 0)
	test.ExpectEquality(t, layout.BottomScreen.Width(), 0)
}

func TestFrameLayoutFromResolutionScale(t *testing.T) {
	layout := FrameLayoutFromResolutionScale(2)
	test.ExpectEquality(t, layout.Width, 800)
	test.ExpectEquality(t, layout.Height, 960)
	test.ExpectEquality(t, layout.TopScreen.Height(), 480)
}

func TestDecodePixel(t *testing.T) {
	// components are stored least significant byte first
	test.ExpectEquality(t,
		decodePixel(emulation.PixelFormatRGBA8, []byte{0xff, 0x30, 0x20, 0x10}),
		color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})

	test.ExpectEquality(t,
		decodePixel(emulation.PixelFormatRGB8, []byte{0x30, 0x20, 0x10}),
		color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})

	// 0xffff is full intensity in every packed format
	test.ExpectEquality(t,
		decodePixel(emulation.PixelFormatRGB565, []byte{0xff, 0xff}),
		color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	// pure red in RGB565 is 0xf800
	test.ExpectEquality(t,
		decodePixel(emulation.PixelFormatRGB565, []byte{0x00, 0xf8}),
		color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff})

	// RGB5A1: green with the alpha bit clear
	test.ExpectEquality(t,
		decodePixel(emulation.PixelFormatRGB5A1, []byte{0xc0, 0x07}),
		color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0x00})

	// RGBA4 expands each nibble by repetition
	test.ExpectEquality(t,
		decodePixel(emulation.PixelFormatRGBA4, []byte{0x2f, 0xa5}),
		color.RGBA{R: 0xaa, G: 0x55, B: 0x22, A: 0xff})
}

// stubMemory serves a fixed byte slice as the linear memory window.
type stubMemory struct {
	base uint32
	data []byte
}

func (m *stubMemory) Region(address uint32, length int) ([]byte, error) {
	offset := int(address - m.base)
	if offset < 0 || offset+length > len(m.data) {
		return nil, curated.Errorf("stub memory: out of range")
	}
	return m.data[offset : offset+length], nil
}

func (m *stubMemory) FlushRegion(_ uint32, _ int) {
}

func TestDecodeScreenRotation(t *testing.T) {
	// a two by two screen in RGB565. the stored buffer is rotated: each
	// stored row is a screen column, bottom pixel first
	red := []byte{0x00, 0xf8}
	green := []byte{0xe0, 0x07}
	blue := []byte{0x1f, 0x00}
	white := []byte{0xff, 0xff}

	var data []byte
	data = append(data, red...)   // screen (0,1)
	data = append(data, green...) // screen (0,0)
	data = append(data, blue...)  // screen (1,1)
	data = append(data, white...) // screen (1,0)

	mem := &stubMemory{base: emulation.LinearMemoryBase, data: data}
	cfg := emulation.FramebufferConfig{
		Address: emulation.LinearMemoryBase,
		Stride:  4,
		Width:   2,
		Height:  2,
		Format:  emulation.PixelFormatRGB565,
	}

	img, err := decodeScreen(cfg, mem)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, img.RGBAAt(0, 0), color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff})
	test.ExpectEquality(t, img.RGBAAt(0, 1), color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff})
	test.ExpectEquality(t, img.RGBAAt(1, 0), color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	test.ExpectEquality(t, img.RGBAAt(1, 1), color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff})
}

func TestDecodeScreenOutOfRange(t *testing.T) {
	mem := &stubMemory{base: emulation.LinearMemoryBase, data: make([]byte, 16)}
	cfg := emulation.FramebufferConfig{
		Address: emulation.LinearMemoryBase + 8,
		Stride:  8,
		Width:   2,
		Height:  2,
		Format:  emulation.PixelFormatRGBA8,
	}

	_, err := decodeScreen(cfg, mem)
	test.ExpectFailure(t, err)
}
