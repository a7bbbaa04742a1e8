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

package pattern_test

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/citrine-emu/citrine/display"
	"github.com/citrine-emu/citrine/dsp"
	"github.com/citrine-emu/citrine/emulation"
	"github.com/citrine-emu/citrine/pattern"
	"github.com/citrine-emu/citrine/test"
)

func TestFramebufferPlacement(t *testing.T) {
	core, err := pattern.NewCore()
	test.DemandSuccess(t, err)
	defer core.Shutdown()

	top := core.Framebuffer(emulation.TopScreen)
	test.ExpectEquality(t, top.Address, emulation.LinearMemoryBase)
	test.ExpectEquality(t, top.Width, emulation.TopScreenWidth)
	test.ExpectEquality(t, top.Height, emulation.TopScreenHeight)
	test.ExpectEquality(t, top.Stride, emulation.TopScreenHeight*top.Format.BytesPerPixel())

	bottom := core.Framebuffer(emulation.BottomScreen)
	test.ExpectEquality(t, bottom.Width, emulation.BottomScreenWidth)

	// bottom framebuffer follows the top framebuffer in linear memory
	test.ExpectEquality(t, bottom.Address, top.Address+uint32(top.Width*top.Stride))

	// both framebuffers must be readable through the memory view
	_, err = core.Memory().Region(top.Address, top.Width*top.Stride)
	test.ExpectSuccess(t, err)
	_, err = core.Memory().Region(bottom.Address, bottom.Width*bottom.Stride)
	test.ExpectSuccess(t, err)
}

func TestRegionBounds(t *testing.T) {
	core, err := pattern.NewCore()
	test.DemandSuccess(t, err)
	defer core.Shutdown()

	mem := core.Memory()

	// below the mapped window
	_, err = mem.Region(emulation.LinearMemoryBase-4, 4)
	test.ExpectFailure(t, err)

	// straddling the end of the mapped window
	top := core.Framebuffer(emulation.TopScreen)
	bottom := core.Framebuffer(emulation.BottomScreen)
	size := top.Width*top.Stride + bottom.Width*bottom.Stride
	_, err = mem.Region(emulation.LinearMemoryBase+uint32(size)-2, 4)
	test.ExpectFailure(t, err)

	// negative length
	_, err = mem.Region(emulation.LinearMemoryBase, -1)
	test.ExpectFailure(t, err)
}

// pixel reads one screen pixel back out of the rotated framebuffer storage.
func pixel(t *testing.T, core *pattern.Core, screen int, x int, y int) uint16 {
	t.Helper()
	cfg := core.Framebuffer(screen)
	bpp := cfg.Format.BytesPerPixel()
	offset := uint32(x*cfg.Stride + (cfg.Height-1-y)*bpp)
	b, err := core.Memory().Region(cfg.Address+offset, bpp)
	test.DemandSuccess(t, err)
	return binary.LittleEndian.Uint16(b)
}

func TestScrollingBar(t *testing.T) {
	core, err := pattern.NewCore()
	test.DemandSuccess(t, err)
	defer core.Shutdown()

	// frame zero puts the bar in column zero
	test.ExpectEquality(t, pixel(t, core, emulation.TopScreen, 0, 0), uint16(0xffff))

	// one step moves the bar two columns right
	test.ExpectEquality(t, core.SingleStep(), emulation.Success)
	test.ExpectEquality(t, pixel(t, core, emulation.TopScreen, 2, 0), uint16(0xffff))
	if pixel(t, core, emulation.TopScreen, 0, 0) == 0xffff {
		t.Error("bar did not move off column zero")
	}
}

// the crosshair colour as stored in RGB565
const crosshair = uint16(0xfa08)

func TestTouchCrosshair(t *testing.T) {
	core, err := pattern.NewCore()
	test.DemandSuccess(t, err)
	defer core.Shutdown()

	// in the default 400x480 layout the bottom screen occupies the rectangle
	// from (40,240) to (360,480) at a scale of one. window pixel (140,290)
	// is bottom screen pixel (100,50)
	test.ExpectSuccess(t, core.TouchPressed(140, 290))
	test.ExpectEquality(t, core.SingleStep(), emulation.Success)

	test.ExpectEquality(t, pixel(t, core, emulation.BottomScreen, 100, 50), crosshair)
	test.ExpectEquality(t, pixel(t, core, emulation.BottomScreen, 100, 120), crosshair)
	test.ExpectEquality(t, pixel(t, core, emulation.BottomScreen, 200, 50), crosshair)

	test.ExpectSuccess(t, core.TouchReleased())
	test.ExpectEquality(t, core.SingleStep(), emulation.Success)
	if pixel(t, core, emulation.BottomScreen, 100, 120) == crosshair {
		t.Error("crosshair still drawn after release")
	}
}

func TestTouchOutsideBottomScreen(t *testing.T) {
	core, err := pattern.NewCore()
	test.DemandSuccess(t, err)
	defer core.Shutdown()

	// a touch on the top screen area must not place a crosshair anywhere
	test.ExpectSuccess(t, core.TouchPressed(10, 10))
	test.ExpectEquality(t, core.SingleStep(), emulation.Success)

	cfg := core.Framebuffer(emulation.BottomScreen)
	for x := 0; x < cfg.Width; x++ {
		for y := 0; y < cfg.Height; y++ {
			if pixel(t, core, emulation.BottomScreen, x, y) == crosshair {
				t.Fatalf("crosshair drawn at (%d,%d) for a touch outside the bottom screen", x, y)
			}
		}
	}
}

func TestTouchScaledLayout(t *testing.T) {
	core, err := pattern.NewCore()
	test.DemandSuccess(t, err)
	defer core.Shutdown()

	// doubling the window size moves the bottom screen rectangle to
	// (80,480)-(720,960). window pixel (280,580) is bottom screen pixel
	// (100,50)
	core.SetFrameLayout(display.DefaultFrameLayout(800, 960))

	test.ExpectSuccess(t, core.TouchPressed(280, 580))
	test.ExpectEquality(t, core.SingleStep(), emulation.Success)
	test.ExpectEquality(t, pixel(t, core, emulation.BottomScreen, 100, 50), crosshair)
}

func TestShutdown(t *testing.T) {
	core, err := pattern.NewCore()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, core.IsPoweredOn(), true)
	core.Shutdown()
	test.ExpectEquality(t, core.IsPoweredOn(), false)
	test.ExpectEquality(t, core.RunLoop(), emulation.ShutdownRequested)
}

// stubDecoder records every request and accepts them all.
type stubDecoder struct {
	requests []dsp.BinaryMessage
}

func (d *stubDecoder) ProcessRequest(request dsp.BinaryMessage) (dsp.BinaryMessage, error) {
	d.requests = append(d.requests, request)
	response := request
	response.Header.Result = dsp.ResultSuccess
	return response, nil
}

func (d *stubDecoder) IsValid() bool {
	return true
}

func TestAudioDecoderHandshake(t *testing.T) {
	core, err := pattern.NewCore()
	test.DemandSuccess(t, err)
	defer core.Shutdown()

	dec := &stubDecoder{}
	core.SetAudioDecoder(dec)

	// attaching a decoder initialises it for MP3 immediately
	test.DemandEquality(t, len(dec.requests), 1)
	test.ExpectEquality(t, dec.requests[0].Header.Codec, dsp.CodecMP3)
	test.ExpectEquality(t, dec.requests[0].Header.Command, dsp.CommandInit)

	test.ExpectEquality(t, strings.Contains(core.StatusDetails(), "mp3 decoder attached"), true)
}

func TestKeyTracking(t *testing.T) {
	core, err := pattern.NewCore()
	test.DemandSuccess(t, err)
	defer core.Shutdown()

	test.ExpectSuccess(t, core.PressKey("A"))
	test.ExpectSuccess(t, core.PressKey("B"))
	test.ExpectEquality(t, core.KeyCount(), 2)
	test.ExpectSuccess(t, core.ReleaseKey("A"))
	test.ExpectEquality(t, core.KeyCount(), 1)
	test.ExpectSuccess(t, core.ReleaseAllKeys())
	test.ExpectEquality(t, core.KeyCount(), 0)
}
