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
	"image"
	"unsafe"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/emulation"
	"github.com/citrine-emu/citrine/logger"
	"github.com/citrine-emu/citrine/settings"

	"github.com/veandco/go-sdl2/sdl"
)

// softwarePresenter draws both screens with the CPU. content is decoded
// from guest memory on every presentation rather than cached, the
// framebuffer registers can repoint mid-frame and a cache would show stale
// content.
type softwarePresenter struct {
	window   *sdl.Window
	settings *settings.Settings
	source   emulation.VideoSource
}

func newSoftwarePresenter(window *sdl.Window, set *settings.Settings, source emulation.VideoSource) *softwarePresenter {
	return &softwarePresenter{
		window:   window,
		settings: set,
		source:   source,
	}
}

// decodeScreen reads the screen's framebuffer from guest memory and
// un-rotates it. Framebuffers are stored rotated a quarter turn, rows of
// the stored buffer are columns of the displayed image, bottom row first.
func decodeScreen(cfg emulation.FramebufferConfig, mem emulation.Memory) (*image.RGBA, error) {
	bpp := cfg.Format.BytesPerPixel()
	if bpp == 0 || cfg.Width == 0 || cfg.Height == 0 {
		return nil, curated.Errorf("software render: %v", "empty framebuffer configuration")
	}

	mem.FlushRegion(cfg.Address, cfg.Width*cfg.Stride)
	data, err := mem.Region(cfg.Address, cfg.Width*cfg.Stride)
	if err != nil {
		return nil, curated.Errorf("software render: %v", err)
	}

	width := cfg.Width
	height := cfg.Height
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for x := 0; x < width; x++ {
		row := x * cfg.Stride
		for y := 0; y < height; y++ {
			offset := row + (height-1-y)*bpp
			if offset+bpp > len(data) {
				continue
			}
			img.SetRGBA(x, y, decodePixel(cfg.Format, data[offset:offset+bpp]))
		}
	}

	return img, nil
}

// blit copies a decoded screen image into the destination rectangle of the
// window surface, scaling to fit.
func (pres *softwarePresenter) blit(surface *sdl.Surface, img *image.RGBA, dst Rect) error {
	bounds := img.Bounds()

	// image.RGBA stores bytes in R,G,B,A order which little-endian SDL
	// addresses as ABGR8888
	src, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&img.Pix[0]),
		int32(bounds.Dx()), int32(bounds.Dy()),
		32, int32(img.Stride),
		uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return curated.Errorf("software render: %v", err)
	}
	defer src.Free()

	return src.BlitScaled(nil, surface, &sdl.Rect{
		X: int32(dst.Left),
		Y: int32(dst.Top),
		W: int32(dst.Width()),
		H: int32(dst.Height()),
	})
}

// present draws both screens to the window surface. Failures decoding one
// screen are logged and the other screen is still drawn.
func (pres *softwarePresenter) present() error {
	surface, err := pres.window.GetSurface()
	if err != nil {
		return curated.Errorf("software render: %v", err)
	}

	bg := sdl.MapRGB(surface.Format,
		uint8(pres.settings.BgRed.Get().(float64)*255),
		uint8(pres.settings.BgGreen.Get().(float64)*255),
		uint8(pres.settings.BgBlue.Get().(float64)*255))
	err = surface.FillRect(nil, bg)
	if err != nil {
		return curated.Errorf("software render: %v", err)
	}

	layout := DefaultFrameLayout(int(surface.W), int(surface.H))
	mem := pres.source.Memory()

	for screen, dst := range map[int]Rect{
		emulation.TopScreen:    layout.TopScreen,
		emulation.BottomScreen: layout.BottomScreen,
	} {
		img, err := decodeScreen(pres.source.Framebuffer(screen), mem)
		if err != nil {
			logger.Logf(logger.Allow, "display", "screen %d: %s", screen, err.Error())
			continue
		}
		err = pres.blit(surface, img, dst)
		if err != nil {
			return err
		}
	}

	return pres.window.UpdateSurface()
}
