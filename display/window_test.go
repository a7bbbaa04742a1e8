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
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/settings"
	"github.com/citrine-emu/citrine/test"

	"github.com/veandco/go-sdl2/sdl"
)

func TestCheckBackend(t *testing.T) {
	// software and vulkan make no demands of the host video driver. the
	// vulkan renderer owns its instance and swapchain so only the surface
	// matters here
	test.ExpectSuccess(t, checkBackend(settings.GraphicsAPISoftware, &stubNative{}))
	test.ExpectSuccess(t, checkBackend(settings.GraphicsAPIVulkan, &stubNative{}))

	err := checkBackend(settings.GraphicsAPI(99), &stubNative{})
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, UnsupportedBackend), true)
}

func TestWindowFlags(t *testing.T) {
	base := uint32(sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)

	test.ExpectEquality(t, windowFlags(settings.GraphicsAPISoftware), base)
	test.ExpectEquality(t, windowFlags(settings.GraphicsAPIOpenGL), base|sdl.WINDOW_OPENGL)
	test.ExpectEquality(t, windowFlags(settings.GraphicsAPIVulkan), base|sdl.WINDOW_VULKAN)
}

// stubRenderer records the screenshot request and fills the buffer with a
// recognisable pattern before signalling completion.
type stubRenderer struct {
	scale  int
	buffer []byte
	width  int
	height int
}

func (r *stubRenderer) TryPresent(_ time.Duration, _ bool) bool {
	return false
}

func (r *stubRenderer) ResolutionScale() int {
	return r.scale
}

func (r *stubRenderer) RequestScreenshot(buffer []byte, width int, height int, done func()) {
	r.buffer = buffer
	r.width = width
	r.height = height

	// renderers read back bottom row first. mark the last stored row red
	// so the flipped image shows it at the top
	stride := width * 4
	for x := 0; x < width; x++ {
		buffer[(height-1)*stride+x*4] = 0xff
		buffer[(height-1)*stride+x*4+3] = 0xff
	}

	done()
}

func TestCaptureScreenshotRequiresRenderer(t *testing.T) {
	win := &RenderWindow{}
	err := win.CaptureScreenshot(1, filepath.Join(t.TempDir(), "none.png"))
	test.ExpectFailure(t, err)
}

func TestCaptureScreenshotScaleSubstitution(t *testing.T) {
	renderer := &stubRenderer{scale: 2}
	win := &RenderWindow{}
	win.SetRenderer(renderer)

	// zero means the renderer's own scale
	path := filepath.Join(t.TempDir(), "scale.png")
	err := win.CaptureScreenshot(0, path)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, renderer.width, 800)
	test.ExpectEquality(t, renderer.height, 960)
	test.ExpectEquality(t, len(renderer.buffer), 800*960*4)
	_ = waitForPNG(t, path)

	// an explicit scale wins over the renderer's
	path = filepath.Join(t.TempDir(), "explicit.png")
	err = win.CaptureScreenshot(1, path)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, renderer.width, 400)
	test.ExpectEquality(t, renderer.height, 480)
	_ = waitForPNG(t, path)
}

func TestCaptureScreenshotVerticalFlip(t *testing.T) {
	renderer := &stubRenderer{scale: 1}
	win := &RenderWindow{}
	win.SetRenderer(renderer)

	path := filepath.Join(t.TempDir(), "flip.png")
	err := win.CaptureScreenshot(1, path)
	test.DemandSuccess(t, err)

	// the write happens on a worker goroutine once the renderer signals
	img := waitForPNG(t, path)

	bounds := img.Bounds()
	test.DemandEquality(t, bounds.Dx(), 400)
	test.DemandEquality(t, bounds.Dy(), 480)

	// the last stored row was marked red; flipped, it is the first image row
	r, g, b, _ := img.At(0, 0).RGBA()
	test.ExpectEquality(t, r>>8, uint32(0xff))
	test.ExpectEquality(t, g>>8, uint32(0x00))
	test.ExpectEquality(t, b>>8, uint32(0x00))

	r, _, _, _ = img.At(0, 479).RGBA()
	test.ExpectEquality(t, r>>8, uint32(0x00))
}

func waitForPNG(t *testing.T, path string) image.Image {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f, err := os.Open(path)
		if err == nil {
			img, err := png.Decode(f)
			f.Close()
			if err == nil {
				return img
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("no decodable PNG at %s", path)
	return nil
}
