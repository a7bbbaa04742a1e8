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
	"sync"
	"time"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/emulation"
	"github.com/citrine-emu/citrine/logger"
	"github.com/citrine-emu/citrine/notifications"
	"github.com/citrine-emu/citrine/settings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

// UnsupportedBackend is the error pattern returned by InitRenderTarget()
// when the selected graphics API cannot be initialised on this machine.
const UnsupportedBackend = "display: unsupported graphics API: %v"

// presentTimeout bounds the frame wait in a single presentation attempt.
// Presentation runs on the thread that services the window; an unbounded
// wait would make the window unresponsive whenever the emulation stalls.
const presentTimeout = 100 * time.Millisecond

// WindowSystemInfo identifies the native render surface to a backend that
// builds its own swapchain on it.
type WindowSystemInfo struct {
	// the SDL video driver name ("x11", "wayland", "windows", "cocoa")
	Type string

	// SDL's identifier for the window
	WindowID uint32

	// ratio of drawable pixels to window coordinates. 1.0 except on high
	// DPI displays
	PixelRatio float64
}

// RenderWindow is the surface the emulation presents to. It owns the native
// window, the presentation context and the root context of the OpenGL share
// group.
//
// All functions must be called from the main thread unless noted otherwise.
type RenderWindow struct {
	settings *settings.Settings
	notify   notifications.Notify
	native   glNative

	api    settings.GraphicsAPI
	window *sdl.Window

	// root of the share group. created lazily on the first render target
	// initialisation and kept alive until ReleaseRenderTarget(), worker
	// contexts created mid-session must join the same share group
	mainContext Context

	// the context presentation happens in. valid between InitRenderTarget()
	// and ReleaseRenderTarget()
	presentContext Context

	software *softwarePresenter

	// set by the driver when emulation begins. guarded by crit because
	// presentation and driver startup run on different goroutines
	crit     sync.Mutex
	renderer emulation.Renderer
	source   emulation.VideoSource

	firstFrame bool
}

// NewRenderWindow is the preferred method of initialisation for the
// RenderWindow type. The selected graphics API is validated here; an
// unsupported API is reported before any window appears.
func NewRenderWindow(set *settings.Settings, notify notifications.Notify) (*RenderWindow, error) {
	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf("render window: %v", err)
	}

	win := &RenderWindow{
		settings: set,
		notify:   notify,
		native:   sdlNative{},
		api:      set.GraphicsAPI(),
	}

	logger.Logf(logger.Allow, "display", "graphics API: %s", win.api.String())

	err = checkBackend(win.api, win.native)
	if err != nil {
		return nil, err
	}

	return win, nil
}

// checkBackend validates the host's capability for the selected graphics API.
func checkBackend(api settings.GraphicsAPI, native glNative) error {
	switch api {
	case settings.GraphicsAPIOpenGL:
		return probeOpenGL(native)
	case settings.GraphicsAPISoftware:
		// no driver requirements
		return nil
	case settings.GraphicsAPIVulkan:
		// surface creation only. the core's renderer owns the instance and
		// the swapchain; driver availability is its concern
		return nil
	}
	return curated.Errorf(UnsupportedBackend, api)
}

// windowFlags returns the SDL window creation flags for the graphics API.
func windowFlags(api settings.GraphicsAPI) uint32 {
	flags := uint32(sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	switch api {
	case settings.GraphicsAPIOpenGL:
		flags |= sdl.WINDOW_OPENGL
	case settings.GraphicsAPIVulkan:
		flags |= sdl.WINDOW_VULKAN
	}
	return flags
}

// SetRenderer attaches the emulation core's renderer. Safe to call from the
// driver goroutine.
func (win *RenderWindow) SetRenderer(renderer emulation.Renderer) {
	win.crit.Lock()
	defer win.crit.Unlock()
	win.renderer = renderer
}

// SetVideoSource attaches the framebuffer source used by the software
// backend. Safe to call from the driver goroutine.
func (win *RenderWindow) SetVideoSource(source emulation.VideoSource) {
	win.crit.Lock()
	defer win.crit.Unlock()
	win.source = source
	if win.window != nil && win.api == settings.GraphicsAPISoftware {
		win.software = newSoftwarePresenter(win.window, win.settings, source)
	}
}

// InitRenderTarget creates the native window and the presentation context
// for the selected graphics API. Any previous render target is released
// first, but the root context survives so that a restarted session keeps
// its share group.
func (win *RenderWindow) InitRenderTarget() error {
	win.releaseSurface()

	flags := windowFlags(win.api)

	if win.api == settings.GraphicsAPIOpenGL && win.mainContext == nil {
		root, err := newOpenGLRootContext(win.native)
		if err != nil {
			return err
		}
		win.mainContext = root
	}

	w := int32(win.settings.MinClientWidth.Get().(int))
	h := int32(win.settings.MinClientHeight.Get().(int))

	window, err := sdl.CreateWindow("Citrine",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, w, h, flags)
	if err != nil {
		return curated.Errorf("render window: %v", err)
	}
	window.SetMinimumSize(w, h)
	win.window = window
	win.firstFrame = false

	switch win.api {
	case settings.GraphicsAPIOpenGL:
		ctx, err := newOpenGLSharedContext(win.mainContext.(*openGLContext), window)
		if err != nil {
			win.releaseSurface()
			return err
		}
		win.presentContext = ctx

		// a context must be current before the GL function pointers can
		// be loaded in this thread
		release, err := Acquire(ctx)
		if err != nil {
			win.releaseSurface()
			return err
		}
		err = gl.Init()
		if err != nil {
			release()
			win.releaseSurface()
			return curated.Errorf("render window: %v", err)
		}
		if win.settings.VSync.Get().(bool) {
			err = sdl.GLSetSwapInterval(1)
			if err != nil {
				logger.Logf(logger.Allow, "display", "vsync unavailable: %s", err.Error())
			}
		}
		release()

	case settings.GraphicsAPISoftware:
		win.presentContext = dummyContext{}
		win.crit.Lock()
		if win.source != nil {
			win.software = newSoftwarePresenter(window, win.settings, win.source)
		}
		win.crit.Unlock()

	case settings.GraphicsAPIVulkan:
		// the presentation surface belongs to the core's renderer, which
		// builds its swapchain on the native window. nothing to make current
		// on this side
		win.presentContext = dummyContext{}
		info := win.SystemInfo()
		logger.Logf(logger.Allow, "display", "surface handed to renderer (%s, window %d, ratio %.2f)",
			info.Type, info.WindowID, info.PixelRatio)

	default:
		win.releaseSurface()
		return curated.Errorf(UnsupportedBackend, win.api)
	}

	logger.Logf(logger.Allow, "display", "render target ready (%dx%d, ratio %.2f)",
		int(w), int(h), win.PixelRatio())

	return nil
}

// releaseSurface destroys the presentation context and the native window,
// in that order. The root context is left alone.
func (win *RenderWindow) releaseSurface() {
	if win.presentContext != nil {
		win.presentContext.Destroy()
		win.presentContext = nil
	}
	win.software = nil
	if win.window != nil {
		win.window.Destroy()
		win.window = nil
	}
}

// ReleaseRenderTarget destroys the presentation context, the native window
// and finally the root context. The root must go last, the presentation
// context's GPU objects live in its share group.
func (win *RenderWindow) ReleaseRenderTarget() {
	win.releaseSurface()
	if win.mainContext != nil {
		win.mainContext.Destroy()
		win.mainContext = nil
	}
}

// PresentContext returns the context presentation happens in. The overlay
// renderer draws through it between emulation frames.
func (win *RenderWindow) PresentContext() Context {
	if win.presentContext == nil {
		return dummyContext{}
	}
	return win.presentContext
}

// Window exposes the native window. The gui package needs it for imgui
// plumbing; nothing else should.
func (win *RenderWindow) Window() *sdl.Window {
	return win.window
}

// MainContext returns the root context of the share group. The driver makes
// it current for the duration of core initialisation.
func (win *RenderWindow) MainContext() Context {
	if win.mainContext == nil {
		return dummyContext{}
	}
	return win.mainContext
}

// CreateSharedContext returns a fresh context in the root's share group for
// use by a core worker thread.
func (win *RenderWindow) CreateSharedContext() (Context, error) {
	if win.api != settings.GraphicsAPIOpenGL {
		return dummyContext{}, nil
	}
	root, ok := win.mainContext.(*openGLContext)
	if !ok {
		return nil, curated.Errorf("render window: %v", "no root context")
	}
	return newOpenGLSharedContext(root, root.window)
}

// SystemInfo identifies the native surface for a backend that builds its
// own swapchain (the Vulkan renderer inside the core).
func (win *RenderWindow) SystemInfo() WindowSystemInfo {
	info := WindowSystemInfo{
		Type:       sdl.GetCurrentVideoDriver(),
		PixelRatio: win.PixelRatio(),
	}
	if win.window != nil {
		id, err := win.window.GetID()
		if err == nil {
			info.WindowID = id
		}
	}
	return info
}

// PixelRatio is the ratio of drawable pixels to window coordinates.
func (win *RenderWindow) PixelRatio() float64 {
	if win.window == nil {
		return 1.0
	}
	winW, _ := win.window.GetSize()
	if winW == 0 {
		return 1.0
	}
	switch win.api {
	case settings.GraphicsAPIOpenGL:
		drawW, _ := win.window.GLGetDrawableSize()
		return float64(drawW) / float64(winW)
	case settings.GraphicsAPIVulkan:
		drawW, _ := win.window.VulkanGetDrawableSize()
		return float64(drawW) / float64(winW)
	}
	return 1.0
}

// DrawableSize is the size of the presentation surface in pixels.
func (win *RenderWindow) DrawableSize() (int, int) {
	if win.window == nil {
		return 0, 0
	}
	switch win.api {
	case settings.GraphicsAPIOpenGL:
		w, h := win.window.GLGetDrawableSize()
		return int(w), int(h)
	case settings.GraphicsAPIVulkan:
		w, h := win.window.VulkanGetDrawableSize()
		return int(w), int(h)
	}
	w, h := win.window.GetSize()
	return int(w), int(h)
}

// visible is false when presentation would be wasted work.
func (win *RenderWindow) visible() bool {
	if win.window == nil {
		return false
	}
	flags := win.window.GetFlags()
	return flags&sdl.WINDOW_SHOWN == sdl.WINDOW_SHOWN &&
		flags&sdl.WINDOW_MINIMIZED != sdl.WINDOW_MINIMIZED
}

// Present draws the most recent completed frame to the window. If no frame
// completes within the presentation timeout the attempt is abandoned; the
// previous content remains on screen and the caller's loop keeps servicing
// events. Returns true if a frame was presented.
func (win *RenderWindow) Present() (bool, error) {
	if !win.visible() {
		return false, nil
	}

	win.crit.Lock()
	renderer := win.renderer
	software := win.software
	win.crit.Unlock()

	var presented bool

	switch win.api {
	case settings.GraphicsAPISoftware:
		if software == nil {
			return false, nil
		}
		err := software.present()
		if err != nil {
			return false, err
		}
		presented = true

	case settings.GraphicsAPIOpenGL:
		if renderer == nil || win.presentContext == nil {
			return false, nil
		}

		release, err := Acquire(win.presentContext)
		if err != nil {
			return false, err
		}
		defer release()

		// the core's renderer may leave its own framebuffer bound
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)

		presented = renderer.TryPresent(presentTimeout, false)
		if presented {
			err = win.presentContext.SwapBuffers()
			if err != nil {
				return false, err
			}

			// wait for the swap to retire before releasing the context.
			// without this the driver can batch several swaps and present
			// them in a burst
			gl.Finish()
		}

	case settings.GraphicsAPIVulkan:
		// the renderer presents through its own swapchain

	default:
		return false, curated.Errorf(UnsupportedBackend, win.api)
	}

	if presented && !win.firstFrame {
		win.firstFrame = true
		logger.Log(logger.Allow, "display", "first frame displayed")
		if win.notify != nil {
			err := win.notify.Notify(notifications.NotifyFirstFrameDisplayed)
			if err != nil {
				logger.Log(logger.Allow, "display", err.Error())
			}
		}
	}

	return presented, nil
}

// CaptureScreenshot writes the next completed frame to the named PNG file.
// A resolution scale of zero means the renderer's current scale. The write
// happens on a worker goroutine once the renderer fills the buffer; the
// function itself returns immediately.
func (win *RenderWindow) CaptureScreenshot(resScale int, path string) error {
	win.crit.Lock()
	renderer := win.renderer
	win.crit.Unlock()

	if renderer == nil {
		return curated.Errorf("render window: %v", "no renderer to capture from")
	}

	if resScale == 0 {
		resScale = renderer.ResolutionScale()
	}
	layout := FrameLayoutFromResolutionScale(resScale)

	buffer := make([]byte, layout.Width*layout.Height*4)
	renderer.RequestScreenshot(buffer, layout.Width, layout.Height, func() {
		go func() {
			err := saveScreenshot(buffer, layout.Width, layout.Height, path)
			if err != nil {
				logger.Log(logger.Allow, "display", err.Error())
				return
			}
			logger.Logf(logger.Allow, "display", "screenshot saved: %s", path)
			if win.notify != nil {
				_ = win.notify.Notify(notifications.NotifyScreenshot)
			}
		}()
	})

	return nil
}

// saveScreenshot flips the renderer's bottom-up readback and encodes it.
func saveScreenshot(buffer []byte, width int, height int, path string) error {
	stride := width * 4
	flipped := make([]byte, len(buffer))
	for y := 0; y < height; y++ {
		copy(flipped[y*stride:(y+1)*stride], buffer[(height-1-y)*stride:(height-y)*stride])
	}

	img := &image.RGBA{
		Pix:    flipped,
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
	}

	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("render window: %v", err)
	}
	defer f.Close()

	err = png.Encode(f, img)
	if err != nil {
		return curated.Errorf("render window: %v", err)
	}

	return nil
}
