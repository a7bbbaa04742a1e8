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

package gui

import (
	"sync/atomic"
	"time"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/display"
	"github.com/citrine-emu/citrine/logger"
	"github.com/citrine-emu/citrine/notifications"
	"github.com/citrine-emu/citrine/settings"
	"github.com/citrine-emu/citrine/userinput"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

// the pointer is hidden after this much time without mouse activity.
const mouseHideTimeout = 3 * time.Second

// GUI services the render window: it polls the native event queue, routes
// user input to the emulation, presents frames and draws the overlay
// (loading screen, error dialogs) between them.
//
// Run() must execute on the main thread. Everything else the GUI touches
// arrives through channels or atomics, the Notify() function in particular
// is called from the driver goroutine.
type GUI struct {
	settings *settings.Settings
	window   *display.RenderWindow
	router   *userinput.Router

	// where routed user input ends up. may be nil
	handler userinput.HandleInput

	// presentation is skipped while the machine reports powered off. may
	// be nil, in which case presentation is always attempted
	poweredOn func() bool

	imctx *imgui.Context
	rnd   *overlayRenderer

	overlay overlayState

	// notices cross goroutines. serviced at the top of every loop iteration
	notices chan notifications.Notice

	// failure detail from the driver. an atomic because the driver
	// goroutine writes it
	failure atomic.Value

	lastFrame time.Time
	quit      bool

	// pointer hiding state. the cursor reappears on mouse activity and is
	// hidden again after a quiet period
	lastMouse    time.Time
	cursorHidden bool
}

// NewGUI is the preferred method of initialisation for the GUI type. It
// creates the render window for the configured graphics API and prepares
// the overlay.
func NewGUI(set *settings.Settings) (*GUI, error) {
	g := &GUI{
		settings: set,
		notices:  make(chan notifications.Notice, 16),
	}

	var err error
	g.window, err = display.NewRenderWindow(set, g)
	if err != nil {
		return nil, curated.Errorf("gui: %v", err)
	}

	err = g.window.InitRenderTarget()
	if err != nil {
		return nil, curated.Errorf("gui: %v", err)
	}

	g.router = userinput.NewRouter()
	g.router.SetPixelRatio(g.window.PixelRatio())

	g.imctx = imgui.CreateContext(nil)
	g.overlay.showLoading = true

	if set.GraphicsAPI() == settings.GraphicsAPIOpenGL {
		g.rnd, err = newOverlayRenderer(g.window)
		if err != nil {
			g.Destroy()
			return nil, err
		}
	}

	g.lastFrame = time.Now()
	g.lastMouse = time.Now()

	return g, nil
}

// Window is the render window the GUI services.
func (g *GUI) Window() *display.RenderWindow {
	return g.window
}

// SetInputHandler attaches the destination for routed user input. A handler
// that interprets touch coordinates against the window layout receives the
// current layout immediately and again on every window resize.
func (g *GUI) SetInputHandler(handler userinput.HandleInput) {
	g.handler = handler
	g.pushFrameLayout()
}

// SetPoweredQuery attaches the power state query used to skip presentation
// while the machine is off.
func (g *GUI) SetPoweredQuery(poweredOn func() bool) {
	g.poweredOn = poweredOn
}

// SetProgress records loading progress for the loading screen. Safe to call
// from the driver goroutine.
func (g *GUI) SetProgress(value int, total int) {
	g.overlay.progress.Store(packProgress(value, total))
}

// SetFailure arms the error dialog. Safe to call from the driver goroutine.
func (g *GUI) SetFailure(details string) {
	g.failure.Store(details)
}

// Notify implements the notifications.Notify interface. Called from the
// driver goroutine; the notice is acted upon on the gui thread.
func (g *GUI) Notify(notice notifications.Notice) error {
	select {
	case g.notices <- notice:
	default:
		return curated.Errorf("gui: %v", "notification queue full")
	}
	return nil
}

// Quit ends the Run() loop at the next iteration. Safe to call from any
// goroutine by way of the notification queue.
func (g *GUI) Quit() {
	_ = g.Notify(notifications.NotifyWidgetClosed)
}

// HasQuit is true once the service loop has ended or been asked to end.
func (g *GUI) HasQuit() bool {
	return g.quit
}

// serviceNotices drains the notification queue.
func (g *GUI) serviceNotices() {
	for {
		select {
		case notice := <-g.notices:
			switch notice {
			case notifications.NotifyHideLoadingScreen, notifications.NotifyFirstFrameDisplayed:
				g.overlay.showLoading = false
			case notifications.NotifyWidgetClosed:
				g.quit = true
			case notifications.NotifyScreenshot:
				g.overlay.flash("screenshot saved")
			case notifications.NotifyDebugModeEntered:
				g.overlay.paused = true
			case notifications.NotifyDebugModeLeft:
				g.overlay.paused = false
			case notifications.NotifyMouseActivity:
				g.lastMouse = time.Now()
				if g.cursorHidden {
					sdl.ShowCursor(sdl.ENABLE)
					g.cursorHidden = false
				}
			}
		default:
			return
		}
	}
}

// Service runs one iteration of the gui loop: notifications, native events,
// presentation and the overlay pass.
func (g *GUI) Service() {
	g.serviceNotices()
	g.serviceEvents()

	if details, ok := g.failure.Load().(string); ok && details != "" {
		g.overlay.errorDetail = details
		g.failure.Store("")
	}

	if !g.cursorHidden && time.Since(g.lastMouse) > mouseHideTimeout {
		sdl.ShowCursor(sdl.DISABLE)
		g.cursorHidden = true
	}

	if g.poweredOn == nil || g.poweredOn() {
		_, err := g.window.Present()
		if err != nil {
			logger.Log(logger.Allow, "gui", err.Error())
		}
	}

	g.renderOverlay()
}

// Run services the window until Quit() or a quit event from the window
// system. Blocks; must be called on the main thread.
func (g *GUI) Run() {
	for !g.quit {
		g.Service()

		if g.router.Quit {
			g.quit = true
		}
	}
}

// Destroy releases the gui resources, the render window included.
func (g *GUI) Destroy() {
	if g.rnd != nil {
		g.rnd.destroy()
		g.rnd = nil
	}
	if g.imctx != nil {
		g.imctx.Destroy()
		g.imctx = nil
	}
	g.window.ReleaseRenderTarget()
}
