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

	"github.com/citrine-emu/citrine/display"
	"github.com/citrine-emu/citrine/logger"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

// overlayState is everything the overlay pass draws from. Written on the
// gui thread except for progress, which the driver goroutine updates.
type overlayState struct {
	showLoading bool
	paused      bool
	errorDetail string
	progress    atomic.Value
}

func packProgress(value int, total int) [2]int {
	return [2]int{value, total}
}

// flash surfaces a transient event. The overlay has no persistent toast
// surface so the event goes to the log.
func (o *overlayState) flash(text string) {
	logger.Log(logger.Allow, "gui", text)
}

// active is true when the overlay pass has something to draw. The overlay
// owns the whole frame when active, so it never draws during normal
// presentation.
func (o *overlayState) active() bool {
	return o.showLoading || o.errorDetail != ""
}

// renderOverlay draws the loading screen or the error dialog over a cleared
// frame. A no-op when there is nothing to draw or no GL backend to draw
// with.
func (g *GUI) renderOverlay() {
	if g.rnd == nil || !g.overlay.active() {
		return
	}

	window := g.window.Window()
	if window == nil {
		return
	}

	winW, winH := window.GetSize()
	fbW, fbH := g.window.DrawableSize()

	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: float32(winW), Y: float32(winH)})

	now := time.Now()
	dt := now.Sub(g.lastFrame).Seconds()
	g.lastFrame = now
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	io.SetDeltaTime(float32(dt))

	x, y, state := sdl.GetMouseState()
	io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	for i, button := range []uint32{sdl.BUTTON_LEFT, sdl.BUTTON_RIGHT, sdl.BUTTON_MIDDLE} {
		io.SetMouseButtonDown(i, (state&sdl.Button(button)) != 0)
	}

	imgui.NewFrame()
	g.drawLoading(float32(winW), float32(winH))
	g.drawError(float32(winW), float32(winH))
	imgui.Render()

	release, err := display.Acquire(g.window.PresentContext())
	if err != nil {
		logger.Log(logger.Allow, "gui", err.Error())
		return
	}
	defer release()

	g.rnd.render(float32(winW), float32(winH), float32(fbW), float32(fbH), imgui.RenderedDrawData())

	err = g.window.PresentContext().SwapBuffers()
	if err != nil {
		logger.Log(logger.Allow, "gui", err.Error())
	}
}

// drawLoading builds the loading screen window.
func (g *GUI) drawLoading(winW float32, winH float32) {
	if !g.overlay.showLoading {
		return
	}

	imgui.SetNextWindowPosV(imgui.Vec2{X: winW * 0.5, Y: winH * 0.5},
		imgui.ConditionAlways, imgui.Vec2{X: 0.5, Y: 0.5})

	flags := imgui.WindowFlagsNoDecoration | imgui.WindowFlagsNoMove |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings
	if imgui.BeginV("##loading", nil, flags) {
		imgui.Text("Loading...")

		if p, ok := g.overlay.progress.Load().([2]int); ok && p[1] > 0 {
			fraction := float32(p[0]) / float32(p[1])
			imgui.ProgressBarV(fraction, imgui.Vec2{X: 200, Y: 0}, "")
		}
	}
	imgui.End()
}

// drawError builds the error dialog.
func (g *GUI) drawError(winW float32, winH float32) {
	if g.overlay.errorDetail == "" {
		return
	}

	imgui.SetNextWindowPosV(imgui.Vec2{X: winW * 0.5, Y: winH * 0.5},
		imgui.ConditionAlways, imgui.Vec2{X: 0.5, Y: 0.5})

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsAlwaysAutoResize |
		imgui.WindowFlagsNoSavedSettings
	if imgui.BeginV("Emulation Error", nil, flags) {
		imgui.Text(g.overlay.errorDetail)
		imgui.Spacing()
		if imgui.Button("Dismiss") {
			g.overlay.errorDetail = ""
		}
	}
	imgui.End()
}
