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
	"github.com/citrine-emu/citrine/display"
	"github.com/citrine-emu/citrine/logger"
	"github.com/citrine-emu/citrine/notifications"
	"github.com/citrine-emu/citrine/userinput"

	"github.com/veandco/go-sdl2/sdl"
)

// frameLayoutReceiver is implemented by input handlers that interpret touch
// coordinates against the window's screen arrangement.
type frameLayoutReceiver interface {
	SetFrameLayout(display.FramebufferLayout)
}

// pushFrameLayout tells a layout-aware handler how screen content is
// currently arranged in the window.
func (g *GUI) pushFrameLayout() {
	recv, ok := g.handler.(frameLayoutReceiver)
	if !ok {
		return
	}
	w, h := g.window.DrawableSize()
	recv.SetFrameLayout(display.DefaultFrameLayout(w, h))
}

// serviceEvents drains the native event queue, translating each event and
// routing it to the input handler.
func (g *GUI) serviceEvents() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			g.route(userinput.EventQuit{})

		case *sdl.KeyboardEvent:
			g.route(userinput.EventKeyboard{
				Key:    sdl.GetScancodeName(ev.Keysym.Scancode),
				Down:   ev.Type == sdl.KEYDOWN,
				Mod:    translateKeyMod(ev.Keysym.Mod),
				Repeat: ev.Repeat != 0,
			})

		case *sdl.MouseButtonEvent:
			g.route(userinput.EventMouseButton{
				Button: translateMouseButton(ev.Button),
				Down:   ev.Type == sdl.MOUSEBUTTONDOWN,
				X:      float64(ev.X),
				Y:      float64(ev.Y),
			})

		case *sdl.MouseMotionEvent:
			if ev.State&sdl.ButtonLMask() == sdl.ButtonLMask() {
				g.route(userinput.EventMouseMotion{
					X: float64(ev.X),
					Y: float64(ev.Y),
				})
			}

		case *sdl.TouchFingerEvent:
			g.routeTouch(ev)

		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_CLOSE:
				g.route(userinput.EventQuit{})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				g.route(userinput.EventFocusLost{})
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				g.router.SetPixelRatio(g.window.PixelRatio())
				g.pushFrameLayout()
			}
		}
	}
}

// routeTouch translates one finger event into the combined touch event for
// every finger currently in contact.
func (g *GUI) routeTouch(ev *sdl.TouchFingerEvent) {
	w, h := g.window.DrawableSize()
	ratio := g.window.PixelRatio()
	if ratio == 0 {
		ratio = 1.0
	}

	// finger coordinates are normalised. the router expects window-local
	// coordinates so undo the pixel ratio it will reapply
	toWindow := func(x, y float32) (float64, float64) {
		return float64(x) * float64(w) / ratio, float64(y) * float64(h) / ratio
	}

	count := sdl.GetNumTouchFingers(ev.TouchID)

	switch ev.Type {
	case sdl.FINGERDOWN:
		if count == 1 {
			x, y := toWindow(ev.X, ev.Y)
			g.route(userinput.EventTouchBegin{X: x, Y: y})
			return
		}
	case sdl.FINGERUP:
		if count == 0 {
			g.route(userinput.EventTouchEnd{})
			return
		}
	}

	// any other finger transition is an update covering all active fingers
	points := make([]userinput.TouchPoint, 0, count+1)
	for i := 0; i < count; i++ {
		finger := sdl.GetTouchFinger(ev.TouchID, i)
		if finger == nil {
			continue
		}

		x, y := toWindow(finger.X, finger.Y)
		state := userinput.TouchPointStationary
		if finger.ID == ev.FingerID {
			switch ev.Type {
			case sdl.FINGERDOWN:
				state = userinput.TouchPointPressed
			case sdl.FINGERMOTION:
				state = userinput.TouchPointMoved
			}
		}
		points = append(points, userinput.TouchPoint{X: x, Y: y, State: state})
	}

	if ev.Type == sdl.FINGERUP {
		x, y := toWindow(ev.X, ev.Y)
		points = append(points, userinput.TouchPoint{X: x, Y: y, State: userinput.TouchPointReleased})
	}

	g.route(userinput.EventTouchUpdate{Points: points})
}

// route hands one event to the router, logging routing errors.
func (g *GUI) route(ev userinput.Event) {
	if g.handler == nil {
		if _, ok := ev.(userinput.EventQuit); ok {
			g.router.Quit = true
		}
		return
	}
	_, err := g.router.HandleUserInput(ev, g.handler)
	if err != nil {
		logger.Log(logger.Allow, "gui", err.Error())
	}
	if g.router.MouseActivity {
		_ = g.Notify(notifications.NotifyMouseActivity)
	}
}

func translateKeyMod(mod uint16) userinput.KeyMod {
	switch {
	case mod&sdl.KMOD_SHIFT != 0:
		return userinput.KeyModShift
	case mod&sdl.KMOD_CTRL != 0:
		return userinput.KeyModCtrl
	case mod&sdl.KMOD_ALT != 0:
		return userinput.KeyModAlt
	}
	return userinput.KeyModNone
}

func translateMouseButton(button uint8) userinput.MouseButton {
	switch button {
	case sdl.BUTTON_LEFT:
		return userinput.MouseButtonLeft
	case sdl.BUTTON_RIGHT:
		return userinput.MouseButtonRight
	case sdl.BUTTON_MIDDLE:
		return userinput.MouseButtonMiddle
	}
	return userinput.MouseButtonNone
}
