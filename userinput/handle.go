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

package userinput

// Router forwards user input events to the emulated machine's input
// subsystem, rescaling pointer coordinates to framebuffer pixels on the way
// through.
type Router struct {
	// the device pixel ratio used for coordinate scaling. updated by the GUI
	// on DPI change. only read/written from the GUI thread so no critical
	// section is needed
	pixelRatio float64

	// whether the last routed event was pointer activity. the GUI uses this
	// to decide whether to emit a mouse activity notification
	MouseActivity bool

	// is true if last event was a quit event
	Quit bool
}

// NewRouter is the preferred method of initialisation for the Router type.
func NewRouter() *Router {
	return &Router{
		pixelRatio: 1.0,
	}
}

// SetPixelRatio updates the device pixel ratio used for coordinate scaling.
func (r *Router) SetPixelRatio(ratio float64) {
	if ratio > 0 {
		r.pixelRatio = ratio
	}
}

// HandleUserInput routes an event to the input subsystem. The boolean return
// value is true if the event was forwarded to the emulation.
func (r *Router) HandleUserInput(ev Event, handle HandleInput) (bool, error) {
	r.MouseActivity = false

	switch ev := ev.(type) {
	case EventQuit:
		r.Quit = true
		return false, nil

	case EventFocusLost:
		return true, handle.ReleaseAllKeys()

	case EventKeyboard:
		if ev.Repeat {
			return false, nil
		}
		if ev.Down {
			return true, handle.PressKey(ev.Key)
		}
		return true, handle.ReleaseKey(ev.Key)

	case EventMouseButton:
		r.MouseActivity = true
		if ev.Button != MouseButtonLeft {
			return false, nil
		}
		if ev.Down {
			x, y := ScaleTouch(ev.X, ev.Y, r.pixelRatio)
			return true, handle.TouchPressed(x, y)
		}
		return true, handle.TouchReleased()

	case EventMouseMotion:
		r.MouseActivity = true
		x, y := ScaleTouch(ev.X, ev.Y, r.pixelRatio)
		return true, handle.TouchMoved(x, y)

	case EventTouchBegin:
		x, y := ScaleTouch(ev.X, ev.Y, r.pixelRatio)
		return true, handle.TouchPressed(x, y)

	case EventTouchUpdate:
		cx, cy, ok := CombineTouchPoints(ev.Points)
		if !ok {
			return false, nil
		}
		x, y := ScaleTouch(cx, cy, r.pixelRatio)
		return true, handle.TouchMoved(x, y)

	case EventTouchEnd:
		return true, handle.TouchReleased()
	}

	return false, nil
}
