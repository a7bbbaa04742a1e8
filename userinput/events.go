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

// Event implementations are the inputs sent over the user input channel.
// Coordinates in events are window-local; scaling to framebuffer pixels
// happens during routing.
type Event interface{}

// KeyMod identifies the modifier key held during a keyboard event.
type KeyMod int

// List of valid key modifiers.
const (
	KeyModNone KeyMod = iota
	KeyModShift
	KeyModCtrl
	KeyModAlt
)

// MouseButton identifies the mouse button in a mouse button event.
type MouseButton int

// List of valid mouse buttons.
const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// EventKeyboard is sent on key press and key release.
type EventKeyboard struct {
	Key    string
	Down   bool
	Mod    KeyMod
	Repeat bool
}

// EventMouseButton is sent on mouse button press and release. X and Y are
// window-local coordinates.
type EventMouseButton struct {
	Button MouseButton
	Down   bool
	X      float64
	Y      float64
}

// EventMouseMotion is sent when the mouse moves with a button held. X and Y
// are window-local coordinates.
type EventMouseMotion struct {
	X float64
	Y float64
}

// TouchPointState describes the lifecycle state of a single touch point.
type TouchPointState int

// List of valid touch point states.
const (
	TouchPointPressed TouchPointState = iota
	TouchPointMoved
	TouchPointStationary
	TouchPointReleased
)

// TouchPoint is one contact in a multi-touch event.
type TouchPoint struct {
	X     float64
	Y     float64
	State TouchPointState
}

// EventTouchBegin is sent when the first touch point makes contact. Touch
// begin always has exactly one touch point.
type EventTouchBegin struct {
	X float64
	Y float64
}

// EventTouchUpdate is sent when any touch point moves. All active points are
// included; routing reduces them to a single combined position.
type EventTouchUpdate struct {
	Points []TouchPoint
}

// EventTouchEnd is sent when the last touch point is released, or the touch
// sequence is cancelled.
type EventTouchEnd struct{}

// EventFocusLost is sent when the render surface loses keyboard focus.
type EventFocusLost struct{}

// EventQuit is sent when the user closes the render window.
type EventQuit struct{}
