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

// Package notifications defines the one-directional event notices sent from
// the driver and display to whatever is presenting the user interface.
package notifications

// Notice describes events that somehow change the presentation of the
// emulation. These notifications can be used to present additional
// information to the user.
type Notice string

// List of defined notifications.
const (
	// the first frame of the session has been presented
	NotifyFirstFrameDisplayed Notice = "NotifyFirstFrameDisplayed"

	// the loading screen should be dismissed. sent before the first frame
	// when the frontend is waiting on user input to begin emulation
	NotifyHideLoadingScreen Notice = "NotifyHideLoadingScreen"

	// the emulation has become idle and can be inspected
	NotifyDebugModeEntered Notice = "NotifyDebugModeEntered"

	// the emulation has left the idle state and is executing
	NotifyDebugModeLeft Notice = "NotifyDebugModeLeft"

	// pointer input has been received by the render surface
	NotifyMouseActivity Notice = "NotifyMouseActivity"

	// the render surface has been closed
	NotifyWidgetClosed Notice = "NotifyWidgetClosed"

	// a screenshot has been written to disk
	NotifyScreenshot Notice = "NotifyScreenshot"
)

// Notify is used for direct communication between the driver/display and the
// user interface. Implementations must be safe to call from goroutines other
// than the one the user interface runs on.
type Notify interface {
	Notify(notice Notice) error
}
