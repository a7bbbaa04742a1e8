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

// HandleInput conceptualises data being sent to the emulated machine's input
// subsystem. Touch coordinates are framebuffer pixels, already scaled by the
// device pixel ratio.
type HandleInput interface {
	TouchPressed(x int, y int) error
	TouchMoved(x int, y int) error
	TouchReleased() error

	PressKey(key string) error
	ReleaseKey(key string) error
	ReleaseAllKeys() error
}
