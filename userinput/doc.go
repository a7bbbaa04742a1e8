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

// Package userinput translates render window events (keyboard, mouse, touch)
// into input for the emulated machine. The GUI forwards events over a
// channel; the Router consumes that channel and calls into the machine's
// input subsystem, converting window-local pointer positions to framebuffer
// pixel coordinates using the current device pixel ratio.
//
// Multi-touch updates are reduced to a single combined contact by averaging
// every point that is pressed, moved or stationary. The emulated machine has
// a single resistive touch screen so independent contacts are meaningless to
// it.
package userinput
