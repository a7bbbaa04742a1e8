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

// Package pattern is a stand-in emulation core for frontend bring-up. It
// renders a moving test pattern into emulated linear memory at sixty frames
// per second and reacts to touch and key input, which is enough to drive
// every frontend path: the driver state machine, the software presenter, the
// input router and the loading screen.
//
// The pattern core is what runs when no machine emulation is attached.
package pattern
