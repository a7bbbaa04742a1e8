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

// Package gui services the render window on the main thread. It polls the
// native event queue, translates events into the userinput package's
// vocabulary, presents emulation frames through the display package and
// draws an imgui overlay (loading screen, error dialogs) when there is no
// frame to show.
//
// The overlay owns the whole frame while it is visible. It never composites
// over a presented emulation frame; once the first frame arrives the
// loading screen is dismissed and the overlay pass becomes a no-op until an
// error needs reporting.
package gui
