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

// Package driver runs the emulation core. The Driver type loops over the
// core's RunLoop() function on a dedicated goroutine and exposes the three
// control requests the rest of the frontend needs: run/pause, single step
// and stop.
//
// The loop transitions between an executing state and an idle state. The
// transitions are announced through the notifications package exactly once
// per edge, regardless of how many iterations the loop spends on either
// side of the edge. While idle the loop sleeps on a condition variable;
// control requests wake it.
//
// A failure reported by the core pauses the loop rather than ending it, so
// the user can inspect the machine and decide whether to resume. A shutdown
// requested by the core is terminal.
package driver
