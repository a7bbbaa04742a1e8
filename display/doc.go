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

// Package display owns the render window the emulation presents to.
//
// Three graphics APIs are selectable through the settings package. The
// OpenGL backend hands the core a share group of contexts and presents by
// swapping the window surface; the software backend decodes the emulated
// framebuffers from guest memory on the CPU every frame; the Vulkan backend
// hands the core a WindowSystemInfo describing the native surface and lets
// the core drive its own swapchain.
//
// Context currency is per-thread and the process does not have exclusive
// control of it (an embedded web view, for instance, will bind its own
// contexts on our threads). MakeCurrent() and DoneCurrent() therefore check
// the thread's actual current context on every call and do nothing when
// there is nothing to do.
//
// The lifetime rule for teardown is strict: presentation context first,
// native window second, root context last. GPU objects created by core
// worker threads live in the root's share group and are only certain to be
// collectable while the root is alive.
package display
