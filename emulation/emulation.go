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

// Package emulation defines the interfaces through which the frontend core
// talks to the machine emulation. The emulation itself lives elsewhere; this
// package exists so that the display, driver and dsp packages can consume it
// without knowing its implementation and without circular imports.
package emulation

import "time"

// Dimensions of the two emulated screens in framebuffer pixels. The default
// render surface stacks the two screens vertically.
const (
	TopScreenWidth     = 400
	TopScreenHeight    = 240
	BottomScreenWidth  = 320
	BottomScreenHeight = 240
)

// Result describes the outcome of a call to RunLoop() or SingleStep().
type Result int

// List of valid Result values.
//
// ShutdownRequested is not an error. It indicates that the emulated machine
// has asked for the session to end and is terminal in the same way a Failure
// that the user declines to resume from is terminal.
const (
	Success Result = iota
	ShutdownRequested
	Failure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case ShutdownRequested:
		return "ShutdownRequested"
	case Failure:
		return "Failure"
	}
	return ""
}

// System defines the functions required of the emulation core by the driver
// and display packages.
//
// The only likely implementation is the machine emulation itself but stub
// implementations are used extensively for testing.
type System interface {
	// RunLoop executes one iteration of machine emulation.
	RunLoop() Result

	// SingleStep executes exactly one machine step.
	SingleStep() Result

	// Shutdown performs an orderly machine shutdown. It is called exactly
	// once, after the final RunLoop()/SingleStep() call.
	Shutdown()

	// IsPoweredOn is true between machine boot and Shutdown().
	IsPoweredOn() bool

	// StatusDetails returns diagnostic detail for the most recent Failure
	// result.
	StatusDetails() string
}

// LoadStage is the progress callback stage indicator.
type LoadStage int

// List of valid LoadStage values.
const (
	LoadStagePreload LoadStage = iota
	LoadStagePrepare
	LoadStageComplete
)

func (s LoadStage) String() string {
	switch s {
	case LoadStagePreload:
		return "Preload"
	case LoadStagePrepare:
		return "Prepare"
	case LoadStageComplete:
		return "Complete"
	}
	return ""
}

// ProgressCallback is the shape of the progress report made during texture
// preload and disk resource warm-up.
type ProgressCallback func(stage LoadStage, value int, total int)

// TexturePreloader is implemented by cores that support preloading of custom
// textures before emulation begins. The stop function is polled by the core;
// when it returns true the preload is abandoned.
type TexturePreloader interface {
	PreloadTextures(stop func() bool, progress ProgressCallback)
}

// DiskResourceLoader is implemented by cores that warm up disk-cached
// resources (shader caches and the like) before emulation begins.
type DiskResourceLoader interface {
	LoadDiskResources(stop func() bool, progress ProgressCallback)
}

// Renderer defines the functions required of the core's renderer by the
// presentation loop.
type Renderer interface {
	// TryPresent copies the most recently completed frame into the currently
	// bound drawable. It waits at most the specified duration for a
	// completed frame to become available, returning false on timeout.
	TryPresent(timeout time.Duration, secondary bool) bool

	// RequestScreenshot asks the renderer to fill the buffer with the next
	// completed frame, sized width by height pixels (RGBA), calling done
	// when the buffer is ready.
	RequestScreenshot(buffer []byte, width int, height int, done func())

	// ResolutionScale is the renderer's current internal resolution scale
	// factor. Never zero.
	ResolutionScale() int
}
