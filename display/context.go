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

package display

// Context is an opaque handle to a GPU drawing context. Backends that have
// no native context (software rasteriser, Vulkan with its own swapchain)
// substitute a no-op implementation.
//
// The "current" property is per-thread, not global. Other subsystems in the
// same process may change the thread's current context behind our back, so
// MakeCurrent() and DoneCurrent() check the thread's actual current context
// rather than trusting any cached idea of it. Both are idempotent.
type Context interface {
	// MakeCurrent binds the context to the calling thread. A no-op if the
	// context is already the thread's current context.
	MakeCurrent() error

	// DoneCurrent releases the context from the calling thread. A no-op if
	// the context is not the thread's current context.
	DoneCurrent()

	// SwapBuffers presents the back buffer. Only valid between MakeCurrent()
	// and the next DoneCurrent().
	SwapBuffers() error

	// IsValid is false if context creation failed. Creation failure is
	// logged, not fatal; callers must check validity before use.
	IsValid() bool

	// Destroy releases the native context handle. The context is invalid
	// afterwards.
	Destroy()
}

// Acquire makes the context current and returns the function that releases
// it. The release function must be called on every exit path; the intended
// use is:
//
//	release, err := display.Acquire(ctx)
//	if err != nil { ... }
//	defer release()
func Acquire(ctx Context) (func(), error) {
	err := ctx.MakeCurrent()
	if err != nil {
		return func() {}, err
	}
	return ctx.DoneCurrent, nil
}

// dummyContext is the no-op stand-in used by the software and Vulkan
// backends.
type dummyContext struct{}

func (d dummyContext) MakeCurrent() error {
	return nil
}

func (d dummyContext) DoneCurrent() {
}

func (d dummyContext) SwapBuffers() error {
	return nil
}

func (d dummyContext) IsValid() bool {
	return true
}

func (d dummyContext) Destroy() {
}
