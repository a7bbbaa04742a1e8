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

import (
	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/logger"

	"github.com/veandco/go-sdl2/sdl"
)

// NotCurrent is the error pattern returned by SwapBuffers() when the context
// is not the thread's current context.
const NotCurrent = "opengl context: swap while not current"

// glNative is the set of native calls made by openGLContext. It exists so
// that context behaviour can be tested with a call-counting stub.
type glNative interface {
	currentContext() sdl.GLContext
	makeCurrent(win *sdl.Window, glctx sdl.GLContext) error
	swapWindow(win *sdl.Window)
	deleteContext(glctx sdl.GLContext)
}

// sdlNative is the glNative implementation used outside of tests.
type sdlNative struct{}

func (sdlNative) currentContext() sdl.GLContext {
	glctx, _ := sdl.GLGetCurrentContext()
	return glctx
}

func (sdlNative) makeCurrent(win *sdl.Window, glctx sdl.GLContext) error {
	return win.GLMakeCurrent(glctx)
}

func (sdlNative) swapWindow(win *sdl.Window) {
	win.GLSwap()
}

func (sdlNative) deleteContext(glctx sdl.GLContext) {
	sdl.GLDeleteContext(glctx)
}

// openGLContext implements the Context interface for the OpenGL backend.
//
// The root context of the share group presents to a hidden window of its
// own. Child contexts share GPU objects with the root and present to the
// render surface.
type openGLContext struct {
	// the surface the context presents to. owned by the context only if
	// ownWindow is set (the root context's offscreen window)
	window    *sdl.Window
	ownWindow bool

	// the native context handle. exclusively owned
	glctx sdl.GLContext

	native glNative
}

// setGLAttributes prepares context creation attributes. must be called
// before every context creation because SDL attribute state is global.
func setGLAttributes(share bool) error {
	for _, attr := range []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 3},
		{sdl.GL_CONTEXT_MINOR_VERSION, 2},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
	} {
		err := sdl.GLSetAttribute(attr.attr, attr.value)
		if err != nil {
			return err
		}
	}

	v := 0
	if share {
		v = 1
	}
	return sdl.GLSetAttribute(sdl.GL_SHARE_WITH_CURRENT_CONTEXT, v)
}

// newOpenGLRootContext creates the original context that every per-surface
// context shares GPU objects with. The root presents to a hidden one-pixel
// window, the SDL equivalent of an offscreen surface.
func newOpenGLRootContext(native glNative) (*openGLContext, error) {
	err := setGLAttributes(false)
	if err != nil {
		return nil, curated.Errorf("opengl context: %v", err)
	}

	win, err := sdl.CreateWindow("citrine offscreen",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, 1, 1,
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		return nil, curated.Errorf("opengl context: %v", err)
	}

	glctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return nil, curated.Errorf("opengl context: %v", err)
	}

	ctx := &openGLContext{
		window:    win,
		ownWindow: true,
		glctx:     glctx,
		native:    native,
	}

	// the new context is current as a side effect of creation. we don't want
	// that here
	ctx.DoneCurrent()

	return ctx, nil
}

// newOpenGLSharedContext creates a context sharing GPU objects with the root
// context, presenting to the provided window. Vertical sync is disabled by
// default for shared contexts; presentation enables it explicitly if the
// configuration asks for it.
func newOpenGLSharedContext(root *openGLContext, win *sdl.Window) (*openGLContext, error) {
	if root == nil || !root.IsValid() {
		return nil, curated.Errorf("opengl context: %v", "no root context to share with")
	}

	// sharing in SDL is expressed through the current context at creation
	// time
	err := root.MakeCurrent()
	if err != nil {
		return nil, err
	}
	defer root.DoneCurrent()

	err = setGLAttributes(true)
	if err != nil {
		return nil, curated.Errorf("opengl context: %v", err)
	}

	glctx, err := win.GLCreateContext()
	if err != nil {
		return nil, curated.Errorf("opengl context: %v", err)
	}

	ctx := &openGLContext{
		window: win,
		glctx:  glctx,
		native: root.native,
	}

	err = sdl.GLSetSwapInterval(0)
	if err != nil {
		logger.Logf(logger.Allow, "display", "GLSetSwapInterval(0): %s", err.Error())
	}

	ctx.DoneCurrent()

	return ctx, nil
}

// MakeCurrent implements the Context interface. Another subsystem may have
// made a different context current on this thread since the last call, so
// the thread's actual current context is inspected rather than any cached
// state. A no-op if this context is already current.
func (ctx *openGLContext) MakeCurrent() error {
	if !ctx.IsValid() {
		return curated.Errorf("opengl context: %v", "made current after destruction")
	}
	if ctx.native.currentContext() == ctx.glctx {
		return nil
	}
	err := ctx.native.makeCurrent(ctx.window, ctx.glctx)
	if err != nil {
		return curated.Errorf("opengl context: %v", err)
	}
	return nil
}

// DoneCurrent implements the Context interface. A no-op if this context is
// not the thread's current context.
func (ctx *openGLContext) DoneCurrent() {
	if !ctx.IsValid() {
		return
	}
	if ctx.native.currentContext() != ctx.glctx {
		return
	}
	err := ctx.native.makeCurrent(ctx.window, nil)
	if err != nil {
		logger.Logf(logger.Allow, "display", "done current: %s", err.Error())
	}
}

// SwapBuffers implements the Context interface.
func (ctx *openGLContext) SwapBuffers() error {
	if !ctx.IsValid() {
		return curated.Errorf("opengl context: %v", "swap after destruction")
	}
	if ctx.native.currentContext() != ctx.glctx {
		return curated.Errorf(NotCurrent)
	}
	ctx.native.swapWindow(ctx.window)
	return nil
}

// IsValid implements the Context interface.
func (ctx *openGLContext) IsValid() bool {
	return ctx != nil && ctx.glctx != nil
}

// Destroy implements the Context interface.
func (ctx *openGLContext) Destroy() {
	if !ctx.IsValid() {
		return
	}

	ctx.DoneCurrent()
	ctx.native.deleteContext(ctx.glctx)
	ctx.glctx = nil

	if ctx.ownWindow && ctx.window != nil {
		ctx.window.Destroy()
		ctx.window = nil
	}
}
