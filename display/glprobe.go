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

	"github.com/go-gl/gl/v3.2-core/gl"
)

// InsufficientDriverVersion is the error pattern returned when the video
// driver does not offer the OpenGL version required by the hardware
// renderer. The wrapped value names the driver's renderer string so the
// frontend can report which device fell short.
const InsufficientDriverVersion = "display: OpenGL 3.2 unavailable on this device: %v"

const (
	requiredGLMajor = 3
	requiredGLMinor = 2
)

// glString is a helper around gl.GetString that copes with a nil return
// from a broken driver.
func glString(name uint32) string {
	s := gl.GoStr(gl.GetString(name))
	if s == "" {
		return "unknown"
	}
	return s
}

// probeOpenGL verifies that the video driver can supply the OpenGL version
// the hardware renderer requires. The check is made against a throwaway
// context so that failure leaves no state behind.
//
// Must be called from the main thread.
func probeOpenGL(native glNative) error {
	ctx, err := newOpenGLRootContext(native)
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	err = ctx.MakeCurrent()
	if err != nil {
		return err
	}
	defer ctx.DoneCurrent()

	err = gl.Init()
	if err != nil {
		return curated.Errorf("opengl context: %v", err)
	}

	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)

	renderer := glString(gl.RENDERER)
	version := glString(gl.VERSION)

	if major < requiredGLMajor || (major == requiredGLMajor && minor < requiredGLMinor) {
		return curated.Errorf(InsufficientDriverVersion, renderer)
	}

	logger.Logf(logger.Allow, "display", "OpenGL: %s", version)
	logger.Logf(logger.Allow, "display", "GL renderer: %s", renderer)
	logger.Logf(logger.Allow, "display", "GL vendor: %s", glString(gl.VENDOR))

	return nil
}
