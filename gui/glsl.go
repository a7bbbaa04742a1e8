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

package gui

import (
	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/display"
	"github.com/citrine-emu/citrine/logger"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
)

const overlayVertexShader = `#version 150
uniform mat4 ProjMtx;
in vec2 Position;
in vec2 UV;
in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main() {
	Frag_UV = UV;
	Frag_Color = Color;
	gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`

const overlayFragmentShader = `#version 150
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main() {
	Out_Color = vec4(Frag_Color.rgb, Frag_Color.a * texture(Texture, Frag_UV.st).r);
}
`

// overlayRenderer translates imgui draw data to OpenGL commands. One shader,
// one texture (the font atlas); the overlay needs nothing more.
type overlayRenderer struct {
	window *display.RenderWindow

	program        uint32
	vboHandle      uint32
	elementsHandle uint32
	fontTexture    uint32

	// uniform and attribute locations
	locProjMtx  int32
	locTexture  int32
	locPosition int32
	locUV       int32
	locColor    int32
}

// newOverlayRenderer compiles the overlay shader and uploads the font
// atlas. The render window's presentation context is made current for the
// duration.
func newOverlayRenderer(window *display.RenderWindow) (*overlayRenderer, error) {
	rnd := &overlayRenderer{window: window}

	release, err := display.Acquire(window.PresentContext())
	if err != nil {
		return nil, err
	}
	defer release()

	rnd.program, err = compileProgram(overlayVertexShader, overlayFragmentShader)
	if err != nil {
		return nil, err
	}

	rnd.locProjMtx = gl.GetUniformLocation(rnd.program, gl.Str("ProjMtx\x00"))
	rnd.locTexture = gl.GetUniformLocation(rnd.program, gl.Str("Texture\x00"))
	rnd.locPosition = gl.GetAttribLocation(rnd.program, gl.Str("Position\x00"))
	rnd.locUV = gl.GetAttribLocation(rnd.program, gl.Str("UV\x00"))
	rnd.locColor = gl.GetAttribLocation(rnd.program, gl.Str("Color\x00"))

	gl.GenBuffers(1, &rnd.vboHandle)
	gl.GenBuffers(1, &rnd.elementsHandle)

	// font atlas as a single channel texture. the fragment shader reads the
	// red channel as alpha
	atlas := imgui.CurrentIO().Fonts()
	image := atlas.TextureDataAlpha8()
	gl.GenTextures(1, &rnd.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, rnd.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height),
		0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)
	atlas.SetTextureID(imgui.TextureID(rnd.fontTexture))

	logger.Logf(logger.Allow, "gui", "overlay renderer ready")

	return rnd, nil
}

func (rnd *overlayRenderer) destroy() {
	release, err := display.Acquire(rnd.window.PresentContext())
	if err != nil {
		return
	}
	defer release()

	if rnd.vboHandle != 0 {
		gl.DeleteBuffers(1, &rnd.vboHandle)
		rnd.vboHandle = 0
	}
	if rnd.elementsHandle != 0 {
		gl.DeleteBuffers(1, &rnd.elementsHandle)
		rnd.elementsHandle = 0
	}
	if rnd.fontTexture != 0 {
		gl.DeleteTextures(1, &rnd.fontTexture)
		rnd.fontTexture = 0
	}
	if rnd.program != 0 {
		gl.DeleteProgram(rnd.program)
		rnd.program = 0
	}
}

// render clears the frame and draws the imgui draw data into it. The
// presentation context must be current.
func (rnd *overlayRenderer) render(winW, winH, fbW, fbH float32, drawData imgui.DrawData) {
	if fbW <= 0 || fbH <= 0 {
		return
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	drawData.ScaleClipRects(imgui.Vec2{X: fbW / winW, Y: fbH / winH})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	defer gl.Disable(gl.SCISSOR_TEST)
	defer gl.Disable(gl.BLEND)

	projMtx := [4][4]float32{
		{2.0 / winW, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -winH, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}

	gl.UseProgram(rnd.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(rnd.locTexture, 0)
	gl.UniformMatrix4fv(rnd.locProjMtx, 1, false, &projMtx[0][0])
	gl.BindSampler(0, 0)

	// VAOs are not shared between contexts so one is created per pass
	var vaoHandle uint32
	gl.GenVertexArrays(1, &vaoHandle)
	gl.BindVertexArray(vaoHandle)
	defer gl.DeleteVertexArrays(1, &vaoHandle)

	gl.BindBuffer(gl.ARRAY_BUFFER, rnd.vboHandle)
	gl.EnableVertexAttribArray(uint32(rnd.locPosition))
	gl.EnableVertexAttribArray(uint32(rnd.locUV))
	gl.EnableVertexAttribArray(uint32(rnd.locColor))

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	gl.VertexAttribPointerWithOffset(uint32(rnd.locPosition), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetPos))
	gl.VertexAttribPointerWithOffset(uint32(rnd.locUV), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetUv))
	gl.VertexAttribPointerWithOffset(uint32(rnd.locColor), 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(vertexOffsetCol))

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		var indexBufferOffset uintptr

		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, rnd.vboHandle)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, rnd.elementsHandle)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				indexBufferOffset += uintptr(cmd.ElementCount() * indexSize)
				continue
			}

			gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))

			gl.Viewport(0, 0, int32(fbW), int32(fbH))
			clipRect := cmd.ClipRect()
			gl.Scissor(int32(clipRect.X), int32(fbH)-int32(clipRect.W),
				int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))

			gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, indexBufferOffset)

			indexBufferOffset += uintptr(cmd.ElementCount() * indexSize)
		}
	}
}

// compileProgram compiles and links a shader pair.
func compileProgram(vertProgram string, fragProgram string) (uint32, error) {
	program := gl.CreateProgram()

	compile := func(handle uint32, source string) error {
		csource, free := gl.Strs(source + "\x00")
		defer free()

		gl.ShaderSource(handle, 1, csource, nil)
		gl.CompileShader(handle)

		var status int32
		gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
		if status == gl.FALSE {
			var logLength int32
			gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
			log := make([]byte, logLength+1)
			gl.GetShaderInfoLog(handle, logLength, nil, &log[0])
			return curated.Errorf("glsl: %v", string(log))
		}
		return nil
	}

	vertHandle := gl.CreateShader(gl.VERTEX_SHADER)
	defer gl.DeleteShader(vertHandle)
	err := compile(vertHandle, vertProgram)
	if err != nil {
		return 0, err
	}

	fragHandle := gl.CreateShader(gl.FRAGMENT_SHADER)
	defer gl.DeleteShader(fragHandle)
	err = compile(fragHandle, fragProgram)
	if err != nil {
		return 0, err
	}

	gl.AttachShader(program, vertHandle)
	gl.AttachShader(program, fragHandle)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, curated.Errorf("glsl: %v", string(log))
	}

	return program, nil
}
