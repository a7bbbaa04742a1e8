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
	"github.com/citrine-emu/citrine/emulation"
)

// Rect is a screen placement rectangle in framebuffer pixels.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width of the rectangle in pixels.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height of the rectangle in pixels.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// FramebufferLayout is a pure-value description of where the two emulated
// screens are placed within a window of the stated pixel dimensions. It has
// no lifecycle; a new value is computed on every resize or DPI change.
type FramebufferLayout struct {
	Width        int
	Height       int
	TopScreen    Rect
	BottomScreen Rect
}

// combined dimensions of the default screen arrangement: the top screen with
// the bottom screen stacked beneath it.
const (
	combinedWidth  = emulation.TopScreenWidth
	combinedHeight = emulation.TopScreenHeight + emulation.BottomScreenHeight
)

// DefaultFrameLayout computes the layout for a window of the given pixel
// dimensions. The combined screen arrangement is scaled to the largest size
// that fits the window without distortion and centred in both axes.
func DefaultFrameLayout(width int, height int) FramebufferLayout {
	layout := FramebufferLayout{
		Width:  width,
		Height: height,
	}

	if width <= 0 || height <= 0 {
		return layout
	}

	// largest scale that fits both axes
	scaleX := float64(width) / float64(combinedWidth)
	scaleY := float64(height) / float64(combinedHeight)
	scale := min(scaleX, scaleY)

	drawWidth := int(float64(combinedWidth) * scale)
	drawHeight := int(float64(combinedHeight) * scale)
	originX := (width - drawWidth) / 2
	originY := (height - drawHeight) / 2

	topHeight := int(float64(emulation.TopScreenHeight) * scale)
	bottomWidth := int(float64(emulation.BottomScreenWidth) * scale)
	bottomIndent := (drawWidth - bottomWidth) / 2

	layout.TopScreen = Rect{
		Left:   originX,
		Top:    originY,
		Right:  originX + drawWidth,
		Bottom: originY + topHeight,
	}
	layout.BottomScreen = Rect{
		Left:   originX + bottomIndent,
		Top:    originY + topHeight,
		Right:  originX + bottomIndent + bottomWidth,
		Bottom: originY + drawHeight,
	}

	return layout
}

// FrameLayoutFromResolutionScale computes the layout for an output image at
// the renderer's internal resolution scale. Used for screenshot sizing.
func FrameLayoutFromResolutionScale(scale int) FramebufferLayout {
	return DefaultFrameLayout(combinedWidth*scale, combinedHeight*scale)
}
