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

package userinput

import (
	"math"
)

// ScaleTouch converts a window-local position to framebuffer pixel
// coordinates. The position is scaled by the device pixel ratio, rounded,
// and clamped to zero or greater.
func ScaleTouch(x float64, y float64, pixelRatio float64) (int, int) {
	sx := int(math.Max(math.Round(x*pixelRatio), 0.0))
	sy := int(math.Max(math.Round(y*pixelRatio), 0.0))
	return sx, sy
}

// CombineTouchPoints reduces a multi-touch update to a single position by
// averaging every point in a pressed, moved or stationary state. Returns
// false if no point is in one of those states.
func CombineTouchPoints(points []TouchPoint) (float64, float64, bool) {
	var x, y float64
	var active int

	for _, tp := range points {
		switch tp.State {
		case TouchPointPressed, TouchPointMoved, TouchPointStationary:
			active++
			x += tp.X
			y += tp.Y
		}
	}

	if active == 0 {
		return 0, 0, false
	}

	return x / float64(active), y / float64(active), true
}
