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

// Package ansi defines ANSI control codes for styles and colours.
package ansi

import (
	"fmt"
)

// ansi colour.
const (
	colBlack   = 0
	colRed     = 1
	colGreen   = 2
	colYellow  = 3
	colBlue    = 4
	colMagenta = 5
	colCyan    = 6
	colWhite   = 7
)

// csi is the ANSI control sequence introducer.
const csi = "\033["

// Pens is the table of colours to be used for text.
var Pens map[string]string

// DimPens is the table of dimmed colours to be used for text.
var DimPens map[string]string

// NormalPen is the CSI sequence for regular text.
var NormalPen string

// ClearLine is the CSI sequence to clear the current terminal line.
const ClearLine = csi + "2K"

// CursorStore and CursorRestore save and restore the cursor position.
const (
	CursorStore   = csi + "s"
	CursorRestore = csi + "u"
)

func pen(col int, bright bool) string {
	if bright {
		return fmt.Sprintf("%s1;3%dm", csi, col)
	}
	return fmt.Sprintf("%s2;3%dm", csi, col)
}

func init() {
	NormalPen = csi + "0m"

	Pens = make(map[string]string)
	DimPens = make(map[string]string)

	for name, col := range map[string]int{
		"black":   colBlack,
		"red":     colRed,
		"green":   colGreen,
		"yellow":  colYellow,
		"blue":    colBlue,
		"magenta": colMagenta,
		"cyan":    colCyan,
		"white":   colWhite,
	} {
		Pens[name] = pen(col, true)
		DimPens[name] = pen(col, false)
	}
}
