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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It works like the
// Errorf() function in the fmt package except that the formatting pattern
// doubles as the error's identity. The Is() function checks an error against
// a pattern:
//
//	e := curated.Errorf("display: %v", err)
//
//	if curated.Is(e, "display: %v") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks whether the pattern occurs
// anywhere in the error chain, however deeply the error has been wrapped by
// other calls to Errorf().
//
// IsAny() answers whether an error was created by curated.Errorf() at all.
// The distinction is useful when deciding whether an error is 'expected' (and
// can be presented to the user as-is) or 'unexpected'.
//
// The Error() implementation normalises the error chain, removing duplicate
// adjacent message parts that accumulate when errors are wrapped with the
// same prefix at more than one site.
package curated
