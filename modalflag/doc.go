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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas, with flag.FlagSet you call Parse() with the array of strings as
// the only argument, with modalflag you first call NewArgs() with the array
// of arguments and then Parse() with no arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() functions. Flags are added with the
// Add*() functions, which work like their flag package counterparts:
//
//	verbose := md.AddBool("verbose", false, "print additional log messages")
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, in the manner of the go command (build, doc,
// test, etc). Modes are registered with AddSubModes() before the Parse() and
// sub-mode comparisons are case insensitive:
//
//	md.AddSubModes("run", "version")
//	p, err := md.Parse()
//	...
//	switch md.Mode() {
//	case "RUN":
//		...
//	case "VERSION":
//		...
//	}
//
// Once a mode has been selected, NewMode() begins a fresh set of flags (and
// possibly further sub-modes) for the next call to Parse(). Modes can be
// chained as deep as required. The Path() function returns every mode
// encountered so far, joined as a path.
package modalflag
