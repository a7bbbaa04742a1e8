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

package logger

import (
	"strings"
	"testing"

	"github.com/citrine-emu/citrine/test"
)

func TestRepeatCollapse(t *testing.T) {
	l := newLogger(100)
	l.log("display", "no frame")
	l.log("display", "no frame")
	l.log("display", "no frame")

	s := &strings.Builder{}
	l.write(s)
	test.ExpectEquality(t, s.String(), "display: no frame (repeat x3)\n")

	// a different entry breaks the run
	l.log("display", "frame presented")
	l.log("display", "no frame")

	s.Reset()
	l.write(s)
	test.ExpectEquality(t, s.String(),
		"display: no frame (repeat x3)\ndisplay: frame presented\ndisplay: no frame\n")
}

func TestMaxEntries(t *testing.T) {
	l := newLogger(2)
	l.log("tag", "one")
	l.log("tag", "two")
	l.log("tag", "three")

	s := &strings.Builder{}
	l.write(s)
	test.ExpectEquality(t, s.String(), "tag: two\ntag: three\n")
}

func TestWriteRecent(t *testing.T) {
	l := newLogger(100)
	l.log("tag", "one")

	s := &strings.Builder{}
	l.writeRecent(s)
	test.ExpectEquality(t, s.String(), "tag: one\n")

	// nothing new since the last writeRecent()
	s.Reset()
	l.writeRecent(s)
	test.ExpectEquality(t, s.String(), "")

	l.log("tag", "two")
	s.Reset()
	l.writeRecent(s)
	test.ExpectEquality(t, s.String(), "tag: two\n")
}

func TestTail(t *testing.T) {
	l := newLogger(100)
	l.log("tag", "one")
	l.log("tag", "two")
	l.log("tag", "three")

	s := &strings.Builder{}
	l.tail(s, 2)
	test.ExpectEquality(t, s.String(), "tag: two\ntag: three\n")

	// a tail longer than the log returns the whole log
	s.Reset()
	l.tail(s, 10)
	test.ExpectEquality(t, s.String(), "tag: one\ntag: two\ntag: three\n")
}

func TestNewlineStripping(t *testing.T) {
	l := newLogger(100)
	l.log("tag", "multi\nline\ndetail")

	s := &strings.Builder{}
	l.write(s)
	test.ExpectEquality(t, s.String(), "tag: multilinedetail\n")
}

func TestEcho(t *testing.T) {
	l := newLogger(100)
	l.log("tag", "before echo")

	s := &strings.Builder{}
	l.setEcho(s, true)
	test.ExpectEquality(t, s.String(), "tag: before echo\n")

	l.log("tag", "after echo")
	test.ExpectEquality(t, s.String(), "tag: before echo\ntag: after echo\n")
}
