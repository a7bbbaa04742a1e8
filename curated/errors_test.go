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

package curated_test

import (
	"errors"
	"testing"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/test"
)

const (
	testError      = "test error: %v"
	testErrorOther = "test error other: %v"
)

func TestIs(t *testing.T) {
	err := curated.Errorf(testError, "detail")
	test.ExpectEquality(t, curated.Is(err, testError), true)
	test.ExpectEquality(t, curated.Is(err, testErrorOther), false)
	test.ExpectEquality(t, curated.IsAny(err), true)

	// plain errors are not curated errors
	plain := errors.New("plain")
	test.ExpectEquality(t, curated.IsAny(plain), false)
	test.ExpectEquality(t, curated.Is(plain, testError), false)

	// nil is never a curated error
	test.ExpectEquality(t, curated.IsAny(nil), false)
	test.ExpectEquality(t, curated.Is(nil, testError), false)
	test.ExpectEquality(t, curated.Has(nil, testError), false)
}

func TestHasThroughChain(t *testing.T) {
	inner := curated.Errorf(testError, "detail")
	outer := curated.Errorf(testErrorOther, inner)

	test.ExpectEquality(t, curated.Is(outer, testErrorOther), true)
	test.ExpectEquality(t, curated.Is(outer, testError), false)
	test.ExpectEquality(t, curated.Has(outer, testError), true)
	test.ExpectEquality(t, curated.Has(outer, testErrorOther), true)

	// a third level of wrapping is still found
	outermost := curated.Errorf("outermost: %v", outer)
	test.ExpectEquality(t, curated.Has(outermost, testError), true)
}

func TestDeduplication(t *testing.T) {
	// adjacent duplicate message parts are removed when the error message
	// is formatted
	inner := curated.Errorf("display: %v", "bad surface")
	outer := curated.Errorf("display: %v", inner)
	test.ExpectEquality(t, outer.Error(), "display: bad surface")

	// non-duplicate parts are left alone
	outer = curated.Errorf("gui: %v", inner)
	test.ExpectEquality(t, outer.Error(), "gui: display: bad surface")
}
