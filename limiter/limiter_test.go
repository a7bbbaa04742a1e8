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

package limiter_test

import (
	"testing"
	"time"

	"github.com/citrine-emu/citrine/limiter"
	"github.com/citrine-emu/citrine/test"
)

func TestInvalidRate(t *testing.T) {
	_, err := limiter.NewFpsLimiter(0)
	test.ExpectFailure(t, err)
	_, err = limiter.NewFpsLimiter(-60)
	test.ExpectFailure(t, err)
}

func TestWait(t *testing.T) {
	lim, err := limiter.NewFpsLimiter(100)
	test.DemandSuccess(t, err)

	// the first tick is available immediately; subsequent ticks are spaced
	// by the frame duration
	lim.Wait()

	start := time.Now()
	lim.Wait()
	lim.Wait()
	elapsed := time.Since(start)

	if elapsed < 10*time.Millisecond {
		t.Errorf("two waits at 100fps took %v, expected at least 10ms", elapsed)
	}
}

func TestFrameAdvanceInactive(t *testing.T) {
	fa := limiter.NewFrameAdvance(false)

	// an inactive gate never blocks
	done := make(chan bool)
	go func() {
		for i := 0; i < 100; i++ {
			fa.WaitOnce()
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitOnce() blocked on an inactive gate")
	}
}

func TestFrameAdvanceGate(t *testing.T) {
	fa := limiter.NewFrameAdvance(true)
	test.ExpectEquality(t, fa.IsFrameAdvancing(), true)

	passed := make(chan bool)
	go func() {
		fa.WaitOnce()
		passed <- true
	}()

	// no advance signal yet so WaitOnce() must still be blocked
	select {
	case <-passed:
		t.Fatal("WaitOnce() returned without an advance signal")
	case <-time.After(50 * time.Millisecond):
	}

	fa.Advance()
	select {
	case <-passed:
	case <-time.After(time.Second):
		t.Fatal("WaitOnce() still blocked after the advance signal")
	}
}

func TestFrameAdvanceDisableReleases(t *testing.T) {
	fa := limiter.NewFrameAdvance(true)

	passed := make(chan bool)
	go func() {
		fa.WaitOnce()
		passed <- true
	}()

	// turning the gate off releases the waiter
	time.Sleep(10 * time.Millisecond)
	fa.SetFrameAdvancing(false)

	select {
	case <-passed:
	case <-time.After(time.Second):
		t.Fatal("WaitOnce() still blocked after the gate was disabled")
	}
	test.ExpectEquality(t, fa.IsFrameAdvancing(), false)
}
