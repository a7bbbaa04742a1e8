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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate, plus the frame-advance gate used by the driver.
//
// A new FpsLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFpsLimiter(60)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		renderImage()
//	}
package limiter

import (
	"fmt"
	"sync"
	"time"
)

// this is a really rough attempt at rate limiting. probably only any good if
// base performance of the machine is well above the required rate.

// FpsLimiter will trigger every frame-duration.
type FpsLimiter struct {
	framesPerSecond int
	secondsPerFrame time.Duration

	tick chan bool
}

// NewFpsLimiter is the preferred method of initialisation for the FpsLimiter
// type.
func NewFpsLimiter(framesPerSecond int) (*FpsLimiter, error) {
	if framesPerSecond <= 0 {
		return nil, fmt.Errorf("limiter: invalid frame rate (%d)", framesPerSecond)
	}

	lim := &FpsLimiter{}
	lim.SetLimit(framesPerSecond)

	lim.tick = make(chan bool)

	// run ticker concurrently
	go func() {
		adjustedSecondPerFrame := lim.secondsPerFrame
		t := time.Now()
		for {
			lim.tick <- true
			time.Sleep(adjustedSecondPerFrame)
			nt := time.Now()
			adjustedSecondPerFrame -= nt.Sub(t) - lim.secondsPerFrame
			t = nt
		}
	}()

	return lim, nil
}

// SetLimit changes the rate at which the FpsLimiter triggers.
func (lim *FpsLimiter) SetLimit(framesPerSecond int) {
	lim.framesPerSecond = framesPerSecond
	lim.secondsPerFrame = time.Duration(int64(time.Second) / int64(framesPerSecond))
}

// Wait will block until the next trigger.
func (lim *FpsLimiter) Wait() {
	<-lim.tick
}

// HasWaited returns true if time has already elapsed and false if it is
// still yet to happen.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// FrameAdvance gates emulation on an explicit external signal. When frame
// advancing is enabled, WaitOnce() blocks until Advance() is called; when
// disabled WaitOnce() returns immediately.
type FrameAdvance struct {
	crit      sync.Mutex
	cond      *sync.Cond
	advancing bool
	pending   int
}

// NewFrameAdvance is the preferred method of initialisation for the
// FrameAdvance type.
func NewFrameAdvance(advancing bool) *FrameAdvance {
	fa := &FrameAdvance{advancing: advancing}
	fa.cond = sync.NewCond(&fa.crit)
	return fa
}

// IsFrameAdvancing returns whether the gate is active.
func (fa *FrameAdvance) IsFrameAdvancing() bool {
	fa.crit.Lock()
	defer fa.crit.Unlock()
	return fa.advancing
}

// SetFrameAdvancing enables or disables the gate. Disabling the gate
// releases any goroutine blocked in WaitOnce().
func (fa *FrameAdvance) SetFrameAdvancing(advancing bool) {
	fa.crit.Lock()
	defer fa.crit.Unlock()
	fa.advancing = advancing
	fa.cond.Broadcast()
}

// Advance authorises exactly one WaitOnce() to proceed.
func (fa *FrameAdvance) Advance() {
	fa.crit.Lock()
	defer fa.crit.Unlock()
	fa.pending++
	fa.cond.Broadcast()
}

// WaitOnce blocks until a single advance signal arrives. If the gate is not
// active the function returns immediately.
func (fa *FrameAdvance) WaitOnce() {
	fa.crit.Lock()
	defer fa.crit.Unlock()

	for fa.advancing && fa.pending == 0 {
		fa.cond.Wait()
	}

	if fa.pending > 0 {
		fa.pending--
	}
}
