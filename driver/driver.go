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

package driver

import (
	"runtime"
	"sync"

	"github.com/citrine-emu/citrine/display"
	"github.com/citrine-emu/citrine/emulation"
	"github.com/citrine-emu/citrine/limiter"
	"github.com/citrine-emu/citrine/logger"
	"github.com/citrine-emu/citrine/notifications"
)

// Driver runs the emulation core on its own goroutine and mediates between
// that goroutine and whatever is controlling it. Control requests arrive
// through SetRunning(), SingleStep() and Stop(); the driver services them
// in its main loop, sleeping on a condition variable while there is nothing
// to do.
type Driver struct {
	system emulation.System
	notify notifications.Notify

	// context made current for the lifetime of the run. the core's GL
	// objects are created in it
	context display.Context

	// nil disables the frame advance gate
	advance *limiter.FrameAdvance

	// progress reports during texture preload and disk resource warm up.
	// may be nil
	progress emulation.ProgressCallback

	// called on the driver goroutine when the core reports a failure. the
	// argument is the core's diagnostic detail. may be nil
	OnFailure func(details string)

	crit       sync.Mutex
	cond       *sync.Cond
	running    bool
	singleStep bool
	stopRun    bool
	finished   bool
}

// NewDriver is the preferred method of initialisation for the Driver type.
// The context should be the render window's main context; pass nil to run
// without one (the software backend needs no context).
func NewDriver(system emulation.System, context display.Context, notify notifications.Notify) *Driver {
	drv := &Driver{
		system:  system,
		notify:  notify,
		context: context,
	}
	drv.cond = sync.NewCond(&drv.crit)
	return drv
}

// SetFrameAdvance attaches the gate that withholds each emulation iteration
// until an advance signal arrives. Must be called before Run().
func (drv *Driver) SetFrameAdvance(advance *limiter.FrameAdvance) {
	drv.advance = advance
}

// SetProgressCallback attaches the loading progress report. Must be called
// before Run().
func (drv *Driver) SetProgressCallback(progress emulation.ProgressCallback) {
	drv.progress = progress
}

// IsRunning is true when the driver has been told to run continuously. It
// says nothing about whether an iteration is executing this instant.
func (drv *Driver) IsRunning() bool {
	drv.crit.Lock()
	defer drv.crit.Unlock()
	return drv.running
}

// SetRunning starts or pauses continuous emulation. Safe to call from any
// goroutine.
func (drv *Driver) SetRunning(running bool) {
	drv.crit.Lock()
	defer drv.crit.Unlock()
	drv.running = running
	drv.cond.Broadcast()
}

// SingleStep requests exactly one emulation step. Effective while paused;
// while running continuously the request is absorbed by the run loop. Safe
// to call from any goroutine.
func (drv *Driver) SingleStep() {
	drv.crit.Lock()
	defer drv.crit.Unlock()
	drv.singleStep = true
	drv.cond.Broadcast()
}

// Stop ends the run permanently. Run() returns once the current iteration
// completes and the core has shut down. Safe to call from any goroutine.
func (drv *Driver) Stop() {
	drv.crit.Lock()
	drv.stopRun = true
	drv.running = false
	drv.cond.Broadcast()
	advance := drv.advance
	drv.crit.Unlock()

	// a run blocked in the frame advance gate is waiting on the gate's own
	// condition variable. disarm the gate so the stop can be observed
	if advance != nil {
		advance.SetFrameAdvancing(false)
	}
}

// HasFinished is true once Run() has returned.
func (drv *Driver) HasFinished() bool {
	drv.crit.Lock()
	defer drv.crit.Unlock()
	return drv.finished
}

// notice forwards a notification, logging rather than propagating any
// delivery failure.
func (drv *Driver) notice(n notifications.Notice) {
	if drv.notify == nil {
		return
	}
	err := drv.notify.Notify(n)
	if err != nil {
		logger.Log(logger.Allow, "driver", err.Error())
	}
}

// stopRequested is the poll function handed to the loading stages.
func (drv *Driver) stopRequested() bool {
	drv.crit.Lock()
	defer drv.crit.Unlock()
	return drv.stopRun
}

// load runs the pre-emulation warm up stages that the core supports.
func (drv *Driver) load() {
	progress := drv.progress
	if progress == nil {
		progress = func(emulation.LoadStage, int, int) {}
	}

	if preloader, ok := drv.system.(emulation.TexturePreloader); ok {
		progress(emulation.LoadStagePreload, 0, 0)
		preloader.PreloadTextures(drv.stopRequested, progress)
	}

	progress(emulation.LoadStagePrepare, 0, 0)
	if loader, ok := drv.system.(emulation.DiskResourceLoader); ok {
		loader.LoadDiskResources(drv.stopRequested, progress)
	}
	progress(emulation.LoadStageComplete, 0, 0)
}

// Run drives the emulation core until Stop() is called or the core requests
// shutdown. It blocks, so it is almost always launched on its own
// goroutine. The core is shut down exactly once before Run() returns, on
// every exit path.
func (drv *Driver) Run() {
	if drv.context != nil {
		release, err := display.Acquire(drv.context)
		if err != nil {
			logger.Log(logger.Allow, "driver", err.Error())
		} else {
			defer release()
		}
	}

	drv.load()
	drv.notice(notifications.NotifyHideLoadingScreen)

	// whether the previous iteration left the core executing. used to
	// detect the edges at which debug mode notifications are due
	wasActive := false

	for !drv.stopRequested() {
		drv.crit.Lock()
		running := drv.running
		step := drv.singleStep
		drv.crit.Unlock()

		switch {
		case running:
			if !wasActive {
				drv.notice(notifications.NotifyDebugModeLeft)
			}

			if drv.advance != nil && drv.advance.IsFrameAdvancing() {
				drv.advance.WaitOnce()
				if drv.stopRequested() {
					continue
				}
			}

			result := drv.system.RunLoop()
			if result == emulation.ShutdownRequested {
				drv.Stop()
				continue
			}
			if result == emulation.Failure {
				drv.SetRunning(false)
				drv.reportFailure()
			}

			drv.crit.Lock()
			wasActive = drv.running || drv.singleStep
			stopping := drv.stopRun
			drv.crit.Unlock()

			if !wasActive && !stopping {
				drv.notice(notifications.NotifyDebugModeEntered)
			}

		case step:
			if !wasActive {
				drv.notice(notifications.NotifyDebugModeLeft)
			}

			drv.crit.Lock()
			drv.singleStep = false
			drv.crit.Unlock()

			result := drv.system.SingleStep()
			if result == emulation.ShutdownRequested {
				drv.Stop()
				continue
			}
			if result == emulation.Failure {
				drv.reportFailure()
			}

			drv.notice(notifications.NotifyDebugModeEntered)
			wasActive = false

			// give the goroutine that requested the step the chance to see
			// its result before the next request is serviced
			runtime.Gosched()

		default:
			// nothing to do. sleep until a control request arrives rather
			// than spinning
			drv.crit.Lock()
			for !drv.running && !drv.singleStep && !drv.stopRun {
				drv.cond.Wait()
			}
			drv.crit.Unlock()
		}
	}

	drv.system.Shutdown()

	drv.crit.Lock()
	drv.finished = true
	drv.crit.Unlock()

	logger.Log(logger.Allow, "driver", "emulation ended")
}

// reportFailure logs the core's diagnostic detail and forwards it to the
// failure callback.
func (drv *Driver) reportFailure() {
	details := drv.system.StatusDetails()
	logger.Logf(logger.Allow, "driver", "core failure: %s", details)
	if drv.OnFailure != nil {
		drv.OnFailure(details)
	}
}
