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

// Package performance profiles a running session. The profiler wraps the
// session function; profiles are written to the working directory and can be
// examined with the pprof tool.
package performance

import (
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/logger"
)

// sentinel errors.
const (
	ProfilingError = "performance: %v"
)

// Profile selects which profiles RunProfiler() gathers.
type Profile int

// List of valid Profile values.
const (
	ProfileNone Profile = iota
	ProfileCPU
	ProfileMem
	ProfileBoth
)

// ParseProfile converts a string to a Profile value.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "none":
		return ProfileNone, nil
	case "cpu":
		return ProfileCPU, nil
	case "mem":
		return ProfileMem, nil
	case "both":
		return ProfileBoth, nil
	}
	return ProfileNone, curated.Errorf(ProfilingError, "unrecognised profile: "+s)
}

// RunProfiler gathers the requested profiles around a call to the run
// function. The tag becomes part of the profile filenames.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile == ProfileCPU || profile == ProfileBoth {
		f, err := os.Create(tag + "_cpu.profile")
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer f.Close()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer pprof.StopCPUProfile()

		logger.Logf(logger.Allow, "performance", "cpu profiling to %s", f.Name())
	}

	err := run()
	if err != nil {
		return err
	}

	if profile == ProfileMem || profile == ProfileBoth {
		f, err := os.Create(tag + "_mem.profile")
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer f.Close()

		runtime.GC()
		err = pprof.WriteHeapProfile(f)
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}

		logger.Logf(logger.Allow, "performance", "memory profile written to %s", f.Name())
	}

	return nil
}
