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

// Package settings collects the configuration values consumed by the
// frontend core. Values are read-only from the point of view of the display
// and driver packages; whatever changes them (command line, configuration
// GUI) does so through the Set() functions of the individual types.
package settings

import (
	"fmt"
	"strings"
)

// GraphicsAPI is the enumeration of mutually exclusive rendering backends.
type GraphicsAPI int

// List of valid GraphicsAPI values.
const (
	GraphicsAPISoftware GraphicsAPI = iota
	GraphicsAPIOpenGL
	GraphicsAPIVulkan
)

func (api GraphicsAPI) String() string {
	switch api {
	case GraphicsAPISoftware:
		return "software"
	case GraphicsAPIOpenGL:
		return "opengl"
	case GraphicsAPIVulkan:
		return "vulkan"
	}
	return fmt.Sprintf("unknown (%d)", int(api))
}

// ParseGraphicsAPI converts a string to a GraphicsAPI value.
func ParseGraphicsAPI(s string) (GraphicsAPI, error) {
	switch strings.ToLower(s) {
	case "software":
		return GraphicsAPISoftware, nil
	case "opengl":
		return GraphicsAPIOpenGL, nil
	case "vulkan":
		return GraphicsAPIVulkan, nil
	}
	return GraphicsAPISoftware, fmt.Errorf("settings: unrecognised graphics API (%s)", s)
}

// Settings is the aggregation of every configuration value consumed by the
// frontend core.
type Settings struct {
	// one of the GraphicsAPI values
	API Int

	// synchronise buffer swaps with the vertical retrace
	VSync Bool

	// emulation does not proceed until an explicit advance signal authorises
	// each frame
	FrameAdvance Bool

	// preload custom textures before emulation begins
	PreloadTextures Bool

	// minimum size of the client area of the render window
	MinClientWidth  Int
	MinClientHeight Int

	// background colour components in the range 0.0 to 1.0
	BgRed   Float
	BgGreen Float
	BgBlue  Float

	// write decoded DSP audio to the named wav file. empty string disables
	AudioDump String

	// launch the statsview monitoring server
	Statsview Bool

	// accept control commands on the terminal
	Terminal Bool
}

// NewSettings is the preferred method of initialisation for the Settings
// type. All values are set to their defaults.
func NewSettings() (*Settings, error) {
	set := &Settings{}

	err := set.Reset()
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	return set, nil
}

// Reset returns all settings to their default values.
func (set *Settings) Reset() error {
	for _, d := range []struct {
		s setting
		v Value
	}{
		{&set.API, int(GraphicsAPIOpenGL)},
		{&set.VSync, false},
		{&set.FrameAdvance, false},
		{&set.PreloadTextures, false},
		{&set.MinClientWidth, 400},
		{&set.MinClientHeight, 480},
		{&set.BgRed, 0.0},
		{&set.BgGreen, 0.0},
		{&set.BgBlue, 0.0},
		{&set.AudioDump, ""},
		{&set.Statsview, false},
		{&set.Terminal, false},
	} {
		err := d.s.Set(d.v)
		if err != nil {
			return err
		}
	}

	return nil
}

// GraphicsAPI returns the API field as a GraphicsAPI value.
func (set *Settings) GraphicsAPI() GraphicsAPI {
	return GraphicsAPI(set.API.Get().(int))
}
