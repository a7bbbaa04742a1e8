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

package settings_test

import (
	"testing"

	"github.com/citrine-emu/citrine/settings"
	"github.com/citrine-emu/citrine/test"
)

func TestDefaults(t *testing.T) {
	set, err := settings.NewSettings()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, set.GraphicsAPI(), settings.GraphicsAPIOpenGL)
	test.ExpectEquality(t, set.VSync.Get().(bool), false)
	test.ExpectEquality(t, set.MinClientWidth.Get().(int), 400)
	test.ExpectEquality(t, set.MinClientHeight.Get().(int), 480)
	test.ExpectEquality(t, set.AudioDump.Get().(string), "")
}

func TestReset(t *testing.T) {
	set, err := settings.NewSettings()
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, set.API.Set(int(settings.GraphicsAPISoftware)))
	test.ExpectSuccess(t, set.VSync.Set(true))
	test.ExpectEquality(t, set.GraphicsAPI(), settings.GraphicsAPISoftware)

	test.ExpectSuccess(t, set.Reset())
	test.ExpectEquality(t, set.GraphicsAPI(), settings.GraphicsAPIOpenGL)
	test.ExpectEquality(t, set.VSync.Get().(bool), false)
}

func TestCoercion(t *testing.T) {
	set, err := settings.NewSettings()
	test.DemandSuccess(t, err)

	// string representations are accepted
	test.ExpectSuccess(t, set.VSync.Set("true"))
	test.ExpectEquality(t, set.VSync.Get().(bool), true)

	test.ExpectSuccess(t, set.MinClientWidth.Set("800"))
	test.ExpectEquality(t, set.MinClientWidth.Get().(int), 800)

	// a bool accepts any string, treating anything but "true" as false
	test.ExpectSuccess(t, set.VSync.Set("not a boolean"))
	test.ExpectEquality(t, set.VSync.Get().(bool), false)

	// an int does not
	test.ExpectFailure(t, set.MinClientWidth.Set("not a number"))
}

func TestHooks(t *testing.T) {
	set, err := settings.NewSettings()
	test.DemandSuccess(t, err)

	order := []string{}
	set.VSync.SetHookPre(func(v settings.Value) error {
		order = append(order, "pre")
		return nil
	})
	set.VSync.SetHookPost(func(v settings.Value) error {
		order = append(order, "post")
		return nil
	})

	test.ExpectSuccess(t, set.VSync.Set(true))
	test.DemandEquality(t, len(order), 2)
	test.ExpectEquality(t, order[0], "pre")
	test.ExpectEquality(t, order[1], "post")
}

func TestParseGraphicsAPI(t *testing.T) {
	for _, c := range []struct {
		s   string
		api settings.GraphicsAPI
	}{
		{"software", settings.GraphicsAPISoftware},
		{"opengl", settings.GraphicsAPIOpenGL},
		{"OpenGL", settings.GraphicsAPIOpenGL},
		{"vulkan", settings.GraphicsAPIVulkan},
	} {
		api, err := settings.ParseGraphicsAPI(c.s)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, api, c.api)
	}

	_, err := settings.ParseGraphicsAPI("direct3d")
	test.ExpectFailure(t, err)
}
