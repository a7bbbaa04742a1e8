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

package userinput_test

import (
	"testing"

	"github.com/citrine-emu/citrine/test"
	"github.com/citrine-emu/citrine/userinput"
)

// mockInput records the calls made to the HandleInput interface.
type mockInput struct {
	touchX, touchY int
	touches        int
	moves          int
	releases       int
	pressed        map[string]bool
	releasedAll    int
}

func newMockInput() *mockInput {
	return &mockInput{pressed: make(map[string]bool)}
}

func (m *mockInput) TouchPressed(x int, y int) error {
	m.touchX = x
	m.touchY = y
	m.touches++
	return nil
}

func (m *mockInput) TouchMoved(x int, y int) error {
	m.touchX = x
	m.touchY = y
	m.moves++
	return nil
}

func (m *mockInput) TouchReleased() error {
	m.releases++
	return nil
}

func (m *mockInput) PressKey(key string) error {
	m.pressed[key] = true
	return nil
}

func (m *mockInput) ReleaseKey(key string) error {
	delete(m.pressed, key)
	return nil
}

func (m *mockInput) ReleaseAllKeys() error {
	m.pressed = make(map[string]bool)
	m.releasedAll++
	return nil
}

func TestScaleTouch(t *testing.T) {
	// scaling rounds and then clamps to zero or greater
	x, y := userinput.ScaleTouch(5.4, 3.6, 2.0)
	test.ExpectEquality(t, x, 11)
	test.ExpectEquality(t, y, 7)

	x, y = userinput.ScaleTouch(-3.0, -0.4, 2.0)
	test.ExpectEquality(t, x, 0)
	test.ExpectEquality(t, y, 0)

	// identity ratio
	x, y = userinput.ScaleTouch(10.0, 20.0, 1.0)
	test.ExpectEquality(t, x, 10)
	test.ExpectEquality(t, y, 20)
}

func TestCombineTouchPoints(t *testing.T) {
	x, y, ok := userinput.CombineTouchPoints([]userinput.TouchPoint{
		{X: 10, Y: 10, State: userinput.TouchPointMoved},
		{X: 30, Y: 10, State: userinput.TouchPointMoved},
	})
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, x, 20.0)
	test.ExpectEquality(t, y, 10.0)

	// released points do not contribute
	x, y, ok = userinput.CombineTouchPoints([]userinput.TouchPoint{
		{X: 10, Y: 10, State: userinput.TouchPointStationary},
		{X: 90, Y: 50, State: userinput.TouchPointReleased},
	})
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, x, 10.0)
	test.ExpectEquality(t, y, 10.0)

	// no active points at all
	_, _, ok = userinput.CombineTouchPoints([]userinput.TouchPoint{
		{X: 1, Y: 1, State: userinput.TouchPointReleased},
	})
	test.ExpectFailure(t, ok)
}

func TestRouter_touch(t *testing.T) {
	rt := userinput.NewRouter()
	rt.SetPixelRatio(2.0)
	inp := newMockInput()

	fwd, err := rt.HandleUserInput(userinput.EventMouseButton{
		Button: userinput.MouseButtonLeft, Down: true, X: 5.4, Y: 3.6,
	}, inp)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, fwd)
	test.ExpectEquality(t, inp.touchX, 11)
	test.ExpectEquality(t, inp.touchY, 7)
	test.ExpectSuccess(t, rt.MouseActivity)

	// right button is not a touch
	fwd, err = rt.HandleUserInput(userinput.EventMouseButton{
		Button: userinput.MouseButtonRight, Down: true, X: 1, Y: 1,
	}, inp)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, fwd)
	test.ExpectEquality(t, inp.touches, 1)

	fwd, err = rt.HandleUserInput(userinput.EventMouseButton{
		Button: userinput.MouseButtonLeft, Down: false,
	}, inp)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, fwd)
	test.ExpectEquality(t, inp.releases, 1)
}

func TestRouter_multiTouchUpdate(t *testing.T) {
	rt := userinput.NewRouter()
	inp := newMockInput()

	fwd, err := rt.HandleUserInput(userinput.EventTouchUpdate{
		Points: []userinput.TouchPoint{
			{X: 10, Y: 10, State: userinput.TouchPointMoved},
			{X: 30, Y: 10, State: userinput.TouchPointMoved},
		},
	}, inp)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, fwd)
	test.ExpectEquality(t, inp.touchX, 20)
	test.ExpectEquality(t, inp.touchY, 10)
	test.ExpectEquality(t, inp.moves, 1)
}

func TestRouter_keyboard(t *testing.T) {
	rt := userinput.NewRouter()
	inp := newMockInput()

	_, err := rt.HandleUserInput(userinput.EventKeyboard{Key: "A", Down: true}, inp)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, inp.pressed["A"])

	// key repeats are discarded
	fwd, err := rt.HandleUserInput(userinput.EventKeyboard{Key: "A", Down: true, Repeat: true}, inp)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, fwd)

	// focus loss releases all keys
	_, err = rt.HandleUserInput(userinput.EventFocusLost{}, inp)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(inp.pressed), 0)
	test.ExpectEquality(t, inp.releasedAll, 1)
}

func TestRouter_quit(t *testing.T) {
	rt := userinput.NewRouter()
	inp := newMockInput()

	fwd, err := rt.HandleUserInput(userinput.EventQuit{}, inp)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, fwd)
	test.ExpectSuccess(t, rt.Quit)
}
