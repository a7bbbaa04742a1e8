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

package gui

import (
	"testing"

	"github.com/citrine-emu/citrine/notifications"
	"github.com/citrine-emu/citrine/test"
	"github.com/citrine-emu/citrine/userinput"
)

// nullInput accepts every routed event without recording it.
type nullInput struct{}

func (nullInput) TouchPressed(_ int, _ int) error { return nil }
func (nullInput) TouchMoved(_ int, _ int) error   { return nil }
func (nullInput) TouchReleased() error            { return nil }
func (nullInput) PressKey(_ string) error         { return nil }
func (nullInput) ReleaseKey(_ string) error       { return nil }
func (nullInput) ReleaseAllKeys() error           { return nil }

// drainNotices counts how often the notice appears in the queue.
func drainNotices(g *GUI, notice notifications.Notice) int {
	count := 0
	for {
		select {
		case n := <-g.notices:
			if n == notice {
				count++
			}
		default:
			return count
		}
	}
}

func TestRouteEmitsMouseActivity(t *testing.T) {
	g := &GUI{
		router:  userinput.NewRouter(),
		handler: nullInput{},
		notices: make(chan notifications.Notice, 16),
	}

	g.route(userinput.EventMouseButton{
		Button: userinput.MouseButtonLeft, Down: true, X: 10, Y: 10,
	})
	test.ExpectEquality(t, drainNotices(g, notifications.NotifyMouseActivity), 1)

	g.route(userinput.EventMouseMotion{X: 12, Y: 10})
	test.ExpectEquality(t, drainNotices(g, notifications.NotifyMouseActivity), 1)

	// keyboard input is not mouse activity
	g.route(userinput.EventKeyboard{Key: "A", Down: true})
	test.ExpectEquality(t, drainNotices(g, notifications.NotifyMouseActivity), 0)

	// nor is a finger touch
	g.route(userinput.EventTouchBegin{X: 10, Y: 10})
	test.ExpectEquality(t, drainNotices(g, notifications.NotifyMouseActivity), 0)
}
