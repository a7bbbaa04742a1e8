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

// Package console accepts single-key control commands on the controlling
// terminal while the render window has the screen. The terminal is placed
// in cbreak mode so a command takes effect without waiting for a newline.
//
// Commands are delivered on a channel; the package does not act on them
// itself. The reader goroutine ends when the input file is closed or the
// terminal leaves cbreak mode through CleanUp().
package console

import (
	"os"

	"github.com/citrine-emu/citrine/console/ansi"
	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/logger"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Command is a control request read from the terminal.
type Command int

// List of valid Command values.
const (
	CmdTogglePause Command = iota
	CmdStep
	CmdAdvance
	CmdToggleFrameAdvance
	CmdScreenshot
	CmdDumpState
	CmdShowLog
	CmdQuit
)

// the keys that map to each command
const (
	keyTogglePause        = 'p'
	keyStep               = 's'
	keyAdvance            = 'a'
	keyToggleFrameAdvance = 'f'
	keyScreenshot         = 'c'
	keyDumpState          = 'd'
	keyShowLog            = 'l'
	keyQuit               = 'q'
)

// Console owns the controlling terminal for the duration of the session.
type Console struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	commands chan Command
}

// NewConsole is the preferred method of initialisation for the Console
// type. The terminal is in cbreak mode from this point until CleanUp().
func NewConsole() (*Console, error) {
	con := &Console{
		input:    os.Stdin,
		commands: make(chan Command, 8),
	}

	err := termios.Tcgetattr(con.input.Fd(), &con.canAttr)
	if err != nil {
		return nil, curated.Errorf("console: %v", err)
	}

	con.cbreakAttr = con.canAttr
	termios.Cfmakecbreak(&con.cbreakAttr)

	err = termios.Tcsetattr(con.input.Fd(), termios.TCIFLUSH, &con.cbreakAttr)
	if err != nil {
		return nil, curated.Errorf("console: %v", err)
	}

	os.Stdout.WriteString(ansi.DimPens["white"])
	os.Stdout.WriteString("console: [p]ause [s]tep [a]dvance [f]rame-advance [c]apture [d]ump [l]og [q]uit\n")
	os.Stdout.WriteString(ansi.NormalPen)

	go con.read()

	return con, nil
}

// read loops over single-key reads until the input file fails.
func (con *Console) read() {
	defer close(con.commands)

	buf := make([]byte, 1)
	for {
		n, err := con.input.Read(buf)
		if err != nil || n != 1 {
			return
		}

		var cmd Command
		switch rune(buf[0]) {
		case keyTogglePause:
			cmd = CmdTogglePause
		case keyStep:
			cmd = CmdStep
		case keyAdvance:
			cmd = CmdAdvance
		case keyToggleFrameAdvance:
			cmd = CmdToggleFrameAdvance
		case keyScreenshot:
			cmd = CmdScreenshot
		case keyDumpState:
			cmd = CmdDumpState
		case keyShowLog:
			cmd = CmdShowLog
		case keyQuit:
			cmd = CmdQuit
		default:
			continue
		}

		select {
		case con.commands <- cmd:
		default:
			// the consumer has fallen behind. dropping the command is
			// better than wedging the terminal reader
			logger.Log(logger.Allow, "console", "command dropped")
		}

		if cmd == CmdQuit {
			return
		}
	}
}

// Commands is the channel control requests are delivered on. Closed when
// the reader ends.
func (con *Console) Commands() <-chan Command {
	return con.commands
}

// CleanUp returns the terminal to canonical mode.
func (con *Console) CleanUp() {
	err := termios.Tcsetattr(con.input.Fd(), termios.TCIFLUSH, &con.canAttr)
	if err != nil {
		logger.Log(logger.Allow, "console", err.Error())
	}
}
