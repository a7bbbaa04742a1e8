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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/citrine-emu/citrine/console"
	"github.com/citrine-emu/citrine/driver"
	"github.com/citrine-emu/citrine/dsp"
	"github.com/citrine-emu/citrine/emulation"
	"github.com/citrine-emu/citrine/gui"
	"github.com/citrine-emu/citrine/limiter"
	"github.com/citrine-emu/citrine/logger"
	"github.com/citrine-emu/citrine/modalflag"
	"github.com/citrine-emu/citrine/pattern"
	"github.com/citrine-emu/citrine/performance"
	"github.com/citrine-emu/citrine/settings"
	"github.com/citrine-emu/citrine/statsview"
	"github.com/citrine-emu/citrine/version"
	"github.com/citrine-emu/citrine/wavwriter"
)

func init() {
	// window creation and event servicing must happen on the main thread
	runtime.LockOSThread()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "VERSION":
		ver, rev, release := version.Version()
		fmt.Printf("%s %s\n", version.ApplicationName, ver)
		if !release {
			fmt.Printf("  %s\n", rev)
		}
	case "RUN":
		err = run(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "* %s\n", err)
			os.Exit(10)
		}
	}
}

// run is the RUN sub-mode: a frontend session around whatever core is
// attached. Blocks until the session ends.
func run(md *modalflag.Modes) error {
	md.NewMode()

	api := md.AddString("api", "opengl", "render backend (software, opengl, vulkan)")
	vsync := md.AddBool("vsync", false, "sync buffer swaps to the vertical retrace")
	frameAdvance := md.AddBool("frameadvance", false, "gate every frame on an explicit advance signal")
	preload := md.AddBool("preload", false, "preload custom textures before emulation begins")
	audioDump := md.AddString("audiodump", "", "write decoded audio to the named wav file")
	stats := md.AddBool("statsview", false, "run the statsview monitoring server")
	term := md.AddBool("term", false, "accept control commands on the terminal")
	echoLog := md.AddBool("log", false, "echo the log to stderr")
	profile := md.AddString("profile", "none", "gather profiles for the session (cpu, mem, both)")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	if *echoLog {
		logger.SetEcho(logger.NewColorizer(os.Stderr), true)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	set, err := settings.NewSettings()
	if err != nil {
		return err
	}

	backend, err := settings.ParseGraphicsAPI(*api)
	if err != nil {
		return err
	}

	for _, d := range []struct {
		s interface{ Set(settings.Value) error }
		v settings.Value
	}{
		{&set.API, int(backend)},
		{&set.VSync, *vsync},
		{&set.FrameAdvance, *frameAdvance},
		{&set.PreloadTextures, *preload},
		{&set.AudioDump, *audioDump},
		{&set.Statsview, *stats},
		{&set.Terminal, *term},
	} {
		err = d.s.Set(d.v)
		if err != nil {
			return err
		}
	}

	if set.Statsview.Get().(bool) {
		statsview.Launch(os.Stdout)
	}

	g, err := gui.NewGUI(set)
	if err != nil {
		return err
	}
	defer g.Destroy()

	// the pattern core stands in until a machine emulation is attached
	core, err := pattern.NewCore()
	if err != nil {
		return err
	}

	g.SetInputHandler(core)
	g.SetPoweredQuery(core.IsPoweredOn)
	g.Window().SetVideoSource(core)

	// the decoder serves any core that issues decode requests. wiring it
	// here keeps the audio dump path uniform across cores
	if dump := set.AudioDump.Get().(string); dump != "" {
		sink, err := wavwriter.New(dump, 48000, 2)
		if err != nil {
			return err
		}
		defer func() {
			err := sink.EndMixing()
			if err != nil {
				logger.Log(logger.Allow, "main", err.Error())
			}
		}()

		dec := dsp.NewMP3Decoder(core.Memory())
		dec.SetAudioSink(sink)
		core.SetAudioDecoder(dec)
	}

	advance := limiter.NewFrameAdvance(set.FrameAdvance.Get().(bool))

	drv := driver.NewDriver(core, g.Window().MainContext(), g)
	drv.SetFrameAdvance(advance)
	drv.SetProgressCallback(func(_ emulation.LoadStage, value int, total int) {
		g.SetProgress(value, total)
	})
	drv.OnFailure = g.SetFailure

	// first interrupt ends the session cleanly. a second one forces the
	// issue
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		g.Quit()
		<-intChan
		os.Exit(10)
	}()

	if set.Terminal.Get().(bool) {
		con, err := console.NewConsole()
		if err != nil {
			return err
		}
		defer con.CleanUp()
		go serviceConsole(con, g, drv, advance)
	}

	go func() {
		err := performance.RunProfiler(prf, "citrine", func() error {
			drv.Run()
			return nil
		})
		if err != nil {
			logger.Log(logger.Allow, "main", err.Error())
		}
		g.Quit()
	}()
	drv.SetRunning(true)

	// the window is serviced on this, the main, thread
	g.Run()

	drv.Stop()
	for !drv.HasFinished() {
		time.Sleep(10 * time.Millisecond)
	}

	return nil
}

// serviceConsole routes terminal commands to the session.
func serviceConsole(con *console.Console, g *gui.GUI, drv *driver.Driver, advance *limiter.FrameAdvance) {
	for cmd := range con.Commands() {
		switch cmd {
		case console.CmdTogglePause:
			drv.SetRunning(!drv.IsRunning())
		case console.CmdStep:
			drv.SingleStep()
		case console.CmdAdvance:
			advance.Advance()
		case console.CmdToggleFrameAdvance:
			advance.SetFrameAdvancing(!advance.IsFrameAdvancing())
		case console.CmdScreenshot:
			path := fmt.Sprintf("citrine_%s.png", time.Now().Format("20060102_150405"))
			err := g.Window().CaptureScreenshot(0, path)
			if err != nil {
				logger.Log(logger.Allow, "main", err.Error())
			}
		case console.CmdDumpState:
			path, err := console.DumpState(drv)
			if err != nil {
				logger.Log(logger.Allow, "main", err.Error())
			} else {
				logger.Logf(logger.Allow, "main", "state dumped: %s", path)
			}
		case console.CmdShowLog:
			logger.Tail(logger.NewColorizer(os.Stdout), 25)
		case console.CmdQuit:
			g.Quit()
			return
		}
	}
}
