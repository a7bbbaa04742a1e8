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

package pattern

import (
	"fmt"
	"sync"
	"time"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/display"
	"github.com/citrine-emu/citrine/dsp"
	"github.com/citrine-emu/citrine/emulation"
	"github.com/citrine-emu/citrine/limiter"
	"github.com/citrine-emu/citrine/logger"
)

// sentinel errors for the memory implementation.
const (
	AddressError = "pattern: address range %08x to %08x not mapped"
)

const frameRate = 60

// memory is a small window of the emulated linear memory, just large enough
// for the two framebuffers.
type memory struct {
	base uint32
	data []byte
}

// Region implements the emulation.Memory interface.
func (m *memory) Region(address uint32, length int) ([]byte, error) {
	if length < 0 {
		return nil, curated.Errorf(AddressError, address, address)
	}
	end := uint64(address) + uint64(length)
	if address < m.base || end > uint64(m.base)+uint64(len(m.data)) {
		return nil, curated.Errorf(AddressError, address, end)
	}
	o := address - m.base
	return m.data[o : o+uint32(length)], nil
}

// FlushRegion implements the emulation.Memory interface. The pattern core
// has no rasteriser cache so there is nothing to write back.
func (m *memory) FlushRegion(_ uint32, _ int) {
}

// Core is a stand-in emulation core that renders a moving test pattern into
// emulated linear memory. It is used to exercise the frontend without a
// machine emulation attached.
//
// Core implements the emulation.System, emulation.VideoSource and
// userinput.HandleInput interfaces.
type Core struct {
	fps *limiter.FpsLimiter
	mem *memory

	top    emulation.FramebufferConfig
	bottom emulation.FramebufferConfig

	frame int

	crit      sync.Mutex
	poweredOn bool
	touching  bool
	touchX    int
	touchY    int
	keys      map[string]bool

	// the window layout touch coordinates arrive in. replaced whenever the
	// window is resized
	layout display.FramebufferLayout

	decoder dsp.Decoder
}

// NewCore is the preferred method of initialisation for the Core type.
func NewCore() (*Core, error) {
	fps, err := limiter.NewFpsLimiter(frameRate)
	if err != nil {
		return nil, err
	}

	core := &Core{
		fps:       fps,
		poweredOn: true,
		keys:      make(map[string]bool),
		layout:    display.DefaultFrameLayout(emulation.TopScreenWidth, emulation.TopScreenHeight+emulation.BottomScreenHeight),
	}

	// framebuffers are stored rotated by ninety degrees so the stride is a
	// column of screen pixels
	topBPP := emulation.PixelFormatRGB565.BytesPerPixel()
	core.top = emulation.FramebufferConfig{
		Address: emulation.LinearMemoryBase,
		Stride:  emulation.TopScreenHeight * topBPP,
		Width:   emulation.TopScreenWidth,
		Height:  emulation.TopScreenHeight,
		Format:  emulation.PixelFormatRGB565,
	}
	topSize := core.top.Width * core.top.Stride

	bottomBPP := emulation.PixelFormatRGB565.BytesPerPixel()
	core.bottom = emulation.FramebufferConfig{
		Address: emulation.LinearMemoryBase + uint32(topSize),
		Stride:  emulation.BottomScreenHeight * bottomBPP,
		Width:   emulation.BottomScreenWidth,
		Height:  emulation.BottomScreenHeight,
		Format:  emulation.PixelFormatRGB565,
	}
	bottomSize := core.bottom.Width * core.bottom.Stride

	core.mem = &memory{
		base: emulation.LinearMemoryBase,
		data: make([]byte, topSize+bottomSize),
	}

	core.render()

	return core, nil
}

// Framebuffer implements the emulation.VideoSource interface.
func (core *Core) Framebuffer(screen int) emulation.FramebufferConfig {
	if screen == emulation.BottomScreen {
		return core.bottom
	}
	return core.top
}

// Memory implements the emulation.VideoSource interface.
func (core *Core) Memory() emulation.Memory {
	return core.mem
}

// RunLoop implements the emulation.System interface. One iteration renders
// one frame, paced to the pattern frame rate.
func (core *Core) RunLoop() emulation.Result {
	core.fps.Wait()
	return core.SingleStep()
}

// SingleStep implements the emulation.System interface.
func (core *Core) SingleStep() emulation.Result {
	core.crit.Lock()
	if !core.poweredOn {
		core.crit.Unlock()
		return emulation.ShutdownRequested
	}
	core.crit.Unlock()

	core.frame++
	core.render()
	return emulation.Success
}

// Shutdown implements the emulation.System interface.
func (core *Core) Shutdown() {
	core.crit.Lock()
	defer core.crit.Unlock()
	core.poweredOn = false
}

// IsPoweredOn implements the emulation.System interface.
func (core *Core) IsPoweredOn() bool {
	core.crit.Lock()
	defer core.crit.Unlock()
	return core.poweredOn
}

// StatusDetails implements the emulation.System interface.
func (core *Core) StatusDetails() string {
	core.crit.Lock()
	defer core.crit.Unlock()
	s := fmt.Sprintf("pattern core: frame %d", core.frame)
	if core.decoder != nil && core.decoder.IsValid() {
		s += ", mp3 decoder attached"
	}
	return s
}

// PreloadTextures implements the emulation.TexturePreloader interface. The
// pattern core has no textures but walks the stages so the loading screen
// can be seen working.
func (core *Core) PreloadTextures(stop func() bool, progress emulation.ProgressCallback) {
	const steps = 20
	for i := 0; i <= steps; i++ {
		if stop() {
			return
		}
		if progress != nil {
			progress(emulation.LoadStagePreload, i, steps)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// SetFrameLayout tells the core how screen content is arranged in the
// window. Touch coordinates arrive in window pixels and are interpreted
// against this layout.
func (core *Core) SetFrameLayout(layout display.FramebufferLayout) {
	core.crit.Lock()
	defer core.crit.Unlock()
	core.layout = layout
}

// SetAudioDecoder attaches a DSP decoder to the core, initialising it for
// MP3 playback.
func (core *Core) SetAudioDecoder(dec dsp.Decoder) {
	core.crit.Lock()
	core.decoder = dec
	core.crit.Unlock()

	request := dsp.BinaryMessage{
		Header: dsp.Header{
			Codec:   dsp.CodecMP3,
			Command: dsp.CommandInit,
		},
	}
	response, err := dec.ProcessRequest(request)
	if err != nil {
		logger.Logf(logger.Allow, "pattern", "decoder init: %s", err.Error())
		return
	}
	if response.Header.Result != dsp.ResultSuccess {
		logger.Log(logger.Allow, "pattern", "decoder init refused")
		return
	}
	logger.Log(logger.Allow, "pattern", "audio decoder attached")
}

// settle into the touched/released state and remember the last coordinate.
func (core *Core) setTouch(touching bool, x int, y int) {
	core.crit.Lock()
	defer core.crit.Unlock()
	core.touching = touching
	if touching {
		core.touchX = x
		core.touchY = y
	}
}

// TouchPressed implements the userinput.HandleInput interface.
func (core *Core) TouchPressed(x int, y int) error {
	core.setTouch(true, x, y)
	return nil
}

// TouchMoved implements the userinput.HandleInput interface.
func (core *Core) TouchMoved(x int, y int) error {
	core.setTouch(true, x, y)
	return nil
}

// TouchReleased implements the userinput.HandleInput interface.
func (core *Core) TouchReleased() error {
	core.setTouch(false, 0, 0)
	return nil
}

// PressKey implements the userinput.HandleInput interface.
func (core *Core) PressKey(key string) error {
	core.crit.Lock()
	defer core.crit.Unlock()
	core.keys[key] = true
	return nil
}

// ReleaseKey implements the userinput.HandleInput interface.
func (core *Core) ReleaseKey(key string) error {
	core.crit.Lock()
	defer core.crit.Unlock()
	delete(core.keys, key)
	return nil
}

// ReleaseAllKeys implements the userinput.HandleInput interface.
func (core *Core) ReleaseAllKeys() error {
	core.crit.Lock()
	defer core.crit.Unlock()
	core.keys = make(map[string]bool)
	return nil
}

// KeyCount returns the number of keys currently held.
func (core *Core) KeyCount() int {
	core.crit.Lock()
	defer core.crit.Unlock()
	return len(core.keys)
}
