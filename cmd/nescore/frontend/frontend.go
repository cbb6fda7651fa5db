// Package frontend is the reference SDL2/OpenGL window: it implements
// nes.VideoSink by blitting the indexed framebuffer through the NTSC
// palette onto a streaming texture, and nes.InputSource by reading SDL2's
// keyboard state once per poll.
//
// Grounded on _examples/arl-nestor/hw/window.go for window/GL-context/
// texture setup and _examples/arl-nestor/hw/input/input.go for the
// keyboard-scancode polling shape, simplified from that file's 3.3-core
// shader pipeline to plain 2.1 immediate-mode texturing (this project has
// no CRT shader to justify carrying a GLSL program, vertex buffers, and a
// shader-compile step).
package frontend

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"

	"nescore/nes"
	"nescore/ppu2c02"
)

const (
	scale = 3
	winW  = ppu2c02.ScreenWidth * scale
	winH  = ppu2c02.ScreenHeight * scale
)

// Options configures the window at creation time.
type Options struct {
	DisableVSync bool
}

// Window is a single SDL2/OpenGL window presenting one nes.System's
// output and feeding back its keyboard input.
type Window struct {
	win     *sdl.Window
	glctx   sdl.GLContext
	texture uint32

	keys   [2][8]sdl.Scancode
	pixbuf [ppu2c02.ScreenWidth * ppu2c02.ScreenHeight * 4]byte
}

var _ nes.VideoSink = (*Window)(nil)
var _ nes.InputSource = (*Window)(nil)

// New opens a window sized to the NES's 256x240 output, scaled up, and
// initializes an OpenGL 2.1 context with one streaming texture.
func New(sys *nes.System, opts Options) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}

	win, err := sdl.CreateWindow("nescore",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		winW, winH, sdl.WINDOW_OPENGL|sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	glctx, err := win.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("gl context: %w", err)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	if !opts.DisableVSync {
		sdl.GLSetSwapInterval(1)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, ppu2c02.ScreenWidth, ppu2c02.ScreenHeight, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, nil)

	w := &Window{win: win, glctx: glctx, texture: texture}
	w.keys[0] = [8]sdl.Scancode{
		sdl.SCANCODE_K, sdl.SCANCODE_J, sdl.SCANCODE_RSHIFT, sdl.SCANCODE_RETURN,
		sdl.SCANCODE_UP, sdl.SCANCODE_DOWN, sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT,
	}
	return w, nil
}

// PresentFrame implements nes.VideoSink: converts the indexed framebuffer
// through the NTSC palette, uploads it to the streaming texture, and blits
// a full-window textured quad.
func (w *Window) PresentFrame(f *ppu2c02.Frame) {
	for i := 0; i < ppu2c02.ScreenWidth*ppu2c02.ScreenHeight; i++ {
		c := ppu2c02.NTSCPalette[f.Pixels[i]&0x3F]
		w.pixbuf[i*4+0] = c.R
		w.pixbuf[i*4+1] = c.G
		w.pixbuf[i*4+2] = c.B
		w.pixbuf[i*4+3] = 0xFF
	}

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, ppu2c02.ScreenWidth, ppu2c02.ScreenHeight,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&w.pixbuf[0]))

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Enable(gl.TEXTURE_2D)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(-1, -1)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(1, -1)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(1, 1)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(-1, 1)
	gl.End()

	w.win.GLSwap()
	w.pumpEvents()
}

// PollButtons implements nes.InputSource by reading the last-pumped SDL2
// keyboard state for port's bound scancodes, MSB-first as System.SetController
// expects (A, B, Select, Start, Up, Down, Left, Right).
func (w *Window) PollButtons(port int) uint8 {
	if port != 0 {
		return 0
	}
	keystate := sdl.GetKeyboardState()
	var buttons uint8
	for i, code := range w.keys[0] {
		if keystate[code] != 0 {
			buttons |= 1 << (7 - uint(i))
		}
	}
	return buttons
}

func (w *Window) pumpEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			w.win.Hide()
		}
	}
}

func (w *Window) Close() error {
	sdl.GLDeleteContext(w.glctx)
	err := w.win.Destroy()
	sdl.Quit()
	return err
}
