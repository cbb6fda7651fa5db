// Package nes composes the CPU, PPU and Game Pak into one runnable console
// and exposes the host-facing API: loading a cartridge, resetting, stepping
// the master clock, reading back the framebuffer and CPU state, and feeding
// in controller input.
//
// Grounded on _examples/arl-nestor/emu/nes.go's NES{CPU,PPU,Rom}/powerUp/
// Reset/RunOneFrame shape, generalized from that file's fixed
// per-frame CPU-cycle budget into a genuine PPU-driven master-clock
// scheduler per this project's timing model.
package nes

import (
	"io"

	"nescore/cart"
	"nescore/cpu6502"
	"nescore/ines"
	"nescore/ppu2c02"
)

// VideoSink is implemented by the host frontend to receive completed frames.
type VideoSink interface {
	PresentFrame(*ppu2c02.Frame)
}

// InputSource is implemented by the host frontend to supply controller
// state; the CORE never polls it directly (SetController is pushed in by
// the host once per frame instead), so this is a naming contract more than
// a call the CORE makes.
type InputSource interface {
	PollButtons(port int) uint8
}

// System is one NES console: CPU, PPU, Game Pak and the bus wiring them
// together.
type System struct {
	CPU  *cpu6502.CPU
	PPU  *ppu2c02.PPU
	Cart *cart.GamePak
	bus  *Bus

	FrameCount uint64
}

// Load decodes r as an iNES image and powers up a System with it inserted.
func Load(r io.Reader) (*System, error) {
	rom, err := ines.Decode(r)
	if err != nil {
		return nil, err
	}

	pak := cart.NewGamePak(rom)
	ppu := ppu2c02.New(pak)
	bus := newBus(pak, ppu)
	cpu := cpu6502.New(bus)
	bus.cpu = cpu

	sys := &System{
		CPU:  cpu,
		PPU:  ppu,
		Cart: pak,
		bus:  bus,
	}
	sys.Reset(true)
	return sys, nil
}

// Reset restores the console to its post-reset state. cold distinguishes
// power-up from a soft (user-triggered) reset.
func (s *System) Reset(cold bool) {
	s.Cart.Reset()
	s.PPU.Reset()
	s.CPU.Reset(cold)
}

// Tick advances the master clock by one PPU cycle, running the CPU on every
// third tick and forwarding VBlank-NMI and mapper-IRQ lines, per this
// project's scheduler contract.
func (s *System) Tick() {
	s.bus.masterCycle++

	s.PPU.Clock()

	if s.bus.masterCycle%3 == 0 {
		s.CPU.SetIRQLine(s.Cart.IRQPending())
		s.CPU.Clock()
		s.Cart.Tick()
	}

	s.CPU.SetNMILine(s.PPU.NMILine())

	if s.PPU.Scanline == 0 && s.PPU.Cycle == 0 {
		s.FrameCount++
	}
}

// StepFrame runs Tick until a new frame has started.
func (s *System) StepFrame() {
	start := s.FrameCount
	for s.FrameCount == start {
		s.Tick()
	}
}

// Frame returns the framebuffer the PPU is (or just finished) rendering
// into. The reference frontend hands this to a VideoSink after StepFrame.
func (s *System) Frame() *ppu2c02.Frame { return s.PPU.Frame() }

// SetController updates the button latch a subsequent $4016/$4017 strobe
// will load, for port 0 or 1. Bit order from MSB is A, B, Select, Start, Up,
// Down, Left, Right.
func (s *System) SetController(port int, buttons uint8) {
	s.bus.setController(port, buttons)
}

// CPUState reports the CPU's current register snapshot, for debuggers.
func (s *System) CPUState() cpu6502.State { return s.CPU.State() }

// DisassembleAt renders the instruction at addr without side effects.
func (s *System) DisassembleAt(addr uint16) cpu6502.DisasmOp { return s.CPU.DisassembleAt(addr) }
