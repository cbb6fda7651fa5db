package main

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"nescore/cpu6502"
	"nescore/internal/debugger"
	"nescore/internal/nlog"
	"nescore/nes"
)

// Emulator owns a running nes.System and drives it from one emulation-loop
// goroutine, which also presents frames and polls input; the debugger's
// RPC/WebSocket listener, when enabled, serves from its own goroutine
// started by ServeDebugger. Grounded on the reference codebase's
// emu.Emulator (Launch/RunOneFrame/loop/Run/SetPause/Reset/Stop), adapted
// from that file's hw.Output-driven video/audio setup to this project's
// VideoSink/InputSource push model and its cold/warm Reset(bool) signature.
type Emulator struct {
	sys   *nes.System
	sink  nes.VideoSink
	input nes.InputSource

	paused atomic.Bool
	quit   atomic.Bool
	reset  atomic.Bool
	cold   atomic.Bool

	dbg *debugger.RPCServer
}

var _ debugger.Controller = (*Emulator)(nil)
var _ debugger.StateSource = (*Emulator)(nil)

// NewEmulator wires sys to sink/input; sink and input may be nil for a
// headless run (frames are still stepped, just never presented/polled).
func NewEmulator(sys *nes.System, sink nes.VideoSink, input nes.InputSource) *Emulator {
	return &Emulator{sys: sys, sink: sink, input: input}
}

// Reset implements debugger.Controller. cold=true performs a full power-up
// reset; cold=false is the NES reset button.
func (e *Emulator) Reset(cold bool) {
	e.cold.Store(cold)
	e.reset.Store(true)
}

func (e *Emulator) SetPause(pause bool) { e.paused.CompareAndSwap(!pause, pause) }

// Step runs exactly one master cycle while paused, then pushes the
// resulting state to any attached debugger client; a no-op while running
// freely, since the run loop already advances continuously.
func (e *Emulator) Step() {
	if !e.paused.Load() {
		return
	}
	e.sys.Tick()
	if e.dbg != nil {
		e.dbg.Push()
	}
}

func (e *Emulator) Stop() { e.quit.Store(true) }

// CPUState and DisassembleAt implement debugger.StateSource, forwarding to
// the underlying System so the debugger's WebSocket stream can snapshot a
// running emulation without reaching into System directly.
func (e *Emulator) CPUState() cpu6502.State { return e.sys.CPUState() }

func (e *Emulator) DisassembleAt(addr uint16) cpu6502.DisasmOp { return e.sys.DisassembleAt(addr) }

// ServeDebugger starts the RPC control plane on port, if port is nonzero.
func (e *Emulator) ServeDebugger(port int) error {
	if port == 0 {
		return nil
	}
	srv, err := debugger.ServeRPC(port, e, e)
	if err != nil {
		return err
	}
	e.dbg = srv
	return nil
}

// Run drives the emulation loop on an errgroup goroutine until Stop is
// called, the CPU halts, or ctx is cancelled. Each frame is presented to the
// sink (if any) from that same goroutine; there is no separate video pump.
func (e *Emulator) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if e.quit.Load() || e.sys.CPUState().Stopped {
				return nil
			}
			e.handleReset()
			if e.paused.Load() {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			e.pollInput()
			e.sys.StepFrame()
			if e.sink != nil {
				e.sink.PresentFrame(e.sys.Frame())
			}
			if e.dbg != nil {
				e.dbg.Push()
			}
		}
	})

	err := g.Wait()
	if e.dbg != nil {
		e.dbg.Close()
	}
	nlog.ModEmu.InfoZ("emulation loop exited").End()
	return err
}

func (e *Emulator) pollInput() {
	if e.input == nil {
		return
	}
	e.sys.SetController(0, e.input.PollButtons(0))
	e.sys.SetController(1, e.input.PollButtons(1))
}

func (e *Emulator) handleReset() {
	if e.reset.CompareAndSwap(true, false) {
		e.sys.Reset(e.cold.Load())
	}
}

// RunHeadless steps up to frames frames (with no limit if frames==0),
// stopping early once the CPU halts, without any video/input frontend, for
// `run --headless`.
func RunHeadless(sys *nes.System, frames int) {
	for i := 0; frames == 0 || i < frames; i++ {
		if sys.CPUState().Stopped {
			break
		}
		sys.StepFrame()
	}
}
