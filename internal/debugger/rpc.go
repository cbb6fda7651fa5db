// Package debugger exposes a running nes.System to an external tool: a
// stdlib net/rpc control plane for reset/pause/step, and a WebSocket stream
// of CPU state pushed on each call to Push (cmd/nescore pushes after every
// single-cycle debugger step and after every frame while running).
//
// Grounded on _examples/arl-nestor/emu/rpc/server.go for the control-plane
// registration pattern (net/rpc over HTTP, one struct method per verb) and
// _examples/arl-nestor/emu/debugger/protocol.go for the WebSocket state-push
// shape, generalized from that file's fixed CPU-only state to this
// project's `cpu6502.State` snapshot and disassembly listing.
package debugger

import (
	"net"
	"net/http"
	"net/rpc"
	"strconv"

	"nescore/internal/nlog"
)

// Controller is the subset of the running emulator loop the RPC surface can
// drive. cmd/nescore's Emulator implements it.
type Controller interface {
	Reset(cold bool)
	SetPause(pause bool)
	Step()
}

type controlProxy struct{ ctrl Controller }

func (p *controlProxy) Reset(cold bool, _ *struct{}) error     { p.ctrl.Reset(cold); return nil }
func (p *controlProxy) SetPause(pause bool, _ *struct{}) error { p.ctrl.SetPause(pause); return nil }
func (p *controlProxy) Step(_ struct{}, _ *struct{}) error     { p.ctrl.Step(); return nil }

func (p *controlProxy) IsReady(_ struct{}, reply *bool) error {
	*reply = true
	return nil
}

// RPCServer is a stdlib net/rpc server exposing Controller over HTTP,
// alongside the WebSocket StateStream mounted on the same mux.
type RPCServer struct {
	listener net.Listener
	stream   *StateStream
}

// ServeRPC registers ctrl under the "debugger" service name, mounts a
// StateStream fed by src at "/state", and starts serving on port. Grounded
// on rpc.NewServer's rpc.RegisterName + rpc.HandleHTTP + net.Listen +
// go http.Serve(l, nil) sequence; the WebSocket mount alongside it is the
// same "one mux, two protocols" shape the teacher's debugger package uses.
func ServeRPC(port int, ctrl Controller, src StateSource) (*RPCServer, error) {
	proxy := &controlProxy{ctrl: ctrl}
	server := rpc.NewServer()
	if err := server.RegisterName("debugger", proxy); err != nil {
		return nil, err
	}

	stream := NewStateStream(src)

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, server)
	mux.Handle("/state", stream.Handler())

	l, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return nil, err
	}
	nlog.ModRPC.InfoZ("rpc server listening").Int("port", port).End()
	go http.Serve(l, mux)
	return &RPCServer{listener: l, stream: stream}, nil
}

// Push broadcasts the current state to every attached WebSocket client.
func (s *RPCServer) Push() { s.stream.Push() }

func (s *RPCServer) Close() error { return s.listener.Close() }
