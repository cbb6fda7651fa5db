package debugger

import (
	"net/http"
	"sync"

	"github.com/go-faster/jx"
	"github.com/gorilla/websocket"

	"nescore/cpu6502"
	"nescore/internal/nlog"
)

// StateSource is what the WebSocket handler reads from on each push: the
// running system's CPU snapshot and a disassembly of the instruction at PC.
type StateSource interface {
	CPUState() cpu6502.State
	DisassembleAt(addr uint16) cpu6502.DisasmOp
}

// StateStream upgrades HTTP connections to WebSocket and pushes one JSON
// state frame per call to Push, matching the teacher's Trace-driven push
// model but replacing its ad-hoc fmt.Sprintf payload with structured
// go-faster/jx encoding.
type StateStream struct {
	src      StateSource
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns []*websocket.Conn
}

func NewStateStream(src StateSource) *StateStream {
	return &StateStream{
		src: src,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *StateStream) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			nlog.ModDebugger.ErrorZ("websocket upgrade failed").Error("err", err).End()
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		nlog.ModDebugger.InfoZ("debugger client attached").End()
	}
}

// Push encodes the current CPU state as a JSON object and broadcasts it to
// every attached client, dropping (and forgetting) any that error out.
func (s *StateStream) Push() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.conns) == 0 {
		return
	}
	payload := s.encode()

	live := s.conns[:0]
	for _, c := range s.conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			nlog.ModDebugger.WarnZ("dropping debugger client").Error("err", err).End()
			c.Close()
			continue
		}
		live = append(live, c)
	}
	s.conns = live
}

func (s *StateStream) encode() []byte {
	st := s.src.CPUState()
	op := s.src.DisassembleAt(st.PC)

	var e jx.Encoder
	e.ObjStart()

	e.FieldStart("event")
	e.Str("state")

	e.FieldStart("cpu")
	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(st.PC)
	e.FieldStart("a")
	e.UInt8(st.A)
	e.FieldStart("x")
	e.UInt8(st.X)
	e.FieldStart("y")
	e.UInt8(st.Y)
	e.FieldStart("s")
	e.UInt8(st.S)
	e.FieldStart("p")
	e.UInt8(uint8(st.P))
	e.FieldStart("stopped")
	e.Bool(st.Stopped)
	e.ObjEnd()

	e.FieldStart("disasm")
	e.Str(op.Text)

	e.ObjEnd()
	return e.Bytes()
}
