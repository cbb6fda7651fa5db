package debugger

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"nescore/cpu6502"
)

type fakeSource struct {
	state cpu6502.State
}

func (f *fakeSource) CPUState() cpu6502.State { return f.state }
func (f *fakeSource) DisassembleAt(addr uint16) cpu6502.DisasmOp {
	return cpu6502.DisasmOp{Text: "NOP", Size: 1}
}

func TestStateStreamPushesToAttachedClient(t *testing.T) {
	src := &fakeSource{state: cpu6502.State{PC: 0xC000, A: 0x42}}
	stream := NewStateStream(src)

	srv := httptest.NewServer(stream.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the handler goroutine a chance to register the connection before
	// pushing, since Upgrade happens on the server's own goroutine.
	deadline := time.Now().Add(time.Second)
	for {
		stream.mu.Lock()
		n := len(stream.conns)
		stream.mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for websocket handshake to register")
		}
		time.Sleep(time.Millisecond)
	}

	stream.Push()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(payload), `"pc":49152`) {
		t.Fatalf("payload missing pc field: %s", payload)
	}
	if !strings.Contains(string(payload), `"a":66`) {
		t.Fatalf("payload missing a field: %s", payload)
	}
}

func TestStateStreamPushWithNoClientsIsNoop(t *testing.T) {
	stream := NewStateStream(&fakeSource{})
	stream.Push()
}
