package debugger

import (
	"testing"

	"nescore/cpu6502"
)

type fakeDisasm struct {
	ops map[uint16]cpu6502.DisasmOp
}

func (f *fakeDisasm) DisassembleAt(addr uint16) cpu6502.DisasmOp {
	if op, ok := f.ops[addr]; ok {
		return op
	}
	return cpu6502.DisasmOp{Text: "???", Size: 1}
}

func TestListingWalksInstructionSizes(t *testing.T) {
	d := &fakeDisasm{ops: map[uint16]cpu6502.DisasmOp{
		0x8000: {Text: "LDA #$42", Size: 2},
		0x8002: {Text: "NOP", Size: 1},
		0x8003: {Text: "JMP $8000", Size: 3},
	}}
	lines := Listing(d, 0x8000, 3)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[1].Addr != 0x8002 || lines[2].Addr != 0x8003 {
		t.Fatalf("got addrs %#04x %#04x, want 0x8002 0x8003", lines[1].Addr, lines[2].Addr)
	}
}
