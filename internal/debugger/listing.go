package debugger

import "nescore/cpu6502"

// Disassembler is satisfied by nes.System.
type Disassembler interface {
	DisassembleAt(addr uint16) cpu6502.DisasmOp
}

// Line is one entry of a disassembly listing.
type Line struct {
	Addr uint16
	Op   cpu6502.DisasmOp
}

// Listing walks forward from start, disassembling count instructions in
// sequence, so a caller can build a disassembly window around an address
// without knowing instruction lengths. The RPC and WebSocket surfaces do not
// call it; the state stream carries only the instruction at PC.
func Listing(d Disassembler, start uint16, count int) []Line {
	lines := make([]Line, 0, count)
	addr := start
	for i := 0; i < count; i++ {
		op := d.DisassembleAt(addr)
		lines = append(lines, Line{Addr: addr, Op: op})
		if op.Size == 0 {
			break
		}
		addr += op.Size
	}
	return lines
}
