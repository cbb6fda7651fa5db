package cpu6502

import "testing"

// ramBus is a flat 64KB address space with the reset vector pre-wired to
// $8000, NMI to $9000 and IRQ to $A000, for isolated instruction tests.
type ramBus struct {
	mem [65536]uint8
}

func newRAMBus() *ramBus {
	b := &ramBus{}
	b.mem[vectorReset] = 0x00
	b.mem[vectorReset+1] = 0x80
	b.mem[vectorNMI] = 0x00
	b.mem[vectorNMI+1] = 0x90
	b.mem[vectorIRQ] = 0x00
	b.mem[vectorIRQ+1] = 0xA0
	return b
}

func (b *ramBus) Read8(addr uint16) uint8       { return b.mem[addr] }
func (b *ramBus) Write8(addr uint16, val uint8) { b.mem[addr] = val }
func (b *ramBus) Peek8(addr uint16) uint8       { return b.mem[addr] }

func newTestCPU(program ...uint8) (*CPU, *ramBus) {
	bus := newRAMBus()
	for i, b := range program {
		bus.mem[0x8000+i] = b
	}
	c := New(bus)
	c.Reset(true)
	return c, bus
}

// run clocks the CPU until it has completed n instructions. Cycles still
// pending from a reset or an earlier instruction are finished first; after
// that, each time cyclesLeft returns to zero one instruction has completed.
func run(c *CPU, instructions int) {
	for c.cyclesLeft > 0 {
		c.Clock()
	}
	done := 0
	for done < instructions {
		c.Clock()
		if c.cyclesLeft == 0 {
			done++
		}
	}
}

func TestResetVectorsPC(t *testing.T) {
	c, _ := newTestCPU()
	if c.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = %#02x, want 0xFD", c.SP)
	}
}

func TestLDAImmediateSetsZN(t *testing.T) {
	c, _ := newTestCPU(0xA9, 0x00, 0xA9, 0x80)
	run(c, 1)
	if c.A != 0 || !c.P.has(Zero) || c.P.has(Negative) {
		t.Fatalf("A=%#02x P=%s, want A=0 Z=1 N=0", c.A, c.P)
	}
	run(c, 1)
	if c.A != 0x80 || c.P.has(Zero) || !c.P.has(Negative) {
		t.Fatalf("A=%#02x P=%s, want A=0x80 Z=0 N=1", c.A, c.P)
	}
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	// LDA #$7F; ADC #$01 -> 0x80 with signed overflow, no carry.
	c, _ := newTestCPU(0xA9, 0x7F, 0x69, 0x01)
	run(c, 2)
	if c.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.A)
	}
	if c.P.has(Carry) {
		t.Fatal("carry should not be set")
	}
	if !c.P.has(Overflow) {
		t.Fatal("overflow should be set (0x7F+0x01 signed overflow)")
	}
}

func TestSBCBorrowsWithoutCarry(t *testing.T) {
	// SEC; LDA #$05; SBC #$01 -> 0x04, carry stays set (no borrow).
	c, _ := newTestCPU(0x38, 0xA9, 0x05, 0xE9, 0x01)
	run(c, 3)
	if c.A != 0x04 || !c.P.has(Carry) {
		t.Fatalf("A=%#02x carry=%v, want A=4 carry=true", c.A, c.P.has(Carry))
	}
}

func TestBranchTakenAddsCycle(t *testing.T) {
	// CLC; BCC +2 (taken, same page): base 2 cycles + 1 for taken.
	c, _ := newTestCPU(0x18, 0x90, 0x02)
	run(c, 1) // CLC
	before := c.Cycles
	run(c, 1) // BCC
	if c.Cycles-before != 3 {
		t.Fatalf("branch-taken same-page cost = %d cycles, want 3", c.Cycles-before)
	}
	if c.PC != 0x8005 {
		t.Fatalf("PC after branch = %#04x, want 0x8005", c.PC)
	}
}

func TestJSRThenRTSRoundtrips(t *testing.T) {
	// JSR $8010; at $8010: RTS.
	c, bus := newTestCPU(0x20, 0x10, 0x80)
	bus.mem[0x8010] = 0x60
	run(c, 1) // JSR
	if c.PC != 0x8010 {
		t.Fatalf("PC after JSR = %#04x, want 0x8010", c.PC)
	}
	run(c, 1) // RTS
	if c.PC != 0x8003 {
		t.Fatalf("PC after RTS = %#04x, want 0x8003 (return address)", c.PC)
	}
}

func TestStackPushPull(t *testing.T) {
	c, _ := newTestCPU()
	sp := c.SP
	c.push8(0x42)
	if c.SP != sp-1 {
		t.Fatalf("SP after push = %#02x, want %#02x", c.SP, sp-1)
	}
	if v := c.pull8(); v != 0x42 {
		t.Fatalf("pulled %#02x, want 0x42", v)
	}
	if c.SP != sp {
		t.Fatalf("SP after pull = %#02x, want %#02x", c.SP, sp)
	}
}

func TestNMIVectorsAndPushesState(t *testing.T) {
	c, _ := newTestCPU(0xEA) // NOP, so we control exactly one fetch
	run(c, 1)
	c.SetNMILine(true)
	spBefore := c.SP
	// SetNMILine has already latched the edge; this Clock() falls on an
	// instruction boundary, so it services the NMI.
	c.Clock()
	if c.PC != 0x9000 {
		t.Fatalf("PC after NMI = %#04x, want 0x9000 (NMI vector)", c.PC)
	}
	if c.SP != spBefore-3 {
		t.Fatalf("SP after NMI = %#02x, want %#02x (PC hi/lo + P pushed)", c.SP, spBefore-3)
	}
	if !c.P.has(Interrupt) {
		t.Fatal("interrupt-disable flag should be set after servicing NMI")
	}
}

func TestIndirectJumpPageWrapBug(t *testing.T) {
	// JMP ($02FF): real hardware reads the high byte from $0200, not $0300.
	c, bus := newTestCPU(0x6C, 0xFF, 0x02)
	bus.mem[0x02FF] = 0x34
	bus.mem[0x0200] = 0x12
	bus.mem[0x0300] = 0xFF // if the bug weren't reproduced, this would be used instead
	run(c, 1)
	if c.PC != 0x1234 {
		t.Fatalf("PC = %#04x, want 0x1234 (page-wrap bug)", c.PC)
	}
}

func TestUnofficialLAXLoadsAAndX(t *testing.T) {
	// LAX $10 (zero page); $10 holds 0x55.
	c, bus := newTestCPU(0xA7, 0x10)
	bus.mem[0x10] = 0x55
	run(c, 1)
	if c.A != 0x55 || c.X != 0x55 {
		t.Fatalf("A=%#02x X=%#02x, want both 0x55", c.A, c.X)
	}
}

func TestSTPHaltsCPU(t *testing.T) {
	c, _ := newTestCPU(0x02)
	run(c, 1)
	if !c.Halted() {
		t.Fatal("CPU should be halted after STP/JAM")
	}
}

func TestDisassembleAtFormatsImmediate(t *testing.T) {
	c, _ := newTestCPU(0xA9, 0x42)
	op := c.DisassembleAt(0x8000)
	if op.Text != "LDA #$42" {
		t.Fatalf("got %q, want %q", op.Text, "LDA #$42")
	}
	if op.Size != 2 {
		t.Fatalf("got size %d, want 2", op.Size)
	}
}

func TestDisassembleAtMarksUnofficial(t *testing.T) {
	c, bus := newTestCPU(0xA7, 0x10)
	bus.mem[0x10] = 0x99
	op := c.DisassembleAt(0x8000)
	if op.Text[0] != '*' {
		t.Fatalf("got %q, want unofficial-opcode marker prefix", op.Text)
	}
}

func TestStateReportsRegisters(t *testing.T) {
	c, _ := newTestCPU(0xA9, 0x7F)
	run(c, 1)
	s := c.State()
	if s.A != 0x7F || s.PC != 0x8002 || s.Stopped {
		t.Fatalf("got %+v", s)
	}
}
