package cpu6502

// execFunc executes one decoded instruction against the already-resolved
// effective address, returning any cycle penalty beyond the table's base
// cost (branch-taken/page-cross additions).
type execFunc func(c *CPU, addr uint16, mode AddrMode) uint8

type opcodeEntry struct {
	name        string
	mode        AddrMode
	cycles      uint8
	pagePenalty bool
	exec        execFunc
}

// opcodeTable is the full 256-entry instruction decode table: the official
// 6502 instruction set plus the unofficial opcodes real NES software (and
// test ROMs like nestest) rely on. Addressing modes and base cycle counts
// follow the standard published 6502 opcode matrix; the arithmetic/flag
// bodies for the official instructions are grounded on
// _examples/BrianWill-nes/nes/cpu.go, adapted to this package's CPU/P
// types. The unofficial combo opcodes (SLO/RLA/SRE/RRA/DCP/ISC) are written
// as their documented "read-modify-write, then combine with A" behavior;
// arl-nestor's own opcode table (_examples/arl-nestor/hw/opcodes_test.go)
// exercises the same instruction set but ships no implementation to ground
// on, since the generator that produced it isn't in the retrieved tree.
var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]opcodeEntry {
	var t [256]opcodeEntry

	set := func(op uint8, name string, mode AddrMode, cycles uint8, pagePenalty bool, fn execFunc) {
		t[op] = opcodeEntry{name: name, mode: mode, cycles: cycles, pagePenalty: pagePenalty, exec: fn}
	}

	// Official instructions.
	set(0x69, "ADC", ModeImmediate, 2, false, adc)
	set(0x65, "ADC", ModeZeroPage, 3, false, adc)
	set(0x75, "ADC", ModeZeroPageX, 4, false, adc)
	set(0x6D, "ADC", ModeAbsolute, 4, false, adc)
	set(0x7D, "ADC", ModeAbsoluteX, 4, true, adc)
	set(0x79, "ADC", ModeAbsoluteY, 4, true, adc)
	set(0x61, "ADC", ModeIndexedIndirect, 6, false, adc)
	set(0x71, "ADC", ModeIndirectIndexed, 5, true, adc)

	set(0x29, "AND", ModeImmediate, 2, false, and)
	set(0x25, "AND", ModeZeroPage, 3, false, and)
	set(0x35, "AND", ModeZeroPageX, 4, false, and)
	set(0x2D, "AND", ModeAbsolute, 4, false, and)
	set(0x3D, "AND", ModeAbsoluteX, 4, true, and)
	set(0x39, "AND", ModeAbsoluteY, 4, true, and)
	set(0x21, "AND", ModeIndexedIndirect, 6, false, and)
	set(0x31, "AND", ModeIndirectIndexed, 5, true, and)

	set(0x0A, "ASL", ModeAccumulator, 2, false, asl)
	set(0x06, "ASL", ModeZeroPage, 5, false, asl)
	set(0x16, "ASL", ModeZeroPageX, 6, false, asl)
	set(0x0E, "ASL", ModeAbsolute, 6, false, asl)
	set(0x1E, "ASL", ModeAbsoluteX, 7, false, asl)

	set(0x90, "BCC", ModeRelative, 2, false, func(c *CPU, addr uint16, _ AddrMode) uint8 { return branch(c, addr, !c.P.has(Carry)) })
	set(0xB0, "BCS", ModeRelative, 2, false, func(c *CPU, addr uint16, _ AddrMode) uint8 { return branch(c, addr, c.P.has(Carry)) })
	set(0xF0, "BEQ", ModeRelative, 2, false, func(c *CPU, addr uint16, _ AddrMode) uint8 { return branch(c, addr, c.P.has(Zero)) })
	set(0x30, "BMI", ModeRelative, 2, false, func(c *CPU, addr uint16, _ AddrMode) uint8 { return branch(c, addr, c.P.has(Negative)) })
	set(0xD0, "BNE", ModeRelative, 2, false, func(c *CPU, addr uint16, _ AddrMode) uint8 { return branch(c, addr, !c.P.has(Zero)) })
	set(0x10, "BPL", ModeRelative, 2, false, func(c *CPU, addr uint16, _ AddrMode) uint8 { return branch(c, addr, !c.P.has(Negative)) })
	set(0x50, "BVC", ModeRelative, 2, false, func(c *CPU, addr uint16, _ AddrMode) uint8 { return branch(c, addr, !c.P.has(Overflow)) })
	set(0x70, "BVS", ModeRelative, 2, false, func(c *CPU, addr uint16, _ AddrMode) uint8 { return branch(c, addr, c.P.has(Overflow)) })

	set(0x24, "BIT", ModeZeroPage, 3, false, bit)
	set(0x2C, "BIT", ModeAbsolute, 4, false, bit)

	set(0x00, "BRK", ModeImplied, 7, false, brk)

	set(0x18, "CLC", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.P.clear(Carry); return 0 })
	set(0xD8, "CLD", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.P.clear(Decimal); return 0 })
	set(0x58, "CLI", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.P.clear(Interrupt); return 0 })
	set(0xB8, "CLV", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.P.clear(Overflow); return 0 })
	set(0x38, "SEC", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.P.set(Carry); return 0 })
	set(0xF8, "SED", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.P.set(Decimal); return 0 })
	set(0x78, "SEI", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.P.set(Interrupt); return 0 })

	set(0xC9, "CMP", ModeImmediate, 2, false, cmp)
	set(0xC5, "CMP", ModeZeroPage, 3, false, cmp)
	set(0xD5, "CMP", ModeZeroPageX, 4, false, cmp)
	set(0xCD, "CMP", ModeAbsolute, 4, false, cmp)
	set(0xDD, "CMP", ModeAbsoluteX, 4, true, cmp)
	set(0xD9, "CMP", ModeAbsoluteY, 4, true, cmp)
	set(0xC1, "CMP", ModeIndexedIndirect, 6, false, cmp)
	set(0xD1, "CMP", ModeIndirectIndexed, 5, true, cmp)

	set(0xE0, "CPX", ModeImmediate, 2, false, cpx)
	set(0xE4, "CPX", ModeZeroPage, 3, false, cpx)
	set(0xEC, "CPX", ModeAbsolute, 4, false, cpx)

	set(0xC0, "CPY", ModeImmediate, 2, false, cpy)
	set(0xC4, "CPY", ModeZeroPage, 3, false, cpy)
	set(0xCC, "CPY", ModeAbsolute, 4, false, cpy)

	set(0xC6, "DEC", ModeZeroPage, 5, false, dec)
	set(0xD6, "DEC", ModeZeroPageX, 6, false, dec)
	set(0xCE, "DEC", ModeAbsolute, 6, false, dec)
	set(0xDE, "DEC", ModeAbsoluteX, 7, false, dec)
	set(0xCA, "DEX", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.X--; c.P.setZN(c.X); return 0 })
	set(0x88, "DEY", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.Y--; c.P.setZN(c.Y); return 0 })

	set(0x49, "EOR", ModeImmediate, 2, false, eor)
	set(0x45, "EOR", ModeZeroPage, 3, false, eor)
	set(0x55, "EOR", ModeZeroPageX, 4, false, eor)
	set(0x4D, "EOR", ModeAbsolute, 4, false, eor)
	set(0x5D, "EOR", ModeAbsoluteX, 4, true, eor)
	set(0x59, "EOR", ModeAbsoluteY, 4, true, eor)
	set(0x41, "EOR", ModeIndexedIndirect, 6, false, eor)
	set(0x51, "EOR", ModeIndirectIndexed, 5, true, eor)

	set(0xE6, "INC", ModeZeroPage, 5, false, inc)
	set(0xF6, "INC", ModeZeroPageX, 6, false, inc)
	set(0xEE, "INC", ModeAbsolute, 6, false, inc)
	set(0xFE, "INC", ModeAbsoluteX, 7, false, inc)
	set(0xE8, "INX", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.X++; c.P.setZN(c.X); return 0 })
	set(0xC8, "INY", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.Y++; c.P.setZN(c.Y); return 0 })

	set(0x4C, "JMP", ModeAbsolute, 3, false, jmp)
	set(0x6C, "JMP", ModeIndirect, 5, false, jmp)
	set(0x20, "JSR", ModeAbsolute, 6, false, jsr)

	set(0xA9, "LDA", ModeImmediate, 2, false, lda)
	set(0xA5, "LDA", ModeZeroPage, 3, false, lda)
	set(0xB5, "LDA", ModeZeroPageX, 4, false, lda)
	set(0xAD, "LDA", ModeAbsolute, 4, false, lda)
	set(0xBD, "LDA", ModeAbsoluteX, 4, true, lda)
	set(0xB9, "LDA", ModeAbsoluteY, 4, true, lda)
	set(0xA1, "LDA", ModeIndexedIndirect, 6, false, lda)
	set(0xB1, "LDA", ModeIndirectIndexed, 5, true, lda)

	set(0xA2, "LDX", ModeImmediate, 2, false, ldx)
	set(0xA6, "LDX", ModeZeroPage, 3, false, ldx)
	set(0xB6, "LDX", ModeZeroPageY, 4, false, ldx)
	set(0xAE, "LDX", ModeAbsolute, 4, false, ldx)
	set(0xBE, "LDX", ModeAbsoluteY, 4, true, ldx)

	set(0xA0, "LDY", ModeImmediate, 2, false, ldy)
	set(0xA4, "LDY", ModeZeroPage, 3, false, ldy)
	set(0xB4, "LDY", ModeZeroPageX, 4, false, ldy)
	set(0xAC, "LDY", ModeAbsolute, 4, false, ldy)
	set(0xBC, "LDY", ModeAbsoluteX, 4, true, ldy)

	set(0x4A, "LSR", ModeAccumulator, 2, false, lsr)
	set(0x46, "LSR", ModeZeroPage, 5, false, lsr)
	set(0x56, "LSR", ModeZeroPageX, 6, false, lsr)
	set(0x4E, "LSR", ModeAbsolute, 6, false, lsr)
	set(0x5E, "LSR", ModeAbsoluteX, 7, false, lsr)

	for _, op := range []uint8{0xEA} {
		set(op, "NOP", ModeImplied, 2, false, nop)
	}
	set(0x09, "ORA", ModeImmediate, 2, false, ora)
	set(0x05, "ORA", ModeZeroPage, 3, false, ora)
	set(0x15, "ORA", ModeZeroPageX, 4, false, ora)
	set(0x0D, "ORA", ModeAbsolute, 4, false, ora)
	set(0x1D, "ORA", ModeAbsoluteX, 4, true, ora)
	set(0x19, "ORA", ModeAbsoluteY, 4, true, ora)
	set(0x01, "ORA", ModeIndexedIndirect, 6, false, ora)
	set(0x11, "ORA", ModeIndirectIndexed, 5, true, ora)

	set(0x48, "PHA", ModeImplied, 3, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.push8(c.A); return 0 })
	set(0x08, "PHP", ModeImplied, 3, false, php)
	set(0x68, "PLA", ModeImplied, 4, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.A = c.pull8(); c.P.setZN(c.A); return 0 })
	set(0x28, "PLP", ModeImplied, 4, false, plp)

	set(0x2A, "ROL", ModeAccumulator, 2, false, rol)
	set(0x26, "ROL", ModeZeroPage, 5, false, rol)
	set(0x36, "ROL", ModeZeroPageX, 6, false, rol)
	set(0x2E, "ROL", ModeAbsolute, 6, false, rol)
	set(0x3E, "ROL", ModeAbsoluteX, 7, false, rol)

	set(0x6A, "ROR", ModeAccumulator, 2, false, ror)
	set(0x66, "ROR", ModeZeroPage, 5, false, ror)
	set(0x76, "ROR", ModeZeroPageX, 6, false, ror)
	set(0x6E, "ROR", ModeAbsolute, 6, false, ror)
	set(0x7E, "ROR", ModeAbsoluteX, 7, false, ror)

	set(0x40, "RTI", ModeImplied, 6, false, rti)
	set(0x60, "RTS", ModeImplied, 6, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.PC = c.pull16() + 1; return 0 })

	set(0xE9, "SBC", ModeImmediate, 2, false, sbc)
	set(0xE5, "SBC", ModeZeroPage, 3, false, sbc)
	set(0xF5, "SBC", ModeZeroPageX, 4, false, sbc)
	set(0xED, "SBC", ModeAbsolute, 4, false, sbc)
	set(0xFD, "SBC", ModeAbsoluteX, 4, true, sbc)
	set(0xF9, "SBC", ModeAbsoluteY, 4, true, sbc)
	set(0xE1, "SBC", ModeIndexedIndirect, 6, false, sbc)
	set(0xF1, "SBC", ModeIndirectIndexed, 5, true, sbc)
	set(0xEB, "SBC", ModeImmediate, 2, false, sbc) // unofficial duplicate (USBC)

	set(0x85, "STA", ModeZeroPage, 3, false, sta)
	set(0x95, "STA", ModeZeroPageX, 4, false, sta)
	set(0x8D, "STA", ModeAbsolute, 4, false, sta)
	set(0x9D, "STA", ModeAbsoluteX, 5, false, sta)
	set(0x99, "STA", ModeAbsoluteY, 5, false, sta)
	set(0x81, "STA", ModeIndexedIndirect, 6, false, sta)
	set(0x91, "STA", ModeIndirectIndexed, 6, false, sta)

	set(0x86, "STX", ModeZeroPage, 3, false, stx)
	set(0x96, "STX", ModeZeroPageY, 4, false, stx)
	set(0x8E, "STX", ModeAbsolute, 4, false, stx)

	set(0x84, "STY", ModeZeroPage, 3, false, sty)
	set(0x94, "STY", ModeZeroPageX, 4, false, sty)
	set(0x8C, "STY", ModeAbsolute, 4, false, sty)

	set(0xAA, "TAX", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.X = c.A; c.P.setZN(c.X); return 0 })
	set(0xA8, "TAY", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.Y = c.A; c.P.setZN(c.Y); return 0 })
	set(0xBA, "TSX", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.X = c.SP; c.P.setZN(c.X); return 0 })
	set(0x8A, "TXA", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.A = c.X; c.P.setZN(c.A); return 0 })
	set(0x9A, "TXS", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.SP = c.X; return 0 })
	set(0x98, "TYA", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.A = c.Y; c.P.setZN(c.A); return 0 })

	// Unofficial opcodes with fully modeled behavior.
	setSLO := func(op uint8, mode AddrMode, cyc uint8) { set(op, "SLO", mode, cyc, false, slo) }
	setSLO(0x07, ModeZeroPage, 5)
	setSLO(0x17, ModeZeroPageX, 6)
	setSLO(0x0F, ModeAbsolute, 6)
	setSLO(0x1F, ModeAbsoluteX, 7)
	setSLO(0x1B, ModeAbsoluteY, 7)
	setSLO(0x03, ModeIndexedIndirect, 8)
	setSLO(0x13, ModeIndirectIndexed, 8)

	setRLA := func(op uint8, mode AddrMode, cyc uint8) { set(op, "RLA", mode, cyc, false, rla) }
	setRLA(0x27, ModeZeroPage, 5)
	setRLA(0x37, ModeZeroPageX, 6)
	setRLA(0x2F, ModeAbsolute, 6)
	setRLA(0x3F, ModeAbsoluteX, 7)
	setRLA(0x3B, ModeAbsoluteY, 7)
	setRLA(0x23, ModeIndexedIndirect, 8)
	setRLA(0x33, ModeIndirectIndexed, 8)

	setSRE := func(op uint8, mode AddrMode, cyc uint8) { set(op, "SRE", mode, cyc, false, sre) }
	setSRE(0x47, ModeZeroPage, 5)
	setSRE(0x57, ModeZeroPageX, 6)
	setSRE(0x4F, ModeAbsolute, 6)
	setSRE(0x5F, ModeAbsoluteX, 7)
	setSRE(0x5B, ModeAbsoluteY, 7)
	setSRE(0x43, ModeIndexedIndirect, 8)
	setSRE(0x53, ModeIndirectIndexed, 8)

	setRRA := func(op uint8, mode AddrMode, cyc uint8) { set(op, "RRA", mode, cyc, false, rra) }
	setRRA(0x67, ModeZeroPage, 5)
	setRRA(0x77, ModeZeroPageX, 6)
	setRRA(0x6F, ModeAbsolute, 6)
	setRRA(0x7F, ModeAbsoluteX, 7)
	setRRA(0x7B, ModeAbsoluteY, 7)
	setRRA(0x63, ModeIndexedIndirect, 8)
	setRRA(0x73, ModeIndirectIndexed, 8)

	setSAX := func(op uint8, mode AddrMode, cyc uint8) { set(op, "SAX", mode, cyc, false, sax) }
	setSAX(0x87, ModeZeroPage, 3)
	setSAX(0x97, ModeZeroPageY, 4)
	setSAX(0x8F, ModeAbsolute, 4)
	setSAX(0x83, ModeIndexedIndirect, 6)

	setLAX := func(op uint8, mode AddrMode, cyc uint8, penalty bool) { set(op, "LAX", mode, cyc, penalty, lax) }
	setLAX(0xA7, ModeZeroPage, 3, false)
	setLAX(0xB7, ModeZeroPageY, 4, false)
	setLAX(0xAF, ModeAbsolute, 4, false)
	setLAX(0xBF, ModeAbsoluteY, 4, true)
	setLAX(0xA3, ModeIndexedIndirect, 6, false)
	setLAX(0xB3, ModeIndirectIndexed, 5, true)
	setLAX(0xAB, ModeImmediate, 2, false)

	setDCP := func(op uint8, mode AddrMode, cyc uint8) { set(op, "DCP", mode, cyc, false, dcp) }
	setDCP(0xC7, ModeZeroPage, 5)
	setDCP(0xD7, ModeZeroPageX, 6)
	setDCP(0xCF, ModeAbsolute, 6)
	setDCP(0xDF, ModeAbsoluteX, 7)
	setDCP(0xDB, ModeAbsoluteY, 7)
	setDCP(0xC3, ModeIndexedIndirect, 8)
	setDCP(0xD3, ModeIndirectIndexed, 8)

	setISC := func(op uint8, mode AddrMode, cyc uint8) { set(op, "ISC", mode, cyc, false, isc) }
	setISC(0xE7, ModeZeroPage, 5)
	setISC(0xF7, ModeZeroPageX, 6)
	setISC(0xEF, ModeAbsolute, 6)
	setISC(0xFF, ModeAbsoluteX, 7)
	setISC(0xFB, ModeAbsoluteY, 7)
	setISC(0xE3, ModeIndexedIndirect, 8)
	setISC(0xF3, ModeIndirectIndexed, 8)

	set(0x0B, "ANC", ModeImmediate, 2, false, anc)
	set(0x2B, "ANC", ModeImmediate, 2, false, anc)
	set(0x4B, "ALR", ModeImmediate, 2, false, alr)
	set(0x6B, "ARR", ModeImmediate, 2, false, arr)
	set(0xCB, "AXS", ModeImmediate, 2, false, axs)

	// Unstable opcodes: decoded and cycle-accounted, execute as NOP.
	setUnstable := func(op uint8, name string, mode AddrMode, cyc uint8, penalty bool) {
		set(op, name, mode, cyc, penalty, nop)
	}
	setUnstable(0x93, "AHX", ModeIndirectIndexed, 6, false)
	setUnstable(0x9F, "AHX", ModeAbsoluteY, 5, false)
	setUnstable(0x9E, "SHX", ModeAbsoluteY, 5, false)
	setUnstable(0x9C, "SHY", ModeAbsoluteX, 5, false)
	setUnstable(0x9B, "TAS", ModeAbsoluteY, 5, false)
	setUnstable(0xBB, "LAS", ModeAbsoluteY, 4, true)
	setUnstable(0x8B, "XAA", ModeImmediate, 2, false)

	// STP/KIL: locks up the CPU.
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(op, "STP", ModeImplied, 2, false, func(c *CPU, _ uint16, _ AddrMode) uint8 { c.halted = true; return 0 })
	}

	// Remaining NOP variants (unofficial), various addressing modes/widths.
	implNop2 := []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA}
	for _, op := range implNop2 {
		set(op, "NOP", ModeImplied, 2, false, nop)
	}
	immNop2 := []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2}
	for _, op := range immNop2 {
		set(op, "NOP", ModeImmediate, 2, false, nop)
	}
	zpNop3 := []uint8{0x04, 0x44, 0x64}
	for _, op := range zpNop3 {
		set(op, "NOP", ModeZeroPage, 3, false, nop)
	}
	zpxNop4 := []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4}
	for _, op := range zpxNop4 {
		set(op, "NOP", ModeZeroPageX, 4, false, nop)
	}
	set(0x0C, "NOP", ModeAbsolute, 4, false, nop)
	absxNop4 := []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC}
	for _, op := range absxNop4 {
		set(op, "NOP", ModeAbsoluteX, 4, true, nop)
	}

	return t
}

func adc(c *CPU, addr uint16, _ AddrMode) uint8 {
	a := c.A
	m := c.Read8(addr)
	carry := carryIn(c)
	sum := uint16(a) + uint16(m) + uint16(carry)
	c.A = uint8(sum)
	c.P.setTo(Carry, sum > 0xFF)
	c.P.setTo(Overflow, (a^m)&0x80 == 0 && (a^c.A)&0x80 != 0)
	c.P.setZN(c.A)
	return 0
}

func sbc(c *CPU, addr uint16, _ AddrMode) uint8 {
	a := c.A
	m := c.Read8(addr) ^ 0xFF
	carry := carryIn(c)
	sum := uint16(a) + uint16(m) + uint16(carry)
	c.A = uint8(sum)
	c.P.setTo(Carry, sum > 0xFF)
	c.P.setTo(Overflow, (a^m)&0x80 == 0 && (a^c.A)&0x80 != 0)
	c.P.setZN(c.A)
	return 0
}

func carryIn(c *CPU) uint8 {
	if c.P.has(Carry) {
		return 1
	}
	return 0
}

func and(c *CPU, addr uint16, _ AddrMode) uint8 {
	c.A &= c.Read8(addr)
	c.P.setZN(c.A)
	return 0
}

func ora(c *CPU, addr uint16, _ AddrMode) uint8 {
	c.A |= c.Read8(addr)
	c.P.setZN(c.A)
	return 0
}

func eor(c *CPU, addr uint16, _ AddrMode) uint8 {
	c.A ^= c.Read8(addr)
	c.P.setZN(c.A)
	return 0
}

func asl(c *CPU, addr uint16, mode AddrMode) uint8 {
	if mode == ModeAccumulator {
		c.P.setTo(Carry, c.A&0x80 != 0)
		c.A <<= 1
		c.P.setZN(c.A)
		return 0
	}
	v := c.Read8(addr)
	c.P.setTo(Carry, v&0x80 != 0)
	v <<= 1
	c.Write8(addr, v)
	c.P.setZN(v)
	return 0
}

func lsr(c *CPU, addr uint16, mode AddrMode) uint8 {
	if mode == ModeAccumulator {
		c.P.setTo(Carry, c.A&1 != 0)
		c.A >>= 1
		c.P.setZN(c.A)
		return 0
	}
	v := c.Read8(addr)
	c.P.setTo(Carry, v&1 != 0)
	v >>= 1
	c.Write8(addr, v)
	c.P.setZN(v)
	return 0
}

func rol(c *CPU, addr uint16, mode AddrMode) uint8 {
	in := carryIn(c)
	if mode == ModeAccumulator {
		c.P.setTo(Carry, c.A&0x80 != 0)
		c.A = (c.A << 1) | in
		c.P.setZN(c.A)
		return 0
	}
	v := c.Read8(addr)
	c.P.setTo(Carry, v&0x80 != 0)
	v = (v << 1) | in
	c.Write8(addr, v)
	c.P.setZN(v)
	return 0
}

func ror(c *CPU, addr uint16, mode AddrMode) uint8 {
	in := carryIn(c)
	if mode == ModeAccumulator {
		c.P.setTo(Carry, c.A&1 != 0)
		c.A = (c.A >> 1) | (in << 7)
		c.P.setZN(c.A)
		return 0
	}
	v := c.Read8(addr)
	c.P.setTo(Carry, v&1 != 0)
	v = (v >> 1) | (in << 7)
	c.Write8(addr, v)
	c.P.setZN(v)
	return 0
}

func bit(c *CPU, addr uint16, _ AddrMode) uint8 {
	m := c.Read8(addr)
	c.P.setTo(Overflow, m&0x40 != 0)
	c.P.setTo(Zero, m&c.A == 0)
	c.P.setTo(Negative, m&0x80 != 0)
	return 0
}

func branch(c *CPU, addr uint16, taken bool) uint8 {
	if !taken {
		return 0
	}
	extra := uint8(1)
	if pagesDiffer(c.PC, addr) {
		extra++
	}
	c.PC = addr
	return extra
}

func brk(c *CPU, _ uint16, _ AddrMode) uint8 {
	c.PC++
	c.push16(c.PC)
	flags := c.P | Break | Reserved
	c.push8(uint8(flags))
	c.P.set(Interrupt)
	c.PC = c.Read16(vectorIRQ)
	return 0
}

func compare(c *CPU, reg uint8, addr uint16) {
	m := c.Read8(addr)
	c.P.setTo(Carry, reg >= m)
	c.P.setZN(reg - m)
}

func cmp(c *CPU, addr uint16, _ AddrMode) uint8 { compare(c, c.A, addr); return 0 }
func cpx(c *CPU, addr uint16, _ AddrMode) uint8 { compare(c, c.X, addr); return 0 }
func cpy(c *CPU, addr uint16, _ AddrMode) uint8 { compare(c, c.Y, addr); return 0 }

func dec(c *CPU, addr uint16, _ AddrMode) uint8 {
	v := c.Read8(addr) - 1
	c.Write8(addr, v)
	c.P.setZN(v)
	return 0
}

func inc(c *CPU, addr uint16, _ AddrMode) uint8 {
	v := c.Read8(addr) + 1
	c.Write8(addr, v)
	c.P.setZN(v)
	return 0
}

func jmp(c *CPU, addr uint16, _ AddrMode) uint8 { c.PC = addr; return 0 }

func jsr(c *CPU, addr uint16, _ AddrMode) uint8 {
	c.push16(c.PC - 1)
	c.PC = addr
	return 0
}

func lda(c *CPU, addr uint16, _ AddrMode) uint8 { c.A = c.Read8(addr); c.P.setZN(c.A); return 0 }
func ldx(c *CPU, addr uint16, _ AddrMode) uint8 { c.X = c.Read8(addr); c.P.setZN(c.X); return 0 }
func ldy(c *CPU, addr uint16, _ AddrMode) uint8 { c.Y = c.Read8(addr); c.P.setZN(c.Y); return 0 }

func sta(c *CPU, addr uint16, _ AddrMode) uint8 { c.Write8(addr, c.A); return 0 }
func stx(c *CPU, addr uint16, _ AddrMode) uint8 { c.Write8(addr, c.X); return 0 }
func sty(c *CPU, addr uint16, _ AddrMode) uint8 { c.Write8(addr, c.Y); return 0 }

func php(c *CPU, _ uint16, _ AddrMode) uint8 {
	c.push8(uint8(c.P | Break | Reserved))
	return 0
}

func plp(c *CPU, _ uint16, _ AddrMode) uint8 {
	pulled := P(c.pull8())
	c.P = (pulled &^ Break) | Reserved
	return 0
}

func rti(c *CPU, _ uint16, _ AddrMode) uint8 {
	pulled := P(c.pull8())
	c.P = (pulled &^ Break) | Reserved
	c.PC = c.pull16()
	return 0
}

func nop(c *CPU, addr uint16, mode AddrMode) uint8 {
	if mode != ModeImplied && mode != ModeAccumulator {
		c.Read8(addr) // dummy read, matching real bus activity
	}
	return 0
}

// slo: ASL memory, then OR the result into A.
func slo(c *CPU, addr uint16, _ AddrMode) uint8 {
	v := c.Read8(addr)
	c.P.setTo(Carry, v&0x80 != 0)
	v <<= 1
	c.Write8(addr, v)
	c.A |= v
	c.P.setZN(c.A)
	return 0
}

// rla: ROL memory, then AND the result into A.
func rla(c *CPU, addr uint16, _ AddrMode) uint8 {
	in := carryIn(c)
	v := c.Read8(addr)
	c.P.setTo(Carry, v&0x80 != 0)
	v = (v << 1) | in
	c.Write8(addr, v)
	c.A &= v
	c.P.setZN(c.A)
	return 0
}

// sre: LSR memory, then EOR the result into A.
func sre(c *CPU, addr uint16, _ AddrMode) uint8 {
	v := c.Read8(addr)
	c.P.setTo(Carry, v&1 != 0)
	v >>= 1
	c.Write8(addr, v)
	c.A ^= v
	c.P.setZN(c.A)
	return 0
}

// rra: ROR memory, then ADC the result into A.
func rra(c *CPU, addr uint16, _ AddrMode) uint8 {
	in := carryIn(c)
	v := c.Read8(addr)
	c.P.setTo(Carry, v&1 != 0)
	v = (v >> 1) | (in << 7)
	c.Write8(addr, v)

	a := c.A
	carry := carryIn(c)
	sum := uint16(a) + uint16(v) + uint16(carry)
	c.A = uint8(sum)
	c.P.setTo(Carry, sum > 0xFF)
	c.P.setTo(Overflow, (a^v)&0x80 == 0 && (a^c.A)&0x80 != 0)
	c.P.setZN(c.A)
	return 0
}

func sax(c *CPU, addr uint16, _ AddrMode) uint8 { c.Write8(addr, c.A&c.X); return 0 }

func lax(c *CPU, addr uint16, _ AddrMode) uint8 {
	v := c.Read8(addr)
	c.A, c.X = v, v
	c.P.setZN(v)
	return 0
}

// dcp: DEC memory, then compare A against the result.
func dcp(c *CPU, addr uint16, _ AddrMode) uint8 {
	v := c.Read8(addr) - 1
	c.Write8(addr, v)
	c.P.setTo(Carry, c.A >= v)
	c.P.setZN(c.A - v)
	return 0
}

// isc: INC memory, then SBC the result from A.
func isc(c *CPU, addr uint16, _ AddrMode) uint8 {
	v := c.Read8(addr) + 1
	c.Write8(addr, v)

	m := v ^ 0xFF
	a := c.A
	carry := carryIn(c)
	sum := uint16(a) + uint16(m) + uint16(carry)
	c.A = uint8(sum)
	c.P.setTo(Carry, sum > 0xFF)
	c.P.setTo(Overflow, (a^m)&0x80 == 0 && (a^c.A)&0x80 != 0)
	c.P.setZN(c.A)
	return 0
}

// anc: AND, then copy the resulting sign bit into Carry (used by test ROMs
// as a cheap AND+BMI/BPL fusion).
func anc(c *CPU, addr uint16, _ AddrMode) uint8 {
	c.A &= c.Read8(addr)
	c.P.setZN(c.A)
	c.P.setTo(Carry, c.A&0x80 != 0)
	return 0
}

// alr: AND, then LSR the accumulator.
func alr(c *CPU, addr uint16, _ AddrMode) uint8 {
	c.A &= c.Read8(addr)
	c.P.setTo(Carry, c.A&1 != 0)
	c.A >>= 1
	c.P.setZN(c.A)
	return 0
}

// arr: AND, then ROR the accumulator, with carry taken from bit 6 of the
// rotated result and overflow from bit 6 XOR bit 5 of it, rather than from
// the bit shifted out.
func arr(c *CPU, addr uint16, _ AddrMode) uint8 {
	c.A &= c.Read8(addr)
	in := carryIn(c)
	c.A = (c.A >> 1) | (in << 7)
	c.P.setZN(c.A)
	c.P.setTo(Carry, c.A&0x40 != 0)
	c.P.setTo(Overflow, (c.A>>6)&1^(c.A>>5)&1 != 0)
	return 0
}

// axs (SBX): (A & X) - M -> X, with Carry set like a CMP (no borrow-in).
func axs(c *CPU, addr uint16, _ AddrMode) uint8 {
	m := c.Read8(addr)
	v := c.A & c.X
	result := v - m
	c.P.setTo(Carry, v >= m)
	c.X = result
	c.P.setZN(c.X)
	return 0
}
