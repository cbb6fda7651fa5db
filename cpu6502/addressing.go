package cpu6502

// AddrMode identifies how an instruction's operand address is formed.
// Grounded on the mode set in
// _examples/BrianWill-nes/nes/cpu_instructions.go's executeInstruction
// switch.
type AddrMode uint8

const (
	ModeImplied AddrMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeRelative
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndexedIndirect // (zp,X)
	ModeIndirectIndexed // (zp),Y
)

func pagesDiffer(a, b uint16) bool { return a&0xFF00 != b&0xFF00 }

// resolve computes the effective address for the instruction at PC (not yet
// advanced past the opcode byte) and reports whether the effective address
// crosses a page boundary from its unindexed base, for the +1 cycle penalty
// on indexed modes.
func (c *CPU) resolve(mode AddrMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0, false
	case ModeImmediate:
		return c.PC + 1, false
	case ModeZeroPage:
		return uint16(c.Read8(c.PC + 1)), false
	case ModeZeroPageX:
		return uint16(c.Read8(c.PC+1) + c.X), false
	case ModeZeroPageY:
		return uint16(c.Read8(c.PC+1) + c.Y), false
	case ModeRelative:
		off := uint16(c.Read8(c.PC + 1))
		base := c.PC + 2
		if off < 0x80 {
			return base + off, false
		}
		return base + off - 0x100, false
	case ModeAbsolute:
		return c.Read16(c.PC + 1), false
	case ModeAbsoluteX:
		base := c.Read16(c.PC + 1)
		addr := base + uint16(c.X)
		return addr, pagesDiffer(base, addr)
	case ModeAbsoluteY:
		base := c.Read16(c.PC + 1)
		addr := base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	case ModeIndirect:
		return c.read16bug(c.Read16(c.PC + 1)), false
	case ModeIndexedIndirect:
		ptr := c.Read8(c.PC+1) + c.X
		return c.read16bug(uint16(ptr)), false
	case ModeIndirectIndexed:
		ptr := uint16(c.Read8(c.PC + 1))
		base := c.read16bug(ptr)
		addr := base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	default:
		return 0, false
	}
}

// instructionSize is the total encoded length in bytes (opcode + operand).
func instructionSize(mode AddrMode) uint16 {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 1
	case ModeImmediate, ModeZeroPage, ModeZeroPageX, ModeZeroPageY,
		ModeRelative, ModeIndexedIndirect, ModeIndirectIndexed:
		return 2
	default:
		return 3
	}
}
