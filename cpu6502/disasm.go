package cpu6502

import "fmt"

// Peeker is a non-destructive byte reader. The disassembler reads through it
// instead of Bus.Read8 so that stepping through code for display never
// disturbs MMIO side effects (PPU status-read latch, controller shift
// registers, mapper bank-select writes triggered by reads never happen
// either way, but reads of $2002/$2007/$4016 do have effects on the real
// hardware bus).
type Peeker interface {
	Peek8(addr uint16) uint8
}

func peek16(p Peeker, addr uint16) uint16 {
	lo := uint16(p.Peek8(addr))
	hi := uint16(p.Peek8(addr + 1))
	return hi<<8 | lo
}

func peek16bug(p Peeker, addr uint16) uint16 {
	lo := p.Peek8(addr)
	hiAddr := (addr & 0xFF00) | uint16(byte(addr)+1)
	hi := p.Peek8(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// busPeeker adapts a plain Bus (no Peek8) into a Peeker by reading through
// Read8. Used when the host doesn't provide a debug-safe read path; callers
// that care about read side effects should implement Peeker on their Bus.
type busPeeker struct{ Bus }

func (b busPeeker) Peek8(addr uint16) uint8 { return b.Read8(addr) }

// DisasmOp is one disassembled instruction, as exposed through the host API.
type DisasmOp struct {
	Text string
	Size uint16
}

// DisassembleAt renders the instruction at pc as a mnemonic-plus-operand
// string in nestest golden-log style, and reports its encoded length. It
// reads through c.Bus's Peek8 method if present, falling back to Read8
// otherwise. Grounded on _examples/arl-nestor/cpu/disasm.go's per-addressing-
// mode formatting functions (disasm_zp, disasm_abx, disasm_izy, etc), merged
// into a single switch driven by this package's opcodeTable instead of a
// parallel disasm-only table.
func (c *CPU) DisassembleAt(pc uint16) DisasmOp {
	text, size := c.disassembleAt(pc)
	return DisasmOp{Text: text, Size: size}
}

func (c *CPU) disassembleAt(pc uint16) (string, uint16) {
	p, ok := c.Bus.(Peeker)
	if !ok {
		p = busPeeker{c.Bus}
	}

	opcode := p.Peek8(pc)
	instr := opcodeTable[opcode]
	name := instr.name
	if name == "" {
		name = "???"
	}
	if isUnofficial(opcode) {
		name = "*" + name
	}

	switch instr.mode {
	case ModeImplied:
		return name, 1
	case ModeAccumulator:
		return fmt.Sprintf("%s A", name), 1
	case ModeImmediate:
		return fmt.Sprintf("%s #$%02X", name, p.Peek8(pc+1)), 2
	case ModeZeroPage:
		addr := p.Peek8(pc + 1)
		return fmt.Sprintf("%s $%02X = %02X", name, addr, p.Peek8(uint16(addr))), 2
	case ModeZeroPageX:
		addr := p.Peek8(pc + 1)
		eff := addr + c.X
		return fmt.Sprintf("%s $%02X,X @ %02X = %02X", name, addr, eff, p.Peek8(uint16(eff))), 2
	case ModeZeroPageY:
		addr := p.Peek8(pc + 1)
		eff := addr + c.Y
		return fmt.Sprintf("%s $%02X,Y @ %02X = %02X", name, addr, eff, p.Peek8(uint16(eff))), 2
	case ModeRelative:
		off := p.Peek8(pc + 1)
		base := pc + 2
		var target uint16
		if off < 0x80 {
			target = base + uint16(off)
		} else {
			target = base + uint16(off) - 0x100
		}
		return fmt.Sprintf("%s $%04X", name, target), 2
	case ModeAbsolute:
		addr := peek16(p, pc+1)
		if name == "JMP" || name == "JSR" {
			return fmt.Sprintf("%s $%04X", name, addr), 3
		}
		return fmt.Sprintf("%s $%04X = %02X", name, addr, p.Peek8(addr)), 3
	case ModeAbsoluteX:
		base := peek16(p, pc+1)
		eff := base + uint16(c.X)
		return fmt.Sprintf("%s $%04X,X @ %04X = %02X", name, base, eff, p.Peek8(eff)), 3
	case ModeAbsoluteY:
		base := peek16(p, pc+1)
		eff := base + uint16(c.Y)
		return fmt.Sprintf("%s $%04X,Y @ %04X = %02X", name, base, eff, p.Peek8(eff)), 3
	case ModeIndirect:
		oper := peek16(p, pc+1)
		dst := peek16bug(p, oper)
		return fmt.Sprintf("%s ($%04X) = %04X", name, oper, dst), 3
	case ModeIndexedIndirect:
		zp := p.Peek8(pc + 1)
		effZP := zp + c.X
		addr := peek16bug(p, uint16(effZP))
		return fmt.Sprintf("%s ($%02X,X) @ %02X = %04X = %02X", name, zp, effZP, addr, p.Peek8(addr)), 2
	case ModeIndirectIndexed:
		zp := p.Peek8(pc + 1)
		base := peek16bug(p, uint16(zp))
		dst := base + uint16(c.Y)
		return fmt.Sprintf("%s ($%02X),Y = %04X @ %04X = %02X", name, zp, base, dst, p.Peek8(dst)), 2
	default:
		return name, 1
	}
}

// officialOpcodes lists every byte belonging to the documented 6502
// instruction set; everything else in opcodeTable is an unofficial opcode
// and gets the "*"-prefix convention nestest-style logs use.
var officialOpcodes = [...]uint8{
	0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71, // ADC
	0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31, // AND
	0x0A, 0x06, 0x16, 0x0E, 0x1E, // ASL
	0x90, 0xB0, 0xF0, 0x30, 0xD0, 0x10, 0x50, 0x70, // branches
	0x24, 0x2C, // BIT
	0x00,                                           // BRK
	0x18, 0xD8, 0x58, 0xB8, 0x38, 0xF8, 0x78, // flag ops
	0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1, // CMP
	0xE0, 0xE4, 0xEC, // CPX
	0xC0, 0xC4, 0xCC, // CPY
	0xC6, 0xD6, 0xCE, 0xDE, 0xCA, 0x88, // DEC/DEX/DEY
	0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51, // EOR
	0xE6, 0xF6, 0xEE, 0xFE, 0xE8, 0xC8, // INC/INX/INY
	0x4C, 0x6C, 0x20, // JMP/JSR
	0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1, // LDA
	0xA2, 0xA6, 0xB6, 0xAE, 0xBE, // LDX
	0xA0, 0xA4, 0xB4, 0xAC, 0xBC, // LDY
	0x4A, 0x46, 0x56, 0x4E, 0x5E, // LSR
	0xEA,                                           // NOP
	0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11, // ORA
	0x48, 0x08, 0x68, 0x28, // PHA/PHP/PLA/PLP
	0x2A, 0x26, 0x36, 0x2E, 0x3E, // ROL
	0x6A, 0x66, 0x76, 0x6E, 0x7E, // ROR
	0x40, 0x60, // RTI/RTS
	0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1, // SBC
	0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91, // STA
	0x86, 0x96, 0x8E, // STX
	0x84, 0x94, 0x8C, // STY
	0xAA, 0xA8, 0xBA, 0x8A, 0x9A, 0x98, // transfers
}

var isOfficial [256]bool

func init() {
	for _, op := range officialOpcodes {
		isOfficial[op] = true
	}
}

func isUnofficial(opcode uint8) bool { return !isOfficial[opcode] }
