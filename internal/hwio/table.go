package hwio

import "nescore/internal/nlog"

// BankIO8 is anything addressable by a single byte offset, the common
// interface Table dispatches to.
type BankIO8 interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// Table is a small sparse register bank keyed by address, used for the
// handful of single-address ports (OAMDMA, the controller ports) that
// benefit from being dispatched through a map rather than an explicit
// range check. Cartridge and PPU address decode are deliberately NOT built
// on Table: they're small, fixed range checks better expressed as direct
// dispatch (see nes.Bus and ppu2c02.PPU).
type Table struct {
	Name string
	regs map[uint16]BankIO8
}

func NewTable(name string) *Table {
	return &Table{Name: name, regs: make(map[uint16]BankIO8)}
}

func (t *Table) MapDevice(addr uint16, dev BankIO8) {
	t.regs[addr] = dev
}

func (t *Table) Read8(addr uint16) uint8 {
	dev, ok := t.regs[addr]
	if !ok {
		nlog.ModHWIO.DebugZ("unmapped read").String("bus", t.Name).Hex16("addr", addr).End()
		return 0
	}
	return dev.Read8(addr)
}

func (t *Table) Write8(addr uint16, val uint8) {
	dev, ok := t.regs[addr]
	if !ok {
		nlog.ModHWIO.DebugZ("unmapped write").String("bus", t.Name).Hex16("addr", addr).Hex8("val", val).End()
		return
	}
	dev.Write8(addr, val)
}
