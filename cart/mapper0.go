package cart

import "nescore/ines"

// nrom is mapper 0: no banking at all. Grounded on
// _examples/arl-nestor/hw/mappers/base.go, which nrom.go in the same
// directory builds on top of for the trivial case.
type nrom struct {
	prg    []byte
	chr    []byte
	chrRAM bool
}

func newNROM(rom *ines.Rom) *nrom {
	m := &nrom{prg: rom.PRGROM}
	if rom.UsesCHRRAM() {
		m.chr = rom.CHRRAM
		m.chrRAM = true
	} else {
		m.chr = rom.CHRROM
	}
	return m
}

func (m *nrom) CPURead(addr uint16) uint8 {
	if addr < 0x8000 {
		return 0
	}
	return m.prg[int(addr-0x8000)%len(m.prg)]
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {}

func (m *nrom) PPURead(addr uint16) (uint8, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	return m.chr[int(addr)%len(m.chr)], true
}

func (m *nrom) PPUWrite(addr uint16, val uint8) bool {
	if addr >= 0x2000 || !m.chrRAM {
		return false
	}
	m.chr[int(addr)%len(m.chr)] = val
	return true
}

func (m *nrom) RemapPPUAddress(addr uint16) (uint16, bool) { return 0, false }
func (m *nrom) Reset()                                     {}
func (m *nrom) IRQPending() bool     { return false }
func (m *nrom) ClockA12(addr uint16) {}
func (m *nrom) Tick()                {}
