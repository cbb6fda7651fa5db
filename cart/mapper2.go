package cart

import "nescore/ines"

// uxrom is mapper 2: a switchable 16 KiB PRG window at $8000 and a fixed
// last bank at $C000, with 8 KiB of CHR-RAM. Grounded on
// _examples/arl-nestor/hw/mappers/uxrom.go.
type uxrom struct {
	prg     []byte
	chr     []byte
	bank    int
	numBank int
}

func newUxROM(rom *ines.Rom) *uxrom {
	return &uxrom{
		prg:     rom.PRGROM,
		chr:     rom.CHRRAM,
		numBank: rom.PRGBankCount(),
	}
}

func (m *uxrom) CPURead(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return 0
	case addr < 0xC000:
		return m.prg[m.bank*16384+int(addr-0x8000)]
	default:
		last := m.numBank - 1
		return m.prg[last*16384+int(addr-0xC000)]
	}
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x8000 {
		m.bank = int(val) % m.numBank
	}
}

func (m *uxrom) PPURead(addr uint16) (uint8, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	return m.chr[addr], true
}

func (m *uxrom) PPUWrite(addr uint16, val uint8) bool {
	if addr >= 0x2000 {
		return false
	}
	m.chr[addr] = val
	return true
}

func (m *uxrom) RemapPPUAddress(addr uint16) (uint16, bool) { return 0, false }
func (m *uxrom) Reset()                                     { m.bank = 0 }
func (m *uxrom) IRQPending() bool     { return false }
func (m *uxrom) ClockA12(addr uint16) {}
func (m *uxrom) Tick()                {}
