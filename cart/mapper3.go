package cart

import "nescore/ines"

// cnrom is mapper 3: fixed NROM-style PRG, a single switchable 8 KiB CHR
// bank. Grounded on _examples/arl-nestor/hw/mappers/cnrom.go.
type cnrom struct {
	prg     []byte
	chr     []byte
	bank    int
	numBank int
}

func newCNROM(rom *ines.Rom) *cnrom {
	return &cnrom{
		prg:     rom.PRGROM,
		chr:     rom.CHRROM,
		numBank: rom.CHRBankCount(),
	}
}

func (m *cnrom) CPURead(addr uint16) uint8 {
	if addr < 0x8000 {
		return 0
	}
	return m.prg[int(addr-0x8000)%len(m.prg)]
}

func (m *cnrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x8000 && m.numBank > 0 {
		m.bank = int(val) % m.numBank
	}
}

func (m *cnrom) PPURead(addr uint16) (uint8, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	return m.chr[m.bank*8192+int(addr)], true
}

func (m *cnrom) PPUWrite(addr uint16, val uint8) bool { return false }

func (m *cnrom) RemapPPUAddress(addr uint16) (uint16, bool) { return 0, false }
func (m *cnrom) Reset()                                     { m.bank = 0 }
func (m *cnrom) IRQPending() bool     { return false }
func (m *cnrom) ClockA12(addr uint16) {}
func (m *cnrom) Tick()                {}
