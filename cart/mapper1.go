package cart

import (
	"nescore/ines"
	"nescore/internal/nlog"
)

// mmc1 is mapper 1. Grounded on _examples/arl-nestor/hw/mappers/mmc1.go: the
// serial shift register, consecutive-cycle write filtering, and PRG/CHR mode
// tables are carried over near-verbatim; bank selection is expressed as
// direct slice-offset arithmetic against prg/chr rather than the teacher's
// setNametableMirroring-style bus remapping, since this mapper computes its
// own offsets in CPURead/PPURead instead of delegating to a shared base.
type mmc1 struct {
	prg []byte
	chr []byte

	prgRAM []byte
	chrRAM bool

	prgBanks int
	chrBanks int

	lastCycle int64
	cycle     int64

	serial  uint8
	counter uint8

	chrMode uint8
	prgMode uint8
	ntm     uint8

	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8
}

func newMMC1(rom *ines.Rom) *mmc1 {
	m := &mmc1{
		prg:      rom.PRGROM,
		prgBanks: rom.PRGBankCount(),
		prgRAM:   make([]byte, 8192),
	}
	if rom.UsesCHRRAM() {
		m.chr = rom.CHRRAM
		m.chrRAM = true
		m.chrBanks = len(m.chr) / 4096
	} else {
		m.chr = rom.CHRROM
		m.chrBanks = rom.CHRBankCount() * 2 // in 4 KiB units
	}
	// Power-up state mirrors the teacher's loadMMC1, which primes the
	// control register with writeREG(0x8000, 0x0C): ntm=0 (one-screen A)
	// and prgMode=3 (16 KiB, $8000 swappable, $C000 fixed to last bank).
	m.ntm = 0
	m.prgMode = 0b11
	return m
}

// Tick lets the bus report elapsed CPU cycles, needed for MMC1's
// consecutive-write filter.
func (m *mmc1) Tick() { m.cycle++ }

func (m *mmc1) Reset() {
	m.serial = 0
	m.counter = 0
	m.ntm = 0
	m.prgMode = 0b11
	m.chrMode = 0
	m.prgBank = 0
	m.chrBank0 = 0
	m.chrBank1 = 0
}

func (m *mmc1) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		lo, hi := m.prgWindows()
		if addr < 0xC000 {
			return m.prg[lo+int(addr-0x8000)]
		}
		return m.prg[hi+int(addr-0xC000)]
	default:
		return 0
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = val
		return
	}
	if addr < 0x8000 {
		return
	}

	if val&0x80 != 0 {
		m.serial = 0
		m.counter = 0
		m.prgMode = 0b11
		m.lastCycle = m.cycle
		return
	}

	// Consecutive-cycle writes are dropped, replicating the real MMC1's
	// write-timing quirk.
	if m.cycle-m.lastCycle < 2 {
		m.lastCycle = m.cycle
		return
	}
	m.lastCycle = m.cycle

	m.serial = (m.serial >> 1) | ((val & 1) << 4)
	m.counter++
	if m.counter < 5 {
		return
	}

	m.writeReg(addr, m.serial)
	m.serial = 0
	m.counter = 0
}

func (m *mmc1) writeReg(addr uint16, val uint8) {
	switch (addr & 0x6000) >> 13 {
	case 0:
		m.writeCtrl(val)
	case 1:
		m.chrBank0 = val & 0x1F
	case 2:
		m.chrBank1 = val & 0x1F
	case 3:
		m.prgBank = val & 0x0F
	}
}

func (m *mmc1) writeCtrl(val uint8) {
	m.chrMode = (val & 0x10) >> 4
	m.prgMode = (val & 0x0C) >> 2
	m.ntm = val & 0x03
	nlog.ModMapper.DebugZ("mmc1 ctrl write").Hex8("val", val).Uint8("prgmode", m.prgMode).Uint8("chrmode", m.chrMode).End()
}

// prgWindows returns byte offsets into m.prg for the $8000 and $C000 16 KiB
// windows, per the current PRG mode.
func (m *mmc1) prgWindows() (lo, hi int) {
	bank := int(m.prgBank)
	switch m.prgMode {
	case 0, 1:
		b := (bank &^ 1) % m.prgBanks
		return b * 16384, (b+1)%m.prgBanks*16384 // treated as one 32 KiB window split in two
	case 2:
		return 0, (bank%m.prgBanks)*16384
	default: // 3
		return (bank % m.prgBanks) * 16384, (m.prgBanks-1)*16384
	}
}

func (m *mmc1) PPURead(addr uint16) (uint8, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	return m.chr[m.chrOffset(addr)], true
}

func (m *mmc1) PPUWrite(addr uint16, val uint8) bool {
	if addr >= 0x2000 || !m.chrRAM {
		return false
	}
	m.chr[m.chrOffset(addr)] = val
	return true
}

func (m *mmc1) chrOffset(addr uint16) int {
	if m.chrMode == 0 {
		bank := int(m.chrBank0 &^ 1)
		return (bank%m.chrBanks)*4096 + int(addr)
	}
	if addr < 0x1000 {
		return (int(m.chrBank0)%m.chrBanks)*4096 + int(addr)
	}
	return (int(m.chrBank1)%m.chrBanks)*4096 + int(addr-0x1000)
}

func (m *mmc1) RemapPPUAddress(addr uint16) (uint16, bool) {
	switch m.ntm {
	case 0:
		return applyMirroring(ines.OnlyAScreen, addr), true
	case 1:
		return applyMirroring(ines.OnlyBScreen, addr), true
	case 2:
		return applyMirroring(ines.VertMirroring, addr), true
	default:
		return applyMirroring(ines.HorzMirroring, addr), true
	}
}

func (m *mmc1) IRQPending() bool     { return false }
func (m *mmc1) ClockA12(addr uint16) {}
