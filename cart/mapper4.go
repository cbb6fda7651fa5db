package cart

import "nescore/ines"

// mmc3 is mapper 4. Bank-select/bank-data/mirroring/protect/IRQ register
// layout and the offset tables are grounded on
// _examples/BrianWill-nes/nes/mapper4.go (writeRegister/updateOffsets); the
// A12 rising-edge IRQ counter is grounded on the checkA12/clockIRQ pair in
// _examples/other_examples/meadori-vibemulator__mmc3.go.
type mmc3 struct {
	prg []byte
	chr []byte

	prgRAM []byte
	chrRAM bool

	prgBanks8k int
	chrBanks1k int

	register  uint8
	registers [8]uint8
	prgMode   uint8
	chrMode   uint8

	prgOffsets [4]int
	chrOffsets [8]int

	mirroring    ines.NTMirroring
	fourScreen   bool

	reload    uint8
	counter   uint8
	irqEnable bool
	irqReload bool
	irqLine   bool

	lastA12  bool
	lowCount int
}

func newMMC3(rom *ines.Rom) *mmc3 {
	m := &mmc3{
		prg:        rom.PRGROM,
		prgRAM:     make([]byte, 8192),
		prgBanks8k: len(rom.PRGROM) / 8192,
		mirroring:  rom.Mirroring(),
		fourScreen: rom.Mirroring() == ines.FourScreen,
	}
	if rom.UsesCHRRAM() {
		m.chr = rom.CHRRAM
		m.chrRAM = true
	} else {
		m.chr = rom.CHRROM
	}
	m.chrBanks1k = len(m.chr) / 1024
	m.updateOffsets()
	return m
}

func (m *mmc3) Reset() {
	m.register = 0
	m.registers = [8]uint8{}
	m.prgMode = 0
	m.chrMode = 0
	m.reload = 0
	m.counter = 0
	m.irqEnable = false
	m.irqLine = false
	m.lastA12 = false
	m.lowCount = 0
	m.updateOffsets()
}

func (m *mmc3) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		bank := (addr - 0x8000) / 0x2000
		off := int(addr) & 0x1FFF
		return m.prg[m.prgOffsets[bank]+off]
	default:
		return 0
	}
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.prgRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.writeRegister(addr, val)
	}
}

func (m *mmc3) writeRegister(addr uint16, val uint8) {
	even := addr%2 == 0
	switch {
	case addr <= 0x9FFF && even:
		m.prgMode = (val >> 6) & 1
		m.chrMode = (val >> 7) & 1
		m.register = val & 7
		m.updateOffsets()
	case addr <= 0x9FFF && !even:
		m.registers[m.register] = val
		m.updateOffsets()
	case addr <= 0xBFFF && even:
		if !m.fourScreen {
			if val&1 == 0 {
				m.mirroring = ines.VertMirroring
			} else {
				m.mirroring = ines.HorzMirroring
			}
		}
	case addr <= 0xBFFF && !even:
		// PRG-RAM protect: accepted, not enforced.
	case addr <= 0xDFFF && even:
		m.reload = val
	case addr <= 0xDFFF && !even:
		m.counter = 0
		m.irqReload = true
	case addr <= 0xFFFF && even:
		m.irqEnable = false
		m.irqLine = false
	default:
		m.irqEnable = true
	}
}

func (m *mmc3) prgBankOffset(index int) int {
	if index >= 0x80 {
		index -= 0x100
	}
	if index < 0 {
		index += m.prgBanks8k
	}
	index %= m.prgBanks8k
	return index * 0x2000
}

func (m *mmc3) chrBankOffset(index int) int {
	if index >= 0x80 {
		index -= 0x100
	}
	if index < 0 {
		index += m.chrBanks1k
	}
	index %= m.chrBanks1k
	return index * 0x400
}

func (m *mmc3) updateOffsets() {
	switch m.prgMode {
	case 0:
		m.prgOffsets[0] = m.prgBankOffset(int(m.registers[6]))
		m.prgOffsets[1] = m.prgBankOffset(int(m.registers[7]))
		m.prgOffsets[2] = m.prgBankOffset(-2)
		m.prgOffsets[3] = m.prgBankOffset(-1)
	default:
		m.prgOffsets[0] = m.prgBankOffset(-2)
		m.prgOffsets[1] = m.prgBankOffset(int(m.registers[7]))
		m.prgOffsets[2] = m.prgBankOffset(int(m.registers[6]))
		m.prgOffsets[3] = m.prgBankOffset(-1)
	}

	switch m.chrMode {
	case 0:
		m.chrOffsets[0] = m.chrBankOffset(int(m.registers[0] &^ 1))
		m.chrOffsets[1] = m.chrBankOffset(int(m.registers[0] | 1))
		m.chrOffsets[2] = m.chrBankOffset(int(m.registers[1] &^ 1))
		m.chrOffsets[3] = m.chrBankOffset(int(m.registers[1] | 1))
		m.chrOffsets[4] = m.chrBankOffset(int(m.registers[2]))
		m.chrOffsets[5] = m.chrBankOffset(int(m.registers[3]))
		m.chrOffsets[6] = m.chrBankOffset(int(m.registers[4]))
		m.chrOffsets[7] = m.chrBankOffset(int(m.registers[5]))
	default:
		m.chrOffsets[0] = m.chrBankOffset(int(m.registers[2]))
		m.chrOffsets[1] = m.chrBankOffset(int(m.registers[3]))
		m.chrOffsets[2] = m.chrBankOffset(int(m.registers[4]))
		m.chrOffsets[3] = m.chrBankOffset(int(m.registers[5]))
		m.chrOffsets[4] = m.chrBankOffset(int(m.registers[0] &^ 1))
		m.chrOffsets[5] = m.chrBankOffset(int(m.registers[0] | 1))
		m.chrOffsets[6] = m.chrBankOffset(int(m.registers[1] &^ 1))
		m.chrOffsets[7] = m.chrBankOffset(int(m.registers[1] | 1))
	}
}

func (m *mmc3) PPURead(addr uint16) (uint8, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	bank := addr / 0x400
	off := addr % 0x400
	return m.chr[m.chrOffsets[bank]+int(off)], true
}

func (m *mmc3) PPUWrite(addr uint16, val uint8) bool {
	if addr >= 0x2000 || !m.chrRAM {
		return false
	}
	bank := addr / 0x400
	off := addr % 0x400
	m.chr[m.chrOffsets[bank]+int(off)] = val
	return true
}

func (m *mmc3) RemapPPUAddress(addr uint16) (uint16, bool) {
	if m.fourScreen {
		return 0, false
	}
	return applyMirroring(m.mirroring, addr), true
}

// ClockA12 implements the low-pass-filtered rising-edge detector: the
// counter only clocks when A12 has been observed low for at least three
// consecutive PPU pattern-table fetches before the rising edge.
func (m *mmc3) ClockA12(addr uint16) {
	a12 := addr&0x1000 != 0
	if a12 {
		if !m.lastA12 && m.lowCount >= 3 {
			m.clockIRQCounter()
		}
		m.lastA12 = true
		m.lowCount = 0
	} else {
		m.lastA12 = false
		m.lowCount++
	}
}

func (m *mmc3) clockIRQCounter() {
	if m.counter == 0 || m.irqReload {
		m.counter = m.reload
		m.irqReload = false
	} else {
		m.counter--
	}
	if m.counter == 0 && m.irqEnable {
		m.irqLine = true
	}
}

func (m *mmc3) IRQPending() bool { return m.irqLine }
func (m *mmc3) Tick()            {}
