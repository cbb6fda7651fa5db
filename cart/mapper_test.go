package cart

import (
	"bytes"
	"testing"

	"nescore/ines"
)

func makeRom(mapper uint8, prgBanks, chrBanks int, flags6 uint8) *ines.Rom {
	raw := []byte{'N', 'E', 'S', 0x1A, byte(prgBanks), byte(chrBanks), flags6, mapper &^ 0x0F, 0, 0, 0, 0, 0, 0, 0, 0}
	raw[6] = (raw[6] & 0x0F) | ((mapper & 0x0F) << 4)
	raw[7] = (raw[7] & 0x0F) | (mapper & 0xF0)

	buf := append([]byte{}, raw...)
	buf = append(buf, make([]byte, prgBanks*16384)...)
	buf = append(buf, make([]byte, chrBanks*8192)...)

	rom, err := ines.Decode(bytes.NewReader(buf))
	if err != nil {
		panic(err)
	}
	return rom
}

func TestNROMMirrorsSmallPRG(t *testing.T) {
	rom := makeRom(0, 1, 1, 0)
	rom.PRGROM[0] = 0x42
	m := New(rom)
	if got := m.CPURead(0x8000); got != 0x42 {
		t.Fatalf("got %#x, want 0x42", got)
	}
	if got := m.CPURead(0xC000); got != 0x42 {
		t.Fatalf("16KB PRG did not mirror into upper window: got %#x", got)
	}
}

func TestUxROMSwitchesLowWindowFixesHigh(t *testing.T) {
	rom := makeRom(2, 4, 0, 0)
	for i := 0; i < 4; i++ {
		rom.PRGROM[i*16384] = byte(i)
	}
	m := New(rom)
	m.CPUWrite(0x8000, 2)
	if got := m.CPURead(0x8000); got != 2 {
		t.Fatalf("low window bank select: got %d, want 2", got)
	}
	if got := m.CPURead(0xC000); got != 3 {
		t.Fatalf("high window should stay fixed to last bank: got %d, want 3", got)
	}
}

func TestCNROMSwitchesCHRBank(t *testing.T) {
	rom := makeRom(3, 1, 2, 0)
	rom.CHRROM[0] = 0xAA
	rom.CHRROM[8192] = 0xBB
	m := New(rom)
	if v, _ := m.PPURead(0); v != 0xAA {
		t.Fatalf("bank 0: got %#x", v)
	}
	m.CPUWrite(0x8000, 1)
	if v, _ := m.PPURead(0); v != 0xBB {
		t.Fatalf("bank 1: got %#x", v)
	}
}

func TestMMC1PowerUpFixesLastBank(t *testing.T) {
	rom := makeRom(1, 4, 0, 0)
	for i := 0; i < 4; i++ {
		rom.PRGROM[i*16384] = byte(i + 1)
	}
	m := New(rom)
	if got := m.CPURead(0xC000); got != 4 {
		t.Fatalf("power-up should fix last bank at $C000: got %d, want 4", got)
	}
}

func TestMMC1SerialWriteSelectsBank(t *testing.T) {
	rom := makeRom(1, 4, 0, 0)
	for i := 0; i < 4; i++ {
		rom.PRGROM[i*16384] = byte(i + 1)
	}
	m := New(rom).(*mmc1)

	// control=0x0C: prgMode=0b11 (fixed-last at $C000), chrMode=0 (8KB).
	writeMMC1Serial(m, 0x8000, 0x0C)
	// prgBank register=2 selects bank 2 at $8000 in fixed-last mode.
	writeMMC1Serial(m, 0xE000, 0x02)

	if got := m.CPURead(0x8000); got != 3 {
		t.Fatalf("got %d, want 3 (bank index 2 -> value stored)", got)
	}
	if got := m.CPURead(0xC000); got != 4 {
		t.Fatalf("fixed-last window should stay bank 3: got %d, want 4", got)
	}
}

// writeMMC1Serial pushes val's five low bits LSB-first, spacing writes two
// cycles apart so none are dropped by the consecutive-write filter.
func writeMMC1Serial(m *mmc1, addr uint16, val uint8) {
	for i := 0; i < 5; i++ {
		bit := (val >> i) & 1
		m.Tick()
		m.Tick()
		m.CPUWrite(addr, bit)
	}
}

func TestMMC3BankSelectAndIRQCounter(t *testing.T) {
	rom := makeRom(4, 8, 8, 0)
	for i := 0; i < 8; i++ {
		rom.PRGROM[i*8192] = byte(i)
	}
	m := New(rom).(*mmc3)

	// select register 6 (R6, PRG $8000 in mode 0), load it with bank 5.
	m.CPUWrite(0x8000, 0x06)
	m.CPUWrite(0x8001, 0x05)
	if got := m.CPURead(0x8000); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}

	// IRQ: latch=2, reload, then three low-then-high A12 transitions should
	// count down 2 -> 1 -> 0 and assert IRQ on hitting 0.
	m.CPUWrite(0xC000, 2) // latch
	m.CPUWrite(0xC001, 0) // reload request
	m.CPUWrite(0xE001, 0) // enable

	clockA12Edge(m)
	if m.IRQPending() {
		t.Fatal("IRQ should not fire yet (counter reload -> 2)")
	}
	clockA12Edge(m)
	if m.IRQPending() {
		t.Fatal("IRQ should not fire yet (counter -> 1)")
	}
	clockA12Edge(m)
	if !m.IRQPending() {
		t.Fatal("IRQ should fire once counter reaches 0")
	}
}

// clockA12Edge simulates a full low period followed by a rising edge.
func clockA12Edge(m *mmc3) {
	for i := 0; i < 4; i++ {
		m.ClockA12(0x0000)
	}
	m.ClockA12(0x1000)
}
