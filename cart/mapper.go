// Package cart wires a decoded iNES image to a bank-switching mapper and
// exposes the combined CPU/PPU address-space view a Bus needs.
package cart

import "nescore/ines"

// Mapper is the capability set every bank-switching ASIC implements. All
// address ranges are pre-filtered by GamePak/Bus before reaching a mapper:
// CPURead/CPUWrite only ever see $4020-$FFFF, PPURead/PPUWrite/
// RemapPPUAddress only ever see $0000-$3EFF.
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)

	// PPURead/PPUWrite return the value (or handled=false) for pattern-table
	// space ($0000-$1FFF), served from the cartridge's CHR-ROM or CHR-RAM.
	// Nametable space
	// is not read/written here; see RemapPPUAddress.
	PPURead(addr uint16) (val uint8, handled bool)
	PPUWrite(addr uint16, val uint8) (handled bool)

	// RemapPPUAddress rewrites a nametable address ($2000-$3EFF) according to
	// the mapper's mirroring mode, returning the rewritten address and
	// whether the mapper claimed it (false lets GamePak apply the header's
	// default mirroring).
	RemapPPUAddress(addr uint16) (remapped uint16, handled bool)

	// Reset returns the mapper to its post-power-up state.
	Reset()

	// IRQPending reports whether the mapper is asserting the CPU IRQ line
	// (only MMC3 ever returns true; all other mappers are permanently
	// quiescent here).
	IRQPending() bool

	// ClockA12 notifies the mapper of a PPU address-bus value observed
	// during a pattern-table fetch, for MMC3's scanline IRQ counter. Mappers
	// without an A12 filter ignore it.
	ClockA12(addr uint16)

	// Tick notifies the mapper of one elapsed CPU cycle, for MMC1's
	// consecutive-write filter. Mappers that don't need cycle timing ignore
	// it.
	Tick()
}

// New constructs the mapper declared by rom's header, wiring it against
// rom's PRG/CHR payloads.
func New(rom *ines.Rom) Mapper {
	switch rom.Mapper() {
	case 0:
		return newNROM(rom)
	case 1:
		return newMMC1(rom)
	case 2:
		return newUxROM(rom)
	case 3:
		return newCNROM(rom)
	case 4:
		return newMMC3(rom)
	default:
		// ines.Decode already rejects unsupported mapper numbers; reaching
		// here would be a programmer error, not a runtime condition.
		panic("cart: unsupported mapper reached New")
	}
}
