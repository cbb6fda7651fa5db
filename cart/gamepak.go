package cart

import (
	"nescore/ines"
	"nescore/internal/nlog"
)

// GamePak owns a decoded ROM and its active mapper, applying the header's
// default nametable mirroring whenever the mapper itself does not override
// an address (mirrors _examples/arl-nestor/hw/mappers/base.go's
// setNametableMirroring, expressed as address-bit rewriting instead of
// memory-slice remapping).
type GamePak struct {
	Rom    *ines.Rom
	Mapper Mapper

	// The 2 KiB of nametable VRAM backing the four logical nametables is
	// held by the PPU; GamePak holds no nametable memory and contributes
	// only the mirroring address translation.
}

func NewGamePak(rom *ines.Rom) *GamePak {
	return &GamePak{
		Rom:    rom,
		Mapper: New(rom),
	}
}

func (g *GamePak) Reset() { g.Mapper.Reset() }

func (g *GamePak) CPURead(addr uint16) uint8         { return g.Mapper.CPURead(addr) }
func (g *GamePak) CPUWrite(addr uint16, val uint8)   { g.Mapper.CPUWrite(addr, val) }

func (g *GamePak) PPURead(addr uint16) (uint8, bool)     { return g.Mapper.PPURead(addr) }
func (g *GamePak) PPUWrite(addr uint16, val uint8) bool  { return g.Mapper.PPUWrite(addr, val) }

func (g *GamePak) IRQPending() bool     { return g.Mapper.IRQPending() }
func (g *GamePak) ClockA12(addr uint16) { g.Mapper.ClockA12(addr) }
func (g *GamePak) Tick()                { g.Mapper.Tick() }

// RemapNametableAddress rewrites a $2000-$3EFF PPU address into an offset
// into the PPU's 2 KiB nametable RAM, first asking the mapper (one-screen
// mirroring modes) and falling back to the cartridge header's declared
// mirroring.
func (g *GamePak) RemapNametableAddress(addr uint16) uint16 {
	if remapped, handled := g.Mapper.RemapPPUAddress(addr); handled {
		return remapped
	}
	return applyMirroring(g.Rom.Mirroring(), addr)
}

// applyMirroring maps a $2000-$2FFF nametable address (or its $3000-$3EFF
// mirror) onto a 2 KiB physical offset, per the four standard modes.
func applyMirroring(mode ines.NTMirroring, addr uint16) uint16 {
	addr &= 0x0FFF // fold $3000-$3EFF mirror onto $2000-$2FFF
	table := addr / 0x400
	offset := addr % 0x400

	var page uint16
	switch mode {
	case ines.HorzMirroring:
		page = table / 2 // {0,1}->0, {2,3}->1
	case ines.VertMirroring:
		page = table % 2 // {0,2}->0, {1,3}->1
	case ines.OnlyAScreen:
		page = 0
	case ines.OnlyBScreen:
		page = 1
	case ines.FourScreen:
		nlog.ModCart.WarnZ("four-screen VRAM is not emulated, aliasing to vertical").End()
		page = table % 2
	default:
		page = 0
	}
	return page*0x400 + offset
}
