// Package nlog is a module-scoped leveled logger built on top of logrus. Each
// subsystem (CPU, PPU, mapper, ...) gets its own Module so that verbose
// tracing can be switched on independently, and so that Enabled() checks stay
// cheap enough to sprinkle through hot paths like the PPU pixel loop.
package nlog

type ModuleMask uint64
type Module uint

const ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF

const (
	ModEmu Module = iota + 1
	ModCPU
	ModPPU
	ModMapper
	ModCart
	ModBus
	ModInput
	ModDMA
	ModHWIO
	ModDebugger
	ModRPC
	ModGUI

	endStandardMods
)

var modCount = endStandardMods

var modDebugMask ModuleMask

var modNames = []string{
	"<error>", "emu", "cpu", "ppu", "mapper", "cart", "bus", "input", "dma", "hwio", "debugger", "rpc", "gui",
}

// NewModule registers an additional module beyond the standard set above.
func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

// EnableDebugModules turns on Debug-level output for the modules in mask, on
// top of whatever is already enabled.
func EnableDebugModules(mask ModuleMask) { modDebugMask |= mask }

func DisableDebugModules(mask ModuleMask) { modDebugMask &^= mask }

// Disable turns off every module's debug-level output.
func Disable() { modDebugMask = 0 }

// ModuleNames lists every registered module name, standard and custom, for
// use in CLI help text.
func ModuleNames() []string {
	return append([]string(nil), modNames[1:]...)
}

func (mod Module) Mask() ModuleMask { return 1 << ModuleMask(mod) }

func (mod Module) Enabled(level Level) bool {
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return mod.logz(FatalLevel, msg) }

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if !mod.Enabled(lvl) {
		return nil
	}
	e := newEntryZ()
	e.mod = mod
	e.lvl = lvl
	e.msg = msg
	return e
}
