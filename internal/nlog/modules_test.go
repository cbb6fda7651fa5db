package nlog

import "testing"

func TestModuleEnabledAlwaysAllowsWarnAndAbove(t *testing.T) {
	mod := NewModule("test-warn")
	if !mod.Enabled(WarnLevel) {
		t.Fatal("Enabled(WarnLevel) = false, want true regardless of debug mask")
	}
	if !mod.Enabled(ErrorLevel) {
		t.Fatal("Enabled(ErrorLevel) = false, want true regardless of debug mask")
	}
}

func TestModuleEnabledGatesDebugOnMask(t *testing.T) {
	mod := NewModule("test-debug")
	if mod.Enabled(DebugLevel) {
		t.Fatal("Enabled(DebugLevel) = true before EnableDebugModules")
	}

	EnableDebugModules(mod.Mask())
	if !mod.Enabled(DebugLevel) {
		t.Fatal("Enabled(DebugLevel) = false after EnableDebugModules")
	}

	DisableDebugModules(mod.Mask())
	if mod.Enabled(DebugLevel) {
		t.Fatal("Enabled(DebugLevel) = true after DisableDebugModules")
	}
}

func TestDisableClearsEveryModule(t *testing.T) {
	mod := NewModule("test-disable-all")
	EnableDebugModules(mod.Mask())
	if !mod.Enabled(DebugLevel) {
		t.Fatal("Enabled(DebugLevel) = false after EnableDebugModules")
	}

	Disable()
	if mod.Enabled(DebugLevel) {
		t.Fatal("Enabled(DebugLevel) = true after Disable")
	}
}

func TestModuleByNameFindsStandardAndCustomModules(t *testing.T) {
	if mod, ok := ModuleByName("cpu"); !ok || mod != ModCPU {
		t.Fatalf("ModuleByName(\"cpu\") = (%v, %v), want (ModCPU, true)", mod, ok)
	}

	custom := NewModule("test-by-name")
	got, ok := ModuleByName("test-by-name")
	if !ok || got != custom {
		t.Fatalf("ModuleByName(\"test-by-name\") = (%v, %v), want (%v, true)", got, ok, custom)
	}

	if _, ok := ModuleByName("does-not-exist"); ok {
		t.Fatal("ModuleByName(\"does-not-exist\") = true, want false")
	}
}

func TestModuleNamesIncludesRegisteredModules(t *testing.T) {
	NewModule("test-names-marker")
	names := ModuleNames()
	found := false
	for _, n := range names {
		if n == "test-names-marker" {
			found = true
		}
	}
	if !found {
		t.Fatalf("ModuleNames() = %v, missing newly registered module", names)
	}
}

func TestDebugZReturnsNilWhenDisabled(t *testing.T) {
	mod := NewModule("test-debugz-nil")
	e := mod.DebugZ("should be a no-op")
	if e != nil {
		t.Fatal("DebugZ on a disabled module should return nil")
	}
	// nil-receiver methods must not panic; this is the documented contract
	// that lets call sites chain unconditionally.
	e.String("k", "v").Int("n", 1).End()
}

func TestDebugZBuildsAndEndsWithoutPanicWhenEnabled(t *testing.T) {
	mod := NewModule("test-debugz-enabled")
	EnableDebugModules(mod.Mask())
	e := mod.DebugZ("enabled message")
	if e == nil {
		t.Fatal("DebugZ on an enabled module returned nil")
	}
	e.String("s", "v").Uint8("u8", 1).Uint16("u16", 2).Hex8("h8", 0xAB).Hex16("h16", 0xBEEF).Bool("b", true).End()
}
