package config

import "testing"

func TestDefaultBindsPort0(t *testing.T) {
	cfg := Default()
	if cfg.Input.Port0["A"] == "" {
		t.Fatal("expected default port0 A binding")
	}
	if len(cfg.Input.Port0) != 8 {
		t.Fatalf("got %d port0 bindings, want 8", len(cfg.Input.Port0))
	}
	if !cfg.General.ShowSplash {
		t.Fatal("expected ShowSplash true by default")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := Default()
	cfg.Video.DisableVSync = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := LoadOrDefault()
	if !got.Video.DisableVSync {
		t.Fatal("expected DisableVSync to round-trip as true")
	}
	if got.Input.Port0["A"] != cfg.Input.Port0["A"] {
		t.Fatalf("got A=%q, want %q", got.Input.Port0["A"], cfg.Input.Port0["A"])
	}
}
