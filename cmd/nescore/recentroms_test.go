package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestROM(t *testing.T, path string) {
	t.Helper()
	header := make([]byte, 16)
	copy(header, []byte("NES\x1a"))
	header[4] = 1 // 1 PRG bank
	header[5] = 1 // 1 CHR bank
	buf := append(header, make([]byte, 16384+8192)...)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRecentROMsTouchParsesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.nes")
	writeTestROM(t, path)

	roms := newRecentROMs()
	entry, err := roms.Touch(path)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if entry.Mapper != 0 {
		t.Fatalf("got mapper %d, want 0", entry.Mapper)
	}
	if entry.Name != "game.nes" {
		t.Fatalf("got name %q, want game.nes", entry.Name)
	}

	list := roms.List()
	if len(list) != 1 || list[0].Path != path {
		t.Fatalf("got list %v, want single entry for %s", list, path)
	}
}

func TestRecentROMsTouchPropagatesDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.nes")
	if err := os.WriteFile(path, []byte("not a rom"), 0o644); err != nil {
		t.Fatal(err)
	}

	roms := newRecentROMs()
	if _, err := roms.Touch(path); err == nil {
		t.Fatal("expected error decoding bad header")
	}
}

func TestSaveLoadRecentROMPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	paths := []string{"/roms/a.nes", "/roms/b.nes"}
	if err := saveRecentROMPaths(paths); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := loadRecentROMPaths()
	if len(got) != 2 || got[0] != paths[0] || got[1] != paths[1] {
		t.Fatalf("got %v, want %v", got, paths)
	}
}
