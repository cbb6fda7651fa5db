package main

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"nescore/cmd/nescore/config"
	"nescore/ines"
)

// recentROM is one entry of the "recent ROMs" list shown by the GTK picker:
// the file path plus the header fields worth showing without re-reading the
// whole PRG/CHR payload.
type recentROM struct {
	Path       string
	Name       string
	Mapper     uint8
	Mirroring  string
	LastOpened time.Time
}

// recentROMs tracks recently-opened files under config.Dir and caches their
// parsed header behind a singleflight group, so the GTK dialog's redraw
// path never issues two concurrent header parses for the same file — the
// same duplicate-suppression role the reference codebase's ROM listing
// would need if it read headers directly instead of from a sidecar
// (grounded on the general shape of _examples/arl-nestor/ui/recent_roms.go,
// generalized from that file's zip-sidecar cache to an in-memory one keyed
// by path, since header decode here is cheap enough not to need a
// persisted cache — only concurrent-call collapsing).
type recentROMs struct {
	mu      sync.Mutex
	entries map[string]recentROM
	group   singleflight.Group
}

func newRecentROMs() *recentROMs {
	return &recentROMs{entries: make(map[string]recentROM)}
}

// Touch records path as opened just now, parsing its header (once, even
// under concurrent callers) if it hasn't been seen before.
func (r *recentROMs) Touch(path string) (recentROM, error) {
	r.mu.Lock()
	if entry, ok := r.entries[path]; ok {
		entry.LastOpened = time.Now()
		r.entries[path] = entry
		r.mu.Unlock()
		return entry, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(path, func() (any, error) {
		rom, err := ines.Open(path)
		if err != nil {
			return recentROM{}, err
		}
		entry := recentROM{
			Path:       path,
			Name:       filepath.Base(path),
			Mapper:     rom.Mapper(),
			Mirroring:  rom.Mirroring().String(),
			LastOpened: time.Now(),
		}
		r.mu.Lock()
		r.entries[path] = entry
		r.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return recentROM{}, err
	}
	return v.(recentROM), nil
}

// List returns every tracked ROM, most-recently-opened first.
func (r *recentROMs) List() []recentROM {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]recentROM, 0, len(r.entries))
	for _, e := range r.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LastOpened.After(list[j].LastOpened) })
	return list
}

// recentROMsFile is where the plain list of paths (without headers) is
// persisted between runs, distinct from config.toml since it changes on
// every ROM open rather than only on settings changes.
const recentROMsFile = "recent-roms.txt"

func loadRecentROMPaths() []string {
	buf, err := os.ReadFile(filepath.Join(config.Dir(), recentROMsFile))
	if err != nil {
		return nil
	}
	var paths []string
	start := 0
	for i, b := range buf {
		if b == '\n' {
			if line := string(buf[start:i]); line != "" {
				paths = append(paths, line)
			}
			start = i + 1
		}
	}
	return paths
}

func saveRecentROMPaths(paths []string) error {
	var buf []byte
	for _, p := range paths {
		buf = append(buf, p...)
		buf = append(buf, '\n')
	}
	return os.WriteFile(filepath.Join(config.Dir(), recentROMsFile), buf, 0o644)
}
