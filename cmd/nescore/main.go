// Command nescore is the reference frontend for the nescore emulator: an
// SDL2/OpenGL window driven by the nes package's cycle-accurate core, with
// an optional debugger RPC/WebSocket surface and a GTK "recent ROMs" picker.
//
// Grounded on _examples/arl-nestor/main.go and run.go for the overall
// flag-parse/power-up/run shape, adapted to the kong-based CLI described in
// cli.go and this project's headless-first System API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gotk3/gotk3/gtk"

	"nescore/cmd/nescore/frontend"
	"nescore/cmd/nescore/gui"
	"nescore/ines"
	"nescore/nes"
)

func main() {
	_, ctx, cli := parseArgs(os.Args[1:])

	switch ctx.Command() {
	case "rom-infos <path/to/rom>", "rom-infos </path/to/rom>":
		runRomInfos(cli.RomInfos)
	case "recent":
		runRecentPicker()
	case "version":
		cli.Version.Run()
	default:
		runRom(cli.Run)
	}
}

func runRomInfos(cmd RomInfosCmd) {
	rom, err := ines.Open(cmd.RomPath)
	fatalOnErr(err, "failed to open rom")
	rom.PrintInfos(os.Stdout)
}

func runRom(cmd RunCmd) {
	f, err := os.Open(cmd.RomPath)
	fatalOnErr(err, "failed to open rom")
	defer f.Close()

	sys, err := nes.Load(f)
	fatalOnErr(err, "failed to power up")

	recent := newRecentROMs()
	if _, err := recent.Touch(cmd.RomPath); err == nil {
		paths := loadRecentROMPaths()
		paths = append([]string{cmd.RomPath}, paths...)
		saveRecentROMPaths(paths)
	}

	if cmd.Headless {
		RunHeadless(sys, cmd.Frames)
		return
	}

	win, err := frontend.New(sys, frontend.Options{DisableVSync: false})
	fatalOnErr(err, "failed to open window")
	defer win.Close()

	emulator := NewEmulator(sys, win, win)
	fatalOnErr(emulator.ServeDebugger(cmd.Port), "failed to start debugger")

	if err := emulator.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "emulation loop error:", err)
		os.Exit(1)
	}
}

// runRecentPicker shows the GTK "recent ROMs" window and runs whichever
// entry the user activates.
func runRecentPicker() {
	gtk.Init(nil)

	recent := newRecentROMs()
	var rows []gui.RecentROM
	for _, path := range loadRecentROMPaths() {
		entry, err := recent.Touch(path)
		if err != nil {
			continue
		}
		rows = append(rows, gui.RecentROM{
			Path:      entry.Path,
			Name:      entry.Name,
			Mapper:    fmt.Sprintf("%d", entry.Mapper),
			Mirroring: entry.Mirroring,
		})
	}

	win, err := gui.NewRecentROMsWindow(rows)
	fatalOnErr(err, "failed to build recent-roms window")
	win.OnActivate = func(path string) {
		win.Close()
		gtk.MainQuit()
		runRom(RunCmd{RomPath: path})
	}

	win.ShowAll()
	gtk.Main()
}
