// Package gui holds the auxiliary GTK windows around the SDL2/OpenGL
// emulation window: today, just the "recent ROMs" picker.
//
// Grounded on _examples/arl-nestor/ui/config_input.go's ListStore/TreeView/
// CellRendererText construction, built directly (no .glade template) since
// this window has no controls beyond a row picker.
package gui

import (
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

// RecentROM is one row of the picker: display columns only, no header
// metadata the window itself needs to interpret.
type RecentROM struct {
	Path      string
	Name      string
	Mapper    string
	Mirroring string
}

// RecentROMsWindow lists previously-opened ROMs and reports the chosen
// path through OnActivate.
type RecentROMsWindow struct {
	win        *gtk.Window
	store      *gtk.ListStore
	OnActivate func(path string)
}

// NewRecentROMsWindow builds the picker window, populated with roms.
// gtk.Init must already have been called by the caller.
func NewRecentROMsWindow(roms []RecentROM) (*RecentROMsWindow, error) {
	win, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return nil, err
	}
	win.SetTitle("Recent ROMs")
	win.SetDefaultSize(480, 320)

	store, err := gtk.ListStoreNew(glib.TYPE_STRING, glib.TYPE_STRING, glib.TYPE_STRING, glib.TYPE_STRING)
	if err != nil {
		return nil, err
	}
	for _, r := range roms {
		iter := store.Append()
		store.Set(iter,
			[]int{0, 1, 2, 3},
			[]any{r.Name, r.Mapper, r.Mirroring, r.Path})
	}

	tree, err := gtk.TreeViewNewWithModel(store)
	if err != nil {
		return nil, err
	}
	for i, title := range []string{"Name", "Mapper", "Mirroring"} {
		cell, err := gtk.CellRendererTextNew()
		if err != nil {
			return nil, err
		}
		col, err := gtk.TreeViewColumnNewWithAttribute(title, cell, "text", i)
		if err != nil {
			return nil, err
		}
		tree.AppendColumn(col)
	}

	rw := &RecentROMsWindow{win: win, store: store}
	tree.Connect("row-activated", func(tv *gtk.TreeView, path *gtk.TreePath, _ *gtk.TreeViewColumn) {
		iter, err := store.GetIter(path)
		if err != nil {
			return
		}
		val, err := store.GetValue(iter, 3)
		if err != nil {
			return
		}
		s, err := val.GetString()
		if err != nil {
			return
		}
		if rw.OnActivate != nil {
			rw.OnActivate(s)
		}
	})

	scroll, err := gtk.ScrolledWindowNew(nil, nil)
	if err != nil {
		return nil, err
	}
	scroll.Add(tree)
	win.Add(scroll)

	return rw, nil
}

func (rw *RecentROMsWindow) ShowAll() { rw.win.ShowAll() }
func (rw *RecentROMsWindow) Close()   { rw.win.Close() }
