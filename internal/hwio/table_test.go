package hwio

import "testing"

type fakeDevice struct{ last uint8 }

func (d *fakeDevice) Read8(uint16) uint8       { return d.last }
func (d *fakeDevice) Write8(_ uint16, v uint8) { d.last = v }

func TestTableDispatchesMappedDevice(t *testing.T) {
	dev := &fakeDevice{}
	tbl := NewTable("io")
	tbl.MapDevice(0x4014, dev)

	tbl.Write8(0x4014, 0x42)
	if got := tbl.Read8(0x4014); got != 0x42 {
		t.Fatalf("got %#02x, want 0x42", got)
	}
}

func TestTableUnmappedReadReturnsZero(t *testing.T) {
	tbl := NewTable("io")
	if got := tbl.Read8(0x4017); got != 0 {
		t.Fatalf("got %#02x, want 0 for unmapped address", got)
	}
}

func TestTableUnmappedWriteIsDiscarded(t *testing.T) {
	dev := &fakeDevice{last: 0x11}
	tbl := NewTable("io")
	tbl.MapDevice(0x4014, dev)

	tbl.Write8(0x4017, 0x99)
	if dev.last != 0x11 {
		t.Fatalf("write to unmapped address reached mapped device: last=%#02x", dev.last)
	}
}
