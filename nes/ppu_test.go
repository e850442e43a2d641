package nes

import "testing"

func newTestPPU() *PPU {
	data := make([]byte, 16+16*1024)
	copy(data, []byte("NES\x1A"))
	data[4] = 1
	data[5] = 0 // CHR-RAM
	cartridge, _ := NewCartridge(data)
	bus := NewPPUBus(NewRAM(), cartridge)
	return NewPPU(bus)
}

// TestPaletteMirrorRoundTrip checks that $3F10/$3F14/$3F18/$3F1C mirror the
// backdrop entries at $3F00/$3F04/$3F08/$3F0C on both read and write, and
// that nothing else folds to $3F00 (the teacher's original fallback-to-0
// branch for $3F04/08/0C reads was not real hardware behavior).
func TestPaletteMirrorRoundTrip(t *testing.T) {
	p := newTestPPU()
	p.paletteRAM.write(0x3F00, 0x11)
	if got := p.paletteRAM.read(0x3F10); got != 0x11 {
		t.Fatalf("read 0x3F10: got=0x%02x, want=0x11 (mirrors 0x3F00)", got)
	}
	p.paletteRAM.write(0x3F14, 0x22)
	if got := p.paletteRAM.read(0x3F04); got != 0x22 {
		t.Fatalf("read 0x3F04: got=0x%02x, want=0x22 (written via its mirror)", got)
	}
	p.paletteRAM.write(0x3F08, 0x33)
	if got := p.paletteRAM.read(0x3F08); got != 0x33 {
		t.Fatalf("read 0x3F08: got=0x%02x, want=0x33 (not folded to 0x3F00)", got)
	}
}

// TestPaletteMirrorWrap checks the $3F20-$3FFF mirror region folds back
// into the 32-byte palette.
func TestPaletteMirrorWrap(t *testing.T) {
	p := newTestPPU()
	p.paletteRAM.write(0x3F00, 0x55)
	if got := p.paletteRAM.read(0x3F20); got != 0x55 {
		t.Fatalf("read 0x3F20: got=0x%02x, want=0x55", got)
	}
}

// TestVBlankFlag checks that PPUSTATUS reports vblank starting at
// scanline 241 cycle 1, and that reading it clears the flag (and the
// shared write-toggle).
func TestVBlankFlag(t *testing.T) {
	p := newTestPPU()
	p.cycle = 0
	p.scanline = 241
	if nmi, err := p.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	} else if nmi {
		t.Fatalf("NMI fired without nmiOutput set")
	}
	if p.scanline != 241 || p.cycle != 1 {
		t.Fatalf("scanline/cycle: got=%d/%d, want=241/1", p.scanline, p.cycle)
	}
	status := p.readPPUSTATUS()
	if status&0x80 == 0 {
		t.Fatalf("PPUSTATUS bit 7: got clear, want set after entering vblank")
	}
	status2 := p.readPPUSTATUS()
	if status2&0x80 != 0 {
		t.Fatalf("PPUSTATUS bit 7 on second read: got set, want clear (read-clears)")
	}
}

// TestPPUDATABufferedRead checks the one-byte-delayed read buffer for
// non-palette PPUDATA reads.
func TestPPUDATABufferedRead(t *testing.T) {
	p := newTestPPU()
	p.writePPUADDR(0x20)
	p.writePPUADDR(0x00)
	if err := p.bus.write(0x2000, 0xAB); err != nil {
		t.Fatalf("bus write failed: %v", err)
	}
	p.writePPUADDR(0x20)
	p.writePPUADDR(0x00)
	first, err := p.readPPUDATA()
	if err != nil {
		t.Fatalf("readPPUDATA failed: %v", err)
	}
	if first != 0 {
		t.Fatalf("first read (buffered): got=0x%02x, want=0x00", first)
	}
	second, err := p.readPPUDATA()
	if err != nil {
		t.Fatalf("readPPUDATA failed: %v", err)
	}
	if second != 0xAB {
		t.Fatalf("second read: got=0x%02x, want=0xAB", second)
	}
}
