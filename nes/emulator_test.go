package nes

import (
	"bytes"
	"testing"
)

// syntheticROM builds a minimal iNES image with a reset vector pointing at
// an infinite JMP loop, so Step/StepFrame can run indefinitely without a
// real game ROM.
func syntheticROM() []byte {
	prg := make([]byte, 16*1024)
	// Reset vector $FFFC/$FFFD -> $8000 (offset 0x3FFC/0x3FFD within PRG).
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	// NMI vector $FFFA/$FFFB -> $8000 too, unused unless NMI fires.
	prg[0x3FFA] = 0x00
	prg[0x3FFB] = 0x80
	// At $8000: JMP $8000 (opcode 0x4C, absolute).
	prg[0] = 0x4C
	prg[1] = 0x00
	prg[2] = 0x80

	data := make([]byte, 16+len(prg))
	copy(data, []byte("NES\x1A"))
	data[4] = 1 // 1 PRG page
	data[5] = 0 // CHR-RAM
	copy(data[16:], prg)
	return data
}

func newTestEmulator(t *testing.T) *Emulator {
	t.Helper()
	e, err := NewFromReader(bytes.NewReader(syntheticROM()))
	if err != nil {
		t.Fatalf("NewFromReader failed: %v", err)
	}
	return e
}

func TestEmulatorResetVectorPlumbing(t *testing.T) {
	e := newTestEmulator(t)
	if e.cpu.PC != 0x8000 {
		t.Fatalf("PC: got=0x%04x, want=0x8000", e.cpu.PC)
	}
}

func TestEmulatorStepFrameAdvancesExactlyOneFrame(t *testing.T) {
	e := newTestEmulator(t)
	startScanline := e.ppu.scanline
	if _, err := e.StepFrame(); err != nil {
		t.Fatalf("StepFrame failed: %v", err)
	}
	if e.ppu.cycle != 257 || e.ppu.scanline != 239 {
		t.Fatalf("PPU position after StepFrame: got=%d/%d, want=257/239", e.ppu.cycle, e.ppu.scanline)
	}
	_ = startScanline
}

func TestEmulatorSetButtonReachesController(t *testing.T) {
	e := newTestEmulator(t)
	e.SetButton(ButtonA, true)
	e.controller1.Write(1)
	e.controller1.Write(0)
	if got := e.controller1.Read(); got != 1 {
		t.Fatalf("controller1 read after SetButton(A, true): got=%d, want=1", got)
	}
}
