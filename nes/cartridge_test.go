package nes

import (
	"errors"
	"testing"
)

func buildINES(prgPages, chrPages int, flags6 byte, payloadLen int) []byte {
	data := make([]byte, inesHeaderSize+payloadLen)
	copy(data, []byte("NES\x1A"))
	data[4] = byte(prgPages)
	data[5] = byte(chrPages)
	data[6] = flags6
	return data
}

func TestNewCartridgeBadMagic(t *testing.T) {
	data := make([]byte, 32)
	copy(data, []byte("XES\x1A"))
	if _, err := NewCartridge(data); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("got=%v, want=ErrBadMagic", err)
	}
}

func TestNewCartridgeUnsupportedMapper(t *testing.T) {
	data := buildINES(1, 1, 0x10, 16*1024+8*1024) // mapper 1 in flags6 high nibble
	if _, err := NewCartridge(data); !errors.Is(err, ErrUnsupportedMapper) {
		t.Fatalf("got=%v, want=ErrUnsupportedMapper", err)
	}
}

func TestNewCartridgeTruncated(t *testing.T) {
	data := buildINES(2, 1, 0, 16*1024) // promises 2 PRG pages + 1 CHR page (40 KiB), carries only 16 KiB
	if _, err := NewCartridge(data); !errors.Is(err, ErrTruncatedROM) {
		t.Fatalf("got=%v, want=ErrTruncatedROM", err)
	}
}

func TestNewCartridgeCHRRAM(t *testing.T) {
	data := buildINES(1, 0, 0, 16*1024)
	c, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.WriteCHR(0x10, 0x42)
	if got := c.ReadCHR(0x10); got != 0x42 {
		t.Fatalf("CHR-RAM roundtrip: got=0x%02x, want=0x42", got)
	}
}

func TestNewCartridgeMirroring(t *testing.T) {
	vertical := buildINES(1, 1, 0x01, 16*1024+8*1024)
	c, err := NewCartridge(vertical)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MirrorMode() != MirrorVertical {
		t.Fatalf("got=%v, want=MirrorVertical", c.MirrorMode())
	}

	horizontal := buildINES(1, 1, 0x00, 16*1024+8*1024)
	c2, err := NewCartridge(horizontal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c2.MirrorMode() != MirrorHorizontal {
		t.Fatalf("got=%v, want=MirrorHorizontal", c2.MirrorMode())
	}
}

// TestReadPRGMirrorsNROM128 checks that a 16 KiB PRG image mirrors into the
// upper bank, per spec: $C000-$FFFF wraps modulo the image size.
func TestReadPRGMirrorsNROM128(t *testing.T) {
	data := buildINES(1, 1, 0, 16*1024+8*1024)
	data[inesHeaderSize] = 0x42 // first byte of PRG-ROM
	c, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.ReadPRG(0x8000); got != 0x42 {
		t.Fatalf("ReadPRG(0x8000): got=0x%02x, want=0x42", got)
	}
	if got := c.ReadPRG(0xC000); got != 0x42 {
		t.Fatalf("ReadPRG(0xC000) mirror: got=0x%02x, want=0x42", got)
	}
}
