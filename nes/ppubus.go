package nes

import "fmt"

// PPUBus is the address space the PPU sees: pattern tables (routed through
// the cartridge's Mapper), and the two internal nametables mirrored into the
// four-nametable $2000-$2FFF window per the cartridge's Mirroring mode.
// Palette RAM ($3F00-$3FFF) is not on this bus: the PPU owns it directly,
// since real hardware palette RAM lives inside the PPU chip, not in VRAM.
type PPUBus struct {
	vram   *RAM
	mapper Mapper
}

// NewPPUBus creates a new Bus for PPU.
func NewPPUBus(vram *RAM, mapper Mapper) *PPUBus {
	return &PPUBus{vram, mapper}
}

// nametableOffset gives the byte offset into the 2 KiB of physical VRAM a
// $2000-$2FFF nametable address maps to, per the cartridge's Mirroring.
// Reference: https://www.nesdev.org/wiki/Mirroring
func (b *PPUBus) nametableOffset(address uint16) uint16 {
	table := (address - 0x2000) / 0x0400 // which of the 4 logical nametables, 0-3
	offsetInTable := (address - 0x2000) % 0x0400
	var physical uint16
	switch b.mapper.MirrorMode() {
	case MirrorHorizontal:
		physical = table / 2 // tables 0,1 -> physical 0; tables 2,3 -> physical 1
	case MirrorVertical:
		physical = table % 2 // tables 0,2 -> physical 0; tables 1,3 -> physical 1
	}
	return physical*0x0400 + offsetInTable
}

// read reads data.
// Address        Size	  Description
// -------------------------------------
// $0000-$0FFF	  $1000	  Pattern table 0
// $1000-$1FFF	  $1000	  Pattern table 1
// $2000-$23FF	  $0400	  Nametable 0
// $2400-$27FF	  $0400	  Nametable 1
// $2800-$2BFF	  $0400	  Nametable 2
// $2C00-$2FFF	  $0400	  Nametable 3
// $3000-$3EFF	  $0F00	  Mirrors of $2000-$2EFF
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
func (b *PPUBus) read(address uint16) (byte, error) {
	switch {
	case address < 0x2000:
		return b.mapper.ReadCHR(address), nil
	case address < 0x3000:
		return b.vram.read(b.nametableOffset(address)), nil
	case address < 0x3F00:
		return b.vram.read(b.nametableOffset(address - 0x1000)), nil
	default:
		return 0, fmt.Errorf("Unknown PPU bus read: 0x%04x", address)
	}
}

// write writes data.
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
func (b *PPUBus) write(address uint16, data byte) error {
	switch {
	case address < 0x2000:
		b.mapper.WriteCHR(address, data)
	case address < 0x3000:
		b.vram.write(b.nametableOffset(address), data)
	case address < 0x3F00:
		b.vram.write(b.nametableOffset(address-0x1000), data)
	default:
		return fmt.Errorf("Unknown PPU bus write: address=0x%04x, data=0x%02x", address, data)
	}
	return nil
}
