package nes

// Mapper is the address-translation boundary between the CPU/PPU buses and a
// cartridge's PRG/CHR images. This core only ships mapper 0 (NROM, spec §1
// Non-goals), but the buses are written against this interface rather than
// *Cartridge directly so a future mapper only has to satisfy it.
type Mapper interface {
	ReadPRG(address uint16) byte
	WritePRG(address uint16, data byte)
	ReadCHR(address uint16) byte
	WriteCHR(address uint16, data byte)
	MirrorMode() Mirroring
}

// *Cartridge already implements Mapper directly: mapper 0 has no bank
// registers, so there's no translation left to do beyond what Cartridge
// itself already knows (PRG mirroring, CHR-ROM/RAM selection, mirroring mode).
var _ Mapper = (*Cartridge)(nil)
