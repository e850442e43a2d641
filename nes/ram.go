package nes

// RAM is a flat byte array used for both CPU work RAM and PPU nametable RAM.
// Both are 2 KiB on real hardware; callers are responsible for masking
// addresses into range before calling read/write.
type RAM struct {
	data [2048]byte
}

// NewRAM creates a zeroed RAM bank.
func NewRAM() *RAM {
	return &RAM{}
}

func (r *RAM) read(address uint16) byte {
	return r.data[address]
}

func (r *RAM) write(address uint16, x byte) {
	r.data[address] = x
}

// Clear zeroes the RAM. Used on reset so state never depends on
// whatever bytes happened to be sitting in memory at construction time.
func (r *RAM) Clear() {
	r.data = [2048]byte{}
}
