package nes

// APU stands in for the audio processing unit at $4000-$4015. Synthesizing
// the actual waveform channels is a spec Non-goal (accurate analog audio
// synthesis); this core only needs the bus-visible contract: register reads
// return 0, and writes are silently accepted so unrelated ROMs that poke the
// APU don't crash. $4015 status read is handled the same way.
type APU struct{}

// NewAPU creates the (stateless) stub APU.
func NewAPU() *APU {
	return &APU{}
}

// ReadStatus serves a $4015 read.
func (a *APU) ReadStatus() byte {
	return 0
}

// Write serves a write anywhere in $4000-$4013, $4015 or $4017.
func (a *APU) Write(address uint16, data byte) {}

// Sample returns the next audio sample. Waveform synthesis is a spec
// Non-goal, so this always reports silence; it still gives a front-end a
// real passthrough to pull from instead of inventing its own audio source.
func (a *APU) Sample() float32 {
	return 0
}
