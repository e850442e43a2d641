package nes

import (
	"fmt"
	"image"
	"io"
	"os"
)

// Emulator owns every subsystem and drives them forward in lockstep. It is
// the sole mutable-state owner in this core: nothing here is safe to touch
// from more than one goroutine at a time, matching the NES's own
// single-threaded hardware timing.
type Emulator struct {
	cpu         *CPU
	ppu         *PPU
	apu         *APU
	cartridge   *Cartridge
	controller1 *Controller
	controller2 *Controller
	frame       *image.RGBA
}

// New loads an iNES ROM from romPath and wires up a ready-to-run Emulator.
func New(romPath string) (*Emulator, error) {
	f, err := os.Open(romPath)
	if err != nil {
		return nil, fmt.Errorf("nes: failed to open ROM: %w", err)
	}
	defer f.Close()
	return NewFromReader(f)
}

// NewFromReader builds an Emulator from an already-open iNES image, so
// callers (tests, embedders) don't need a real file on disk.
func NewFromReader(r io.Reader) (*Emulator, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("nes: failed to read ROM: %w", err)
	}
	cartridge, err := NewCartridge(data)
	if err != nil {
		return nil, fmt.Errorf("nes: failed to parse ROM: %w", err)
	}
	controller1 := NewController()
	controller2 := NewController()
	apu := NewAPU()
	ppuBus := NewPPUBus(NewRAM(), cartridge)
	ppu := NewPPU(ppuBus)
	cpuBus := NewCPUBus(NewRAM(), ppu, apu, cartridge, controller1, controller2)
	cpu := NewCPU(cpuBus)
	e := &Emulator{
		cpu:         cpu,
		ppu:         ppu,
		apu:         apu,
		cartridge:   cartridge,
		controller1: controller1,
		controller2: controller2,
	}
	return e, nil
}

// Step runs exactly one CPU instruction (or stall/NMI-service step) and
// the matching 3x PPU ticks per CPU cycle, per spec §9's batched-execution
// model: the CPU's effects land atomically, then this ticks the rest of
// the system forward by the cycles it cost. It reports whether one of those
// ticks just completed a frame — checked after every dot, since a single
// Step's burst of ticks almost always steps clean over the one dot
// ppu.Frame() latches on.
func (e *Emulator) Step() (bool, error) {
	cycles, err := e.cpu.Step()
	if err != nil {
		return false, err
	}
	frameDone := false
	for i := 0; i < cycles*3; i++ {
		nmi, err := e.ppu.Tick()
		if err != nil {
			return false, fmt.Errorf("nes: ppu tick failed: %w", err)
		}
		if nmi {
			e.cpu.TriggerNMI()
		}
		if done, picture := e.ppu.Frame(); done {
			e.frame = picture
			frameDone = true
		}
	}
	return frameDone, nil
}

// StepFrame runs Step until a full frame has been produced, returning the
// rendered picture.
func (e *Emulator) StepFrame() (*image.RGBA, error) {
	for {
		done, err := e.Step()
		if err != nil {
			return nil, err
		}
		if done {
			return e.frame, nil
		}
	}
}

// FramePixels returns the most recently completed frame, or nil before the
// first frame has been produced.
func (e *Emulator) FramePixels() *image.RGBA {
	return e.frame
}

// AudioSample returns the APU's current output sample. The APU is a
// bus-compatible stub (spec Non-goal: accurate analog audio synthesis), so
// this is always silence, but it gives a front-end a real signal to pull
// from rather than faking one up itself.
func (e *Emulator) AudioSample() float32 {
	return e.apu.Sample()
}

// SetButton mutates a single controller-1 button's held state.
func (e *Emulator) SetButton(b Button, down bool) {
	e.controller1.SetButton(b, down)
}

// SetButtons replaces all of controller 1's button state at once.
func (e *Emulator) SetButtons(buttons [8]bool) {
	e.controller1.SetButtons(buttons)
}

// SetButton2 mutates a single controller-2 button's held state.
func (e *Emulator) SetButton2(b Button, down bool) {
	e.controller2.SetButton(b, down)
}

// Reset re-initializes the CPU and PPU as power-on would, without
// reloading the cartridge.
func (e *Emulator) Reset() {
	e.cpu.Reset()
	e.ppu.Reset()
}

// CPU exposes the CPU for tests and tracing tools that need direct access.
func (e *Emulator) CPU() *CPU { return e.cpu }

// PPU exposes the PPU for tests that need direct access.
func (e *Emulator) PPU() *PPU { return e.ppu }
