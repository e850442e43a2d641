package nes

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"testing"
)

var (
	pcRe  = regexp.MustCompile("^[A-Z0-9]{4}")
	aRe   = regexp.MustCompile("A:([A-Z0-9]*)")
	xRe   = regexp.MustCompile("X:([A-Z0-9]*)")
	yRe   = regexp.MustCompile("Y:([A-Z0-9]*)")
	pRe   = regexp.MustCompile("P:([A-Z0-9]*)")
	spRe  = regexp.MustCompile("SP:([A-Z0-9]*)")
	cycRe = regexp.MustCompile(`CYC:(\d*)`)
)

// newNestestEmulator loads the canonical nestest ROM and pins the CPU to
// its automation entry point ($C000), which runs every official opcode
// without needing a controller or display attached.
func newNestestEmulator(t *testing.T) *Emulator {
	t.Helper()
	f, err := os.Open("../testdata/other/nestest.nes")
	if err != nil {
		t.Skipf("nestest.nes fixture not present: %v", err)
	}
	defer f.Close()
	e, err := NewFromReader(f)
	if err != nil {
		t.Fatalf("failed to load nestest.nes: %v", err)
	}
	e.cpu.PC = 0xC000
	e.cpu.S = 0xFD
	e.cpu.P.decodeFrom(0x24)
	return e
}

// TestCPUAgainstNestestLog replays nestest's automation mode and checks the
// CPU's register file after every instruction against the reference trace.
func TestCPUAgainstNestestLog(t *testing.T) {
	in, err := os.Open("../testdata/other/nestest.log")
	if err != nil {
		t.Skipf("nestest.log fixture not present: %v", err)
	}
	defer in.Close()
	e := newNestestEmulator(t)
	cpu := e.cpu

	var wantCycle int
	var wantPC uint16
	var wantA, wantX, wantY, wantP, wantSP byte
	cycles := 7
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Sscanf(pcRe.FindString(line), "%x", &wantPC)
		fmt.Sscanf(aRe.FindStringSubmatch(line)[1], "%x", &wantA)
		fmt.Sscanf(xRe.FindStringSubmatch(line)[1], "%x", &wantX)
		fmt.Sscanf(yRe.FindStringSubmatch(line)[1], "%x", &wantY)
		fmt.Sscanf(pRe.FindStringSubmatch(line)[1], "%x", &wantP)
		fmt.Sscanf(spRe.FindStringSubmatch(line)[1], "%x", &wantSP)
		fmt.Sscanf(cycRe.FindStringSubmatch(line)[1], "%d", &wantCycle)
		if cpu.PC != wantPC {
			t.Fatalf("PC: got=0x%04x, want=0x%04x (line: %s)", cpu.PC, wantPC, line)
		}
		if cpu.A != wantA {
			t.Fatalf("A: got=0x%02x, want=0x%02x (line: %s)", cpu.A, wantA, line)
		}
		if cpu.X != wantX {
			t.Fatalf("X: got=0x%02x, want=0x%02x (line: %s)", cpu.X, wantX, line)
		}
		if cpu.Y != wantY {
			t.Fatalf("Y: got=0x%02x, want=0x%02x (line: %s)", cpu.Y, wantY, line)
		}
		if cpu.P.encode() != wantP {
			t.Fatalf("P: got=0x%02x, want=0x%02x (line: %s)", cpu.P.encode(), wantP, line)
		}
		if cpu.S != wantSP {
			t.Fatalf("SP: got=0x%02x, want=0x%02x (line: %s)", cpu.S, wantSP, line)
		}
		if cycles != wantCycle {
			t.Fatalf("CYC: got=%d, want=%d (line: %s)", cycles, wantCycle, line)
		}
		c, err := cpu.Step()
		if err != nil {
			t.Fatalf("Step failed: %v (line: %s)", err, line)
		}
		cycles += c
	}
}

// TestResetVector checks that a CPU reset loads PC from the $FFFC vector
// (nestest's points at $C004), not some fixed start address.
func TestResetVector(t *testing.T) {
	e := newNestestEmulator(t)
	want := e.cpu.bus.read16(0xFFFC)
	e.cpu.Reset()
	if e.cpu.PC != want {
		t.Fatalf("PC after Reset: got=0x%04x, want=0x%04x (from $FFFC)", e.cpu.PC, want)
	}
}

// TestADCOverflow checks the corrected (A^result)&(M^result)&0x80 overflow
// formula on a case an operator-precedence bug would get wrong: 0x50+0x50.
func TestADCOverflow(t *testing.T) {
	bus := newTestCPUBus(t)
	cpu := NewCPU(bus)
	cpu.A = 0x50
	cpu.P.C = false
	bus.wram.write(0, 0x50)
	cpu.adc(zeropage, 0)
	if cpu.A != 0xA0 {
		t.Fatalf("A: got=0x%02x, want=0xA0", cpu.A)
	}
	if !cpu.P.V {
		t.Fatalf("V: got=false, want=true (0x50+0x50 overflows into negative)")
	}
	if cpu.P.C {
		t.Fatalf("C: got=true, want=false")
	}
}

// TestPageCrossPenalty checks that an AbsoluteX read adds a cycle when the
// addition carries into a new page.
func TestPageCrossPenalty(t *testing.T) {
	bus := newTestCPUBus(t)
	cpu := NewCPU(bus)
	cpu.X = 0xFF
	// LDA $00A0,X with X=0xFF crosses from page 0 to page 1.
	bus.wram.write(0x01, 0xA0)
	bus.wram.write(0x02, 0x00)
	cpu.PC = 0
	bus.wram.write(0, 0xBD) // LDA absolute,X
	c, err := cpu.Step()
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if c != 5 {
		t.Fatalf("cycles: got=%d, want=5 (base 4 + 1 page-cross)", c)
	}
}

// newTestCPUBus builds a CPUBus around a tiny synthetic NROM cartridge so
// opcode-level tests don't need a real ROM file.
func newTestCPUBus(t *testing.T) *CPUBus {
	t.Helper()
	data := make([]byte, 16+16*1024)
	copy(data, []byte("NES\x1A"))
	data[4] = 1 // 1 PRG page
	data[5] = 0 // CHR-RAM
	cartridge, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("failed to build synthetic cartridge: %v", err)
	}
	controller1 := NewController()
	controller2 := NewController()
	apu := NewAPU()
	ppuBus := NewPPUBus(NewRAM(), cartridge)
	ppu := NewPPU(ppuBus)
	return NewCPUBus(NewRAM(), ppu, apu, cartridge, controller1, controller2)
}
