package nes

import "fmt"

// CPU emulates the NES CPU, a custom 6502 made by Ricoh.
// References:
//
//	https://en.wikipedia.org/wiki/MOS_Technology_6502
//	http://www.6502.org/tutorials/6502opcodes.html
//	http://hp.vector.co.jp/authors/VA042397/nes/6502.html (In Japanese)
const CPUFrequency = 1789773

type addressingMode int

const (
	implied addressingMode = iota
	accumulator
	immediate
	zeropage
	zeropageX
	zeropageY
	relative
	absolute
	absoluteX
	absoluteY
	indirect
	indirectX
	indirectY
)

// status holds the six flag bits the 6502 actually stores in its P register.
// Bits 4 and 5 (the "B" and unused bits) aren't real storage: they only
// materialize when P is pushed to the stack, so they live as push-time
// parameters (see pushStatus) instead of fields here.
type status struct {
	C bool // carry
	Z bool // zero
	I bool // IRQ disable
	D bool // decimal - unused on NES, but still settable/clearable
	V bool // overflow
	N bool // negative
}

// bits packs the six stored flags, with bits 4 and 5 left clear.
func (s *status) bits() byte {
	var res byte
	if s.C {
		res |= 1 << 0
	}
	if s.Z {
		res |= 1 << 1
	}
	if s.I {
		res |= 1 << 2
	}
	if s.D {
		res |= 1 << 3
	}
	if s.V {
		res |= 1 << 6
	}
	if s.N {
		res |= 1 << 7
	}
	return res
}

// encode reports P as it reads in the live register: bit 5 always set, bit 4
// always clear (B only exists on the stack copy).
func (s *status) encode() byte {
	return s.bits() | 0x20
}

// decodeFrom loads the six stored flags from a pulled byte. Bits 4 and 5 are
// ignored, since they're not real register state.
func (s *status) decodeFrom(data byte) {
	s.C = (data>>0)&1 == 1
	s.Z = (data>>1)&1 == 1
	s.I = (data>>2)&1 == 1
	s.D = (data>>3)&1 == 1
	s.V = (data>>6)&1 == 1
	s.N = (data>>7)&1 == 1
}

// CPU is the register file plus the fetch/decode/execute loop.
type CPU struct {
	P             *status // Processor status flag bits
	A             byte    // Accumulator register
	X             byte    // Index register
	Y             byte    // Index register
	PC            uint16  // Program counter
	S             byte    // Stack pointer
	lastExecution string  // For trace output
	stall         uint64  // Stall cycles, consumed by Step before fetching
	cycleCount    uint64  // Total master cycles elapsed, for OAMDMA parity
	extraCycles   int     // Page-cross / branch cycle penalties for the in-flight instruction
	bus           *CPUBus
	instructions  []instruction
	nmiTriggered  bool
}

// NewCPU creates a new NES CPU wired to bus and puts it through Reset.
func NewCPU(bus *CPUBus) *CPU {
	c := &CPU{
		P:   &status{},
		bus: bus,
	}
	c.instructions = c.createInstructions()
	c.Reset()
	return c
}

// Reset loads PC from the reset vector, as real hardware does on power-up.
func (c *CPU) Reset() {
	c.bus.wram.Clear()
	c.PC = c.bus.read16(0xFFFC)
	c.S = 0xFD
	c.P.decodeFrom(0x24)
}

// TriggerNMI schedules an NMI to be serviced before the next instruction
// fetch. Called by the emulator façade when the PPU raises NMI.
func (c *CPU) TriggerNMI() {
	c.nmiTriggered = true
}

// write wraps bus writes to intercept OAMDMA ($4014), which the CPU bus
// can't service itself: the transfer steals CPU cycles and the stall
// duration depends on whether it starts on an even or odd CPU cycle.
// Reference: https://www.nesdev.org/wiki/DMA
func (c *CPU) write(address uint16, data byte) {
	if address == 0x4014 {
		var oamData [256]byte
		offset := uint16(data) << 8
		for i := 0; i < 256; i++ {
			oamData[i] = c.bus.read(offset + uint16(i))
		}
		c.bus.ppu.WriteOAMDMA(oamData)
		c.stall += 513
		if c.cycleCount%2 == 1 {
			c.stall++
		}
		return
	}
	c.bus.write(address, data)
}

func (c *CPU) setN(x byte) {
	c.P.N = x&0x80 != 0
}

func (c *CPU) setZ(x byte) {
	c.P.Z = x == 0
}

// push pushes a byte to the stack. "With the 6502, the stack is always on
// page one ($100-$1FF) and works top down."
func (c *CPU) push(x byte) {
	c.write(0x100|uint16(c.S), x)
	c.S--
}

// pop pops a byte from the stack.
func (c *CPU) pop() byte {
	c.S++
	return c.bus.read(0x100 | uint16(c.S))
}

// pushStatus pushes P with the break flag synthesized for this push site:
// true for PHP/BRK, false for IRQ/NMI. Bit 5 is always set regardless.
func (c *CPU) pushStatus(breakFlag bool) {
	b := c.P.bits() | 0x20
	if breakFlag {
		b |= 0x10
	}
	c.push(b)
}

// branch applies a relative-addressing branch's cycle penalties: +1 if
// taken, +1 more if the branch crosses a page boundary.
func (c *CPU) branch(taken bool, target uint16) {
	if !taken {
		return
	}
	c.extraCycles++
	if (c.PC & 0xFF00) != (target & 0xFF00) {
		c.extraCycles++
	}
	c.PC = target
}

// nmi services a non-maskable interrupt, raised by the PPU on vblank.
func (c *CPU) nmi() {
	c.push(byte(c.PC >> 8))
	c.push(byte(c.PC))
	c.pushStatus(false)
	c.P.I = true
	c.PC = c.bus.read16(0xFFFA)
}

// pageCrossEligible is the set of read instructions that take a bonus
// cycle when AbsoluteX/AbsoluteY/IndirectY addressing crosses a page.
// Writes and read-modify-write instructions always use the addressing
// mode's worst-case cycle count, so they're not in this set.
var pageCrossEligible = map[string]bool{
	"ADC": true, "AND": true, "CMP": true, "EOR": true,
	"LDA": true, "LDX": true, "LDY": true, "ORA": true, "SBC": true,
}

// decodeOperand resolves the addressing mode for the instruction at PC+1,
// returning the effective address (for immediate, the address of the
// operand byte; for relative, the branch target) and whether the read
// crossed a page boundary.
func (c *CPU) decodeOperand(mode addressingMode) (uint16, bool) {
	switch mode {
	case implied, accumulator:
		return 0, false
	case immediate:
		return c.PC + 1, false
	case zeropage:
		return uint16(c.bus.read(c.PC + 1)), false
	case zeropageX:
		return uint16(c.bus.read(c.PC+1)+c.X) & 0xFF, false
	case zeropageY:
		return uint16(c.bus.read(c.PC+1)+c.Y) & 0xFF, false
	case relative:
		offset := c.bus.read(c.PC + 1)
		base := c.PC + 2
		if offset < 0x80 {
			return base + uint16(offset), false
		}
		return base + uint16(offset) - 0x100, false
	case absolute:
		return c.bus.read16(c.PC + 1), false
	case absoluteX:
		base := c.bus.read16(c.PC + 1)
		addr := base + uint16(c.X)
		return addr, (base & 0xFF00) != (addr & 0xFF00)
	case absoluteY:
		base := c.bus.read16(c.PC + 1)
		addr := base + uint16(c.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)
	case indirect:
		// Reproduces the 6502's indirect-JMP page-wrap bug: when the
		// pointer's low byte is 0xFF, the high byte is fetched from the
		// start of the same page instead of the next page.
		ptr := c.bus.read16(c.PC + 1)
		lo := uint16(c.bus.read(ptr))
		hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
		hi := uint16(c.bus.read(hiAddr))
		return hi<<8 | lo, false
	case indirectX:
		zp := (c.bus.read(c.PC+1) + c.X) & 0xFF
		lo := uint16(c.bus.read(uint16(zp)))
		hi := uint16(c.bus.read(uint16((zp + 1) & 0xFF)))
		return hi<<8 | lo, false
	case indirectY:
		zp := c.bus.read(c.PC + 1)
		lo := uint16(c.bus.read(uint16(zp)))
		hi := uint16(c.bus.read(uint16((zp + 1) & 0xFF)))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)
	}
	return 0, false
}

// Step performs one instruction cycle - fetch, decode, execute - and
// returns the number of master cycles it consumed. Per the batched-
// execution model, the instruction's effects all happen here; the caller
// is expected to "spend" the returned cycle count by ticking the rest of
// the system (PPU, APU) that many times before calling Step again.
func (c *CPU) Step() (int, error) {
	if c.stall > 0 {
		c.stall--
		c.lastExecution = fmt.Sprintf("CPU stall, PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x", c.PC, c.A, c.X, c.Y, c.S)
		c.cycleCount++
		return 1, nil
	}
	if c.nmiTriggered {
		c.nmi()
		c.nmiTriggered = false
		c.lastExecution = fmt.Sprintf("NMI, PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x", c.PC, c.A, c.X, c.Y, c.S)
		c.cycleCount += 7
		return 7, nil
	}
	opcode := c.bus.read(c.PC)
	inst := c.instructions[opcode]
	if inst.execute == nil {
		return 0, fmt.Errorf("nes: unimplemented opcode 0x%02x at PC=0x%04x", opcode, c.PC)
	}
	operand, pageCrossed := c.decodeOperand(inst.mode)
	c.extraCycles = 0
	c.lastExecution = c.Trace(opcode, inst, operand)
	c.PC += inst.size
	inst.execute(inst.mode, operand)
	cycles := inst.cycles + c.extraCycles
	if pageCrossed && pageCrossEligible[inst.mnemonic] {
		cycles++
	}
	c.cycleCount += uint64(cycles)
	return cycles, nil
}
