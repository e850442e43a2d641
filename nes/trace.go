package nes

import "fmt"

// Trace renders a nestest-log-style line for the instruction about to
// execute: PC, raw opcode byte, mnemonic, resolved operand, and the full
// register file. CPU.Step() stashes the result in lastExecution so callers
// can retrieve it after the fact via LastExecution, without Trace itself
// touching any I/O.
func (c *CPU) Trace(opcode byte, inst instruction, operand uint16) string {
	mnemonic := inst.mnemonic
	if mnemonic == "" {
		mnemonic = "???"
	}
	return fmt.Sprintf("%04X  %02X %-4s $%04X  A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		c.PC, opcode, mnemonic, operand, c.A, c.X, c.Y, c.P.encode(), c.S, c.cycleCount)
}

// LastExecution returns the trace line for the most recently completed
// Step (or stall/NMI service), for callers that want a running disassembly.
// cmd/gones logs it under -debug.
func (c *CPU) LastExecution() string {
	return c.lastExecution
}
