package nes

import "github.com/golang/glog"

// CPUBus is the CPU's view of memory.
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	PPU Registers
// 0x2008 - 0x3FFF	PPU Registers Mirror
// 0x4000 - 0x4013	APU registers
// 0x4014           OAMDMA (handled on CPU, see cpu.go)
// 0x4015           APU status
// 0x4016           Controller 1
// 0x4017           Controller 2 / APU frame counter
// 0x4018 - 0x401F	Unused I/O
// 0x4020 - 0x5FFF	Extended RAM (unimplemented)
// 0x6000 - 0x7FFF	Battery Backup RAM (unimplemented)
// 0x8000 - 0xFFFF	Program ROM, via the cartridge's Mapper
type CPUBus struct {
	wram        *RAM
	ppu         *PPU
	apu         *APU
	mapper      Mapper
	controller1 *Controller
	controller2 *Controller
}

// NewCPUBus creates a new Bus for CPU.
func NewCPUBus(wram *RAM, ppu *PPU, apu *APU, mapper Mapper, controller1, controller2 *Controller) *CPUBus {
	return &CPUBus{wram, ppu, apu, mapper, controller1, controller2}
}

func (b *CPUBus) readPPURegister(address uint16) byte {
	switch address {
	case 0x2002:
		return b.ppu.readPPUSTATUS()
	case 0x2004:
		return b.ppu.readOAMDATA()
	case 0x2007:
		data, err := b.ppu.readPPUDATA()
		if err != nil {
			glog.Infof("PPUDATA read error: %v\n", err)
		}
		return data
	default:
		glog.Fatalf("Unknown CPU bus read: 0x%04x\n", address)
	}
	return 0
}

// read reads a byte.
func (b *CPUBus) read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.wram.read(address % 0x0800)
	case address < 0x2008:
		return b.readPPURegister(address)
	case address < 0x4000:
		return b.readPPURegister(0x2000 + (address-0x2000)%8)
	case address == 0x4015:
		return b.apu.ReadStatus()
	case address == 0x4016:
		return b.controller1.Read()
	case address == 0x4017:
		return b.controller2.Read()
	case address < 0x4020:
		glog.Infof("Unimplemented CPU bus read: address=0x%04x\n", address)
	case 0x8000 <= address:
		return b.mapper.ReadPRG(address)
	default:
		glog.Infof("Unimplemented CPU bus read: address=0x%04x\n", address)
	}
	return 0
}

// read16 reads 2 bytes.
func (b *CPUBus) read16(address uint16) uint16 {
	l := uint16(b.read(address))
	h := uint16(b.read(address+1)) << 8
	return h | l
}

// writeToPPURegisters writes data to PPU registers.
func (b *CPUBus) writeToPPURegisters(address uint16, data byte) {
	switch address {
	case 0x2000:
		b.ppu.writePPUCTRL(data)
	case 0x2001:
		b.ppu.writePPUMASK(data)
	case 0x2003:
		b.ppu.writeOAMADDR(data)
	case 0x2004:
		b.ppu.writeOAMDATA(data)
	case 0x2005:
		b.ppu.writePPUSCROLL(data)
	case 0x2006:
		b.ppu.writePPUADDR(data)
	case 0x2007:
		if err := b.ppu.writePPUDATA(data); err != nil {
			glog.Infof("PPUDATA write error: %v\n", err)
		}
	default:
		glog.Fatalf("Unknown CPU bus write: address=0x%04x, data=0x%02x\n", address, data)
	}
}

// write writes a byte.
func (b *CPUBus) write(address uint16, data byte) {
	switch {
	case address < 0x2000:
		b.wram.write(address%0x0800, data)
	case address < 0x2008:
		b.writeToPPURegisters(address, data)
	case address < 0x4000:
		b.writeToPPURegisters(0x2000+(address-0x2000)%8, data)
	case address == 0x4014:
		// Handled by CPU.write, which owns the OAMDMA stall-cycle accounting.
		glog.Fatalf("CPU bus write was illegally called for OAMDMA ($4014)")
	case address == 0x4016:
		b.controller1.Write(data)
		b.controller2.Write(data) // strobe is wired to both ports
	case address < 0x4018:
		b.apu.Write(address, data)
	case address < 0x4020:
		glog.Infof("Unimplemented CPU bus write: address=0x%04x, data=0x%02x\n", address, data)
	case 0x8000 <= address:
		b.mapper.WritePRG(address, data)
	default:
		glog.Infof("Unimplemented CPU bus write: address=0x%04x, data=0x%02x\n", address, data)
	}
}
