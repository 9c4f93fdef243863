package cpu

// AddrMode identifies a 6502/65C02 addressing mode.
type AddrMode uint8

const (
	Implicit AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // (zp,X)
	IndirectY // (zp),Y
	IndirectZP // (zp) — 65C02 addition
)

// resolveOperand computes the effective address (or immediate value) for
// the instruction at c.PC+1, and reports whether an indexed access crosses
// a page boundary (for the +1 cycle penalty). It does not advance PC.
func (c *CPU) resolveOperand(mode AddrMode) (addr uint16, pageCross bool) {
	switch mode {
	case Implicit, Accumulator:
		return 0, false
	case Immediate:
		return c.PC + 1, false
	case ZeroPage:
		return uint16(c.Bus.Read(c.PC + 1)), false
	case ZeroPageX:
		return uint16(c.Bus.Read(c.PC+1) + c.X), false
	case ZeroPageY:
		return uint16(c.Bus.Read(c.PC+1) + c.Y), false
	case Relative:
		offset := int8(c.Bus.Read(c.PC + 1))
		base := c.PC + 2
		target := uint16(int32(base) + int32(offset))
		return target, base&0xFF00 != target&0xFF00
	case Absolute:
		return c.read16(c.PC + 1), false
	case AbsoluteX:
		base := c.read16(c.PC + 1)
		target := base + uint16(c.X)
		return target, base&0xFF00 != target&0xFF00
	case AbsoluteY:
		base := c.read16(c.PC + 1)
		target := base + uint16(c.Y)
		return target, base&0xFF00 != target&0xFF00
	case Indirect:
		ptr := c.read16(c.PC + 1)
		return c.readIndirectPointer(ptr), false
	case IndirectX:
		zp := c.Bus.Read(c.PC+1) + c.X
		lo := uint16(c.Bus.Read(uint16(zp)))
		hi := uint16(c.Bus.Read(uint16(zp + 1)))
		return lo | hi<<8, false
	case IndirectY:
		zp := c.Bus.Read(c.PC + 1)
		lo := uint16(c.Bus.Read(uint16(zp)))
		hi := uint16(c.Bus.Read(uint16(zp + 1)))
		base := lo | hi<<8
		target := base + uint16(c.Y)
		return target, base&0xFF00 != target&0xFF00
	case IndirectZP:
		zp := c.Bus.Read(c.PC + 1)
		lo := uint16(c.Bus.Read(uint16(zp)))
		hi := uint16(c.Bus.Read(uint16(zp + 1)))
		return lo | hi<<8, false
	default:
		return 0, false
	}
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.Bus.Read(addr))
	hi := uint16(c.Bus.Read(addr + 1))
	return lo | hi<<8
}

// readIndirectPointer resolves a 6502 Indirect JMP operand. The NMOS part
// has the famous page-wrap bug (0xFF never carries into the high byte);
// 65C02 fixes it.
func (c *CPU) readIndirectPointer(ptr uint16) uint16 {
	lo := uint16(c.Bus.Read(ptr))
	var hiAddr uint16
	if c.Model == NMOS6502 && ptr&0x00FF == 0x00FF {
		hiAddr = ptr &^ 0x00FF
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.Bus.Read(hiAddr))
	return lo | hi<<8
}

// loadOperand reads the effective operand byte for read-modify-write and
// ALU instructions, handling Accumulator mode specially.
func (c *CPU) loadOperand(mode AddrMode, addr uint16) uint8 {
	if mode == Accumulator {
		return c.A
	}
	return c.Bus.Read(addr)
}

func (c *CPU) storeOperand(mode AddrMode, addr uint16, v uint8) {
	if mode == Accumulator {
		c.A = v
		return
	}
	c.Bus.Write(addr, v)
}
