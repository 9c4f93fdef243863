package cpu

import "testing"

// mockBus is a flat 64KiB RAM used to drive the CPU in isolation, mirroring
// the teacher's mock memory interface in cpu_test.go.
type mockBus struct {
	mem [65536]uint8
}

func (m *mockBus) Read(addr uint16) uint8  { return m.mem[addr] }
func (m *mockBus) Write(addr uint16, v uint8) { m.mem[addr] = v }

func (m *mockBus) load(addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		m.mem[int(addr)+i] = b
	}
}

func newTestCPU() (*CPU, *mockBus) {
	bus := &mockBus{}
	c := NewCPU(bus, nil, CMOS65C02)
	return c, bus
}

func step(t *testing.T, c *CPU) {
	t.Helper()
	c.ClocksForNext()
	if err := c.ExecuteNext(); err != nil {
		t.Fatalf("ExecuteNext: %v", err)
	}
}

func TestLDAImmediateSetsZeroAndNegative(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0200
	bus.load(0x0200, 0xA9, 0x00) // LDA #$00
	step(t, c)
	if c.A != 0 {
		t.Fatalf("A = %#x, want 0", c.A)
	}
	if !c.GetFlag(FlagZ) {
		t.Fatalf("Z flag not set for zero load")
	}

	c.PC = 0x0300
	bus.load(0x0300, 0xA9, 0x80) // LDA #$80
	step(t, c)
	if !c.GetFlag(FlagN) {
		t.Fatalf("N flag not set for negative load")
	}
}

func TestADCBinaryCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0200
	c.A = 0x50
	bus.load(0x0200, 0x69, 0x50) // ADC #$50
	step(t, c)
	if c.A != 0xA0 {
		t.Fatalf("A = %#x, want 0xA0", c.A)
	}
	if !c.GetFlag(FlagV) {
		t.Fatalf("overflow flag not set for 0x50+0x50")
	}
	if c.GetFlag(FlagC) {
		t.Fatalf("carry should not be set for 0x50+0x50")
	}
}

func TestADCDecimalMode(t *testing.T) {
	c, bus := newTestCPU()
	c.SetFlag(FlagD, true)
	c.A = 0x09
	c.PC = 0x0200
	bus.load(0x0200, 0x69, 0x01) // ADC #$01
	step(t, c)
	if c.A != 0x10 {
		t.Fatalf("decimal 09+01 = %#x, want 0x10", c.A)
	}
}

func TestADCDecimalModeRejectsInvalidBCD(t *testing.T) {
	c, bus := newTestCPU()
	c.SetFlag(FlagD, true)
	c.A = 0x0A // invalid BCD: low nibble > 9
	c.PC = 0x0200
	bus.load(0x0200, 0x69, 0x01)
	c.ClocksForNext()
	err := c.ExecuteNext()
	if err == nil {
		t.Fatalf("expected ErrInvalidBCD, got nil")
	}
	if _, ok := err.(*ErrInvalidBCD); !ok {
		t.Fatalf("expected *ErrInvalidBCD, got %T", err)
	}
}

func TestBranchTakenCrossesPageAddsCycle(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x01F0
	c.SetFlag(FlagZ, true)
	bus.load(0x01F0, 0xF0, 0x20) // BEQ +0x20, crosses into page 2
	before := c.Cycles
	step(t, c)
	if c.Cycles-before != 4 { // base 2 + taken 1 + page-cross 1
		t.Fatalf("cycles = %d, want 4", c.Cycles-before)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0200
	bus.load(0x0200, 0x20, 0x00, 0x03) // JSR $0300
	bus.load(0x0300, 0x60)             // RTS
	step(t, c)
	if c.PC != 0x0300 {
		t.Fatalf("PC after JSR = %#x, want 0x0300", c.PC)
	}
	step(t, c)
	if c.PC != 0x0203 {
		t.Fatalf("PC after RTS = %#x, want 0x0203", c.PC)
	}
}

func TestIndirectJMPPageWrapBugOnNMOS(t *testing.T) {
	c, bus := newTestCPU()
	c.Model = NMOS6502
	c.PC = 0x0400
	bus.load(0x0400, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	bus.load(0x02FF, 0x34)
	bus.load(0x0200, 0x00) // high byte wraps to $0200, not $0300, on NMOS
	bus.load(0x0300, 0x12)
	step(t, c)
	if c.PC != 0x0034 {
		t.Fatalf("PC = %#x, want 0x0034 (page-wrap bug)", c.PC)
	}
}

func TestIndirectJMPFixedOn65C02(t *testing.T) {
	c, bus := newTestCPU()
	c.Model = CMOS65C02
	c.PC = 0x0400
	bus.load(0x0400, 0x6C, 0xFF, 0x02)
	bus.load(0x02FF, 0x34)
	bus.load(0x0300, 0x12)
	step(t, c)
	if c.PC != 0x1234 {
		t.Fatalf("PC = %#x, want 0x1234 (no page-wrap bug)", c.PC)
	}
}

func TestIRQServicedWhenUnmasked(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0200
	c.SetFlag(FlagI, false) // Reset leaves IRQs masked
	bus.load(VectorIRQ, 0x00, 0x04)
	c.AssertIRQ(true)
	c.ClocksForNext()
	if err := c.ExecuteNext(); err != nil {
		t.Fatalf("ExecuteNext: %v", err)
	}
	if c.PC != 0x0400 {
		t.Fatalf("PC after IRQ service = %#x, want 0x0400", c.PC)
	}
	if !c.GetFlag(FlagI) {
		t.Fatalf("I flag should be set after servicing IRQ")
	}
}

func TestIRQMaskedDoesNotService(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0200
	c.SetFlag(FlagI, true)
	bus.load(0x0200, 0xEA) // NOP
	c.AssertIRQ(true)
	step(t, c)
	if c.PC != 0x0201 {
		t.Fatalf("masked IRQ should not divert execution, PC = %#x", c.PC)
	}
}

func TestStackPushPopRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0200
	c.A = 0x42
	bus.load(0x0200, 0x48, 0xA9, 0x00, 0x68) // PHA, LDA #0, PLA
	step(t, c)
	step(t, c)
	if c.A != 0 {
		t.Fatalf("A after LDA #0 = %#x, want 0", c.A)
	}
	step(t, c)
	if c.A != 0x42 {
		t.Fatalf("A after PLA = %#x, want 0x42", c.A)
	}
}
