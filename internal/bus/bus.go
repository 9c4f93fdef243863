// Package bus implements the memory-mapped arbiter that sits between the
// CPU core and every NovaVM peripheral. It owns the 64 KiB linear RAM, the
// ROM write-protection rule, the raster-IRQ latch, and the frame
// accumulator that turns executed cycles into logical video/music frames.
//
// Dispatch order is fixed and never changes at runtime: music mirrors,
// timer, NIC, DMA, blitter, XMC, file I/O, VGC, SID1, SID2, then RAM. Each
// peripheral is probed in that order and the first to claim an address
// wins, matching the single-claim invariant in the memory map.
package bus

import "novavm/internal/memspace"

const (
	ramSize    = 1 << 16
	romStart   = 0xC000
	vectorLow  = 0xFFFA
	vectorHigh = 0x10000

	sidMirrorStart = 0xD500
	sidMirrorEnd   = 0xD51D // exclusive
	sid2Base       = 0xD420

	vectorTableStart = 0x0200
)

// Peripheral is the contract every memory-mapped device implements: decide
// whether it claims an address, then serve the read or write.
type Peripheral interface {
	Owns(addr uint16) bool
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

// CycleAdvancer is implemented by peripherals that need to make progress
// between CPU instructions, driven by the bus's own cycle budget.
type CycleAdvancer interface {
	AdvanceCycles(n uint64)
}

// VGC is the subset of the video controller's contract the bus needs:
// dispatch plus the two cross-cutting signals (raster IRQ enablement and
// the sticky soft-reset request) that only the bus can act on.
type VGC interface {
	Peripheral
	TickFrame()
	RasterIRQEnabled() bool
	// ConsumeSysResetRequested reports whether a command register write
	// requested a global soft reset, clearing the flag either way.
	ConsumeSysResetRequested() bool
}

// Music is both a memory-mapped status/mirror block and the 60 Hz
// sequencer tick driven by the frame accumulator.
type Music interface {
	Peripheral
	Tick()
	Stop()
}

// SID is a sound chip: ordinary peripheral, plus the per-cycle oscillator
// clock and the all-voices-off gate used during a global soft reset.
type SID interface {
	Peripheral
	CycleAdvancer
	GateAllVoicesOff()
}

// NIC is the network controller; Reset returns every slot to Idle during
// a global soft reset.
type NIC interface {
	Peripheral
	Reset()
	IRQPending() bool
}

// Timer, DMA, Blitter, XMC, and FileIO are plain peripherals; DMA/Blitter
// also consume cycle budget.
type Timer interface {
	Peripheral
	CycleAdvancer
	IRQPending() bool
}

type DMA interface {
	Peripheral
	CycleAdvancer
}

type Blitter interface {
	Peripheral
	CycleAdvancer
}

type XMC interface {
	Peripheral
}

type FileIO interface {
	Peripheral
}

// Bus wires every peripheral together behind the fixed-order dispatcher
// described in the memory map.
type Bus struct {
	ram [ramSize]byte

	Music   Music
	Timer   Timer
	NIC     NIC
	DMA     DMA
	Blitter Blitter
	XMC     XMC
	FIO     FileIO
	VGC     VGC
	SID1    SID
	SID2    SID

	peripherals []Peripheral
	vgcIndex    int

	cpuHz       uint64
	frameRateHz uint64

	frameAccumulator uint64
	TotalFrames      uint64

	rasterLatch bool

	// OnSoftReset, if set, is called after a VGC command triggers the
	// global soft reset. The machine package wires this to hostapi.Hooks
	// so a host UI can observe the reset without the bus importing a UI
	// package (spec.md §9, "Callbacks for host events").
	OnSoftReset func()
}

// Config bundles the construction-time parameters spec.md §6 calls out as
// the machine's runtime knobs that bear on bus timing.
type Config struct {
	CPUHz       uint64
	FrameRateHz uint64
}

// New builds a Bus with every peripheral slot wired. Any peripheral field
// may be nil during incremental bring-up; dispatch simply skips a nil
// peripheral's Owns check.
func New(cfg Config, vgc VGC, sid1, sid2 SID, music Music, xmc XMC, fio FileIO, timer Timer, nic NIC, dma DMA, blitter Blitter) *Bus {
	b := &Bus{
		Music:       music,
		Timer:       timer,
		NIC:         nic,
		DMA:         dma,
		Blitter:     blitter,
		XMC:         xmc,
		FIO:         fio,
		VGC:         vgc,
		SID1:        sid1,
		SID2:        sid2,
		cpuHz:       cfg.CPUHz,
		frameRateHz: cfg.FrameRateHz,
	}
	b.peripherals = []Peripheral{music, timer, nic, dma, blitter, xmc, fio, vgc, sid1, sid2}
	b.vgcIndex = 7
	return b
}

// Dispatch slot indices into b.peripherals, mirroring the fixed probe
// order above. DMA, the blitter, and file I/O commonly depend on a
// memspace.Registry built from the bus's own RAM space, so callers
// construct the Bus with those three nil and fill them in afterward
// with these setters once the registry exists.
const (
	slotDMA     = 3
	slotBlitter = 4
	slotFIO     = 6
)

// SetDMA wires the DMA engine in after construction.
func (b *Bus) SetDMA(d DMA) { b.DMA = d; b.peripherals[slotDMA] = d }

// SetBlitter wires the blitter engine in after construction.
func (b *Bus) SetBlitter(blt Blitter) { b.Blitter = blt; b.peripherals[slotBlitter] = blt }

// SetFIO wires the file I/O controller in after construction.
func (b *Bus) SetFIO(f FileIO) { b.FIO = f; b.peripherals[slotFIO] = f }

// LoadROM copies a ROM image into [0xC000, 0xC000+len(image)), which must
// fit within the ROM body below the hardware vectors.
func (b *Bus) LoadROM(image []byte) {
	copy(b.ram[romStart:vectorLow], image)
}

// SeedVectorTable writes the peripheral base addresses named in the
// memory map into the vector table at [0x0200, 0x027F], one 16-bit
// little-endian word per peripheral, in memory-map order. ROM code reads
// this table once at startup to learn where each device lives rather
// than hardcoding addresses that might shift between builds.
func (b *Bus) SeedVectorTable() {
	bases := []uint16{
		0xA000, // VGC core/command/IRQ
		0xA040, // VGC sprite registers
		0xA100, // NIC
		0xAA00, // Character RAM
		0xB1D0, // Color RAM
		0xB9A0, // File I/O
		0xBA00, // XMC registers
		0xBA40, // Timer
		0xBA50, // Music status
		0xBA60, // DMA
		0xBA80, // Blitter
		0xBC00, // XMC window 0
		0xD400, // SID1
		0xD420, // SID2
	}
	addr := uint16(vectorTableStart)
	for _, base := range bases {
		b.ram[addr] = uint8(base)
		b.ram[addr+1] = uint8(base >> 8)
		addr += 2
	}
}

// Read implements the CPU-facing bus.Bus interface.
func (b *Bus) Read(addr uint16) uint8 {
	if addr >= sidMirrorStart && addr < sidMirrorEnd {
		if b.SID2 != nil {
			return b.SID2.Read(sid2Base + (addr - sidMirrorStart))
		}
		return 0
	}
	for _, p := range b.peripherals {
		if p == nil {
			continue
		}
		if p.Owns(addr) {
			return p.Read(addr)
		}
	}
	return b.ram[addr]
}

// Write implements the CPU-facing bus.Bus interface, including ROM
// write-protection and the VGC-triggered global soft reset.
func (b *Bus) Write(addr uint16, v uint8) {
	if addr >= sidMirrorStart && addr < sidMirrorEnd {
		if b.SID2 != nil {
			b.SID2.Write(sid2Base+(addr-sidMirrorStart), v)
		}
		return
	}
	for i, p := range b.peripherals {
		if p == nil {
			continue
		}
		if p.Owns(addr) {
			p.Write(addr, v)
			if i == b.vgcIndex && b.VGC.ConsumeSysResetRequested() {
				b.softReset()
			}
			return
		}
	}
	if addr >= romStart && addr < vectorLow {
		return // ROM body is write-protected
	}
	b.ram[addr] = v
}

// softReset implements the global reset a VGC command can trigger: stop
// the music engine, gate every SID voice off, and reset the NIC. It never
// touches RAM or ROM.
func (b *Bus) softReset() {
	if b.Music != nil {
		b.Music.Stop()
	}
	if b.SID1 != nil {
		b.SID1.GateAllVoicesOff()
	}
	if b.SID2 != nil {
		b.SID2.GateAllVoicesOff()
	}
	if b.NIC != nil {
		b.NIC.Reset()
	}
	if b.OnSoftReset != nil {
		b.OnSoftReset()
	}
}

// ramSpace adapts the bus's own 64 KiB RAM to memspace.Space so DMA and
// the blitter can address it like any other peripheral-backed region.
// It bypasses peripheral dispatch entirely: DMA/blitter transfers that
// target CPU RAM deal in raw bytes, not ROM-protected CPU bus semantics.
type ramSpace struct{ b *Bus }

// RAMSpace returns the CPU RAM as a memspace.Space for wiring into the
// DMA/blitter space registry.
func (b *Bus) RAMSpace() memspace.Space { return ramSpace{b} }

func (s ramSpace) Length() int { return ramSize }
func (s ramSpace) TryRead(off int) (uint8, bool) {
	if off < 0 || off >= ramSize {
		return 0, false
	}
	return s.b.ram[off], true
}
func (s ramSpace) TryWrite(off int, v uint8) bool {
	if off < 0 || off >= ramSize {
		return false
	}
	s.b.ram[off] = v
	return true
}
func (s ramSpace) CanWriteRange(off, length int) bool {
	if off < 0 || off+length > ramSize {
		return false
	}
	end := off + length
	overlapsProtectedROM := off < vectorLow && end > romStart
	return !overlapsProtectedROM
}

// Read16 and Write16 are little-endian helpers used by callers that need
// to read/write a 16-bit pointer through the bus (e.g. the CPU's vector
// fetch, XMC window base math).
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return lo | hi<<8
}

func (b *Bus) Write16(addr uint16, v uint16) {
	b.Write(addr, uint8(v))
	b.Write(addr+1, uint8(v>>8))
}

// AdvanceCycles advances DMA, blitter, and timer, then the frame
// accumulator, in that fixed order (spec.md §5). The accumulator may tick
// zero, one, or more logical frames depending on how cpu_hz divides
// frame_rate_hz; the remainder is preserved across calls rather than
// rounded, so long sequences of small advances stay phase-exact with one
// large advance of the same total.
func (b *Bus) AdvanceCycles(n uint64) {
	if b.DMA != nil {
		b.DMA.AdvanceCycles(n)
	}
	if b.Blitter != nil {
		b.Blitter.AdvanceCycles(n)
	}
	if b.Timer != nil {
		b.Timer.AdvanceCycles(n)
	}
	if b.SID1 != nil {
		b.SID1.AdvanceCycles(n)
	}
	if b.SID2 != nil {
		b.SID2.AdvanceCycles(n)
	}

	if b.cpuHz == 0 {
		return
	}
	b.frameAccumulator += n * b.frameRateHz
	for b.frameAccumulator >= b.cpuHz {
		b.frameAccumulator -= b.cpuHz
		b.TotalFrames++
		if b.VGC != nil {
			b.VGC.TickFrame()
		}
		if b.Music != nil {
			b.Music.Tick()
		}
		if b.VGC != nil && b.VGC.RasterIRQEnabled() {
			b.rasterLatch = true
		}
	}
}

// Frames reports the total number of logical video/music frames ticked
// since construction, for telemetry consumers like the scheduler.
func (b *Bus) Frames() uint64 { return b.TotalFrames }

// ConsumeRasterIRQ implements test-and-clear semantics for the raster IRQ
// latch the scheduler samples once per instruction.
func (b *Bus) ConsumeRasterIRQ() bool {
	v := b.rasterLatch
	b.rasterLatch = false
	return v
}

// PendingIRQ reports whether any peripheral wants the CPU's attention,
// combining the timer, NIC, and raster sources the scheduler samples
// after every instruction. This always consumes the raster latch, so
// call it at most once per slice iteration.
func (b *Bus) PendingIRQ() bool {
	timerIRQ := b.Timer != nil && b.Timer.IRQPending()
	nicIRQ := b.NIC != nil && b.NIC.IRQPending()
	raster := b.ConsumeRasterIRQ()
	return timerIRQ || nicIRQ || raster
}
